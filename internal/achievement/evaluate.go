package achievement

import (
	"math"
	"time"

	"nutrilog/internal/calendar"
	"nutrilog/internal/model"
)

// CalorieGoalTolerance is how close, in kcal, today's total must be to the
// calorie target to unlock CalorieGoal.
const CalorieGoalTolerance = 100

// Input is everything the rules look at.
type Input struct {
	Meals         []model.MealRecord
	Water         []model.WaterEntry
	Weights       []model.WeightEntry
	CurrentStreak int
	WaterTargetMl float64
	CalorieTarget float64
}

type facts struct {
	meals, weights, streak int
	waterToday             float64
	caloriesToday          float64
	waterTarget            float64
	calorieTarget          float64
}

var rules = [NumIDs]func(f facts) bool{
	FirstMeal: func(f facts) bool { return f.meals >= 1 },
	Streak3:   func(f facts) bool { return f.streak >= 3 },
	Streak7:   func(f facts) bool { return f.streak >= 7 },
	Streak30:  func(f facts) bool { return f.streak >= 30 },
	Meals10:   func(f facts) bool { return f.meals >= 10 },
	Meals50:   func(f facts) bool { return f.meals >= 50 },
	Meals100:  func(f facts) bool { return f.meals >= 100 },
	WaterGoal: func(f facts) bool { return f.waterToday >= f.waterTarget },
	CalorieGoal: func(f facts) bool {
		return f.calorieTarget != 0 && math.Abs(f.caloriesToday-f.calorieTarget) <= CalorieGoalTolerance
	},
	WeightLogged: func(f facts) bool { return f.weights >= 1 },
}

// Evaluate returns prev with every newly satisfied achievement unlocked and
// stamped with now. Achievements already unlocked keep their original
// timestamp and are never locked again, even if their rule no longer holds.
// prev itself is not modified.
func Evaluate(in Input, prev Snapshot, now time.Time) Snapshot {
	today := calendar.DateString(now)
	f := facts{
		meals:         len(in.Meals),
		weights:       len(in.Weights),
		streak:        in.CurrentStreak,
		waterTarget:   in.WaterTargetMl,
		calorieTarget: in.CalorieTarget,
	}
	for _, w := range in.Water {
		if w.Date == today {
			f.waterToday += w.AmountMl
		}
	}
	for _, m := range in.Meals {
		if m.Date == today {
			f.caloriesToday += m.Calories
		}
	}

	next := prev
	stamp := now.UnixMilli()
	for id := ID(0); id < NumIDs; id++ {
		if next[id].IsUnlocked || !rules[id](f) {
			continue
		}
		at := stamp
		next[id] = State{IsUnlocked: true, UnlockedAt: &at}
	}
	return next
}

// NewlyUnlocked lists, in catalogue order, the achievements unlocked in next
// but not in prev. Callers celebrating a single unlock use the first element.
func NewlyUnlocked(prev, next Snapshot) []ID {
	var ids []ID
	for id := ID(0); id < NumIDs; id++ {
		if next[id].IsUnlocked && !prev[id].IsUnlocked {
			ids = append(ids, id)
		}
	}
	return ids
}
