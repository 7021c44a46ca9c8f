package goals

import (
	"math"
	"time"

	"nutrilog/internal/calendar"
	"nutrilog/internal/model"
)

// Defaults applied when the profile has no explicit target.
const (
	DefaultCalorieGoal = 2000
	DefaultWaterGoalMl = 2000
)

// CalorieGoal returns the profile's calorie target, or the default when the
// target is unset or zero.
func CalorieGoal(p model.UserProfile) float64 {
	if p.TargetCalories == nil || *p.TargetCalories == 0 {
		return DefaultCalorieGoal
	}
	return *p.TargetCalories
}

// WaterGoal returns the profile's water target in ml, or the default.
func WaterGoal(p model.UserProfile) float64 {
	if p.TargetWaterMl == nil || *p.TargetWaterMl == 0 {
		return DefaultWaterGoalMl
	}
	return *p.TargetWaterMl
}

// CalorieProgress is today's intake against the goal.
type CalorieProgress struct {
	Goal       float64 `json:"goal"`
	Consumed   float64 `json:"consumed"`
	Remaining  float64 `json:"remaining"`
	Progress   float64 `json:"progress"` // percent, capped at 100
	MealsCount int     `json:"mealsCount"`
}

// Today summarises the meals logged on now's calendar day.
func Today(meals []model.MealRecord, goal float64, now time.Time) CalorieProgress {
	today := calendar.DateString(now)
	cp := CalorieProgress{Goal: goal}
	for _, m := range meals {
		if m.Date != today {
			continue
		}
		cp.Consumed += m.Calories
		cp.MealsCount++
	}
	cp.Remaining = math.Max(0, goal-cp.Consumed)
	if goal > 0 {
		cp.Progress = math.Min(100, cp.Consumed/goal*100)
	}
	return cp
}

// WaterToday sums today's water intake in ml.
func WaterToday(water []model.WaterEntry, now time.Time) float64 {
	today := calendar.DateString(now)
	var total float64
	for _, w := range water {
		if w.Date == today {
			total += w.AmountMl
		}
	}
	return total
}
