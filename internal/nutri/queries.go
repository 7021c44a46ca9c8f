package nutri

import (
	"cmp"
	"slices"

	"nutrilog/internal/achievement"
	"nutrilog/internal/calendar"
	"nutrilog/internal/goals"
	"nutrilog/internal/model"
	"nutrilog/internal/progress"
	"nutrilog/internal/streak"
)

// State returns a deep copy of the current state.
func (t *Tracker) State() *AppState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Meals returns the meal log, newest first.
func (t *Tracker) Meals() []model.MealRecord {
	t.mu.Lock()
	meals := slices.Clone(t.state.Meals)
	t.mu.Unlock()

	slices.SortStableFunc(meals, func(a, b model.MealRecord) int {
		if c := cmp.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
	return meals
}

// MealsOn returns the meals logged on date (YYYY-MM-DD) in the order they
// were eaten.
func (t *Tracker) MealsOn(date string) []model.MealRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []model.MealRecord
	for _, m := range t.state.Meals {
		if m.Date == date {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b model.MealRecord) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
	return out
}

// Progress builds the progress report for the given range.
func (t *Tracker) Progress(r progress.Granularity) progress.Report {
	return progress.BuildReport(t.snapshotMeals(), r, t.clock.Now())
}

// Aggregate returns the trailing n periods of granularity g.
func (t *Tracker) Aggregate(g progress.Granularity, n int) []progress.Period {
	return progress.Aggregate(t.snapshotMeals(), g, n, t.clock.Now())
}

// Streak computes the streak from the meal log as of now.
func (t *Tracker) Streak() streak.Result {
	return streak.Compute(t.snapshotMeals(), t.clock.Now())
}

// AchievementView pairs a catalogue entry with its unlock state.
type AchievementView struct {
	achievement.Definition
	achievement.State
}

// Achievements lists the catalogue with unlock state, in catalogue order.
func (t *Tracker) Achievements() []AchievementView {
	t.mu.Lock()
	snap := t.state.Achievements
	t.mu.Unlock()

	defs := achievement.Catalogue()
	out := make([]AchievementView, len(defs))
	for i, d := range defs {
		out[i] = AchievementView{Definition: d, State: snap[d.ID]}
	}
	return out
}

// TodaySummary is the dashboard view for the current day.
type TodaySummary struct {
	Date          string
	Calories      goals.CalorieProgress
	WaterMl       float64
	WaterGoalMl   float64
	Streak        int
	StreakMessage string
}

// Today summarizes intake against the profile's targets for the current day.
func (t *Tracker) Today() TodaySummary {
	t.mu.Lock()
	s := t.state.Clone()
	t.mu.Unlock()

	now := t.clock.Now()
	r := streak.Compute(s.Meals, now)
	return TodaySummary{
		Date:          calendar.DateString(now),
		Calories:      goals.Today(s.Meals, goals.CalorieGoal(s.Profile), now),
		WaterMl:       goals.WaterToday(s.WaterIntakes, now),
		WaterGoalMl:   goals.WaterGoal(s.Profile),
		Streak:        r.Current,
		StreakMessage: streak.Message(r.Current),
	}
}

func (t *Tracker) snapshotMeals() []model.MealRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.state.Meals)
}
