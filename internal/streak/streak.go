// Package streak computes consecutive-day logging streaks from the meal log.
package streak

import (
	"fmt"
	"sort"
	"time"

	"nutrilog/internal/calendar"
	"nutrilog/internal/model"
)

// Result holds the current and longest streaks, in days.
// Longest is always >= Current.
type Result struct {
	Current int `json:"currentStreak"`
	Longest int `json:"longestStreak"`
}

// Compute derives the streaks from the distinct meal dates.
// The current streak only counts when the most recent logged day is today or
// yesterday relative to now; it then runs back to the first gap. The longest
// streak is the longest run of consecutive days anywhere in the log.
func Compute(meals []model.MealRecord, now time.Time) Result {
	dates := make([]string, 0, len(meals))
	for _, m := range meals {
		dates = append(dates, m.Date)
	}
	return FromDates(dates, now)
}

// FromDates is Compute over raw "YYYY-MM-DD" strings. Duplicates are allowed
// and malformed strings are skipped.
func FromDates(dates []string, now time.Time) Result {
	days := distinctDesc(dates)
	if len(days) == 0 {
		return Result{}
	}

	var r Result

	today := calendar.DateString(now)
	yesterday := calendar.DateString(calendar.AddDays(now, -1))
	latest := calendar.DateString(days[0])
	if latest == today || latest == yesterday {
		r.Current = 1
		for i := 1; i < len(days); i++ {
			if calendar.DaysBetween(days[i], days[i-1]) != 1 {
				break
			}
			r.Current++
		}
	}

	run := 1
	r.Longest = 1
	for i := 1; i < len(days); i++ {
		if calendar.DaysBetween(days[i], days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > r.Longest {
			r.Longest = run
		}
	}

	return r
}

// distinctDesc parses, de-duplicates and sorts dates most recent first.
func distinctDesc(dates []string) []time.Time {
	seen := make(map[string]struct{}, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		d, err := calendar.ParseDate(s, time.UTC)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out
}

// Message returns the encouragement shown next to a streak.
func Message(streak int) string {
	switch {
	case streak <= 0:
		return "Start your streak today!"
	case streak == 1:
		return "Great start! Keep it going!"
	case streak < 7:
		return fmt.Sprintf("%d days strong! 🔥", streak)
	case streak < 30:
		return fmt.Sprintf("Amazing %d day streak! ⚡", streak)
	default:
		return fmt.Sprintf("Incredible %d day streak! 👑", streak)
	}
}
