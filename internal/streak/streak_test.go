package streak

import (
	"fmt"
	"testing"
	"time"

	"nutrilog/internal/calendar"
	"nutrilog/internal/model"
)

var today = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

// mealsOn builds one meal per offset, where offset is days before today.
func mealsOn(offsets ...int) []model.MealRecord {
	meals := make([]model.MealRecord, 0, len(offsets))
	for i, off := range offsets {
		meals = append(meals, model.MealRecord{
			ID:       fmt.Sprintf("m%d", i),
			Calories: 500,
			Date:     calendar.DateString(calendar.AddDays(today, -off)),
		})
	}
	return meals
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		want    Result
	}{
		{name: "no meals", offsets: nil, want: Result{0, 0}},
		{name: "today only", offsets: []int{0}, want: Result{1, 1}},
		{name: "three consecutive days ending today", offsets: []int{0, 1, 2}, want: Result{3, 3}},
		{name: "three consecutive days ending yesterday", offsets: []int{1, 2, 3}, want: Result{3, 3}},
		{name: "duplicates on the same day count once", offsets: []int{0, 0, 0, 1}, want: Result{2, 2}},
		{name: "gap truncates current", offsets: []int{0, 1, 4, 5, 6, 7}, want: Result{2, 4}},
		{name: "inactive when last log two days ago", offsets: []int{2, 3, 4}, want: Result{0, 3}},
		{name: "longest found in the middle", offsets: []int{0, 10, 11, 12, 13, 14, 20, 21}, want: Result{1, 5}},
		{name: "unsorted input", offsets: []int{2, 0, 1}, want: Result{3, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(mealsOn(tt.offsets...), today)
			if got != tt.want {
				t.Errorf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCompute_EndToEndScenario(t *testing.T) {
	meals := []model.MealRecord{
		{ID: "1", Date: "2024-03-10", Calories: 700},
		{ID: "2", Date: "2024-03-11", Calories: 600},
		{ID: "3", Date: "2024-03-15", Calories: 1200},
	}
	got := Compute(meals, today)
	if got.Current != 1 || got.Longest != 2 {
		t.Errorf("Compute() = %+v, want current 1, longest 2", got)
	}
}

func TestCompute_AcrossMonthAndLeapDay(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	got := FromDates([]string{"2024-03-01", "2024-02-29", "2024-02-28"}, now)
	if got.Current != 3 {
		t.Errorf("Current = %d, want 3", got.Current)
	}
}

func TestCompute_UsesClockLocationForToday(t *testing.T) {
	// 01:00 UTC on the 16th is still the 15th at UTC-5.
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2024, 3, 16, 1, 0, 0, 0, time.UTC).In(loc)
	got := FromDates([]string{"2024-03-14"}, now)
	if got.Current != 1 {
		t.Errorf("Current = %d, want 1 (2024-03-14 is yesterday locally)", got.Current)
	}
}

func TestFromDates_SkipsMalformed(t *testing.T) {
	got := FromDates([]string{"not-a-date", "2024-03-15"}, today)
	if got != (Result{1, 1}) {
		t.Errorf("FromDates() = %+v, want {1 1}", got)
	}
}

func TestCompute_LongestNeverBelowCurrent(t *testing.T) {
	// Deterministic pseudo-random logs over 60 days.
	seed := uint32(7)
	for trial := 0; trial < 200; trial++ {
		var offsets []int
		for d := 0; d < 60; d++ {
			seed = seed*1664525 + 1013904223
			if seed>>28 < 9 {
				offsets = append(offsets, d)
			}
		}
		got := Compute(mealsOn(offsets...), today)
		if got.Longest < got.Current {
			t.Fatalf("trial %d: Longest %d < Current %d", trial, got.Longest, got.Current)
		}
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		streak int
		want   string
	}{
		{0, "Start your streak today!"},
		{1, "Great start! Keep it going!"},
		{3, "3 days strong! 🔥"},
		{7, "Amazing 7 day streak! ⚡"},
		{30, "Incredible 30 day streak! 👑"},
	}
	for _, tt := range tests {
		if got := Message(tt.streak); got != tt.want {
			t.Errorf("Message(%d) = %q, want %q", tt.streak, got, tt.want)
		}
	}
}
