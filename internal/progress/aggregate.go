// Package progress buckets the meal log into trailing calendar windows and
// reduces them to summary statistics. Buckets are recomputed from the full
// log on every call; nothing here is persisted.
package progress

import (
	"fmt"
	"math"
	"time"

	"nutrilog/internal/calendar"
	"nutrilog/internal/model"
)

// Granularity selects the bucket size of an aggregation.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// ParseGranularity converts a user-supplied string into a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case Daily, Weekly, Monthly:
		return g, nil
	default:
		return "", fmt.Errorf("unknown granularity %q (want daily, weekly or monthly)", s)
	}
}

// Totals are the exact sums of a bucket's meals.
type Totals struct {
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fats      float64 `json:"fats"`
	MealCount int     `json:"mealCount"`
}

func (t *Totals) add(m model.MealRecord) {
	t.Calories += m.Calories
	t.Protein += m.Protein
	t.Carbs += m.Carbs
	t.Fats += m.Fats
	t.MealCount++
}

// Period is a bucket as seen by Summarize: a label and a calorie total.
type Period interface {
	Label() string
	TotalCalories() float64
}

// DailyBucket aggregates one calendar day.
type DailyBucket struct {
	Date string `json:"date"`
	Totals
}

func (b DailyBucket) Label() string          { return b.Date }
func (b DailyBucket) TotalCalories() float64 { return b.Calories }

// WeeklyBucket aggregates one Sunday-to-Saturday week.
type WeeklyBucket struct {
	WeekStart string `json:"weekStart"`
	WeekEnd   string `json:"weekEnd"`
	Totals
	AverageDaily float64 `json:"averageDaily"`
}

func (b WeeklyBucket) Label() string          { return b.WeekStart }
func (b WeeklyBucket) TotalCalories() float64 { return b.Calories }

// MonthlyBucket aggregates one calendar month.
type MonthlyBucket struct {
	Month string `json:"month"` // YYYY-MM
	Year  int    `json:"year"`
	Totals
	AverageDaily float64 `json:"averageDaily"`
}

func (b MonthlyBucket) Label() string          { return b.Month }
func (b MonthlyBucket) TotalCalories() float64 { return b.Calories }

// ByDay returns exactly days buckets, oldest first, the last one being the
// calendar day of now. Days without meals are zero-valued.
func ByDay(meals []model.MealRecord, days int, now time.Time) []DailyBucket {
	if days <= 0 {
		return []DailyBucket{}
	}

	buckets := make([]DailyBucket, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := calendar.DateString(calendar.AddDays(now, i-(days-1)))
		buckets[i].Date = date
		index[date] = i
	}

	for _, m := range meals {
		if i, ok := index[m.Date]; ok {
			buckets[i].add(m)
		}
	}
	return buckets
}

// ByWeek returns exactly weeks buckets keyed by each week's Sunday, oldest
// first, the last one being the week containing now.
func ByWeek(meals []model.MealRecord, weeks int, now time.Time) []WeeklyBucket {
	if weeks <= 0 {
		return []WeeklyBucket{}
	}

	buckets := make([]WeeklyBucket, weeks)
	index := make(map[string]int, weeks)
	for i := 0; i < weeks; i++ {
		d := calendar.AddDays(now, -7*(weeks-1-i))
		start := calendar.WeekStart(d)
		buckets[i].WeekStart = calendar.DateString(start)
		buckets[i].WeekEnd = calendar.DateString(calendar.WeekEnd(start))
		index[buckets[i].WeekStart] = i
	}

	for _, m := range meals {
		d, err := calendar.ParseDate(m.Date, time.UTC)
		if err != nil {
			continue
		}
		if i, ok := index[calendar.DateString(calendar.WeekStart(d))]; ok {
			buckets[i].add(m)
		}
	}

	for i := range buckets {
		buckets[i].AverageDaily = math.Round(buckets[i].Calories / 7)
	}
	return buckets
}

// ByMonth returns exactly months buckets keyed by "YYYY-MM", oldest first,
// the last one being the month containing now. AverageDaily divides by the
// true length of the month.
func ByMonth(meals []model.MealRecord, months int, now time.Time) []MonthlyBucket {
	if months <= 0 {
		return []MonthlyBucket{}
	}

	first := calendar.MonthStart(now)
	buckets := make([]MonthlyBucket, months)
	monthOf := make([]time.Month, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		// first is always the 1st, so AddDate never overflows into a later month.
		m := first.AddDate(0, -(months - 1 - i), 0)
		buckets[i].Month = calendar.MonthKey(m)
		buckets[i].Year = m.Year()
		monthOf[i] = m.Month()
		index[buckets[i].Month] = i
	}

	for _, m := range meals {
		d, err := calendar.ParseDate(m.Date, time.UTC)
		if err != nil {
			continue
		}
		if i, ok := index[calendar.MonthKey(d)]; ok {
			buckets[i].add(m)
		}
	}

	for i := range buckets {
		b := &buckets[i]
		b.AverageDaily = math.Round(b.Calories / float64(calendar.DaysInMonth(b.Year, int(monthOf[i]))))
	}
	return buckets
}

// Aggregate buckets meals at the given granularity and returns the buckets as
// Periods, ready for Summarize. An unknown granularity yields no buckets.
func Aggregate(meals []model.MealRecord, g Granularity, window int, now time.Time) []Period {
	switch g {
	case Daily:
		return Periods(ByDay(meals, window, now))
	case Weekly:
		return Periods(ByWeek(meals, window, now))
	case Monthly:
		return Periods(ByMonth(meals, window, now))
	default:
		return []Period{}
	}
}

// Periods converts a bucket slice into a []Period.
func Periods[T Period](buckets []T) []Period {
	out := make([]Period, len(buckets))
	for i, b := range buckets {
		out[i] = b
	}
	return out
}
