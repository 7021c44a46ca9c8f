package progress

import (
	"time"

	"nutrilog/internal/model"
)

// Window sizes used by the progress screen.
const (
	DailyWindow         = 30
	ExtendedDailyWindow = 90
	WeeklyWindow        = 12
	MonthlyWindow       = 12
)

// Report is everything the progress view shows for one selected range.
type Report struct {
	Range   Granularity     `json:"range"`
	Daily   []DailyBucket   `json:"daily"`
	Weekly  []WeeklyBucket  `json:"weekly"`
	Monthly []MonthlyBucket `json:"monthly"`
	Summary Summary         `json:"summary"`
}

// BuildReport computes all three series and summarizes the one selected by r.
// The daily series covers 30 days when r is Daily and 90 days otherwise; the
// daily summary always uses the trailing 30 days.
func BuildReport(meals []model.MealRecord, r Granularity, now time.Time) Report {
	days := ExtendedDailyWindow
	if r == Daily {
		days = DailyWindow
	}

	rep := Report{
		Range:   r,
		Daily:   ByDay(meals, days, now),
		Weekly:  ByWeek(meals, WeeklyWindow, now),
		Monthly: ByMonth(meals, MonthlyWindow, now),
	}

	switch r {
	case Weekly:
		rep.Summary = Summarize(Periods(rep.Weekly))
	case Monthly:
		rep.Summary = Summarize(Periods(rep.Monthly))
	default:
		rep.Summary = Summarize(Periods(trailing(rep.Daily, DailyWindow)))
	}
	return rep
}

func trailing[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
