package progress

import "math"

// Extreme is the best or worst period of a series.
type Extreme struct {
	Label string  `json:"date"`
	Value float64 `json:"value"`
}

// Summary reduces a bucket series.
type Summary struct {
	Total   float64  `json:"total"`
	Average float64  `json:"average"`
	Best    *Extreme `json:"best"`
	Worst   *Extreme `json:"worst"`
}

// Summarize computes the total and rounded average over every period, empty
// ones included, and picks best and worst among periods with calories > 0.
// Ties go to the earliest period. Best and Worst are nil when no period has
// any calories.
func Summarize(periods []Period) Summary {
	if len(periods) == 0 {
		return Summary{}
	}

	var s Summary
	var best, worst Period
	for _, p := range periods {
		c := p.TotalCalories()
		s.Total += c
		if c <= 0 {
			continue
		}
		if best == nil || c > best.TotalCalories() {
			best = p
		}
		if worst == nil || c < worst.TotalCalories() {
			worst = p
		}
	}
	s.Average = math.Round(s.Total / float64(len(periods)))

	if best != nil {
		s.Best = &Extreme{Label: best.Label(), Value: best.TotalCalories()}
		s.Worst = &Extreme{Label: worst.Label(), Value: worst.TotalCalories()}
	}
	return s
}
