// Package goals resolves the user's daily targets and estimates a calorie
// goal from body measurements.
package goals

import (
	"fmt"
	"math"

	"nutrilog/internal/model"
)

var activityMultipliers = map[model.ActivityLevel]float64{
	model.Sedentary:        1.2,
	model.LightlyActive:    1.375,
	model.ModeratelyActive: 1.55,
	model.VeryActive:       1.725,
	model.ExtraActive:      1.9,
}

var activityLabels = map[model.ActivityLevel]string{
	model.Sedentary:        "Sedentary (little or no exercise)",
	model.LightlyActive:    "Lightly Active (1-3 days/week)",
	model.ModeratelyActive: "Moderately Active (3-5 days/week)",
	model.VeryActive:       "Very Active (6-7 days/week)",
	model.ExtraActive:      "Extra Active (intense exercise daily)",
}

// ActivityLevels lists the levels from least to most active.
var ActivityLevels = []model.ActivityLevel{
	model.Sedentary,
	model.LightlyActive,
	model.ModeratelyActive,
	model.VeryActive,
	model.ExtraActive,
}

// ActivityLabel returns the human-readable description of level.
func ActivityLabel(level model.ActivityLevel) string {
	return activityLabels[level]
}

// ParseActivityLevel validates a user-supplied activity level.
func ParseActivityLevel(s string) (model.ActivityLevel, error) {
	level := model.ActivityLevel(s)
	if _, ok := activityMultipliers[level]; !ok {
		return "", fmt.Errorf("unknown activity level %q", s)
	}
	return level, nil
}

// BMR is the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(weightKg, heightCm float64, age int, gender model.Gender) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == model.Male {
		return base + 5
	}
	return base - 161
}

// DailyCalories scales bmr by the activity multiplier and rounds to whole kcal.
func DailyCalories(bmr float64, level model.ActivityLevel) (float64, error) {
	mult, ok := activityMultipliers[level]
	if !ok {
		return 0, fmt.Errorf("unknown activity level %q", level)
	}
	return math.Round(bmr * mult), nil
}

// DailyGoal estimates total daily energy expenditure.
func DailyGoal(weightKg, heightCm float64, age int, gender model.Gender, level model.ActivityLevel) (float64, error) {
	return DailyCalories(BMR(weightKg, heightCm, age, gender), level)
}

// SuggestedGoal computes DailyGoal from a profile. It fails when any of the
// required measurements is missing.
func SuggestedGoal(p model.UserProfile) (float64, error) {
	if p.WeightKg == nil || p.HeightCm == nil || p.Age == nil || p.Gender == nil || p.ActivityLevel == nil {
		return 0, fmt.Errorf("profile needs weight, height, age, gender and activity level")
	}
	return DailyGoal(*p.WeightKg, *p.HeightCm, *p.Age, *p.Gender, *p.ActivityLevel)
}
