package model

// MealType classifies a meal within the day.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// Valid reports whether t is one of the known meal types.
func (t MealType) Valid() bool {
	switch t {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

// MealRecord is a single logged meal. Records are immutable; an edit replaces
// the record with the same ID.
type MealRecord struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Calories  float64  `json:"calories"`
	Protein   float64  `json:"protein"`
	Carbs     float64  `json:"carbs"`
	Fats      float64  `json:"fats"`
	MealType  MealType `json:"mealType"`
	Date      string   `json:"date"`      // YYYY-MM-DD, derived from Timestamp; the bucketing key
	Timestamp int64    `json:"timestamp"` // epoch milliseconds, same-day ordering only
	PhotoRef  string   `json:"photoRef,omitempty"`
}

// WaterEntry is a single water intake.
type WaterEntry struct {
	ID        string  `json:"id"`
	AmountMl  float64 `json:"amount"`
	Date      string  `json:"date"`
	Timestamp int64   `json:"timestamp"`
}

// WeightEntry is a single body weight measurement.
type WeightEntry struct {
	ID        string  `json:"id"`
	WeightKg  float64 `json:"weight"`
	Date      string  `json:"date"`
	Timestamp int64   `json:"timestamp"`
}

// Gender is used for the BMR formula only.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ActivityLevel selects the TDEE multiplier applied to BMR.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly_active"
	ModeratelyActive ActivityLevel = "moderately_active"
	VeryActive       ActivityLevel = "very_active"
	ExtraActive      ActivityLevel = "extra_active"
)

// UserProfile holds personal data and nutrition targets.
// CurrentStreak and LongestStreak are memos of the streak calculation and are
// rewritten after every change to the meal log.
type UserProfile struct {
	Name           string         `json:"name"`
	Age            *int           `json:"age,omitempty"`
	WeightKg       *float64       `json:"weight,omitempty"`
	HeightCm       *float64       `json:"height,omitempty"`
	Gender         *Gender        `json:"gender,omitempty"`
	ActivityLevel  *ActivityLevel `json:"activityLevel,omitempty"`
	TargetCalories *float64       `json:"targetCalories,omitempty"`
	TargetProtein  *float64       `json:"targetProtein,omitempty"`
	TargetCarbs    *float64       `json:"targetCarbs,omitempty"`
	TargetFats     *float64       `json:"targetFats,omitempty"`
	TargetWaterMl  *float64       `json:"targetWater,omitempty"`
	CurrentStreak  int            `json:"currentStreak"`
	LongestStreak  int            `json:"longestStreak"`
}

// DefaultProfile returns the profile of a fresh install.
func DefaultProfile() UserProfile {
	return UserProfile{Name: "User"}
}

// Theme is the persisted UI colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)
