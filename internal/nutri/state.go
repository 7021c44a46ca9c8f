package nutri

import (
	"slices"

	"nutrilog/internal/achievement"
	"nutrilog/internal/model"
)

// StateVersion is written into every saved blob.
const StateVersion = 1

// AppState is the complete persisted application state. Only the raw event
// logs, the profile and the achievement snapshot are stored; buckets and
// summaries are always derived.
type AppState struct {
	Version       int                  `json:"version"`
	Profile       model.UserProfile    `json:"profile"`
	Meals         []model.MealRecord   `json:"meals"`
	WaterIntakes  []model.WaterEntry   `json:"waterIntakes"`
	WeightEntries []model.WeightEntry  `json:"weightEntries"`
	Achievements  achievement.Snapshot `json:"achievements"`
	Theme         model.Theme          `json:"theme"`
}

// DefaultState is the state of a fresh install.
func DefaultState() *AppState {
	return &AppState{
		Version:       StateVersion,
		Profile:       model.DefaultProfile(),
		Meals:         []model.MealRecord{},
		WaterIntakes:  []model.WaterEntry{},
		WeightEntries: []model.WeightEntry{},
		Theme:         model.ThemeLight,
	}
}

// Clone returns a deep copy of s.
func (s *AppState) Clone() *AppState {
	c := *s
	c.Profile = cloneProfile(s.Profile)
	c.Meals = slices.Clone(s.Meals)
	c.WaterIntakes = slices.Clone(s.WaterIntakes)
	c.WeightEntries = slices.Clone(s.WeightEntries)
	return &c
}

// normalize fills fields an older or hand-written blob may lack.
func (s *AppState) normalize() {
	if s.Meals == nil {
		s.Meals = []model.MealRecord{}
	}
	if s.WaterIntakes == nil {
		s.WaterIntakes = []model.WaterEntry{}
	}
	if s.WeightEntries == nil {
		s.WeightEntries = []model.WeightEntry{}
	}
	if s.Theme != model.ThemeDark {
		s.Theme = model.ThemeLight
	}
	if s.Profile.Name == "" {
		s.Profile.Name = model.DefaultProfile().Name
	}
	s.Version = StateVersion
}

func cloneProfile(p model.UserProfile) model.UserProfile {
	p.Age = clonePtr(p.Age)
	p.WeightKg = clonePtr(p.WeightKg)
	p.HeightCm = clonePtr(p.HeightCm)
	p.Gender = clonePtr(p.Gender)
	p.ActivityLevel = clonePtr(p.ActivityLevel)
	p.TargetCalories = clonePtr(p.TargetCalories)
	p.TargetProtein = clonePtr(p.TargetProtein)
	p.TargetCarbs = clonePtr(p.TargetCarbs)
	p.TargetFats = clonePtr(p.TargetFats)
	p.TargetWaterMl = clonePtr(p.TargetWaterMl)
	return p
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
