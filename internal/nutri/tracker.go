package nutri

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"nutrilog/internal/achievement"
	"nutrilog/internal/calendar"
	"nutrilog/internal/goals"
	"nutrilog/internal/model"
	"nutrilog/internal/streak"
)

// Tracker owns the application state and is the only writer to it.
// All mutations are serialized and persisted before they become visible to
// the next mutation; a failed save leaves the previous state in place.
type Tracker struct {
	mu     sync.Mutex
	state  *AppState
	store  Store
	logger Logger
	clock  Clock
	idgen  IDGenerator

	// profile of a fresh install or a reset
	defaultProfile model.UserProfile
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithDefaultProfile sets the profile used on first run and by ResetProfile.
func WithDefaultProfile(p model.UserProfile) Option {
	return func(t *Tracker) {
		t.defaultProfile = cloneProfile(p)
	}
}

// NewTracker creates a Tracker holding the default state. Call Load to read
// the persisted state.
func NewTracker(store Store, logger Logger, clock Clock, idgen IDGenerator, opts ...Option) *Tracker {
	t := &Tracker{
		store:          store,
		logger:         logger,
		clock:          clock,
		idgen:          idgen,
		defaultProfile: model.DefaultProfile(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.state = t.freshState()
	return t
}

func (t *Tracker) freshState() *AppState {
	s := DefaultState()
	s.Profile = cloneProfile(t.defaultProfile)
	return s
}

// Load replaces the in-memory state with the persisted one. When nothing has
// been saved yet the default state is written so later loads find it.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, err := t.store.LoadState(ctx)
	if errors.Is(err, ErrNoState) {
		state = t.freshState()
		if err := t.store.SaveState(ctx, state); err != nil {
			return fmt.Errorf("saving default state: %w", err)
		}
		t.logger.Info("initialized default state")
	} else if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	state.normalize()
	t.state = state
	t.logger.Debug("state loaded", "meals", len(state.Meals), "water", len(state.WaterIntakes), "weights", len(state.WeightEntries))
	return nil
}

// NewMeal is the user-supplied part of a meal record.
// A zero At means "now".
type NewMeal struct {
	Name     string
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
	MealType model.MealType
	PhotoRef string
	At       time.Time
}

func (m NewMeal) validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: meal name is required", ErrInvalidInput)
	}
	if m.Calories < 0 || m.Protein < 0 || m.Carbs < 0 || m.Fats < 0 {
		return fmt.Errorf("%w: calories and macros must not be negative", ErrInvalidInput)
	}
	if !m.MealType.Valid() {
		return fmt.Errorf("%w: unknown meal type %q", ErrInvalidInput, m.MealType)
	}
	return nil
}

// AddMeal appends a meal to the log.
func (t *Tracker) AddMeal(ctx context.Context, m NewMeal) (model.MealRecord, MutationResult, error) {
	if err := m.validate(); err != nil {
		return model.MealRecord{}, MutationResult{}, err
	}

	at := t.at(m.At)
	rec := model.MealRecord{
		ID:        t.idgen.New(),
		Name:      strings.TrimSpace(m.Name),
		Calories:  m.Calories,
		Protein:   m.Protein,
		Carbs:     m.Carbs,
		Fats:      m.Fats,
		MealType:  m.MealType,
		Date:      calendar.DateString(at),
		Timestamp: at.UnixMilli(),
		PhotoRef:  m.PhotoRef,
	}

	res, err := t.mutate(ctx, "add meal", func(s *AppState) error {
		s.Meals = append(s.Meals, rec)
		t.refreshFromMeals(s)
		return nil
	})
	if err != nil {
		return model.MealRecord{}, MutationResult{}, err
	}
	t.logger.Info("meal added", "id", rec.ID, "date", rec.Date, "calories", rec.Calories)
	return rec, res, nil
}

// UpdateMeal replaces the meal with the given ID. The ID is kept; a zero
// m.At keeps the original timestamp and date.
func (t *Tracker) UpdateMeal(ctx context.Context, id string, m NewMeal) (model.MealRecord, MutationResult, error) {
	if err := m.validate(); err != nil {
		return model.MealRecord{}, MutationResult{}, err
	}

	var updated model.MealRecord
	res, err := t.mutate(ctx, "update meal", func(s *AppState) error {
		i := slices.IndexFunc(s.Meals, func(r model.MealRecord) bool { return r.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrMealNotFound, id)
		}
		rec := s.Meals[i]
		rec.Name = strings.TrimSpace(m.Name)
		rec.Calories = m.Calories
		rec.Protein = m.Protein
		rec.Carbs = m.Carbs
		rec.Fats = m.Fats
		rec.MealType = m.MealType
		rec.PhotoRef = m.PhotoRef
		if !m.At.IsZero() {
			at := t.at(m.At)
			rec.Date = calendar.DateString(at)
			rec.Timestamp = at.UnixMilli()
		}
		s.Meals[i] = rec
		updated = rec
		t.refreshFromMeals(s)
		return nil
	})
	if err != nil {
		return model.MealRecord{}, MutationResult{}, err
	}
	t.logger.Info("meal updated", "id", id, "date", updated.Date)
	return updated, res, nil
}

// DeleteMeal removes the meal with the given ID. Achievements already
// unlocked stay unlocked.
func (t *Tracker) DeleteMeal(ctx context.Context, id string) (MutationResult, error) {
	res, err := t.mutate(ctx, "delete meal", func(s *AppState) error {
		i := slices.IndexFunc(s.Meals, func(r model.MealRecord) bool { return r.ID == id })
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrMealNotFound, id)
		}
		s.Meals = slices.Delete(s.Meals, i, i+1)
		t.refreshFromMeals(s)
		return nil
	})
	if err != nil {
		return MutationResult{}, err
	}
	t.logger.Info("meal deleted", "id", id)
	return res, nil
}

// AddWater logs a water intake for today.
func (t *Tracker) AddWater(ctx context.Context, amountMl float64) (model.WaterEntry, MutationResult, error) {
	if amountMl <= 0 {
		return model.WaterEntry{}, MutationResult{}, fmt.Errorf("%w: water amount must be positive", ErrInvalidInput)
	}

	now := t.clock.Now()
	entry := model.WaterEntry{
		ID:        t.idgen.New(),
		AmountMl:  amountMl,
		Date:      calendar.DateString(now),
		Timestamp: now.UnixMilli(),
	}
	res, err := t.mutate(ctx, "add water", func(s *AppState) error {
		s.WaterIntakes = append(s.WaterIntakes, entry)
		t.refreshAchievements(s, s.Profile.CurrentStreak)
		return nil
	})
	if err != nil {
		return model.WaterEntry{}, MutationResult{}, err
	}
	t.logger.Info("water added", "id", entry.ID, "amount_ml", amountMl)
	return entry, res, nil
}

// AddWeight logs a body weight measurement for today.
func (t *Tracker) AddWeight(ctx context.Context, weightKg float64) (model.WeightEntry, MutationResult, error) {
	if weightKg <= 0 {
		return model.WeightEntry{}, MutationResult{}, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}

	now := t.clock.Now()
	entry := model.WeightEntry{
		ID:        t.idgen.New(),
		WeightKg:  weightKg,
		Date:      calendar.DateString(now),
		Timestamp: now.UnixMilli(),
	}
	res, err := t.mutate(ctx, "add weight", func(s *AppState) error {
		s.WeightEntries = append(s.WeightEntries, entry)
		t.refreshAchievements(s, s.Profile.CurrentStreak)
		return nil
	})
	if err != nil {
		return model.WeightEntry{}, MutationResult{}, err
	}
	t.logger.Info("weight added", "id", entry.ID, "weight_kg", weightKg)
	return entry, res, nil
}

// SetProfile replaces the user's profile. The streak memos are owned by the
// tracker and are carried over from the current profile.
func (t *Tracker) SetProfile(ctx context.Context, p model.UserProfile) error {
	if err := validateProfile(p); err != nil {
		return err
	}

	p = cloneProfile(p)
	_, err := t.mutate(ctx, "set profile", func(s *AppState) error {
		p.CurrentStreak = s.Profile.CurrentStreak
		p.LongestStreak = s.Profile.LongestStreak
		s.Profile = p
		return nil
	})
	if err != nil {
		return err
	}
	t.logger.Info("profile updated", "name", p.Name)
	return nil
}

// validateProfile requires a name and, for every optional field that is set,
// a positive value or a known enum member.
func validateProfile(p model.UserProfile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: profile name is required", ErrInvalidInput)
	}
	if p.Age != nil && *p.Age <= 0 {
		return fmt.Errorf("%w: age must be positive", ErrInvalidInput)
	}
	positive := []struct {
		field string
		v     *float64
	}{
		{"weight", p.WeightKg},
		{"height", p.HeightCm},
		{"calorie target", p.TargetCalories},
		{"protein target", p.TargetProtein},
		{"carbs target", p.TargetCarbs},
		{"fats target", p.TargetFats},
		{"water target", p.TargetWaterMl},
	}
	for _, f := range positive {
		if f.v != nil && *f.v <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, f.field)
		}
	}
	if p.Gender != nil && *p.Gender != model.Male && *p.Gender != model.Female {
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, *p.Gender)
	}
	if p.ActivityLevel != nil {
		if _, err := goals.ParseActivityLevel(string(*p.ActivityLevel)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (t *Tracker) ToggleTheme(ctx context.Context) (model.Theme, error) {
	var theme model.Theme
	_, err := t.mutate(ctx, "toggle theme", func(s *AppState) error {
		if s.Theme == model.ThemeDark {
			s.Theme = model.ThemeLight
		} else {
			s.Theme = model.ThemeDark
		}
		theme = s.Theme
		return nil
	})
	if err != nil {
		return "", err
	}
	return theme, nil
}

// ResetProfile restores the default profile and locks every achievement.
// The streak memos are recomputed from the remaining meals.
// When clearMeals is set the meal log is emptied as well. Water and weight
// logs are kept.
func (t *Tracker) ResetProfile(ctx context.Context, clearMeals bool) error {
	_, err := t.mutate(ctx, "reset profile", func(s *AppState) error {
		s.Profile = cloneProfile(t.defaultProfile)
		s.Achievements = achievement.Snapshot{}
		if clearMeals {
			s.Meals = []model.MealRecord{}
		}
		r := streak.Compute(s.Meals, t.clock.Now())
		s.Profile.CurrentStreak = r.Current
		s.Profile.LongestStreak = r.Longest
		return nil
	})
	if err != nil {
		return err
	}
	t.logger.Info("profile reset", "clear_meals", clearMeals)
	return nil
}

// refreshFromMeals recomputes the streak memos and achievements after a
// change to the meal log. The longest streak memo never decreases.
func (t *Tracker) refreshFromMeals(s *AppState) {
	r := streak.Compute(s.Meals, t.clock.Now())
	s.Profile.CurrentStreak = r.Current
	s.Profile.LongestStreak = max(r.Longest, s.Profile.LongestStreak)
	t.refreshAchievements(s, r.Current)
}

func (t *Tracker) refreshAchievements(s *AppState, currentStreak int) {
	in := achievement.Input{
		Meals:         s.Meals,
		Water:         s.WaterIntakes,
		Weights:       s.WeightEntries,
		CurrentStreak: currentStreak,
		WaterTargetMl: goals.WaterGoal(s.Profile),
		CalorieTarget: goals.CalorieGoal(s.Profile),
	}
	s.Achievements = achievement.Evaluate(in, s.Achievements, t.clock.Now())
}

// at resolves a user-supplied time into the clock's location.
func (t *Tracker) at(v time.Time) time.Time {
	now := t.clock.Now()
	if v.IsZero() {
		return now
	}
	return v.In(now.Location())
}
