package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"nutrilog/internal/calendar"
	"nutrilog/internal/config"
	"nutrilog/internal/encryption"
	"nutrilog/internal/goals"
	"nutrilog/internal/model"
	"nutrilog/internal/nutri"
	"nutrilog/internal/progress"
	"nutrilog/internal/store"
	"nutrilog/internal/streak"
)

// ErrKeysNotConfigured is returned when encryption is enabled but no key
// pair has been generated yet.
var ErrKeysNotConfigured = errors.New("encryption keys not configured (run: nutrilog config keys init)")

// PassphraseFunc supplies the passphrase that unlocks the private key. It is
// only called when the configured store is encrypted.
type PassphraseFunc func() (string, error)

// NutriApp is the application layer between the CLI and the Tracker.
// It constructs all dependencies from config, exposes operations that accept
// raw CLI values, and releases the store and log file on Close.
type NutriApp struct {
	cfg     *config.Config
	store   *store.BlobStore
	tracker *nutri.Tracker
	clock   nutri.Clock
	op      *Operation
	logger  *slog.Logger
	logFile *os.File
}

// NewNutriApp creates a fully wired NutriApp from the given config and loads
// the saved state. operation names the CLI command being run.
// The caller must call Close when done.
func NewNutriApp(ctx context.Context, cfg *config.Config, operation string, passphrase PassphraseFunc) (*NutriApp, error) {
	clock := nutri.RealClock{}
	op := NewOperation(operation, clock.Now())

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, logFile, err := newLogger(cfg.LogDir, op.ID, level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	codec, err := newCodec(cfg.Encryption, passphrase)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	st, err := store.NewStoreFromConfig(ctx, cfg.Store, codec)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating store: %w", err)
	}

	tracker := nutri.NewTracker(st, &slogAdapter{l: logger}, clock, nutri.UUIDGenerator{},
		nutri.WithDefaultProfile(profileFromTargets(cfg.Targets)))
	if err := tracker.Load(ctx); err != nil {
		st.Close()
		logFile.Close()
		return nil, err
	}

	logger.Debug("operation started", "operation", operation, "store", cfg.Store.Type)
	return &NutriApp{
		cfg:     cfg,
		store:   st,
		tracker: tracker,
		clock:   clock,
		op:      op,
		logger:  logger,
		logFile: logFile,
	}, nil
}

func newCodec(cfg config.EncryptionConfig, passphrase PassphraseFunc) (store.Codec, error) {
	enc, err := encryption.NewEncryptorFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}
	if enc == nil {
		return store.JSONCodec{}, nil
	}
	if !enc.IsConfigured() {
		return nil, ErrKeysNotConfigured
	}
	if passphrase == nil {
		return nil, fmt.Errorf("state is encrypted but no passphrase source was given")
	}

	pass, err := passphrase()
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	dec, err := enc.Unlock(pass)
	if err != nil {
		return nil, fmt.Errorf("unlocking key: %w", err)
	}
	return store.NewEncryptedCodec(store.JSONCodec{}, enc, dec), nil
}

func profileFromTargets(t config.TargetsConfig) model.UserProfile {
	p := model.DefaultProfile()
	set := func(v float64) *float64 {
		if v <= 0 {
			return nil
		}
		return &v
	}
	p.TargetCalories = set(t.Calories)
	p.TargetProtein = set(t.Protein)
	p.TargetCarbs = set(t.Carbs)
	p.TargetFats = set(t.Fats)
	p.TargetWaterMl = set(t.WaterMl)
	return p
}

// MealInput carries the raw meal fields given on the command line.
type MealInput struct {
	Name     string
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
	MealType string // empty means "snack"
	When     string // empty, "HH:MM", "YYYY-MM-DD" or RFC 3339
	PhotoRef string
}

func (a *NutriApp) resolveMeal(in MealInput) (nutri.NewMeal, error) {
	mealType := model.MealType(strings.ToLower(strings.TrimSpace(in.MealType)))
	if mealType == "" {
		mealType = model.Snack
	}
	at, err := parseWhen(in.When, a.clock.Now())
	if err != nil {
		return nutri.NewMeal{}, err
	}
	return nutri.NewMeal{
		Name:     in.Name,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fats:     in.Fats,
		MealType: mealType,
		PhotoRef: in.PhotoRef,
		At:       at,
	}, nil
}

// parseWhen resolves a user-supplied meal time relative to now. A bare date
// places the meal at noon so it cannot slip into a neighbouring day.
func parseWhen(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	loc := now.Location()

	if t, err := time.ParseInLocation("15:04", s, loc); err == nil {
		y, m, d := now.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
	}
	if d, err := calendar.ParseDate(s, loc); err == nil {
		return d.Add(12 * time.Hour), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse time %q (want HH:MM, YYYY-MM-DD or RFC 3339)", nutri.ErrInvalidInput, s)
}

// AddMeal logs a meal.
func (a *NutriApp) AddMeal(ctx context.Context, in MealInput) (model.MealRecord, nutri.MutationResult, error) {
	m, err := a.resolveMeal(in)
	if err != nil {
		return model.MealRecord{}, nutri.MutationResult{}, err
	}
	rec, res, err := a.tracker.AddMeal(ctx, m)
	a.op.Record(err, true)
	return rec, res, err
}

// EditMeal replaces the meal with the given ID.
func (a *NutriApp) EditMeal(ctx context.Context, id string, in MealInput) (model.MealRecord, nutri.MutationResult, error) {
	m, err := a.resolveMeal(in)
	if err != nil {
		return model.MealRecord{}, nutri.MutationResult{}, err
	}
	rec, res, err := a.tracker.UpdateMeal(ctx, id, m)
	a.op.Record(err, true)
	return rec, res, err
}

// DeleteMeal removes the meal with the given ID.
func (a *NutriApp) DeleteMeal(ctx context.Context, id string) error {
	_, err := a.tracker.DeleteMeal(ctx, id)
	a.op.Record(err, true)
	return err
}

// FindMeal returns the meal with the given ID.
func (a *NutriApp) FindMeal(id string) (model.MealRecord, error) {
	for _, m := range a.tracker.Meals() {
		if m.ID == id {
			return m, nil
		}
	}
	return model.MealRecord{}, fmt.Errorf("%w: %s", nutri.ErrMealNotFound, id)
}

// ListMeals returns the meals of one day in eating order, or every meal
// newest first when date is empty.
func (a *NutriApp) ListMeals(date string) ([]model.MealRecord, error) {
	if date == "" {
		return a.tracker.Meals(), nil
	}
	if date == "today" {
		date = calendar.DateString(a.clock.Now())
	}
	if _, err := calendar.ParseDate(date, time.UTC); err != nil {
		return nil, fmt.Errorf("%w: %w", nutri.ErrInvalidInput, err)
	}
	return a.tracker.MealsOn(date), nil
}

// AddWater logs a water intake.
func (a *NutriApp) AddWater(ctx context.Context, amountMl float64) (model.WaterEntry, nutri.MutationResult, error) {
	e, res, err := a.tracker.AddWater(ctx, amountMl)
	a.op.Record(err, true)
	return e, res, err
}

// AddWeight logs a weight measurement.
func (a *NutriApp) AddWeight(ctx context.Context, weightKg float64) (model.WeightEntry, nutri.MutationResult, error) {
	e, res, err := a.tracker.AddWeight(ctx, weightKg)
	a.op.Record(err, true)
	return e, res, err
}

// Progress builds the progress report for the named range.
func (a *NutriApp) Progress(rangeName string) (progress.Report, error) {
	g, err := progress.ParseGranularity(rangeName)
	if err != nil {
		return progress.Report{}, fmt.Errorf("%w: %w", nutri.ErrInvalidInput, err)
	}
	return a.tracker.Progress(g), nil
}

// Today returns the dashboard summary for the current day.
func (a *NutriApp) Today() nutri.TodaySummary { return a.tracker.Today() }

// Streak returns the current and longest streak computed from the meal log.
func (a *NutriApp) Streak() streak.Result { return a.tracker.Streak() }

// Achievements lists the catalogue with unlock state.
func (a *NutriApp) Achievements() []nutri.AchievementView { return a.tracker.Achievements() }

// Profile returns the current profile.
func (a *NutriApp) Profile() model.UserProfile { return a.tracker.State().Profile }

// UpdateProfile applies edit to a copy of the profile and saves the result.
func (a *NutriApp) UpdateProfile(ctx context.Context, edit func(p *model.UserProfile) error) (model.UserProfile, error) {
	p := a.Profile()
	if err := edit(&p); err != nil {
		return model.UserProfile{}, fmt.Errorf("%w: %w", nutri.ErrInvalidInput, err)
	}
	err := a.tracker.SetProfile(ctx, p)
	a.op.Record(err, true)
	if err != nil {
		return model.UserProfile{}, err
	}
	return a.Profile(), nil
}

// SuggestedGoal returns the BMR-based daily calorie suggestion for the
// current profile.
func (a *NutriApp) SuggestedGoal() (float64, error) {
	return goals.SuggestedGoal(a.Profile())
}

// ApplySuggestedGoal stores the suggested goal as the calorie target.
func (a *NutriApp) ApplySuggestedGoal(ctx context.Context) (float64, error) {
	goal, err := a.SuggestedGoal()
	if err != nil {
		return 0, err
	}
	_, err = a.UpdateProfile(ctx, func(p *model.UserProfile) error {
		p.TargetCalories = &goal
		return nil
	})
	return goal, err
}

// ResetProfile restores the default profile, optionally clearing meals.
func (a *NutriApp) ResetProfile(ctx context.Context, clearMeals bool) error {
	err := a.tracker.ResetProfile(ctx, clearMeals)
	a.op.Record(err, true)
	return err
}

// WipeData deletes the saved state and starts over from a fresh one. Key
// files and the config are left alone.
func (a *NutriApp) WipeData(ctx context.Context) error {
	if err := a.store.DeleteState(ctx); err != nil {
		a.op.Record(err, false)
		return fmt.Errorf("wiping data: %w", err)
	}
	err := a.tracker.Load(ctx)
	a.op.Record(err, true)
	if err != nil {
		return err
	}
	a.logger.Info("all data wiped", "store", a.cfg.Store.Type)
	return nil
}

// ToggleTheme flips the stored theme.
func (a *NutriApp) ToggleTheme(ctx context.Context) (model.Theme, error) {
	theme, err := a.tracker.ToggleTheme(ctx)
	a.op.Record(err, true)
	return theme, err
}

// Close logs the outcome of the operation and releases the store and log file.
func (a *NutriApp) Close() error {
	var firstErr error

	a.logger.Debug("operation finished",
		"operation", a.op.Name,
		"status", a.op.Status,
		"mutated", a.op.Mutated,
		"elapsed", a.op.Elapsed(a.clock.Now()))

	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
