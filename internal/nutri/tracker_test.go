package nutri_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"nutrilog/internal/achievement"
	"nutrilog/internal/goals"
	"nutrilog/internal/model"
	"nutrilog/internal/nutri"
	"nutrilog/internal/progress"
	"nutrilog/internal/testutil"
)

var errDiskFull = errors.New("disk full")

// friday is 2024-03-15 09:00 UTC.
var friday = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	tracker *nutri.Tracker
	store   *testutil.FlakyStore
	clock   *testutil.StubClock
}

func newFixture(t *testing.T, opts ...nutri.Option) *fixture {
	t.Helper()
	f := &fixture{
		store: testutil.NewFlakyStore(),
		clock: testutil.NewStubClock(friday),
	}
	f.tracker = nutri.NewTracker(f.store, nutri.NewNopLogger(), f.clock, testutil.NewStubIDGenerator(), opts...)
	if err := f.tracker.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return f
}

func (f *fixture) addMeal(t *testing.T, name string, kcal float64) (model.MealRecord, nutri.MutationResult) {
	t.Helper()
	rec, res, err := f.tracker.AddMeal(context.Background(), nutri.NewMeal{
		Name:     name,
		Calories: kcal,
		MealType: model.Lunch,
	})
	if err != nil {
		t.Fatalf("AddMeal(%q) error = %v", name, err)
	}
	return rec, res
}

// reload reads the persisted state into a fresh tracker.
func (f *fixture) reload(t *testing.T) *nutri.AppState {
	t.Helper()
	other := nutri.NewTracker(f.store, nutri.NewNopLogger(), f.clock, testutil.NewStubIDGenerator())
	if err := other.Load(context.Background()); err != nil {
		t.Fatalf("reload Load() error = %v", err)
	}
	return other.State()
}

func TestTracker_Load(t *testing.T) {
	t.Run("initializes and saves default state", func(t *testing.T) {
		f := newFixture(t)

		s := f.tracker.State()
		if s.Profile.Name != "User" {
			t.Errorf("Profile.Name = %q, want %q", s.Profile.Name, "User")
		}
		if s.Theme != model.ThemeLight {
			t.Errorf("Theme = %q, want %q", s.Theme, model.ThemeLight)
		}
		if len(s.Meals) != 0 || len(s.Achievements.Unlocked()) != 0 {
			t.Errorf("fresh state not empty: %+v", s)
		}
		if f.store.Saves() != 1 {
			t.Errorf("Saves() = %d, want 1", f.store.Saves())
		}
	})

	t.Run("reads saved state", func(t *testing.T) {
		f := newFixture(t)
		f.addMeal(t, "Oatmeal", 350)

		s := f.reload(t)
		if len(s.Meals) != 1 || s.Meals[0].Name != "Oatmeal" {
			t.Errorf("reloaded Meals = %+v, want one Oatmeal", s.Meals)
		}
		if !s.Achievements[achievement.FirstMeal].IsUnlocked {
			t.Error("reloaded state lost first_meal")
		}
	})

	t.Run("fails when default state cannot be saved", func(t *testing.T) {
		st := testutil.NewFlakyStore()
		st.FailSaves(errDiskFull)
		tr := nutri.NewTracker(st, nutri.NewNopLogger(), testutil.NewStubClock(friday), testutil.NewStubIDGenerator())
		if err := tr.Load(context.Background()); !errors.Is(err, errDiskFull) {
			t.Errorf("Load() error = %v, want %v", err, errDiskFull)
		}
	})

	t.Run("seeds configured default profile", func(t *testing.T) {
		target := 1800.0
		f := newFixture(t, nutri.WithDefaultProfile(model.UserProfile{Name: "Alice", TargetCalories: &target}))

		s := f.tracker.State()
		if s.Profile.Name != "Alice" {
			t.Errorf("Profile.Name = %q, want %q", s.Profile.Name, "Alice")
		}
		if s.Profile.TargetCalories == nil || *s.Profile.TargetCalories != 1800 {
			t.Errorf("Profile.TargetCalories = %v, want 1800", s.Profile.TargetCalories)
		}
	})
}

func TestTracker_AddMeal(t *testing.T) {
	t.Run("first meal unlocks and celebrates", func(t *testing.T) {
		f := newFixture(t)

		rec, res := f.addMeal(t, "Oatmeal", 350)

		if rec.ID != "id-1" {
			t.Errorf("ID = %q, want %q", rec.ID, "id-1")
		}
		if rec.Date != "2024-03-15" {
			t.Errorf("Date = %q, want %q", rec.Date, "2024-03-15")
		}
		if rec.Timestamp != friday.UnixMilli() {
			t.Errorf("Timestamp = %d, want %d", rec.Timestamp, friday.UnixMilli())
		}
		if !reflect.DeepEqual(res.NewlyUnlocked, []achievement.ID{achievement.FirstMeal}) {
			t.Errorf("NewlyUnlocked = %v, want [first_meal]", res.NewlyUnlocked)
		}
		if res.Celebrate == nil || *res.Celebrate != achievement.FirstMeal {
			t.Errorf("Celebrate = %v, want first_meal", res.Celebrate)
		}

		s := f.tracker.State()
		if s.Profile.CurrentStreak != 1 || s.Profile.LongestStreak != 1 {
			t.Errorf("streak memo = %d/%d, want 1/1", s.Profile.CurrentStreak, s.Profile.LongestStreak)
		}
		at := s.Achievements[achievement.FirstMeal].UnlockedAt
		if at == nil || *at != friday.UnixMilli() {
			t.Errorf("first_meal UnlockedAt = %v, want %d", at, friday.UnixMilli())
		}
	})

	t.Run("second meal unlocks nothing", func(t *testing.T) {
		f := newFixture(t)
		f.addMeal(t, "Oatmeal", 350)

		_, res := f.addMeal(t, "Salad", 400)
		if len(res.NewlyUnlocked) != 0 || res.Celebrate != nil {
			t.Errorf("second meal result = %+v, want nothing unlocked", res)
		}
	})

	t.Run("several unlocks celebrate the first in catalogue order", func(t *testing.T) {
		f := newFixture(t)

		_, res := f.addMeal(t, "Feast", 1950)

		want := []achievement.ID{achievement.FirstMeal, achievement.CalorieGoal}
		if !reflect.DeepEqual(res.NewlyUnlocked, want) {
			t.Errorf("NewlyUnlocked = %v, want %v", res.NewlyUnlocked, want)
		}
		if res.Celebrate == nil || *res.Celebrate != achievement.FirstMeal {
			t.Errorf("Celebrate = %v, want first_meal", res.Celebrate)
		}
	})

	t.Run("three consecutive days unlock streak_3", func(t *testing.T) {
		f := newFixture(t)

		f.addMeal(t, "Day 1", 500)
		f.clock.AdvanceDays(1)
		f.addMeal(t, "Day 2", 500)
		f.clock.AdvanceDays(1)
		_, res := f.addMeal(t, "Day 3", 500)

		if !reflect.DeepEqual(res.NewlyUnlocked, []achievement.ID{achievement.Streak3}) {
			t.Errorf("NewlyUnlocked = %v, want [streak_3]", res.NewlyUnlocked)
		}
		s := f.tracker.State()
		if s.Profile.CurrentStreak != 3 || s.Profile.LongestStreak != 3 {
			t.Errorf("streak memo = %d/%d, want 3/3", s.Profile.CurrentStreak, s.Profile.LongestStreak)
		}
	})

	t.Run("explicit time sets date", func(t *testing.T) {
		f := newFixture(t)

		rec, _, err := f.tracker.AddMeal(context.Background(), nutri.NewMeal{
			Name:     "Late dinner",
			Calories: 700,
			MealType: model.Dinner,
			At:       friday.AddDate(0, 0, -1).Add(12 * time.Hour),
		})
		if err != nil {
			t.Fatalf("AddMeal() error = %v", err)
		}
		if rec.Date != "2024-03-14" {
			t.Errorf("Date = %q, want %q", rec.Date, "2024-03-14")
		}
	})

	t.Run("rejects invalid meals without saving", func(t *testing.T) {
		tests := []struct {
			name string
			meal nutri.NewMeal
		}{
			{name: "empty name", meal: nutri.NewMeal{Name: "  ", Calories: 100, MealType: model.Snack}},
			{name: "negative calories", meal: nutri.NewMeal{Name: "x", Calories: -1, MealType: model.Snack}},
			{name: "negative protein", meal: nutri.NewMeal{Name: "x", Protein: -5, MealType: model.Snack}},
			{name: "unknown type", meal: nutri.NewMeal{Name: "x", Calories: 100, MealType: "brunch"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				_, _, err := f.tracker.AddMeal(context.Background(), tt.meal)
				if !errors.Is(err, nutri.ErrInvalidInput) {
					t.Errorf("AddMeal() error = %v, want ErrInvalidInput", err)
				}
				if f.store.Saves() != 1 {
					t.Errorf("Saves() = %d, want 1 (load only)", f.store.Saves())
				}
			})
		}
	})
}

func TestTracker_UpdateMeal(t *testing.T) {
	t.Run("replaces fields and keeps id and time", func(t *testing.T) {
		f := newFixture(t)
		orig, _ := f.addMeal(t, "Oatmeal", 350)
		f.clock.Advance(2 * time.Hour)

		got, _, err := f.tracker.UpdateMeal(context.Background(), orig.ID, nutri.NewMeal{
			Name:     "Oatmeal with honey",
			Calories: 420,
			MealType: model.Breakfast,
		})
		if err != nil {
			t.Fatalf("UpdateMeal() error = %v", err)
		}
		if got.ID != orig.ID || got.Timestamp != orig.Timestamp || got.Date != orig.Date {
			t.Errorf("UpdateMeal() = %+v, want id/time of %+v", got, orig)
		}
		meals := f.tracker.Meals()
		if len(meals) != 1 || meals[0].Calories != 420 || meals[0].Name != "Oatmeal with honey" {
			t.Errorf("Meals() = %+v, want the edited meal", meals)
		}
	})

	t.Run("moving a meal recomputes the streak", func(t *testing.T) {
		f := newFixture(t)
		f.addMeal(t, "Today", 500)
		second, _ := f.addMeal(t, "Also today", 500)

		_, _, err := f.tracker.UpdateMeal(context.Background(), second.ID, nutri.NewMeal{
			Name:     "Yesterday",
			Calories: 500,
			MealType: model.Lunch,
			At:       friday.AddDate(0, 0, -1),
		})
		if err != nil {
			t.Fatalf("UpdateMeal() error = %v", err)
		}
		if got := f.tracker.State().Profile.CurrentStreak; got != 2 {
			t.Errorf("CurrentStreak = %d, want 2", got)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t)
		_, _, err := f.tracker.UpdateMeal(context.Background(), "nope", nutri.NewMeal{Name: "x", MealType: model.Snack})
		if !errors.Is(err, nutri.ErrMealNotFound) {
			t.Errorf("UpdateMeal() error = %v, want ErrMealNotFound", err)
		}
	})
}

func TestTracker_DeleteMeal(t *testing.T) {
	t.Run("keeps longest streak memo and achievements", func(t *testing.T) {
		f := newFixture(t)
		f.addMeal(t, "Day 1", 500)
		f.clock.AdvanceDays(1)
		middle, _ := f.addMeal(t, "Day 2", 500)
		f.clock.AdvanceDays(1)
		f.addMeal(t, "Day 3", 500)

		res, err := f.tracker.DeleteMeal(context.Background(), middle.ID)
		if err != nil {
			t.Fatalf("DeleteMeal() error = %v", err)
		}
		if len(res.NewlyUnlocked) != 0 {
			t.Errorf("NewlyUnlocked = %v, want none", res.NewlyUnlocked)
		}

		s := f.tracker.State()
		if len(s.Meals) != 2 {
			t.Errorf("len(Meals) = %d, want 2", len(s.Meals))
		}
		if s.Profile.CurrentStreak != 1 {
			t.Errorf("CurrentStreak = %d, want 1", s.Profile.CurrentStreak)
		}
		if s.Profile.LongestStreak != 3 {
			t.Errorf("LongestStreak = %d, want 3 (memo never decreases)", s.Profile.LongestStreak)
		}
		if !s.Achievements[achievement.Streak3].IsUnlocked {
			t.Error("streak_3 was relocked after delete")
		}
		if got := f.tracker.Streak(); got.Longest != 1 {
			t.Errorf("Streak().Longest = %d, want 1 (computed from log)", got.Longest)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.tracker.DeleteMeal(context.Background(), "nope")
		if !errors.Is(err, nutri.ErrMealNotFound) {
			t.Errorf("DeleteMeal() error = %v, want ErrMealNotFound", err)
		}
	})
}

func TestTracker_AddWater(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, _, err := f.tracker.AddWater(ctx, 0); !errors.Is(err, nutri.ErrInvalidInput) {
		t.Errorf("AddWater(0) error = %v, want ErrInvalidInput", err)
	}

	_, res, err := f.tracker.AddWater(ctx, 1500)
	if err != nil {
		t.Fatalf("AddWater() error = %v", err)
	}
	if len(res.NewlyUnlocked) != 0 {
		t.Errorf("NewlyUnlocked = %v, want none below target", res.NewlyUnlocked)
	}

	entry, res, err := f.tracker.AddWater(ctx, 500)
	if err != nil {
		t.Fatalf("AddWater() error = %v", err)
	}
	if entry.Date != "2024-03-15" || entry.AmountMl != 500 {
		t.Errorf("AddWater() = %+v", entry)
	}
	if !reflect.DeepEqual(res.NewlyUnlocked, []achievement.ID{achievement.WaterGoal}) {
		t.Errorf("NewlyUnlocked = %v, want [water_goal]", res.NewlyUnlocked)
	}
}

func TestTracker_WaterEventChecksCalorieGoal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addMeal(t, "Big lunch", 1500)

	target := 1550.0
	p := f.tracker.State().Profile
	p.TargetCalories = &target
	if err := f.tracker.SetProfile(ctx, p); err != nil {
		t.Fatalf("SetProfile() error = %v", err)
	}
	if f.tracker.State().Achievements[achievement.CalorieGoal].IsUnlocked {
		t.Fatal("SetProfile() evaluated achievements")
	}

	_, res, err := f.tracker.AddWater(ctx, 250)
	if err != nil {
		t.Fatalf("AddWater() error = %v", err)
	}
	if !reflect.DeepEqual(res.NewlyUnlocked, []achievement.ID{achievement.CalorieGoal}) {
		t.Errorf("NewlyUnlocked = %v, want [calorie_goal]", res.NewlyUnlocked)
	}
}

func TestTracker_AddWeight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, _, err := f.tracker.AddWeight(ctx, -70); !errors.Is(err, nutri.ErrInvalidInput) {
		t.Errorf("AddWeight(-70) error = %v, want ErrInvalidInput", err)
	}

	entry, res, err := f.tracker.AddWeight(ctx, 72.5)
	if err != nil {
		t.Fatalf("AddWeight() error = %v", err)
	}
	if entry.WeightKg != 72.5 {
		t.Errorf("WeightKg = %v, want 72.5", entry.WeightKg)
	}
	if !reflect.DeepEqual(res.NewlyUnlocked, []achievement.ID{achievement.WeightLogged}) {
		t.Errorf("NewlyUnlocked = %v, want [weight_logged]", res.NewlyUnlocked)
	}
}

func TestTracker_SetProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addMeal(t, "Oatmeal", 350)

	age := 30
	err := f.tracker.SetProfile(ctx, model.UserProfile{Name: "Alice", Age: &age, CurrentStreak: 99, LongestStreak: 99})
	if err != nil {
		t.Fatalf("SetProfile() error = %v", err)
	}

	p := f.tracker.State().Profile
	if p.Name != "Alice" || p.Age == nil || *p.Age != 30 {
		t.Errorf("Profile = %+v, want Alice aged 30", p)
	}
	if p.CurrentStreak != 1 || p.LongestStreak != 1 {
		t.Errorf("streak memo = %d/%d, want 1/1 (kept from tracker)", p.CurrentStreak, p.LongestStreak)
	}

	age = 45
	if got := *f.tracker.State().Profile.Age; got != 30 {
		t.Errorf("caller mutation leaked into state: Age = %d", got)
	}

	if err := f.tracker.SetProfile(ctx, model.UserProfile{}); !errors.Is(err, nutri.ErrInvalidInput) {
		t.Errorf("SetProfile(empty name) error = %v, want ErrInvalidInput", err)
	}
	bad := model.ActivityLevel("couch")
	if err := f.tracker.SetProfile(ctx, model.UserProfile{Name: "A", ActivityLevel: &bad}); !errors.Is(err, nutri.ErrInvalidInput) {
		t.Errorf("SetProfile(bad activity) error = %v, want ErrInvalidInput", err)
	}
}

func TestTracker_SetProfile_RejectsNonPositiveValues(t *testing.T) {
	negAge, zeroAge := -3, 0
	neg := -1500.0
	zero := 0.0
	other := model.Gender("other")

	tests := []struct {
		name    string
		profile model.UserProfile
	}{
		{name: "negative age", profile: model.UserProfile{Name: "A", Age: &negAge}},
		{name: "zero age", profile: model.UserProfile{Name: "A", Age: &zeroAge}},
		{name: "negative weight", profile: model.UserProfile{Name: "A", WeightKg: &neg}},
		{name: "zero height", profile: model.UserProfile{Name: "A", HeightCm: &zero}},
		{name: "negative calorie target", profile: model.UserProfile{Name: "A", TargetCalories: &neg}},
		{name: "negative protein target", profile: model.UserProfile{Name: "A", TargetProtein: &neg}},
		{name: "zero water target", profile: model.UserProfile{Name: "A", TargetWaterMl: &zero}},
		{name: "unknown gender", profile: model.UserProfile{Name: "A", Gender: &other}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			before := f.tracker.State()

			err := f.tracker.SetProfile(context.Background(), tt.profile)
			if !errors.Is(err, nutri.ErrInvalidInput) {
				t.Fatalf("SetProfile() error = %v, want ErrInvalidInput", err)
			}
			if !reflect.DeepEqual(f.tracker.State(), before) {
				t.Error("rejected profile changed state")
			}
			if got := goals.CalorieGoal(f.tracker.State().Profile); got <= 0 {
				t.Errorf("CalorieGoal() = %v after rejected update, want positive", got)
			}
		})
	}
}

func TestTracker_ToggleTheme(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, want := range []model.Theme{model.ThemeDark, model.ThemeLight, model.ThemeDark} {
		got, err := f.tracker.ToggleTheme(ctx)
		if err != nil {
			t.Fatalf("ToggleTheme() error = %v", err)
		}
		if got != want {
			t.Errorf("ToggleTheme() = %q, want %q", got, want)
		}
	}
	if got := f.reload(t).Theme; got != model.ThemeDark {
		t.Errorf("persisted Theme = %q, want %q", got, model.ThemeDark)
	}
}

func TestTracker_ResetProfile(t *testing.T) {
	setup := func(t *testing.T) *fixture {
		f := newFixture(t)
		f.addMeal(t, "Oatmeal", 350)
		if _, _, err := f.tracker.AddWater(context.Background(), 300); err != nil {
			t.Fatalf("AddWater() error = %v", err)
		}
		if err := f.tracker.SetProfile(context.Background(), model.UserProfile{Name: "Alice"}); err != nil {
			t.Fatalf("SetProfile() error = %v", err)
		}
		return f
	}

	t.Run("keeps meals", func(t *testing.T) {
		f := setup(t)
		if err := f.tracker.ResetProfile(context.Background(), false); err != nil {
			t.Fatalf("ResetProfile() error = %v", err)
		}

		s := f.tracker.State()
		if s.Profile.Name != "User" {
			t.Errorf("Profile.Name = %q, want %q", s.Profile.Name, "User")
		}
		if len(s.Meals) != 1 || len(s.WaterIntakes) != 1 {
			t.Errorf("logs changed: %d meals, %d water", len(s.Meals), len(s.WaterIntakes))
		}
		if len(s.Achievements.Unlocked()) != 0 {
			t.Errorf("Unlocked() = %v, want none after reset", s.Achievements.Unlocked())
		}
		if s.Profile.CurrentStreak != 1 {
			t.Errorf("CurrentStreak = %d, want 1", s.Profile.CurrentStreak)
		}
	})

	t.Run("clears meals", func(t *testing.T) {
		f := setup(t)
		if err := f.tracker.ResetProfile(context.Background(), true); err != nil {
			t.Fatalf("ResetProfile() error = %v", err)
		}

		s := f.tracker.State()
		if len(s.Meals) != 0 {
			t.Errorf("len(Meals) = %d, want 0", len(s.Meals))
		}
		if s.Profile.CurrentStreak != 0 || s.Profile.LongestStreak != 0 {
			t.Errorf("streak memo = %d/%d, want 0/0", s.Profile.CurrentStreak, s.Profile.LongestStreak)
		}

		// The first meal after a reset celebrates again.
		_, res := f.addMeal(t, "Fresh start", 300)
		if res.Celebrate == nil || *res.Celebrate != achievement.FirstMeal {
			t.Errorf("Celebrate = %v, want first_meal", res.Celebrate)
		}
	})
}

func TestTracker_FailedSaveRollsBack(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(tr *nutri.Tracker) error
	}{
		{name: "add meal", mutate: func(tr *nutri.Tracker) error {
			_, _, err := tr.AddMeal(ctx, nutri.NewMeal{Name: "Feast", Calories: 2000, MealType: model.Dinner})
			return err
		}},
		{name: "update meal", mutate: func(tr *nutri.Tracker) error {
			_, _, err := tr.UpdateMeal(ctx, "id-1", nutri.NewMeal{Name: "Edited", Calories: 1, MealType: model.Snack})
			return err
		}},
		{name: "delete meal", mutate: func(tr *nutri.Tracker) error {
			_, err := tr.DeleteMeal(ctx, "id-1")
			return err
		}},
		{name: "add water", mutate: func(tr *nutri.Tracker) error {
			_, _, err := tr.AddWater(ctx, 5000)
			return err
		}},
		{name: "add weight", mutate: func(tr *nutri.Tracker) error {
			_, _, err := tr.AddWeight(ctx, 80)
			return err
		}},
		{name: "set profile", mutate: func(tr *nutri.Tracker) error {
			return tr.SetProfile(ctx, model.UserProfile{Name: "Mallory"})
		}},
		{name: "toggle theme", mutate: func(tr *nutri.Tracker) error {
			_, err := tr.ToggleTheme(ctx)
			return err
		}},
		{name: "reset profile", mutate: func(tr *nutri.Tracker) error {
			return tr.ResetProfile(ctx, true)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.addMeal(t, "Oatmeal", 350)
			before := f.tracker.State()

			f.store.FailSaves(errDiskFull)
			err := tt.mutate(f.tracker)
			if !errors.Is(err, nutri.ErrPersistence) {
				t.Errorf("error = %v, want ErrPersistence", err)
			}
			if !errors.Is(err, errDiskFull) {
				t.Errorf("error = %v, want it to wrap the store error", err)
			}

			if after := f.tracker.State(); !reflect.DeepEqual(after, before) {
				t.Errorf("state changed after failed save:\n got %+v\nwant %+v", after, before)
			}

			f.store.FailSaves(nil)
			if persisted := f.reload(t); !reflect.DeepEqual(persisted, before) {
				t.Errorf("persisted state changed after failed save:\n got %+v\nwant %+v", persisted, before)
			}
		})
	}
}

func TestTracker_ConcurrentMutations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := f.tracker.AddWater(ctx, 100); err != nil {
				t.Errorf("AddWater() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := len(f.tracker.State().WaterIntakes); got != n {
		t.Errorf("len(WaterIntakes) = %d, want %d", got, n)
	}
	if got := len(f.reload(t).WaterIntakes); got != n {
		t.Errorf("persisted len(WaterIntakes) = %d, want %d", got, n)
	}
}

func TestTracker_Reads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addMeal(t, "Lunch", 600)
	f.clock.Advance(time.Hour)
	f.addMeal(t, "Snack", 150)
	if _, _, err := f.tracker.AddWater(ctx, 750); err != nil {
		t.Fatalf("AddWater() error = %v", err)
	}

	t.Run("Meals newest first", func(t *testing.T) {
		meals := f.tracker.Meals()
		if len(meals) != 2 || meals[0].Name != "Snack" || meals[1].Name != "Lunch" {
			t.Errorf("Meals() = %+v, want Snack then Lunch", meals)
		}
	})

	t.Run("MealsOn in eating order", func(t *testing.T) {
		meals := f.tracker.MealsOn("2024-03-15")
		if len(meals) != 2 || meals[0].Name != "Lunch" {
			t.Errorf("MealsOn() = %+v, want Lunch first", meals)
		}
		if got := f.tracker.MealsOn("2024-03-14"); len(got) != 0 {
			t.Errorf("MealsOn(yesterday) = %+v, want none", got)
		}
	})

	t.Run("Today", func(t *testing.T) {
		today := f.tracker.Today()
		if today.Date != "2024-03-15" {
			t.Errorf("Date = %q, want %q", today.Date, "2024-03-15")
		}
		if today.Calories.Consumed != 750 || today.Calories.Remaining != 1250 || today.Calories.MealsCount != 2 {
			t.Errorf("Calories = %+v, want 750 consumed, 1250 remaining, 2 meals", today.Calories)
		}
		if today.WaterMl != 750 || today.WaterGoalMl != 2000 {
			t.Errorf("water = %v/%v, want 750/2000", today.WaterMl, today.WaterGoalMl)
		}
		if today.Streak != 1 || today.StreakMessage == "" {
			t.Errorf("streak = %d %q, want 1 with a message", today.Streak, today.StreakMessage)
		}
	})

	t.Run("Progress", func(t *testing.T) {
		rep := f.tracker.Progress(progress.Weekly)
		if len(rep.Weekly) != progress.WeeklyWindow {
			t.Errorf("len(Weekly) = %d, want %d", len(rep.Weekly), progress.WeeklyWindow)
		}
		if rep.Summary.Total != 750 {
			t.Errorf("Summary.Total = %v, want 750", rep.Summary.Total)
		}
	})

	t.Run("Aggregate", func(t *testing.T) {
		periods := f.tracker.Aggregate(progress.Daily, 7)
		if len(periods) != 7 {
			t.Fatalf("len(Aggregate) = %d, want 7", len(periods))
		}
		last := periods[len(periods)-1]
		if last.Label() != "2024-03-15" || last.TotalCalories() != 750 {
			t.Errorf("last period = %s/%v, want 2024-03-15/750", last.Label(), last.TotalCalories())
		}
	})

	t.Run("Achievements", func(t *testing.T) {
		views := f.tracker.Achievements()
		if len(views) != int(achievement.NumIDs) {
			t.Fatalf("len(Achievements) = %d, want %d", len(views), achievement.NumIDs)
		}
		if views[0].ID != achievement.FirstMeal || !views[0].IsUnlocked {
			t.Errorf("Achievements()[0] = %+v, want unlocked first_meal", views[0])
		}
	})

	t.Run("State is a copy", func(t *testing.T) {
		s := f.tracker.State()
		s.Meals[0].Calories = 9999
		s.Profile.Name = "Changed"
		if f.tracker.State().Meals[0].Calories == 9999 || f.tracker.State().Profile.Name == "Changed" {
			t.Error("mutating State() result changed the tracker")
		}
	})
}
