package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"nutrilog/internal/achievement"
	"nutrilog/internal/app"
	"nutrilog/internal/config"
	"nutrilog/internal/encryption"
	"nutrilog/internal/goals"
	"nutrilog/internal/model"
	"nutrilog/internal/nutri"
	"nutrilog/internal/progress"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a NutriApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "AddMeal", "Progress").
func newApp(ctx context.Context, operation string) (*app.NutriApp, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewNutriApp(ctx, cfg, operation, unlockPassphrase)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

func readConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// printUnlocked celebrates the first newly unlocked achievement. Any others
// unlocked by the same change are listed on one plain line.
func printUnlocked(w io.Writer, res nutri.MutationResult) {
	if res.Celebrate == nil {
		return
	}
	def := achievement.Lookup(*res.Celebrate)
	fmt.Fprintf(w, "%s Achievement unlocked: %s (%s)\n", def.Icon, def.Title, def.Description)

	var others []string
	for _, id := range res.NewlyUnlocked {
		if id != *res.Celebrate {
			others = append(others, achievement.Lookup(id).Title)
		}
	}
	if len(others) > 0 {
		fmt.Fprintf(w, "Also unlocked: %s\n", strings.Join(others, ", "))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printMeal(m model.MealRecord) {
	fmt.Printf("%s  %s %s  %-9s  %6.0f kcal  P %.0fg  C %.0fg  F %.0fg  %s\n",
		shortID(m.ID),
		m.Date,
		time.UnixMilli(m.Timestamp).Format("15:04"),
		m.MealType,
		m.Calories,
		m.Protein,
		m.Carbs,
		m.Fats,
		m.Name,
	)
}

var rootCmd = &cobra.Command{
	Use:          "nutrilog",
	Short:        "Personal nutrition tracker",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		storeType, _ := cmd.Flags().GetString("store")
		encType, _ := cmd.Flags().GetString("encryption")
		cfg, err := app.DefaultConfig(defaults, storeType, encType)
		if err != nil {
			return err
		}

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Store:      %s\n", cfg.Store.Type)
		fmt.Printf("Encryption: %s\n", cfg.Encryption.Type)
		if cfg.Encryption.Type == "age" {
			fmt.Println("Run 'nutrilog config keys init' to generate the key pair.")
		}
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Log Level:  %s\n", cfg.LogLevel)
		fmt.Printf("Store:      %s\n", cfg.Store.Type)
		switch cfg.Store.Type {
		case "filesystem":
			fmt.Printf("  Dir:      %s\n", cfg.Store.Dir)
		case "sqlite":
			fmt.Printf("  Path:     %s\n", cfg.Store.SQLitePath)
		case "redis":
			fmt.Printf("  Addr:     %s (db %d)\n", cfg.Store.RedisAddr, cfg.Store.RedisDB)
		case "s3":
			fmt.Printf("  Bucket:   %s/%s\n", cfg.Store.S3Bucket, cfg.Store.S3Prefix)
		}
		fmt.Printf("Encryption: %s\n", cfg.Encryption.Type)
		if cfg.Encryption.Type == "age" {
			fmt.Printf("  Public:   %s\n", cfg.Encryption.PublicKeyPath)
			fmt.Printf("  Private:  %s\n", cfg.Encryption.PrivateKeyPath)
		}
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage encryption keys",
}

var configKeysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}

		enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			return err
		}
		if enc == nil {
			return fmt.Errorf("encryption is disabled in the config (set [encryption] type = \"age\")")
		}

		pass, err := newPassphrase()
		if err != nil {
			return err
		}
		if err := enc.Setup(pass); err != nil {
			return fmt.Errorf("generating keys: %w", err)
		}

		fmt.Printf("Keys written to %s\n", cfg.Encryption.PublicKeyPath)
		return nil
	},
}

// meal command
var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and manage meals",
}

func mealInputFromFlags(cmd *cobra.Command, name string) app.MealInput {
	f := cmd.Flags()
	in := app.MealInput{Name: name}
	in.Calories, _ = f.GetFloat64("calories")
	in.Protein, _ = f.GetFloat64("protein")
	in.Carbs, _ = f.GetFloat64("carbs")
	in.Fats, _ = f.GetFloat64("fats")
	in.MealType, _ = f.GetString("type")
	in.When, _ = f.GetString("at")
	in.PhotoRef, _ = f.GetString("photo")
	return in
}

func addMealFlags(cmd *cobra.Command) {
	cmd.Flags().Float64P("calories", "c", 0, "Calories (kcal)")
	cmd.Flags().Float64P("protein", "p", 0, "Protein (g)")
	cmd.Flags().Float64("carbs", 0, "Carbohydrates (g)")
	cmd.Flags().Float64("fats", 0, "Fats (g)")
	cmd.Flags().StringP("type", "t", "", "Meal type: breakfast, lunch, dinner or snack")
	cmd.Flags().String("at", "", "When the meal was eaten: HH:MM, YYYY-MM-DD or RFC 3339 (default now)")
	cmd.Flags().String("photo", "", "Reference to a meal photo")
}

var mealAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Log a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "AddMeal")
		if err != nil {
			return err
		}
		defer a.Close()

		rec, res, err := a.AddMeal(cmd.Context(), mealInputFromFlags(cmd, args[0]))
		if err != nil {
			return fmt.Errorf("adding meal: %w", err)
		}

		printMeal(rec)
		printUnlocked(os.Stdout, res)
		return nil
	},
}

var mealEditCmd = &cobra.Command{
	Use:   "edit ID NAME",
	Short: "Replace a logged meal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "EditMeal")
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := resolveMealID(a, args[0])
		if err != nil {
			return err
		}
		rec, res, err := a.EditMeal(cmd.Context(), id, mealInputFromFlags(cmd, args[1]))
		if err != nil {
			return fmt.Errorf("editing meal: %w", err)
		}

		printMeal(rec)
		printUnlocked(os.Stdout, res)
		return nil
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "DeleteMeal")
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := resolveMealID(a, args[0])
		if err != nil {
			return err
		}
		if err := a.DeleteMeal(cmd.Context(), id); err != nil {
			return fmt.Errorf("deleting meal: %w", err)
		}

		fmt.Printf("Deleted meal %s\n", id)
		return nil
	},
}

// resolveMealID accepts a full ID or the unique prefix shown by "meal list".
func resolveMealID(a *app.NutriApp, prefix string) (string, error) {
	if _, err := a.FindMeal(prefix); err == nil {
		return prefix, nil
	}

	var matches []string
	meals, err := a.ListMeals("")
	if err != nil {
		return "", err
	}
	for _, m := range meals {
		if strings.HasPrefix(m.ID, prefix) {
			matches = append(matches, m.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", nutri.ErrMealNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("meal id prefix %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		all, _ := cmd.Flags().GetBool("all")
		if all {
			date = ""
		}

		a, err := newApp(cmd.Context(), "ListMeals")
		if err != nil {
			return err
		}
		defer a.Close()

		meals, err := a.ListMeals(date)
		if err != nil {
			return err
		}

		if len(meals) == 0 {
			fmt.Println("No meals logged.")
			return nil
		}

		var total float64
		for _, m := range meals {
			printMeal(m)
			total += m.Calories
		}
		fmt.Printf("\n%d meal(s), %.0f kcal\n", len(meals), total)
		return nil
	},
}

// water command
var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Log water intake",
}

var waterAddCmd = &cobra.Command{
	Use:   "add ML",
	Short: "Log a glass of water",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ml, err := parsePositive(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), "AddWater")
		if err != nil {
			return err
		}
		defer a.Close()

		_, res, err := a.AddWater(cmd.Context(), ml)
		if err != nil {
			return fmt.Errorf("adding water: %w", err)
		}

		today := a.Today()
		fmt.Printf("Water today: %.0f / %.0f ml\n", today.WaterMl, today.WaterGoalMl)
		printUnlocked(os.Stdout, res)
		return nil
	},
}

// weight command
var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Log body weight",
}

var weightAddCmd = &cobra.Command{
	Use:   "add KG",
	Short: "Log a weight measurement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kg, err := parsePositive(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), "AddWeight")
		if err != nil {
			return err
		}
		defer a.Close()

		e, res, err := a.AddWeight(cmd.Context(), kg)
		if err != nil {
			return fmt.Errorf("adding weight: %w", err)
		}

		fmt.Printf("Logged %.1f kg on %s\n", e.WeightKg, e.Date)
		printUnlocked(os.Stdout, res)
		return nil
	},
}

func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: expected a positive number, got %q", nutri.ErrInvalidInput, s)
	}
	return v, nil
}

// progress command
var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "View calorie trends",
	RunE: func(cmd *cobra.Command, args []string) error {
		rangeName, _ := cmd.Flags().GetString("range")
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := newApp(cmd.Context(), "Progress")
		if err != nil {
			return err
		}
		defer a.Close()

		rep, err := a.Progress(rangeName)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}

		var periods []progress.Period
		switch rep.Range {
		case progress.Weekly:
			periods = progress.Periods(rep.Weekly)
		case progress.Monthly:
			periods = progress.Periods(rep.Monthly)
		default:
			periods = progress.Periods(rep.Daily[len(rep.Daily)-progress.DailyWindow:])
		}
		for _, p := range periods {
			fmt.Printf("%-10s  %6.0f kcal\n", p.Label(), p.TotalCalories())
		}

		s := rep.Summary
		fmt.Printf("\nTotal:   %.0f kcal\n", s.Total)
		fmt.Printf("Average: %.0f kcal\n", s.Average)
		if s.Best != nil {
			fmt.Printf("Best:    %s (%.0f kcal)\n", s.Best.Label, s.Best.Value)
			fmt.Printf("Worst:   %s (%.0f kcal)\n", s.Worst.Label, s.Worst.Value)
		}
		return nil
	},
}

// today command
var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "View today's summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Today")
		if err != nil {
			return err
		}
		defer a.Close()

		t := a.Today()
		fmt.Printf("%s\n\n", t.Date)
		fmt.Printf("Calories: %.0f / %.0f kcal (%.0f%%), %.0f remaining\n",
			t.Calories.Consumed, t.Calories.Goal, t.Calories.Progress, t.Calories.Remaining)
		fmt.Printf("Meals:    %d\n", t.Calories.MealsCount)
		fmt.Printf("Water:    %.0f / %.0f ml\n", t.WaterMl, t.WaterGoalMl)
		fmt.Printf("Streak:   %d day(s). %s\n", t.Streak, t.StreakMessage)
		return nil
	},
}

// streak command
var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "View logging streaks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Streak")
		if err != nil {
			return err
		}
		defer a.Close()

		s := a.Streak()
		fmt.Printf("Current: %d day(s)\n", s.Current)
		fmt.Printf("Longest: %d day(s)\n", s.Longest)
		return nil
	},
}

// achievements command
var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "View achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Achievements")
		if err != nil {
			return err
		}
		defer a.Close()

		views := a.Achievements()
		unlocked := 0
		for _, v := range views {
			mark := "  "
			when := ""
			if v.IsUnlocked {
				mark = "✓ "
				unlocked++
				if v.UnlockedAt != nil {
					when = "  " + time.UnixMilli(*v.UnlockedAt).Format("2006-01-02")
				}
			}
			fmt.Printf("%s%s %-16s %s%s\n", mark, v.Icon, v.Title, v.Description, when)
		}
		fmt.Printf("\n%d / %d unlocked\n", unlocked, len(views))
		return nil
	},
}

// profile command
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the user profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "View the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "ShowProfile")
		if err != nil {
			return err
		}
		defer a.Close()

		p := a.Profile()
		fmt.Printf("Name:     %s\n", p.Name)
		fmt.Printf("Age:      %s\n", optional(p.Age, "%d"))
		fmt.Printf("Weight:   %s\n", optional(p.WeightKg, "%.1f kg"))
		fmt.Printf("Height:   %s\n", optional(p.HeightCm, "%.0f cm"))
		fmt.Printf("Gender:   %s\n", optional(p.Gender, "%s"))
		if p.ActivityLevel != nil {
			fmt.Printf("Activity: %s\n", goals.ActivityLabel(*p.ActivityLevel))
		} else {
			fmt.Printf("Activity: -\n")
		}
		fmt.Printf("\nCalories: %.0f kcal\n", goals.CalorieGoal(p))
		fmt.Printf("Protein:  %s\n", optional(p.TargetProtein, "%.0f g"))
		fmt.Printf("Carbs:    %s\n", optional(p.TargetCarbs, "%.0f g"))
		fmt.Printf("Fats:     %s\n", optional(p.TargetFats, "%.0f g"))
		fmt.Printf("Water:    %.0f ml\n", goals.WaterGoal(p))
		fmt.Printf("\nStreak:   %d (longest %d)\n", p.CurrentStreak, p.LongestStreak)
		return nil
	},
}

func optional[T any](v *T, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "SetProfile")
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.UpdateProfile(cmd.Context(), func(p *model.UserProfile) error {
			return applyProfileFlags(cmd, p)
		})
		if err != nil {
			return fmt.Errorf("updating profile: %w", err)
		}

		fmt.Printf("Profile updated for %s\n", p.Name)
		return nil
	},
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().Int("age", 0, "Age in years")
	cmd.Flags().Float64("weight", 0, "Weight (kg)")
	cmd.Flags().Float64("height", 0, "Height (cm)")
	cmd.Flags().String("gender", "", "male or female")
	cmd.Flags().String("activity", "", "sedentary, lightly_active, moderately_active, very_active or extra_active")
	cmd.Flags().Float64("target-calories", 0, "Daily calorie target (kcal, 0 clears)")
	cmd.Flags().Float64("target-protein", 0, "Daily protein target (g, 0 clears)")
	cmd.Flags().Float64("target-carbs", 0, "Daily carbohydrate target (g, 0 clears)")
	cmd.Flags().Float64("target-fats", 0, "Daily fat target (g, 0 clears)")
	cmd.Flags().Float64("target-water", 0, "Daily water target (ml, 0 clears)")
}

// applyProfileFlags copies every flag the user set onto p. A negative or
// zero target clears it.
func applyProfileFlags(cmd *cobra.Command, p *model.UserProfile) error {
	f := cmd.Flags()
	if f.Changed("name") {
		p.Name, _ = f.GetString("name")
	}
	if f.Changed("age") {
		age, _ := f.GetInt("age")
		p.Age = &age
	}
	if f.Changed("weight") {
		w, _ := f.GetFloat64("weight")
		p.WeightKg = &w
	}
	if f.Changed("height") {
		h, _ := f.GetFloat64("height")
		p.HeightCm = &h
	}
	if f.Changed("gender") {
		s, _ := f.GetString("gender")
		g := model.Gender(strings.ToLower(s))
		if g != model.Male && g != model.Female {
			return fmt.Errorf("unknown gender %q (want male or female)", s)
		}
		p.Gender = &g
	}
	if f.Changed("activity") {
		s, _ := f.GetString("activity")
		level, err := goals.ParseActivityLevel(s)
		if err != nil {
			return err
		}
		p.ActivityLevel = &level
	}

	targets := []struct {
		flag string
		dst  **float64
	}{
		{"target-calories", &p.TargetCalories},
		{"target-protein", &p.TargetProtein},
		{"target-carbs", &p.TargetCarbs},
		{"target-fats", &p.TargetFats},
		{"target-water", &p.TargetWaterMl},
	}
	for _, t := range targets {
		if !f.Changed(t.flag) {
			continue
		}
		v, _ := f.GetFloat64(t.flag)
		if v <= 0 {
			*t.dst = nil
			continue
		}
		*t.dst = &v
	}
	return nil
}

var profileGoalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Suggest a daily calorie goal from the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		apply, _ := cmd.Flags().GetBool("apply")

		a, err := newApp(cmd.Context(), "SuggestGoal")
		if err != nil {
			return err
		}
		defer a.Close()

		var goal float64
		if apply {
			goal, err = a.ApplySuggestedGoal(cmd.Context())
		} else {
			goal, err = a.SuggestedGoal()
		}
		if err != nil {
			return err
		}

		fmt.Printf("Suggested daily goal: %.0f kcal\n", goal)
		if apply {
			fmt.Println("Saved as your calorie target.")
		}
		return nil
	},
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		clearMeals, _ := cmd.Flags().GetBool("clear-meals")

		a, err := newApp(cmd.Context(), "ResetProfile")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ResetProfile(cmd.Context(), clearMeals); err != nil {
			if errors.Is(err, nutri.ErrPersistence) {
				return fmt.Errorf("profile unchanged: %w", err)
			}
			return err
		}

		if clearMeals {
			fmt.Println("Profile reset and meals cleared.")
		} else {
			fmt.Println("Profile reset.")
		}
		return nil
	},
}

// data command
var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Manage stored data",
}

var dataWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete every meal, intake, weight and achievement",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to wipe without --yes")
		}

		a, err := newApp(cmd.Context(), "WipeData")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.WipeData(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("All data deleted.")
		return nil
	},
}

// theme command
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage the display theme",
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "ToggleTheme")
		if err != nil {
			return err
		}
		defer a.Close()

		theme, err := a.ToggleTheme(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Theme: %s\n", theme)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().String("store", "", "Store backend: memory, filesystem, sqlite, postgres, redis or s3")
	configInitCmd.Flags().String("encryption", "", "Encryption: none or age")
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configKeysCmd)
	configKeysCmd.AddCommand(configKeysInitCmd)

	// meal subcommands
	mealCmd.AddCommand(mealAddCmd)
	addMealFlags(mealAddCmd)
	mealCmd.AddCommand(mealEditCmd)
	addMealFlags(mealEditCmd)
	mealCmd.AddCommand(mealDeleteCmd)
	mealCmd.AddCommand(mealListCmd)
	mealListCmd.Flags().StringP("date", "d", "today", "Day to list (YYYY-MM-DD or today)")
	mealListCmd.Flags().BoolP("all", "a", false, "List every meal, newest first")

	waterCmd.AddCommand(waterAddCmd)
	weightCmd.AddCommand(weightAddCmd)

	// profile subcommands
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	addProfileFlags(profileSetCmd)
	profileCmd.AddCommand(profileGoalCmd)
	profileGoalCmd.Flags().Bool("apply", false, "Save the suggestion as the calorie target")
	profileCmd.AddCommand(profileResetCmd)
	profileResetCmd.Flags().Bool("clear-meals", false, "Also delete every logged meal")

	themeCmd.AddCommand(themeToggleCmd)
	dataCmd.AddCommand(dataWipeCmd)
	dataWipeCmd.Flags().Bool("yes", false, "Confirm deleting all data")

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mealCmd)
	rootCmd.AddCommand(waterCmd)
	rootCmd.AddCommand(weightCmd)
	rootCmd.AddCommand(progressCmd)
	progressCmd.Flags().StringP("range", "r", "daily", "daily, weekly or monthly")
	progressCmd.Flags().Bool("json", false, "Print the full report as JSON")
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(dataCmd)
}
