// ABOUTME: CLI commands for logging meals and reading nutrition totals.
// ABOUTME: Supports add, list, update, delete, today, and week subcommands.
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/wellness/internal/aggregate"
	"github.com/harperreed/wellness/internal/models"
)

var (
	mealType     string
	mealCalories float64
	mealProtein  float64
	mealCarbs    float64
	mealFat      float64
	mealAt       string
	mealNotes    string
	mealLimit    int
	mealDay      string
)

var mealCmd = &cobra.Command{
	Use:     "meal",
	Aliases: []string{"m"},
	Short:   "Log meals and macros",
	Long: `Log meals with calories and macronutrients.

COMMANDS:

  add      Log a meal
  list     List recent meals
  update   Change fields of a meal
  delete   Delete a meal
  today    Today's meals and macro totals
  week     Calories and macros per day for the last week

Meal types: breakfast, lunch, dinner, snack.`,
}

var mealAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Log a meal",
	Long: `Log a meal.

Examples:
  wellness meal add Oatmeal --type breakfast --calories 350 --protein 12 --carbs 60 --fat 6
  wellness meal add "Chicken salad" -t lunch -c 450 --at "2024-01-15 12:30"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m := models.NewMeal(args[0], models.MealType(strings.ToLower(mealType)),
			mealCalories, mealProtein, mealCarbs, mealFat)
		if mealAt != "" {
			t, err := parseTime(mealAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", mealAt)
			}
			m.WithDateTime(t)
		}
		if mealNotes != "" {
			m.WithNotes(mealNotes)
		}

		created, err := layer.AddMeal(cmd.Context(), m)
		if err != nil {
			return err
		}

		success(cmd, "Added %s", created.Title)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %.0f kcal\n",
			color.New(color.Faint).Sprint(shortID(created.ID)), created.Type, created.Calories)
		return nil
	},
}

var mealListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent meals",
	Long: `List recent meals, newest first.

Each line shows: ID  TIME  TYPE  TITLE  KCAL  P/C/F  (NOTES)

Examples:
  wellness meal list
  wellness meal list --day 2024-01-15`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		meals, err := layer.Meals(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list meals: %w", err)
		}
		if mealDay != "" {
			day, err := models.ParseDate(mealDay)
			if err != nil {
				return err
			}
			meals = mealsOn(meals, day)
		}

		out := cmd.OutOrStdout()
		if len(meals) == 0 {
			fmt.Fprintln(out, "No meals found.")
			return nil
		}
		printMeals(cmd, newestMeals(meals, mealLimit))
		return nil
	},
}

var mealUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a meal",
	Long: `Change fields of a meal. Only the flags you pass are changed.

Examples:
  wellness meal update 9c1e --calories 420
  wellness meal update 9c1e --title "Greek yogurt" --type snack`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		meals, err := layer.Meals(ctx)
		if err != nil {
			return fmt.Errorf("failed to load meals: %w", err)
		}
		id, err := resolveID(idsOf(meals, mealID), args[0])
		if err != nil {
			return err
		}

		m := *findByID(meals, id, mealID)
		flags := cmd.Flags()
		if flags.Changed("title") {
			m.Title, _ = flags.GetString("title")
		}
		if flags.Changed("type") {
			m.Type = models.MealType(strings.ToLower(mealType))
		}
		if flags.Changed("calories") {
			m.Calories = mealCalories
		}
		if flags.Changed("protein") {
			m.Protein = mealProtein
		}
		if flags.Changed("carbs") {
			m.Carbs = mealCarbs
		}
		if flags.Changed("fat") {
			m.Fat = mealFat
		}
		if flags.Changed("at") {
			t, err := parseTime(mealAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", mealAt)
			}
			m.DateTime = t
		}
		if flags.Changed("notes") {
			m.WithNotes(mealNotes)
		}

		updated, err := layer.UpdateMeal(ctx, id, &m)
		if err != nil {
			return err
		}
		success(cmd, "Updated %s", updated.Title)
		return nil
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a meal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		meals, err := layer.Meals(ctx)
		if err != nil {
			return fmt.Errorf("failed to load meals: %w", err)
		}
		id, err := resolveID(idsOf(meals, mealID), args[0])
		if err != nil {
			return err
		}
		m := findByID(meals, id, mealID)

		if err := layer.DeleteMeal(ctx, id); err != nil {
			return fmt.Errorf("failed to delete meal: %w", err)
		}
		removed(cmd, "Deleted %s", m.Title)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %.0f kcal\n", color.New(color.Faint).Sprint(shortID(id)), m.Calories)
		return nil
	},
}

var mealTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Today's meals and macro totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		today := models.Today()
		macros, err := layer.DailyMacros(ctx, today)
		if err != nil {
			return fmt.Errorf("failed to total macros: %w", err)
		}
		meals, err := layer.Meals(ctx)
		if err != nil {
			return fmt.Errorf("failed to list meals: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.Bold).Fprintf(out, "Today (%s)\n", today)
		printMacros(cmd, macros)
		if todays := mealsOn(meals, today); len(todays) > 0 {
			fmt.Fprintln(out)
			printMeals(cmd, todays)
		}
		return nil
	},
}

var mealWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Calories and macros per day for the last week",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := layer.WeeklyNutrition(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load nutrition: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(days) == 0 {
			fmt.Fprintln(out, "No meals found.")
			return nil
		}

		var peak float64
		for _, d := range days {
			if d.Calories > peak {
				peak = d.Calories
			}
		}
		faint := color.New(color.Faint)
		for _, d := range days {
			fmt.Fprintf(out, "%s %6.0f kcal %s %s\n",
				faint.Sprint(d.Date),
				d.Calories,
				padRight(bar(d.Calories, peak, 30), 30),
				faint.Sprintf("P %.0fg C %.0fg F %.0fg", d.Protein, d.Carbs, d.Fat))
		}
		return nil
	},
}

func mealID(m *models.Meal) string { return m.ID }

func mealsOn(meals []*models.Meal, day models.Date) []*models.Meal {
	var out []*models.Meal
	for _, m := range meals {
		if models.DateOf(m.DateTime).Equal(day) {
			out = append(out, m)
		}
	}
	return out
}

// newestMeals returns up to limit meals, most recently eaten first.
func newestMeals(meals []*models.Meal, limit int) []*models.Meal {
	out := append([]*models.Meal(nil), meals...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateTime.After(out[j].DateTime) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func printMeals(cmd *cobra.Command, meals []*models.Meal) {
	out := cmd.OutOrStdout()
	faint := color.New(color.Faint)
	for _, m := range meals {
		fmt.Fprintf(out, "%s %s %s %s %6.0f kcal  P %.0f C %.0f F %.0f%s\n",
			faint.Sprint(shortID(m.ID)),
			faint.Sprint(m.DateTime.Local().Format("2006-01-02 15:04")),
			padRight(string(m.Type), 9),
			padRight(truncate(m.Title, 24), 24),
			m.Calories, m.Protein, m.Carbs, m.Fat,
			notesOf(m.Notes))
	}
}

func printMacros(cmd *cobra.Command, m aggregate.Macros) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %-9s %7.0f kcal\n  %-9s %7.0f g\n  %-9s %7.0f g\n  %-9s %7.0f g\n",
		"Calories", m.Calories, "Protein", m.Protein, "Carbs", m.Carbs, "Fat", m.Fat)
}

func init() {
	mealAddCmd.Flags().StringVarP(&mealType, "type", "t", "", "meal type (breakfast, lunch, dinner, snack)")
	mealAddCmd.Flags().Float64VarP(&mealCalories, "calories", "c", 0, "calories (kcal)")
	mealAddCmd.Flags().Float64Var(&mealProtein, "protein", 0, "protein in grams")
	mealAddCmd.Flags().Float64Var(&mealCarbs, "carbs", 0, "carbohydrates in grams")
	mealAddCmd.Flags().Float64Var(&mealFat, "fat", 0, "fat in grams")
	mealAddCmd.Flags().StringVar(&mealAt, "at", "", "when it was eaten (YYYY-MM-DD HH:MM, default now)")
	mealAddCmd.Flags().StringVar(&mealNotes, "notes", "", "notes for the meal")

	mealListCmd.Flags().IntVarP(&mealLimit, "limit", "n", 20, "max number of results")
	mealListCmd.Flags().StringVar(&mealDay, "day", "", "only meals eaten on this day (YYYY-MM-DD)")

	mealUpdateCmd.Flags().String("title", "", "what was eaten")
	mealUpdateCmd.Flags().StringVarP(&mealType, "type", "t", "", "meal type")
	mealUpdateCmd.Flags().Float64VarP(&mealCalories, "calories", "c", 0, "calories (kcal)")
	mealUpdateCmd.Flags().Float64Var(&mealProtein, "protein", 0, "protein in grams")
	mealUpdateCmd.Flags().Float64Var(&mealCarbs, "carbs", 0, "carbohydrates in grams")
	mealUpdateCmd.Flags().Float64Var(&mealFat, "fat", 0, "fat in grams")
	mealUpdateCmd.Flags().StringVar(&mealAt, "at", "", "when it was eaten (YYYY-MM-DD HH:MM)")
	mealUpdateCmd.Flags().StringVar(&mealNotes, "notes", "", "notes for the meal")

	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealUpdateCmd, mealDeleteCmd, mealTodayCmd, mealWeekCmd)
	rootCmd.AddCommand(mealCmd)
}
