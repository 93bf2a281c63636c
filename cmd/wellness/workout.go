// ABOUTME: CLI commands for managing workouts.
// ABOUTME: Supports add, list, update, delete, and volume subcommands.
package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/wellness/internal/models"
)

var (
	workoutMuscle   string
	workoutSets     int
	workoutReps     int
	workoutWeight   float64
	workoutDate     string
	workoutDuration int
	workoutCalories float64
	workoutNotes    string
	workoutLimit    int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workouts",
	Long: `Track strength workouts: one exercise per entry with sets, reps and weight.

COMMANDS:

  add      Log a workout
  list     List recent workouts
  update   Change fields of a workout
  delete   Delete a workout
  volume   Training volume per day for the last week

Volume is sets x reps x weight. IDs may be shortened to any unique prefix.`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <exercise>",
	Short: "Log a workout",
	Long: `Log a workout.

Examples:
  wellness workout add "Bench Press" --muscle Chest --sets 4 --reps 10 --weight 80
  wellness workout add Squat -m Legs -s 5 -r 5 -w 100 --date 2024-01-15 --duration 45`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := models.NewWorkout(args[0], workoutMuscle, workoutSets, workoutReps, workoutWeight)
		if workoutDate != "" {
			d, err := models.ParseDate(workoutDate)
			if err != nil {
				return err
			}
			w.WithDate(d)
		}
		if workoutDuration > 0 {
			w.WithDuration(workoutDuration)
		}
		if workoutCalories > 0 {
			w.WithCaloriesBurned(workoutCalories)
		}
		if workoutNotes != "" {
			w.WithNotes(workoutNotes)
		}

		created, err := layer.AddWorkout(cmd.Context(), w)
		if err != nil {
			return err
		}

		success(cmd, "Added %s", created.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %dx%d @ %.1f kg\n",
			color.New(color.Faint).Sprint(shortID(created.ID)),
			created.Date, created.Sets, created.Reps, created.Weight)
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent workouts",
	Long: `List recent workouts, newest first.

Each line shows: ID  DATE  EXERCISE  MUSCLE  SETSxREPS @ WEIGHT  (NOTES)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := layer.Workouts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(workouts) == 0 {
			fmt.Fprintln(out, "No workouts found.")
			return nil
		}

		rows := newestWorkouts(workouts, workoutLimit)
		faint := color.New(color.Faint)
		for _, w := range rows {
			fmt.Fprintf(out, "%s %s %s %s %dx%d @ %.1f kg%s\n",
				faint.Sprint(shortID(w.ID)),
				faint.Sprint(w.Date),
				padRight(w.Name, 20),
				padRight(w.MuscleGroup, 10),
				w.Sets, w.Reps, w.Weight,
				notesOf(w.Notes))
		}
		return nil
	},
}

var workoutUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a workout",
	Long: `Change fields of a workout. Only the flags you pass are changed.

Examples:
  wellness workout update 3f2a --weight 85
  wellness workout update 3f2a --reps 8 --notes "last set to failure"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		workouts, err := layer.Workouts(ctx)
		if err != nil {
			return fmt.Errorf("failed to load workouts: %w", err)
		}
		id, err := resolveID(idsOf(workouts, workoutID), args[0])
		if err != nil {
			return err
		}

		w := *findByID(workouts, id, workoutID)
		flags := cmd.Flags()
		if flags.Changed("name") {
			w.Name, _ = flags.GetString("name")
		}
		if flags.Changed("muscle") {
			w.MuscleGroup = workoutMuscle
		}
		if flags.Changed("sets") {
			w.Sets = workoutSets
		}
		if flags.Changed("reps") {
			w.Reps = workoutReps
		}
		if flags.Changed("weight") {
			w.Weight = workoutWeight
		}
		if flags.Changed("date") {
			d, err := models.ParseDate(workoutDate)
			if err != nil {
				return err
			}
			w.Date = d
		}
		if flags.Changed("duration") {
			w.WithDuration(workoutDuration)
		}
		if flags.Changed("calories") {
			w.WithCaloriesBurned(workoutCalories)
		}
		if flags.Changed("notes") {
			w.WithNotes(workoutNotes)
		}

		updated, err := layer.UpdateWorkout(ctx, id, &w)
		if err != nil {
			return err
		}
		success(cmd, "Updated %s", updated.Name)
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a workout",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		workouts, err := layer.Workouts(ctx)
		if err != nil {
			return fmt.Errorf("failed to load workouts: %w", err)
		}
		id, err := resolveID(idsOf(workouts, workoutID), args[0])
		if err != nil {
			return err
		}
		w := findByID(workouts, id, workoutID)

		if err := layer.DeleteWorkout(ctx, id); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}
		removed(cmd, "Deleted %s", w.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", color.New(color.Faint).Sprint(shortID(id)), w.Date)
		return nil
	},
}

var workoutVolumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Training volume per day for the last week",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := layer.WeeklyTraining(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load training: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(days) == 0 {
			fmt.Fprintln(out, "No workouts found.")
			return nil
		}

		var peak, total float64
		for _, d := range days {
			total += d.Volume
			if d.Volume > peak {
				peak = d.Volume
			}
		}
		faint := color.New(color.Faint)
		for _, d := range days {
			fmt.Fprintf(out, "%s %8.0f kg %s %s\n",
				faint.Sprint(d.Date),
				d.Volume,
				padRight(bar(d.Volume, peak, 30), 30),
				faint.Sprintf("%d workouts, %.0f kcal", d.Workouts, d.CaloriesBurned))
		}
		fmt.Fprintf(out, "Total %.0f kg\n", total)
		return nil
	},
}

func workoutID(w *models.Workout) string { return w.ID }

// newestWorkouts returns up to limit workouts with the most recent date first.
func newestWorkouts(workouts []*models.Workout, limit int) []*models.Workout {
	out := append([]*models.Workout(nil), workouts...)
	sort.SliceStable(out, func(i, j int) bool { return out[j].Date.Before(out[i].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func init() {
	workoutAddCmd.Flags().StringVarP(&workoutMuscle, "muscle", "m", "", "muscle group (e.g. Chest, Legs)")
	workoutAddCmd.Flags().IntVarP(&workoutSets, "sets", "s", 1, "number of sets")
	workoutAddCmd.Flags().IntVarP(&workoutReps, "reps", "r", 1, "reps per set")
	workoutAddCmd.Flags().Float64VarP(&workoutWeight, "weight", "w", 0, "weight in kg")
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "day of the workout (YYYY-MM-DD, default today)")
	workoutAddCmd.Flags().IntVar(&workoutDuration, "duration", 0, "duration in minutes")
	workoutAddCmd.Flags().Float64Var(&workoutCalories, "calories", 0, "calories burned")
	workoutAddCmd.Flags().StringVar(&workoutNotes, "notes", "", "notes for the workout")

	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutUpdateCmd.Flags().String("name", "", "exercise name")
	workoutUpdateCmd.Flags().StringVarP(&workoutMuscle, "muscle", "m", "", "muscle group")
	workoutUpdateCmd.Flags().IntVarP(&workoutSets, "sets", "s", 1, "number of sets")
	workoutUpdateCmd.Flags().IntVarP(&workoutReps, "reps", "r", 1, "reps per set")
	workoutUpdateCmd.Flags().Float64VarP(&workoutWeight, "weight", "w", 0, "weight in kg")
	workoutUpdateCmd.Flags().StringVar(&workoutDate, "date", "", "day of the workout (YYYY-MM-DD)")
	workoutUpdateCmd.Flags().IntVar(&workoutDuration, "duration", 0, "duration in minutes")
	workoutUpdateCmd.Flags().Float64Var(&workoutCalories, "calories", 0, "calories burned")
	workoutUpdateCmd.Flags().StringVar(&workoutNotes, "notes", "", "notes for the workout")

	workoutCmd.AddCommand(workoutAddCmd, workoutListCmd, workoutUpdateCmd, workoutDeleteCmd, workoutVolumeCmd)
	rootCmd.AddCommand(workoutCmd)
}
