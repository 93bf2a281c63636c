// ABOUTME: CLI commands for mood tracking.
// ABOUTME: Supports add, list, delete, and chart subcommands.
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
	moodEnergy int
	moodNotes  string
	moodAt     string
	moodLimit  int
)

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Track mood and energy",
	Long: `Track how you feel. Each entry has a mood label and an energy level from 1 to 10.

MOODS (best to worst):

  great  good  okay  low  poor

The chart maps moods to a 1-5 score (great = 5, poor = 1).`,
}

var moodAddCmd = &cobra.Command{
	Use:       "add <mood>",
	Short:     "Log a mood",
	ValidArgs: []string{"great", "good", "okay", "low", "poor"},
	Long: `Log a mood.

Examples:
  wellness mood add good --energy 7
  wellness mood add low -e 3 --notes "slept badly"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := models.NewMoodEntry(parseMood(args[0]), moodEnergy)
		if moodAt != "" {
			t, err := parseTime(moodAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", moodAt)
			}
			e.WithDate(t)
		}
		if moodNotes != "" {
			e.WithNotes(moodNotes)
		}

		created, err := layer.AddMood(cmd.Context(), e)
		if err != nil {
			return err
		}
		success(cmd, "Logged %s", created.Mood)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s energy %d/10\n",
			color.New(color.Faint).Sprint(shortID(created.ID)), created.Energy)
		return nil
	},
}

var moodListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent mood entries",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := layer.Moods(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list moods: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No mood entries found.")
			return nil
		}

		rows := append([]*models.MoodEntry(nil), entries...)
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
		if len(rows) > moodLimit {
			rows = rows[:moodLimit]
		}

		faint := color.New(color.Faint)
		for _, e := range rows {
			fmt.Fprintf(out, "%s %s %s score %d  energy %2d%s\n",
				faint.Sprint(shortID(e.ID)),
				faint.Sprint(e.Date.Local().Format("2006-01-02 15:04")),
				padRight(string(e.Mood), 6),
				aggregate.MoodScore(e.Mood),
				e.Energy,
				notesOf(e.Notes))
		}
		return nil
	},
}

var moodDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a mood entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		entries, err := layer.Moods(ctx)
		if err != nil {
			return fmt.Errorf("failed to load moods: %w", err)
		}
		id, err := resolveID(idsOf(entries, moodID), args[0])
		if err != nil {
			return err
		}
		e := findByID(entries, id, moodID)

		if err := layer.DeleteMood(ctx, id); err != nil {
			return fmt.Errorf("failed to delete mood entry: %w", err)
		}
		removed(cmd, "Deleted %s", e.Mood)
		return nil
	},
}

var moodChartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Mood score per entry, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := layer.MoodChart(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load moods: %w", err)
		}
		printTrend(cmd, points)
		return nil
	},
}

func moodID(e *models.MoodEntry) string { return e.ID }

// parseMood accepts any casing of a mood label.
func parseMood(s string) models.Mood {
	for _, m := range models.AllMoods {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m
		}
	}
	return models.Mood(s)
}

func printTrend(cmd *cobra.Command, points []models.TrendPoint) {
	out := cmd.OutOrStdout()
	if len(points) == 0 {
		fmt.Fprintln(out, "No mood entries found.")
		return
	}
	faint := color.New(color.Faint)
	for _, p := range points {
		fmt.Fprintf(out, "%s %.1f %s\n", faint.Sprint(p.Date), p.Score, bar(p.Score, 5, 20))
	}
	var sum float64
	for _, p := range points {
		sum += p.Score
	}
	fmt.Fprintf(out, "Average %.2f over %d entries\n", sum/float64(len(points)), len(points))
}

func init() {
	moodAddCmd.Flags().IntVarP(&moodEnergy, "energy", "e", 5, "energy level 1-10")
	moodAddCmd.Flags().StringVar(&moodNotes, "notes", "", "notes for the entry")
	moodAddCmd.Flags().StringVar(&moodAt, "at", "", "when it was recorded (YYYY-MM-DD HH:MM, default now)")

	moodListCmd.Flags().IntVarP(&moodLimit, "limit", "n", 20, "max number of results")

	moodCmd.AddCommand(moodAddCmd, moodListCmd, moodDeleteCmd, moodChartCmd)
	rootCmd.AddCommand(moodCmd)
}
