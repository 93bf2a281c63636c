// ABOUTME: Dashboard and progress commands.
// ABOUTME: The dashboard mounts an observer on the summary and can refresh on an interval.
package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/wellness/internal/data"
	"github.com/harperreed/wellness/internal/models"
	"github.com/harperreed/wellness/internal/query"
)

var dashboardWatch time.Duration

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Totals for workouts, meals and calories",
	Long: `Show server totals for workouts, meals and calories, plus today's macros.

With --watch the summary is invalidated on the given interval and redrawn
whenever fresh data arrives. Press Ctrl-C to stop.

Examples:
  wellness dashboard
  wellness dashboard --watch 30s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var (
			mu     sync.Mutex
			latest query.State[*models.DashboardSummary]
		)
		settled := make(chan struct{}, 1)

		obs := layer.ObserveDashboardSummary(func(s query.State[*models.DashboardSummary]) {
			if s.Status != query.StatusSuccess && s.Status != query.StatusError {
				return
			}
			mu.Lock()
			latest = s
			mu.Unlock()
			select {
			case settled <- struct{}{}:
			default:
			}
		})
		defer obs.Close()

		var tick <-chan time.Time
		if dashboardWatch > 0 {
			ticker := time.NewTicker(dashboardWatch)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case <-settled:
				mu.Lock()
				s := latest
				mu.Unlock()
				err := renderDashboard(cmd, s)
				if dashboardWatch == 0 {
					return err
				}
				if err != nil {
					warn(cmd, "%v", err)
				}
			case <-tick:
				layer.Cache().Invalidate(data.DashboardSummaryKey)
			case <-ctx.Done():
				if dashboardWatch > 0 {
					return nil
				}
				return ctx.Err()
			}
		}
	},
}

func renderDashboard(cmd *cobra.Command, s query.State[*models.DashboardSummary]) error {
	out := cmd.OutOrStdout()
	if s.Status == query.StatusError {
		if !s.HasData {
			return fmt.Errorf("failed to load dashboard: %w", s.Err)
		}
		warn(cmd, "Showing last known totals: %v", s.Err)
	}

	d := s.Data
	bold := color.New(color.Bold)
	bold.Fprintf(out, "Dashboard %s\n", color.New(color.Faint).Sprint(s.UpdatedAt.Local().Format("15:04:05")))
	fmt.Fprintf(out, "  %s %d\n", padRight("Workouts", 18), d.TotalWorkouts)
	fmt.Fprintf(out, "  %s %d\n", padRight("Meals", 18), d.TotalMeals)
	fmt.Fprintf(out, "  %s %.0f kcal\n", padRight("Calories eaten", 18), d.TotalCaloriesConsumed)
	fmt.Fprintf(out, "  %s %.0f kcal\n", padRight("Calories burned", 18), d.TotalCaloriesBurned)
	fmt.Fprintf(out, "  %s %+.0f kcal\n", padRight("Net", 18), d.TotalCaloriesConsumed-d.TotalCaloriesBurned)

	macros, err := layer.DailyMacros(cmd.Context(), models.Today())
	if err != nil {
		warn(cmd, "Today's macros unavailable: %v", err)
		return nil
	}
	bold.Fprintln(out, "Today")
	printMacros(cmd, macros)
	return nil
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Progress summary, mood trend and personal records",
}

var progressSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "All-time totals, longest streak and average mood",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := layer.ProgressSummary(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load progress: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "  %s %d\n", padRight("Workouts", 16), s.TotalWorkouts)
		fmt.Fprintf(out, "  %s %d\n", padRight("Meals", 16), s.TotalMeals)
		fmt.Fprintf(out, "  %s %d\n", padRight("Mood entries", 16), s.TotalMoodEntries)
		fmt.Fprintf(out, "  %s %d days\n", padRight("Longest streak", 16), s.LongestStreak)
		fmt.Fprintf(out, "  %s %.2f / 5\n", padRight("Average mood", 16), s.AverageScore)
		return nil
	},
}

var progressTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Mood score over time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := layer.ProgressTrend(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load trend: %w", err)
		}
		printTrend(cmd, points)
		return nil
	},
}

var progressRecordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Heaviest weight lifted per exercise",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := layer.ProgressRecords(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No personal records yet.")
			return nil
		}
		faint := color.New(color.Faint)
		for _, r := range records {
			fmt.Fprintf(out, "%s %7.1f %s %s\n", padRight(r.Name, 20), r.Value, r.Unit, faint.Sprint(r.Date))
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().DurationVar(&dashboardWatch, "watch", 0, "refresh interval (e.g. 30s); 0 shows once")

	progressCmd.AddCommand(progressSummaryCmd, progressTrendCmd, progressRecordsCmd)
	rootCmd.AddCommand(dashboardCmd, progressCmd)
}
