// ABOUTME: Dashboard and progress endpoints, computed from the caller's entries.
// ABOUTME: Uses the same aggregate helpers as the client so both agree on totals.
package fakeapi

import (
	"net/http"

	"github.com/harperreed/wellness/internal/aggregate"
	"github.com/harperreed/wellness/internal/models"
)

func (s *Server) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	var summary models.DashboardSummary
	s.view(r, func(a *account) {
		summary.TotalWorkouts = len(a.workouts)
		summary.TotalMeals = len(a.meals)
		for _, m := range a.meals {
			summary.TotalCaloriesConsumed += m.Calories
		}
		for _, wk := range a.workouts {
			summary.TotalCaloriesBurned += aggregate.CaloriesBurned(wk)
		}
	})
	writeJSON(w, http.StatusOK, &summary)
}

func (s *Server) progressSummary(w http.ResponseWriter, r *http.Request) {
	var summary models.ProgressSummary
	s.view(r, func(a *account) {
		summary.TotalWorkouts = len(a.workouts)
		summary.TotalMeals = len(a.meals)
		summary.TotalMoodEntries = len(a.moods)
		summary.AverageScore = aggregate.AverageMoodScore(a.moods)
		summary.LongestStreak = aggregate.LongestStreak(activeDays(a))
	})
	writeJSON(w, http.StatusOK, &summary)
}

func (s *Server) progressTrend(w http.ResponseWriter, r *http.Request) {
	var points []models.TrendPoint
	s.view(r, func(a *account) {
		points = aggregate.MoodSeries(a.moods)
	})
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) progressRecords(w http.ResponseWriter, r *http.Request) {
	var records []models.PersonalRecord
	s.view(r, func(a *account) {
		records = aggregate.PersonalRecords(a.workouts)
	})
	writeJSON(w, http.StatusOK, records)
}

// activeDays lists every day with a workout, meal or mood entry.
func activeDays(a *account) []models.Date {
	days := make([]models.Date, 0, len(a.workouts)+len(a.meals)+len(a.moods))
	for _, w := range a.workouts {
		days = append(days, w.Date)
	}
	for _, m := range a.meals {
		days = append(days, models.DateOf(m.DateTime))
	}
	for _, e := range a.moods {
		days = append(days, models.DateOf(e.Date))
	}
	return days
}
