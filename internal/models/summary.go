// ABOUTME: Read-only aggregates computed by the backend.
// ABOUTME: Dashboard summary, progress summary, trend points and personal records.
package models

// DashboardSummary is the server-computed overview.
type DashboardSummary struct {
	TotalWorkouts         int     `json:"totalWorkouts" yaml:"total_workouts" response:"gte=0"`
	TotalMeals            int     `json:"totalMeals" yaml:"total_meals" response:"gte=0"`
	TotalCaloriesConsumed float64 `json:"totalCaloriesConsumed" yaml:"total_calories_consumed" response:"gte=0"`
	TotalCaloriesBurned   float64 `json:"totalCaloriesBurned" yaml:"total_calories_burned" response:"gte=0"`
}

// ValidateResponse rejects malformed server payloads.
func (s *DashboardSummary) ValidateResponse() error {
	return checkShape(s)
}

// ProgressSummary totals activity and mood across all time.
type ProgressSummary struct {
	TotalWorkouts    int     `json:"totalWorkouts" yaml:"total_workouts" response:"gte=0"`
	TotalMeals       int     `json:"totalMeals" yaml:"total_meals" response:"gte=0"`
	TotalMoodEntries int     `json:"totalMoodEntries" yaml:"total_mood_entries" response:"gte=0"`
	LongestStreak    int     `json:"longestStreak" yaml:"longest_streak" response:"gte=0"`
	AverageScore     float64 `json:"averageScore" yaml:"average_score" response:"gte=0,lte=5"`
}

// ValidateResponse rejects malformed server payloads.
func (s *ProgressSummary) ValidateResponse() error {
	return checkShape(s)
}

// TrendPoint is one sample of the progress time series.
type TrendPoint struct {
	Date  Date    `json:"date" yaml:"date" response:"required"`
	Score float64 `json:"score" yaml:"score"`
}

// ValidateResponse rejects points without a date.
func (p *TrendPoint) ValidateResponse() error {
	return checkShape(p)
}

// PersonalRecord is the best value achieved for an exercise.
type PersonalRecord struct {
	Name  string  `json:"name" yaml:"name" response:"required"`
	Date  Date    `json:"date" yaml:"date"`
	Value float64 `json:"value" yaml:"value" response:"gte=0"`
	Unit  string  `json:"unit" yaml:"unit"`
}

// ValidateResponse rejects malformed records.
func (r *PersonalRecord) ValidateResponse() error {
	return checkShape(r)
}
