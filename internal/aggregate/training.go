// ABOUTME: Training aggregates: per-workout volume and per-day workout rows.
// ABOUTME: Non-finite or negative inputs count as zero so charts never see NaN.
package aggregate

import (
	"sort"

	"github.com/harperreed/wellness/internal/models"
)

// Volume returns sets × reps × weight for a workout.
func Volume(w *models.Workout) float64 {
	if w == nil {
		return 0
	}
	return num(float64(w.Sets)) * num(float64(w.Reps)) * num(w.Weight)
}

// TotalVolume sums Volume over workouts.
func TotalVolume(workouts []*models.Workout) float64 {
	var total float64
	for _, w := range workouts {
		total += Volume(w)
	}
	return total
}

// CaloriesBurned returns the workout's calories, or 0 when absent.
func CaloriesBurned(w *models.Workout) float64 {
	if w == nil || w.CaloriesBurned == nil {
		return 0
	}
	return num(*w.CaloriesBurned)
}

// WorkoutDay is one chart row of workout totals.
type WorkoutDay struct {
	Date           models.Date `json:"date" yaml:"date"`
	Workouts       int         `json:"workouts" yaml:"workouts"`
	Volume         float64     `json:"volume" yaml:"volume"`
	CaloriesBurned float64     `json:"caloriesBurned" yaml:"calories_burned"`
	Minutes        int         `json:"minutes" yaml:"minutes"`
}

// GroupWorkoutsByDay returns one row per distinct workout date, ascending.
func GroupWorkoutsByDay(workouts []*models.Workout) []WorkoutDay {
	byDay := make(map[models.Date]*WorkoutDay)
	for _, w := range workouts {
		if w == nil || w.Date.IsZero() {
			continue
		}
		row, ok := byDay[w.Date]
		if !ok {
			row = &WorkoutDay{Date: w.Date}
			byDay[w.Date] = row
		}
		row.Workouts++
		row.Volume += Volume(w)
		row.CaloriesBurned += CaloriesBurned(w)
		if w.DurationMinutes != nil && *w.DurationMinutes > 0 {
			row.Minutes += *w.DurationMinutes
		}
	}

	rows := make([]WorkoutDay, 0, len(byDay))
	for _, row := range byDay {
		rows = append(rows, *row)
	}
	sortByDate(rows, func(r WorkoutDay) models.Date { return r.Date })
	return rows
}

// PersonalRecords returns the heaviest weight lifted per exercise name,
// sorted by name. Ties keep the earliest date.
func PersonalRecords(workouts []*models.Workout) []models.PersonalRecord {
	best := make(map[string]models.PersonalRecord)
	for _, w := range workouts {
		if w == nil || w.Name == "" {
			continue
		}
		weight := num(w.Weight)
		cur, ok := best[w.Name]
		if !ok || weight > cur.Value || (weight == cur.Value && w.Date.Before(cur.Date)) {
			best[w.Name] = models.PersonalRecord{
				Name:  w.Name,
				Date:  w.Date,
				Value: weight,
				Unit:  "kg",
			}
		}
	}

	records := make([]models.PersonalRecord, 0, len(best))
	for _, r := range best {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records
}
