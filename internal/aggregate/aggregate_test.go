// ABOUTME: Tests for nutrition, training, mood and series aggregates.
// ABOUTME: Covers empty input, determinism, NaN guards and date ordering.
package aggregate

import (
	"math"
	"testing"
	"time"

	"github.com/harperreed/wellness/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.Local)
}

func sampleMeals() []*models.Meal {
	return []*models.Meal{
		models.NewMeal("Oatmeal", models.MealBreakfast, 350, 12, 60, 6).WithDateTime(at(2024, 1, 15, 8)),
		models.NewMeal("Chicken salad", models.MealLunch, 520, 45, 20, 25).WithDateTime(at(2024, 1, 15, 13)),
		models.NewMeal("Pasta", models.MealDinner, 700, 25, 110, 15).WithDateTime(at(2024, 1, 14, 19)),
		models.NewMeal("Apple", models.MealSnack, 95, 0.5, 25, 0.3).WithDateTime(at(2024, 1, 16, 16)),
	}
}

func TestDailyMacros(t *testing.T) {
	got := DailyMacros(sampleMeals(), models.NewDate(2024, time.January, 15))
	assert.Equal(t, Macros{Calories: 870, Protein: 57, Carbs: 80, Fat: 31}, got)
}

func TestDailyMacrosEmpty(t *testing.T) {
	assert.Equal(t, Macros{}, DailyMacros(nil, models.Today()))
	assert.Equal(t, Macros{}, DailyMacros([]*models.Meal{}, models.Today()))
	assert.Equal(t, Macros{}, DailyMacros(sampleMeals(), models.NewDate(2023, time.June, 1)))
}

func TestDailyMacrosDeterministic(t *testing.T) {
	meals := sampleMeals()
	day := models.NewDate(2024, time.January, 15)
	assert.Equal(t, DailyMacros(meals, day), DailyMacros(meals, day))
}

func TestDailyMacrosIgnoresNaN(t *testing.T) {
	meals := []*models.Meal{
		models.NewMeal("Mystery", models.MealSnack, math.NaN(), 1, 1, 1).WithDateTime(at(2024, 1, 15, 9)),
		nil,
	}
	got := DailyMacros(meals, models.NewDate(2024, time.January, 15))
	assert.Equal(t, Macros{Calories: 0, Protein: 1, Carbs: 1, Fat: 1}, got)
}

func TestGroupMealsByDay(t *testing.T) {
	rows := GroupMealsByDay(sampleMeals())
	require.Len(t, rows, 3)

	assert.Equal(t, "2024-01-14", rows[0].Date.String())
	assert.Equal(t, "2024-01-15", rows[1].Date.String())
	assert.Equal(t, "2024-01-16", rows[2].Date.String())
	assert.Equal(t, 2, rows[1].Meals)
	assert.Equal(t, 870.0, rows[1].Calories)
}

func TestGroupMealsByDayLastWeek(t *testing.T) {
	var meals []*models.Meal
	for d := 1; d <= 10; d++ {
		meals = append(meals, models.NewMeal("Meal", models.MealLunch, float64(d*100), 1, 1, 1).WithDateTime(at(2024, 2, d, 12)))
	}
	week := LastN(GroupMealsByDay(meals), WeekDays)
	require.Len(t, week, 7)
	assert.Equal(t, "2024-02-04", week[0].Date.String())
	assert.Equal(t, "2024-02-10", week[6].Date.String())
}

func TestVolume(t *testing.T) {
	tests := []struct {
		name string
		w    *models.Workout
		want float64
	}{
		{"bench press", models.NewWorkout("Bench Press", "Chest", 4, 10, 80), 3200},
		{"zero sets", models.NewWorkout("Bench Press", "Chest", 0, 10, 80), 0},
		{"missing weight", &models.Workout{Sets: 3, Reps: 10}, 0},
		{"NaN weight", models.NewWorkout("Curl", "Arms", 3, 10, math.NaN()), 0},
		{"infinite weight", models.NewWorkout("Curl", "Arms", 3, 10, math.Inf(1)), 0},
		{"nil workout", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Volume(tt.w)
			assert.False(t, math.IsNaN(got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroupWorkoutsByDay(t *testing.T) {
	d1 := models.NewDate(2024, time.January, 15)
	d2 := models.NewDate(2024, time.January, 13)
	workouts := []*models.Workout{
		models.NewWorkout("Bench Press", "Chest", 4, 10, 80).WithDate(d1).WithCaloriesBurned(150).WithDuration(30),
		models.NewWorkout("Squat", "Legs", 5, 5, 100).WithDate(d1),
		models.NewWorkout("Row", "Back", 3, 12, 50).WithDate(d2),
	}

	rows := GroupWorkoutsByDay(workouts)
	require.Len(t, rows, 2)
	assert.Equal(t, d2, rows[0].Date)
	assert.Equal(t, 1800.0, rows[0].Volume)
	assert.Equal(t, 2, rows[1].Workouts)
	assert.Equal(t, 5700.0, rows[1].Volume)
	assert.Equal(t, 150.0, rows[1].CaloriesBurned)
	assert.Equal(t, 30, rows[1].Minutes)
	assert.Equal(t, 7500.0, TotalVolume(workouts))
}

func TestMoodScore(t *testing.T) {
	tests := []struct {
		mood models.Mood
		want int
	}{
		{models.MoodGreat, 5},
		{models.MoodGood, 4},
		{models.MoodOkay, 3},
		{models.MoodLow, 2},
		{models.MoodPoor, 1},
		{models.Mood("Unknown"), 3},
		{models.Mood(""), 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.mood), func(t *testing.T) {
			assert.Equal(t, tt.want, MoodScore(tt.mood))
		})
	}
}

func TestMoodSeriesAndAverage(t *testing.T) {
	entries := []*models.MoodEntry{
		models.NewMoodEntry(models.MoodGreat, 8).WithDate(at(2024, 1, 3, 9)),
		models.NewMoodEntry(models.MoodLow, 3).WithDate(at(2024, 1, 1, 9)),
		models.NewMoodEntry(models.MoodOkay, 5).WithDate(at(2024, 1, 2, 9)),
	}

	series := MoodSeries(entries)
	require.Len(t, series, 3)
	assert.Equal(t, []float64{2, 3, 5}, []float64{series[0].Score, series[1].Score, series[2].Score})
	assert.InDelta(t, 10.0/3.0, AverageMoodScore(entries), 1e-9)
	assert.Equal(t, 0.0, AverageMoodScore(nil))
}

func TestTrendSeriesStable(t *testing.T) {
	points := []models.TrendPoint{
		{Date: models.NewDate(2024, 1, 3), Score: 4},
		{Date: models.NewDate(2024, 1, 1), Score: 2},
		{Date: models.NewDate(2024, 1, 3), Score: 5},
		{Date: models.NewDate(2024, 1, 2), Score: 3},
	}
	original := append([]models.TrendPoint(nil), points...)

	first := TrendSeries(points)
	second := TrendSeries(first)

	assert.Equal(t, first, second)
	assert.Equal(t, original, points, "input must not be reordered")
	assert.Equal(t, 4.0, first[2].Score, "equal dates keep input order")
	assert.Equal(t, 5.0, first[3].Score)
	assert.Empty(t, TrendSeries(nil))
}

func TestLastN(t *testing.T) {
	assert.Equal(t, []int{3, 4}, LastN([]int{1, 2, 3, 4}, 2))
	assert.Equal(t, []int{1, 2}, LastN([]int{1, 2}, 7))
	assert.Empty(t, LastN([]int{1, 2}, 0))
}

func TestLongestStreak(t *testing.T) {
	d := func(day int) models.Date { return models.NewDate(2024, time.March, day) }

	assert.Equal(t, 0, LongestStreak(nil))
	assert.Equal(t, 1, LongestStreak([]models.Date{d(5)}))
	assert.Equal(t, 3, LongestStreak([]models.Date{d(1), d(2), d(3), d(5), d(6)}))
	assert.Equal(t, 2, LongestStreak([]models.Date{d(9), d(8), d(8), d(1)}))
}

func TestPersonalRecords(t *testing.T) {
	jan := func(d int) models.Date { return models.NewDate(2024, time.January, d) }
	workouts := []*models.Workout{
		models.NewWorkout("Squat", "Legs", 5, 5, 100).WithDate(jan(10)),
		models.NewWorkout("Bench Press", "Chest", 4, 10, 80).WithDate(jan(12)),
		models.NewWorkout("Squat", "Legs", 3, 3, 120).WithDate(jan(14)),
		models.NewWorkout("Bench Press", "Chest", 4, 8, 80).WithDate(jan(9)),
		nil,
	}

	got := PersonalRecords(workouts)
	require.Len(t, got, 2)
	assert.Equal(t, models.PersonalRecord{Name: "Bench Press", Date: jan(9), Value: 80, Unit: "kg"}, got[0])
	assert.Equal(t, models.PersonalRecord{Name: "Squat", Date: jan(14), Value: 120, Unit: "kg"}, got[1])
	assert.Empty(t, PersonalRecords(nil))
}
