// ABOUTME: Derived display values computed from cached resources.
// ABOUTME: Daily macros, weekly nutrition and training rows, and the mood chart.
package data

import (
	"context"

	"github.com/harperreed/wellness/internal/aggregate"
	"github.com/harperreed/wellness/internal/models"
)

// DailyMacros totals the meals eaten on day.
func (l *Layer) DailyMacros(ctx context.Context, day models.Date) (aggregate.Macros, error) {
	meals, err := l.Meals(ctx)
	if err != nil {
		return aggregate.Macros{}, err
	}
	return aggregate.DailyMacros(meals, day), nil
}

// WeeklyNutrition returns the last seven days with meals, oldest first.
func (l *Layer) WeeklyNutrition(ctx context.Context) ([]aggregate.MealDay, error) {
	meals, err := l.Meals(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.LastN(aggregate.GroupMealsByDay(meals), aggregate.WeekDays), nil
}

// WeeklyTraining returns the last seven days with workouts, oldest first.
func (l *Layer) WeeklyTraining(ctx context.Context) ([]aggregate.WorkoutDay, error) {
	workouts, err := l.Workouts(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.LastN(aggregate.GroupWorkoutsByDay(workouts), aggregate.WeekDays), nil
}

// MoodChart returns the mood score series, oldest first.
func (l *Layer) MoodChart(ctx context.Context) ([]models.TrendPoint, error) {
	moods, err := l.Moods(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.MoodSeries(moods), nil
}
