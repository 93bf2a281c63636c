// ABOUTME: Validated mutations that invalidate their dependent cache keys on success.
// ABOUTME: Invalid input is rejected with field errors before any request is made.
package data

import (
	"context"

	"github.com/harperreed/wellness/internal/models"
	"github.com/harperreed/wellness/internal/query"
)

type deleted struct{}

func deleter(del func(context.Context, string) error) func(context.Context, string) (deleted, error) {
	return func(ctx context.Context, id string) (deleted, error) {
		return deleted{}, del(ctx, id)
	}
}

func (l *Layer) AddWorkout(ctx context.Context, w *models.Workout) (*models.Workout, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return query.Mutate(ctx, l.cache, l.res.Workouts.Create, w, workoutWrites...)
}

func (l *Layer) UpdateWorkout(ctx context.Context, id string, w *models.Workout) (*models.Workout, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	update := func(ctx context.Context, w *models.Workout) (*models.Workout, error) {
		return l.res.Workouts.Update(ctx, id, w)
	}
	return query.Mutate(ctx, l.cache, update, w, workoutWrites...)
}

func (l *Layer) DeleteWorkout(ctx context.Context, id string) error {
	_, err := query.Mutate(ctx, l.cache, deleter(l.res.Workouts.Delete), id, workoutWrites...)
	return err
}

func (l *Layer) AddMeal(ctx context.Context, m *models.Meal) (*models.Meal, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return query.Mutate(ctx, l.cache, l.res.Meals.Create, m, mealWrites...)
}

func (l *Layer) UpdateMeal(ctx context.Context, id string, m *models.Meal) (*models.Meal, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	update := func(ctx context.Context, m *models.Meal) (*models.Meal, error) {
		return l.res.Meals.Update(ctx, id, m)
	}
	return query.Mutate(ctx, l.cache, update, m, mealWrites...)
}

func (l *Layer) DeleteMeal(ctx context.Context, id string) error {
	_, err := query.Mutate(ctx, l.cache, deleter(l.res.Meals.Delete), id, mealWrites...)
	return err
}

func (l *Layer) AddMood(ctx context.Context, e *models.MoodEntry) (*models.MoodEntry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return query.Mutate(ctx, l.cache, l.res.Moods.Create, e, moodWrites...)
}

func (l *Layer) DeleteMood(ctx context.Context, id string) error {
	_, err := query.Mutate(ctx, l.cache, deleter(l.res.Moods.Delete), id, moodWrites...)
	return err
}

func (l *Layer) UpdateProfile(ctx context.Context, p *models.UserProfile) (*models.UserProfile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return query.Mutate(ctx, l.cache, l.res.Profile.Update, p, profileWrites...)
}
