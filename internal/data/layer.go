// ABOUTME: Per-resource query bindings over the shared cache.
// ABOUTME: Reads go through the cache; Observe* mount a view on one key.
package data

import (
	"context"

	"github.com/harperreed/wellness/internal/models"
	"github.com/harperreed/wellness/internal/query"
	"github.com/harperreed/wellness/internal/resources"
	"github.com/harperreed/wellness/internal/session"
)

// Layer is the client data layer consumed by the CLI and the MCP server.
type Layer struct {
	res     *resources.Client
	cache   *query.Client
	session *session.Store
}

// New wires resource clients, the query cache and the session store.
func New(res *resources.Client, cache *query.Client, sess *session.Store) *Layer {
	return &Layer{res: res, cache: cache, session: sess}
}

// Cache returns the shared query cache.
func (l *Layer) Cache() *query.Client { return l.cache }

// Session returns the session store.
func (l *Layer) Session() *session.Store { return l.session }

func (l *Layer) Workouts(ctx context.Context) ([]*models.Workout, error) {
	return query.Fetch(ctx, l.cache, WorkoutsKey, l.res.Workouts.GetAll)
}

func (l *Layer) Meals(ctx context.Context) ([]*models.Meal, error) {
	return query.Fetch(ctx, l.cache, MealsKey, l.res.Meals.GetAll)
}

func (l *Layer) Moods(ctx context.Context) ([]*models.MoodEntry, error) {
	return query.Fetch(ctx, l.cache, MoodKey, l.res.Moods.GetAll)
}

func (l *Layer) Profile(ctx context.Context) (*models.UserProfile, error) {
	return query.Fetch(ctx, l.cache, ProfileKey, l.res.Profile.Get)
}

func (l *Layer) DashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	return query.Fetch(ctx, l.cache, DashboardSummaryKey, l.res.Dashboard.Summary)
}

func (l *Layer) ProgressSummary(ctx context.Context) (*models.ProgressSummary, error) {
	return query.Fetch(ctx, l.cache, ProgressSummaryKey, l.res.Progress.Summary)
}

func (l *Layer) ProgressTrend(ctx context.Context) ([]models.TrendPoint, error) {
	return query.Fetch(ctx, l.cache, ProgressTrendKey, l.res.Progress.Trend)
}

func (l *Layer) ProgressRecords(ctx context.Context) ([]models.PersonalRecord, error) {
	return query.Fetch(ctx, l.cache, ProgressRecordsKey, l.res.Progress.Records)
}

// Me returns the signed-in user as the server sees it.
func (l *Layer) Me(ctx context.Context) (*models.User, error) {
	return query.Fetch(ctx, l.cache, MeKey, l.res.Auth.Me)
}

func (l *Layer) ObserveWorkouts(onChange func(query.State[[]*models.Workout])) *query.Observer[[]*models.Workout] {
	return query.Observe(l.cache, WorkoutsKey, l.res.Workouts.GetAll, onChange)
}

func (l *Layer) ObserveMeals(onChange func(query.State[[]*models.Meal])) *query.Observer[[]*models.Meal] {
	return query.Observe(l.cache, MealsKey, l.res.Meals.GetAll, onChange)
}

func (l *Layer) ObserveMoods(onChange func(query.State[[]*models.MoodEntry])) *query.Observer[[]*models.MoodEntry] {
	return query.Observe(l.cache, MoodKey, l.res.Moods.GetAll, onChange)
}

func (l *Layer) ObserveDashboardSummary(onChange func(query.State[*models.DashboardSummary])) *query.Observer[*models.DashboardSummary] {
	return query.Observe(l.cache, DashboardSummaryKey, l.res.Dashboard.Summary, onChange)
}

func (l *Layer) ObserveProgressSummary(onChange func(query.State[*models.ProgressSummary])) *query.Observer[*models.ProgressSummary] {
	return query.Observe(l.cache, ProgressSummaryKey, l.res.Progress.Summary, onChange)
}
