// ABOUTME: Typed resource clients for every backend entity and aggregate.
// ABOUTME: Errors from the HTTP client are returned unchanged.
package resources

import (
	"context"

	"github.com/harperreed/wellness/internal/api"
	"github.com/harperreed/wellness/internal/models"
)

// Resource paths.
const (
	WorkoutsPath         = "/api/workouts"
	MealsPath            = "/api/meals"
	MoodPath             = "/api/mood"
	ProfilePath          = "/api/users/profile"
	DashboardSummaryPath = "/api/dashboard/summary"
	ProgressSummaryPath  = "/api/progress/summary"
	ProgressTrendPath    = "/api/progress/trend"
	ProgressRecordsPath  = "/api/progress/records"
	LoginPath            = "/api/auth/login"
	RegisterPath         = "/api/auth/register"
	MePath               = "/api/auth/me"
)

// Client bundles every resource client over one HTTP client.
type Client struct {
	Workouts  Collection[models.Workout]
	Meals     Collection[models.Meal]
	Moods     Moods
	Profile   Profile
	Dashboard Dashboard
	Progress  Progress
	Auth      Auth
}

// New creates the resource clients.
func New(c *api.Client) *Client {
	return &Client{
		Workouts:  NewCollection[models.Workout](c, WorkoutsPath),
		Meals:     NewCollection[models.Meal](c, MealsPath),
		Moods:     Moods{c: NewCollection[models.MoodEntry](c, MoodPath)},
		Profile:   Profile{client: c},
		Dashboard: Dashboard{client: c},
		Progress:  Progress{client: c},
		Auth:      Auth{client: c},
	}
}

// Moods has no update endpoint.
type Moods struct {
	c Collection[models.MoodEntry]
}

func (m Moods) GetAll(ctx context.Context) ([]*models.MoodEntry, error) {
	return m.c.GetAll(ctx)
}

func (m Moods) Create(ctx context.Context, e *models.MoodEntry) (*models.MoodEntry, error) {
	return m.c.Create(ctx, e)
}

func (m Moods) Delete(ctx context.Context, id string) error {
	return m.c.Delete(ctx, id)
}

// Profile is the singleton profile of the signed-in user.
type Profile struct {
	client *api.Client
}

func (p Profile) Get(ctx context.Context) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := p.client.Get(ctx, ProfilePath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p Profile) Update(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := p.client.Put(ctx, ProfilePath, profile, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard reads the server-computed overview.
type Dashboard struct {
	client *api.Client
}

func (d Dashboard) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	var out models.DashboardSummary
	if err := d.client.Get(ctx, DashboardSummaryPath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Progress reads the server-computed progress views.
type Progress struct {
	client *api.Client
}

func (p Progress) Summary(ctx context.Context) (*models.ProgressSummary, error) {
	var out models.ProgressSummary
	if err := p.client.Get(ctx, ProgressSummaryPath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p Progress) Trend(ctx context.Context) ([]models.TrendPoint, error) {
	var out []models.TrendPoint
	if err := p.client.Get(ctx, ProgressTrendPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p Progress) Records(ctx context.Context) ([]models.PersonalRecord, error) {
	var out []models.PersonalRecord
	if err := p.client.Get(ctx, ProgressRecordsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Auth talks to the unauthenticated login and register endpoints and to /me.
type Auth struct {
	client *api.Client
}

func (a Auth) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := a.client.PostPublic(ctx, LoginPath, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a Auth) Register(ctx context.Context, reg models.Registration) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := a.client.PostPublic(ctx, RegisterPath, reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a Auth) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := a.client.Get(ctx, MePath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
