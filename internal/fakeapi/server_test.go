// ABOUTME: Tests for the mock backend routes, authentication and aggregates.
// ABOUTME: Drives the handler over httptest with raw JSON requests.
package fakeapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/wellness/internal/models"
)

type harness struct {
	t     *testing.T
	srv   *Server
	http  *httptest.Server
	token string
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	srv := New(opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &harness{t: t, srv: srv, http: ts}
}

func (h *harness) do(method, path string, body any, out any) int {
	h.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, h.http.URL+path, reader)
	require.NoError(h.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(h.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (h *harness) register(name, email string) models.AuthResponse {
	h.t.Helper()
	var auth models.AuthResponse
	status := h.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": "secret123",
	}, &auth)
	require.Equal(h.t, http.StatusCreated, status)
	h.token = auth.Token
	return auth
}

func TestRegisterLoginAndMe(t *testing.T) {
	h := newHarness(t)
	auth := h.register("Ada", "Ada@Example.com")
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, "ada@example.com", auth.User.Email)

	var me models.User
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/auth/me", nil, &me))
	assert.Equal(t, auth.User, me)

	h.token = ""
	var login models.AuthResponse
	status := h.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ada@example.com", "password": "secret123",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, auth.User.ID, login.User.ID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	h := newHarness(t)
	h.register("Ada", "ada@example.com")

	var msg map[string]string
	status := h.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Other", "email": "ada@example.com", "password": "secret123",
	}, &msg)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "email already registered", msg["message"])
}

func TestLoginWrongPassword(t *testing.T) {
	h := newHarness(t)
	h.register("Ada", "ada@example.com")
	h.token = ""

	var msg map[string]string
	status := h.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ada@example.com", "password": "nope",
	}, &msg)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid email or password", msg["message"])
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	h := newHarness(t)
	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.token = tt.token
			var msg map[string]string
			status := h.do(http.MethodGet, "/api/workouts", nil, &msg)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.NotEmpty(t, msg["message"])
		})
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	var now atomic.Int64
	now.Store(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC).Unix())
	clock := func() time.Time { return time.Unix(now.Load(), 0) }
	h := newHarness(t, WithClock(clock), WithTokenTTL(time.Hour))
	h.register("Ada", "ada@example.com")

	now.Add(int64((2 * time.Hour).Seconds()))
	status := h.do(http.MethodGet, "/api/workouts", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestWorkoutCRUD(t *testing.T) {
	h := newHarness(t)
	h.register("Ada", "ada@example.com")

	var created models.Workout
	status := h.do(http.MethodPost, "/api/workouts", map[string]any{
		"name": "Bench Press", "muscleGroup": "Chest", "sets": 4, "reps": 10, "weight": 80, "date": "2024-01-15",
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "2024-01-15", created.Date.String())

	var list []models.Workout
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/workouts", nil, &list))
	require.Len(t, list, 1)

	created.Weight = 85
	var updated models.Workout
	require.Equal(t, http.StatusOK, h.do(http.MethodPut, "/api/workouts/"+created.ID, created, &updated))
	assert.Equal(t, 85.0, updated.Weight)
	assert.Equal(t, created.ID, updated.ID)

	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/api/workouts/"+created.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodDelete, "/api/workouts/"+created.ID, nil, nil))

	list = nil
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/workouts", nil, &list))
	assert.Empty(t, list)
}

func TestInvalidWorkoutRejected(t *testing.T) {
	h := newHarness(t)
	h.register("Ada", "ada@example.com")

	var msg map[string]string
	status := h.do(http.MethodPost, "/api/workouts", map[string]any{
		"name": "Bench Press", "muscleGroup": "Chest", "sets": 0, "reps": 10, "weight": 80,
	}, &msg)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, msg["message"], "sets")
}

func TestAccountsAreIsolated(t *testing.T) {
	h := newHarness(t)
	h.register("Ada", "ada@example.com")
	status := h.do(http.MethodPost, "/api/meals", map[string]any{
		"title": "Oatmeal", "type": "breakfast", "calories": 350, "protein": 12, "carbs": 60, "fat": 6,
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	h.register("Bob", "bob@example.com")
	var meals []models.Meal
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/meals", nil, &meals))
	assert.Empty(t, meals)
}

func TestDashboardAndProgress(t *testing.T) {
	h := newHarness(t)
	h.register("Ada", "ada@example.com")

	h.do(http.MethodPost, "/api/workouts", map[string]any{
		"name": "Squat", "muscleGroup": "Legs", "sets": 5, "reps": 5, "weight": 100,
		"date": "2024-01-14", "caloriesBurned": 250,
	}, nil)
	h.do(http.MethodPost, "/api/workouts", map[string]any{
		"name": "Squat", "muscleGroup": "Legs", "sets": 3, "reps": 3, "weight": 110, "date": "2024-01-15",
	}, nil)
	h.do(http.MethodPost, "/api/meals", map[string]any{
		"title": "Pasta", "type": "dinner", "calories": 700, "protein": 25, "carbs": 110, "fat": 15,
		"dateTime": time.Date(2024, 1, 16, 19, 0, 0, 0, time.Local).Format(time.RFC3339),
	}, nil)
	h.do(http.MethodPost, "/api/mood", map[string]any{
		"mood": "Great", "energy": 8, "date": time.Date(2024, 1, 15, 20, 0, 0, 0, time.Local).Format(time.RFC3339),
	}, nil)
	h.do(http.MethodPost, "/api/mood", map[string]any{
		"mood": "Low", "energy": 3, "date": time.Date(2024, 1, 14, 20, 0, 0, 0, time.Local).Format(time.RFC3339),
	}, nil)

	var dash models.DashboardSummary
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/dashboard/summary", nil, &dash))
	assert.Equal(t, models.DashboardSummary{
		TotalWorkouts: 2, TotalMeals: 1, TotalCaloriesConsumed: 700, TotalCaloriesBurned: 250,
	}, dash)

	var prog models.ProgressSummary
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/progress/summary", nil, &prog))
	assert.Equal(t, 2, prog.TotalMoodEntries)
	assert.Equal(t, 3, prog.LongestStreak)
	assert.InDelta(t, 3.5, prog.AverageScore, 0.001)

	var trend []models.TrendPoint
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/progress/trend", nil, &trend))
	require.Len(t, trend, 2)
	assert.Equal(t, "2024-01-14", trend[0].Date.String())
	assert.Equal(t, 2.0, trend[0].Score)

	var records []models.PersonalRecord
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/progress/records", nil, &records))
	require.Len(t, records, 1)
	assert.Equal(t, 110.0, records[0].Value)
}

func TestProfileUpdateChangesIdentity(t *testing.T) {
	h := newHarness(t)
	h.register("Ada", "ada@example.com")

	var profile models.UserProfile
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/users/profile", nil, &profile))
	assert.Equal(t, "Ada", profile.Name)

	profile.Name = "Ada Lovelace"
	profile.Age = 36
	profile.Goal = models.GoalImproveFitness
	require.Equal(t, http.StatusOK, h.do(http.MethodPut, "/api/users/profile", profile, &profile))

	var me models.User
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/auth/me", nil, &me))
	assert.Equal(t, "Ada Lovelace", me.Name)
}

func TestRequestsCounted(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, int64(0), h.srv.Requests())
	h.do(http.MethodGet, "/api/workouts", nil, nil)
	assert.Equal(t, int64(1), h.srv.Requests())
}

func TestCORSPreflight(t *testing.T) {
	h := newHarness(t, WithAllowedOrigins("http://localhost:5173"))
	req, err := http.NewRequest(http.MethodOptions, h.http.URL+"/api/workouts", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	h := newHarness(t)
	var msg map[string]string
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/nope", nil, &msg))
	assert.Equal(t, "not found", msg["message"])
}
