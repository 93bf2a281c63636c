// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Runs handlers against the data layer wired to the mock backend.
package mcp

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/wellness/internal/api"
	"github.com/harperreed/wellness/internal/data"
	"github.com/harperreed/wellness/internal/fakeapi"
	"github.com/harperreed/wellness/internal/localstore"
	"github.com/harperreed/wellness/internal/models"
	"github.com/harperreed/wellness/internal/query"
	"github.com/harperreed/wellness/internal/resources"
	"github.com/harperreed/wellness/internal/session"
)

// setupTestServer creates an MCP server signed in against a fresh mock backend.
func setupTestServer(t *testing.T) (*Server, *fakeapi.Server) {
	t.Helper()

	backend := fakeapi.New()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	kv, err := localstore.OpenMemory()
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	sess := session.New(kv)
	cache := query.New()
	t.Cleanup(cache.Close)

	layer := data.New(resources.New(api.New(srv.URL, api.WithTokenSource(sess))), cache, sess)
	if _, err := layer.Register(context.Background(), models.Registration{
		Name: "Ada", Email: "ada@example.com", Password: "secret123", ConfirmPassword: "secret123",
	}); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	server, err := NewServer(layer, "test")
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, backend
}

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.data == nil {
		t.Error("Expected non-nil data layer")
	}
}

func TestNewServerNilLayer(t *testing.T) {
	if _, err := NewServer(nil, ""); err == nil {
		t.Error("Expected error for nil data layer")
	}
}

func TestHandleAddWorkout(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     addWorkoutInput
		wantErr   bool
		errSubstr string
	}{
		{
			name:  "valid workout",
			input: addWorkoutInput{Name: "Bench Press", MuscleGroup: "Chest", Sets: 4, Reps: 10, Weight: 80},
		},
		{
			name: "workout with date and extras",
			input: addWorkoutInput{
				Name: "Squat", MuscleGroup: "Legs", Sets: 5, Reps: 5, Weight: 100,
				Date: "2024-01-15", DurationMinutes: 45, CaloriesBurned: 300, Notes: "felt strong",
			},
		},
		{
			name:      "zero sets",
			input:     addWorkoutInput{Name: "Curl", MuscleGroup: "Arms", Sets: 0, Reps: 10},
			wantErr:   true,
			errSubstr: "sets",
		},
		{
			name:      "bad date",
			input:     addWorkoutInput{Name: "Row", MuscleGroup: "Back", Sets: 3, Reps: 8, Date: "yesterday"},
			wantErr:   true,
			errSubstr: "invalid date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleAddWorkout(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Expected error containing %q, got %q", tt.errSubstr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if output.ID == "" {
				t.Error("Expected non-empty ID")
			}
			if !strings.Contains(output.Message, tt.input.Name) {
				t.Errorf("Message %q should mention %q", output.Message, tt.input.Name)
			}
		})
	}
}

func TestInvalidWorkoutSendsNoRequest(t *testing.T) {
	server, backend := setupTestServer(t)
	before := backend.Requests()

	_, _, err := server.handleAddWorkout(context.Background(), &mcp.CallToolRequest{}, addWorkoutInput{
		Name: "Bench Press", Sets: 3, Reps: 10,
	})
	if err == nil {
		t.Fatal("Expected validation error for missing muscle group")
	}
	if got := backend.Requests(); got != before {
		t.Errorf("Expected no requests, got %d new", got-before)
	}
}

func TestHandleListWorkoutsNewestFirst(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	for _, day := range []string{"2024-01-10", "2024-01-12", "2024-01-11"} {
		_, _, err := server.handleAddWorkout(ctx, &mcp.CallToolRequest{}, addWorkoutInput{
			Name: "Deadlift", MuscleGroup: "Back", Sets: 3, Reps: 5, Weight: 120, Date: day,
		})
		if err != nil {
			t.Fatalf("add workout: %v", err)
		}
	}

	_, output, err := server.handleListWorkouts(ctx, &mcp.CallToolRequest{}, listInput{Limit: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result, ok := output.(map[string]interface{})
	if !ok {
		t.Fatal("Expected map output")
	}
	workouts, ok := result["workouts"].([]*models.Workout)
	if !ok {
		t.Fatal("Expected workout slice")
	}
	if len(workouts) != 2 {
		t.Fatalf("Expected 2 workouts, got %d", len(workouts))
	}
	if workouts[0].Date.String() != "2024-01-12" || workouts[1].Date.String() != "2024-01-11" {
		t.Errorf("Unexpected order: %s, %s", workouts[0].Date, workouts[1].Date)
	}
}

func TestHandleListWorkoutsEmpty(t *testing.T) {
	server, _ := setupTestServer(t)

	_, output, err := server.handleListWorkouts(context.Background(), &mcp.CallToolRequest{}, listInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	result := output.(map[string]interface{})
	if result["message"] != "No workouts found." {
		t.Errorf("Expected empty message, got %v", result)
	}
}

func TestHandleDeleteWorkout(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, added, err := server.handleAddWorkout(ctx, &mcp.CallToolRequest{}, addWorkoutInput{
		Name: "Bench Press", MuscleGroup: "Chest", Sets: 3, Reps: 8, Weight: 70,
	})
	if err != nil {
		t.Fatalf("add workout: %v", err)
	}

	if _, _, err := server.handleDeleteWorkout(ctx, &mcp.CallToolRequest{}, idInput{ID: added.ID}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, _, err := server.handleDeleteWorkout(ctx, &mcp.CallToolRequest{}, idInput{ID: added.ID}); err == nil {
		t.Error("Expected error deleting missing workout")
	}
}

func TestMealsAndDailyMacros(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	meals := []addMealInput{
		{Title: "Oatmeal", Type: "Breakfast", Calories: 350, Protein: 12, Carbs: 60, Fat: 6, EatenAt: "2024-01-15 08:00"},
		{Title: "Salad", Type: "lunch", Calories: 400, Protein: 30, Carbs: 20, Fat: 18, EatenAt: "2024-01-15 12:30"},
		{Title: "Pasta", Type: "dinner", Calories: 700, Protein: 25, Carbs: 110, Fat: 15, EatenAt: "2024-01-16 19:00"},
	}
	for _, m := range meals {
		if _, _, err := server.handleAddMeal(ctx, &mcp.CallToolRequest{}, m); err != nil {
			t.Fatalf("add meal %s: %v", m.Title, err)
		}
	}

	_, macros, err := server.handleDailyMacros(ctx, &mcp.CallToolRequest{}, dailyMacrosInput{Date: "2024-01-15"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if macros.Calories != 750 || macros.Protein != 42 {
		t.Errorf("Expected 750 kcal / 42 g protein, got %+v", macros)
	}

	_, output, err := server.handleListMeals(ctx, &mcp.CallToolRequest{}, listMealsInput{Date: "2024-01-16"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	list := output.(map[string]interface{})["meals"].([]*models.Meal)
	if len(list) != 1 || list[0].Title != "Pasta" {
		t.Errorf("Expected only Pasta on 2024-01-16, got %v", list)
	}
}

func TestHandleAddMealInvalidType(t *testing.T) {
	server, _ := setupTestServer(t)

	_, _, err := server.handleAddMeal(context.Background(), &mcp.CallToolRequest{}, addMealInput{
		Title: "Brunch", Type: "brunch", Calories: 500,
	})
	if err == nil || !strings.Contains(err.Error(), "type") {
		t.Errorf("Expected type validation error, got %v", err)
	}
}

func TestMoodAndProgress(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	if _, _, err := server.handleAddMood(ctx, &mcp.CallToolRequest{}, addMoodInput{Mood: "great", Energy: 8}); err != nil {
		t.Fatalf("add mood: %v", err)
	}
	if _, _, err := server.handleAddMood(ctx, &mcp.CallToolRequest{}, addMoodInput{Mood: "Meh", Energy: 5}); err == nil {
		t.Error("Expected error for unknown mood label")
	}

	_, output, err := server.handleListMoods(ctx, &mcp.CallToolRequest{}, listInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	moods := output.(map[string]interface{})["moods"].([]*models.MoodEntry)
	if len(moods) != 1 || moods[0].Mood != models.MoodGreat {
		t.Errorf("Expected one Great entry, got %v", moods)
	}

	_, progress, err := server.handleGetProgress(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	summary := progress.(map[string]interface{})["summary"].(*models.ProgressSummary)
	if summary.TotalMoodEntries != 1 {
		t.Errorf("Expected 1 mood entry in progress, got %d", summary.TotalMoodEntries)
	}
}

func TestHandleGetDashboard(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, _, err := server.handleAddWorkout(ctx, &mcp.CallToolRequest{}, addWorkoutInput{
		Name: "Run", MuscleGroup: "Cardio", Sets: 1, Reps: 1, CaloriesBurned: 400,
	})
	if err != nil {
		t.Fatalf("add workout: %v", err)
	}

	_, output, err := server.handleGetDashboard(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	dash := output.(*models.DashboardSummary)
	if dash.TotalWorkouts != 1 || dash.TotalCaloriesBurned != 400 {
		t.Errorf("Unexpected dashboard %+v", dash)
	}
}

func TestHandleTodayResource(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	now := time.Now().Format(time.RFC3339)
	if _, _, err := server.handleAddMeal(ctx, &mcp.CallToolRequest{}, addMealInput{
		Title: "Eggs", Type: "breakfast", Calories: 200, Protein: 14, EatenAt: now,
	}); err != nil {
		t.Fatalf("add meal: %v", err)
	}
	if _, _, err := server.handleAddMeal(ctx, &mcp.CallToolRequest{}, addMealInput{
		Title: "Old", Type: "snack", Calories: 100, EatenAt: "2020-01-01 10:00",
	}); err != nil {
		t.Fatalf("add meal: %v", err)
	}

	result, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) != 1 || result.Contents[0].URI != todayURI {
		t.Fatalf("Unexpected contents: %+v", result.Contents)
	}

	var today struct {
		Date   string         `json:"date"`
		Counts map[string]int `json:"counts"`
		Macros struct {
			Calories float64 `json:"calories"`
		} `json:"macros"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &today); err != nil {
		t.Fatalf("decode resource: %v", err)
	}
	if today.Date != models.Today().String() {
		t.Errorf("Expected date %s, got %s", models.Today(), today.Date)
	}
	if today.Counts["meals"] != 1 || today.Macros.Calories != 200 {
		t.Errorf("Expected only today's meal, got counts %v macros %v", today.Counts, today.Macros)
	}
}

func TestHandleDashboardResource(t *testing.T) {
	server, _ := setupTestServer(t)

	result, err := server.handleDashboardResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) == 0 {
		t.Fatal("Expected non-empty contents")
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("Expected JSON MIME type, got %s", result.Contents[0].MIMEType)
	}
	if !strings.Contains(result.Contents[0].Text, "totalWorkouts") {
		t.Errorf("Expected dashboard totals in %s", result.Contents[0].Text)
	}
}

func TestParseWhen(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2024-01-15T08:00:00Z", false},
		{"2024-01-15 08:00", false},
		{"2024-01-15", false},
		{"tomorrow", true},
	}
	for _, tt := range tests {
		_, err := parseWhen(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseWhen(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
