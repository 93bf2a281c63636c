// ABOUTME: MCP tool implementations for workouts, meals, mood and progress.
// ABOUTME: Writes are validated by the data layer before any request is sent.
package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/wellness/internal/aggregate"
	"github.com/harperreed/wellness/internal/models"
)

const defaultLimit = 20

func (s *Server) registerTools() {
	// workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workouts, newest first",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout",
		Description: "Log a strength workout (exercise, muscle group, sets, reps, weight)",
	}, s.handleAddWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout by ID",
	}, s.handleDeleteWorkout)

	// meals
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_meals",
		Description: "List recent meals, optionally for a single day",
	}, s.handleListMeals)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_meal",
		Description: "Log a meal with calories and macronutrients",
	}, s.handleAddMeal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_meal",
		Description: "Delete a meal by ID",
	}, s.handleDeleteMeal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "daily_macros",
		Description: "Total calories, protein, carbs and fat for a day (default today)",
	}, s.handleDailyMacros)

	// mood
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_mood",
		Description: "Log a mood (Great, Good, Okay, Low, Poor) with an energy level 1-10",
	}, s.handleAddMood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_moods",
		Description: "List recent mood entries, newest first",
	}, s.handleListMoods)

	// summaries
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Totals for workouts, meals and calories",
	}, s.handleGetDashboard)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_progress",
		Description: "Progress summary, mood trend and personal records",
	}, s.handleGetProgress)
}

// Tool input/output types

type listInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"ID of the entry"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type entryOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type addWorkoutInput struct {
	Name            string  `json:"name" jsonschema:"Exercise name, e.g. Bench Press"`
	MuscleGroup     string  `json:"muscle_group" jsonschema:"Muscle group, e.g. Chest"`
	Sets            int     `json:"sets" jsonschema:"Number of sets (at least 1)"`
	Reps            int     `json:"reps" jsonschema:"Reps per set (at least 1)"`
	Weight          float64 `json:"weight,omitempty" jsonschema:"Weight in kg"`
	Date            string  `json:"date,omitempty" jsonschema:"Day of the workout (YYYY-MM-DD), defaults to today"`
	DurationMinutes int     `json:"duration_minutes,omitempty" jsonschema:"Duration in minutes"`
	CaloriesBurned  float64 `json:"calories_burned,omitempty" jsonschema:"Calories burned"`
	Notes           string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type listMealsInput struct {
	Date  string `json:"date,omitempty" jsonschema:"Only meals eaten on this day (YYYY-MM-DD)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type addMealInput struct {
	Title    string  `json:"title" jsonschema:"What was eaten"`
	Type     string  `json:"type" jsonschema:"Meal type (breakfast, lunch, dinner, snack)"`
	Calories float64 `json:"calories" jsonschema:"Calories (kcal)"`
	Protein  float64 `json:"protein,omitempty" jsonschema:"Protein in grams"`
	Carbs    float64 `json:"carbs,omitempty" jsonschema:"Carbohydrates in grams"`
	Fat      float64 `json:"fat,omitempty" jsonschema:"Fat in grams"`
	EatenAt  string  `json:"eaten_at,omitempty" jsonschema:"When it was eaten (ISO 8601 or YYYY-MM-DD HH:MM), defaults to now"`
	Notes    string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type dailyMacrosInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day to total (YYYY-MM-DD), defaults to today"`
}

type macrosOutput struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type addMoodInput struct {
	Mood       string `json:"mood" jsonschema:"Mood label (Great, Good, Okay, Low, Poor)"`
	Energy     int    `json:"energy" jsonschema:"Energy level from 1 to 10"`
	RecordedAt string `json:"recorded_at,omitempty" jsonschema:"When it was recorded (ISO 8601 or YYYY-MM-DD HH:MM), defaults to now"`
	Notes      string `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type emptyInput struct{}

// Tool handlers

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	workouts, err := s.data.Workouts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	if len(workouts) == 0 {
		return nil, map[string]interface{}{"message": "No workouts found."}, nil
	}

	recent := newestFirst(workouts, func(w *models.Workout) time.Time { return w.Date.Time() }, limitOr(input.Limit))
	return nil, map[string]interface{}{
		"workouts": recent,
		"count":    len(recent),
		"volume":   aggregate.TotalVolume(recent),
	}, nil
}

func (s *Server) handleAddWorkout(ctx context.Context, req *mcp.CallToolRequest, input addWorkoutInput) (*mcp.CallToolResult, entryOutput, error) {
	w := models.NewWorkout(input.Name, input.MuscleGroup, input.Sets, input.Reps, input.Weight)
	if input.Date != "" {
		d, err := models.ParseDate(input.Date)
		if err != nil {
			return nil, entryOutput{}, err
		}
		w.WithDate(d)
	}
	if input.DurationMinutes > 0 {
		w.WithDuration(input.DurationMinutes)
	}
	if input.CaloriesBurned > 0 {
		w.WithCaloriesBurned(input.CaloriesBurned)
	}
	if input.Notes != "" {
		w.WithNotes(input.Notes)
	}

	created, err := s.data.AddWorkout(ctx, w)
	if err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to add workout: %w", err)
	}

	return nil, entryOutput{
		ID: created.ID,
		Message: fmt.Sprintf("Added %s: %dx%d @ %.1f kg on %s (ID: %s)",
			created.Name, created.Sets, created.Reps, created.Weight, created.Date, created.ID),
	}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.data.DeleteWorkout(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted workout: %s", input.ID)}, nil
}

func (s *Server) handleListMeals(ctx context.Context, req *mcp.CallToolRequest, input listMealsInput) (*mcp.CallToolResult, any, error) {
	meals, err := s.data.Meals(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list meals: %w", err)
	}

	if input.Date != "" {
		day, err := models.ParseDate(input.Date)
		if err != nil {
			return nil, nil, err
		}
		var onDay []*models.Meal
		for _, m := range meals {
			if models.DateOf(m.DateTime).Equal(day) {
				onDay = append(onDay, m)
			}
		}
		meals = onDay
	}
	if len(meals) == 0 {
		return nil, map[string]interface{}{"message": "No meals found."}, nil
	}

	recent := newestFirst(meals, func(m *models.Meal) time.Time { return m.DateTime }, limitOr(input.Limit))
	return nil, map[string]interface{}{
		"meals": recent,
		"count": len(recent),
	}, nil
}

func (s *Server) handleAddMeal(ctx context.Context, req *mcp.CallToolRequest, input addMealInput) (*mcp.CallToolResult, entryOutput, error) {
	m := models.NewMeal(input.Title, models.MealType(strings.ToLower(input.Type)),
		input.Calories, input.Protein, input.Carbs, input.Fat)
	if input.EatenAt != "" {
		t, err := parseWhen(input.EatenAt)
		if err != nil {
			return nil, entryOutput{}, err
		}
		m.WithDateTime(t)
	}
	if input.Notes != "" {
		m.WithNotes(input.Notes)
	}

	created, err := s.data.AddMeal(ctx, m)
	if err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to add meal: %w", err)
	}

	return nil, entryOutput{
		ID: created.ID,
		Message: fmt.Sprintf("Added %s (%s): %.0f kcal, P %.0fg C %.0fg F %.0fg (ID: %s)",
			created.Title, created.Type, created.Calories, created.Protein, created.Carbs, created.Fat, created.ID),
	}, nil
}

func (s *Server) handleDeleteMeal(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.data.DeleteMeal(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete meal: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted meal: %s", input.ID)}, nil
}

func (s *Server) handleDailyMacros(ctx context.Context, req *mcp.CallToolRequest, input dailyMacrosInput) (*mcp.CallToolResult, macrosOutput, error) {
	day := models.Today()
	if input.Date != "" {
		d, err := models.ParseDate(input.Date)
		if err != nil {
			return nil, macrosOutput{}, err
		}
		day = d
	}

	macros, err := s.data.DailyMacros(ctx, day)
	if err != nil {
		return nil, macrosOutput{}, fmt.Errorf("failed to total macros: %w", err)
	}
	return nil, macrosOutput{
		Date:     day.String(),
		Calories: macros.Calories,
		Protein:  macros.Protein,
		Carbs:    macros.Carbs,
		Fat:      macros.Fat,
	}, nil
}

func (s *Server) handleAddMood(ctx context.Context, req *mcp.CallToolRequest, input addMoodInput) (*mcp.CallToolResult, entryOutput, error) {
	e := models.NewMoodEntry(normalizeMood(input.Mood), input.Energy)
	if input.RecordedAt != "" {
		t, err := parseWhen(input.RecordedAt)
		if err != nil {
			return nil, entryOutput{}, err
		}
		e.WithDate(t)
	}
	if input.Notes != "" {
		e.WithNotes(input.Notes)
	}

	created, err := s.data.AddMood(ctx, e)
	if err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to add mood: %w", err)
	}
	return nil, entryOutput{
		ID:      created.ID,
		Message: fmt.Sprintf("Logged mood %s with energy %d (ID: %s)", created.Mood, created.Energy, created.ID),
	}, nil
}

func (s *Server) handleListMoods(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	moods, err := s.data.Moods(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list moods: %w", err)
	}
	if len(moods) == 0 {
		return nil, map[string]interface{}{"message": "No mood entries found."}, nil
	}

	recent := newestFirst(moods, func(e *models.MoodEntry) time.Time { return e.Date }, limitOr(input.Limit))
	return nil, map[string]interface{}{
		"moods":         recent,
		"count":         len(recent),
		"average_score": aggregate.AverageMoodScore(moods),
	}, nil
}

func (s *Server) handleGetDashboard(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	summary, err := s.data.DashboardSummary(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dashboard: %w", err)
	}
	return nil, summary, nil
}

func (s *Server) handleGetProgress(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	summary, err := s.data.ProgressSummary(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load progress: %w", err)
	}
	trend, err := s.data.ProgressTrend(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load trend: %w", err)
	}
	records, err := s.data.ProgressRecords(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records: %w", err)
	}

	return nil, map[string]interface{}{
		"summary": summary,
		"trend":   aggregate.TrendSeries(trend),
		"records": records,
	}, nil
}

// Helpers

func limitOr(n int) int {
	if n <= 0 {
		return defaultLimit
	}
	return n
}

// newestFirst returns up to limit rows ordered by descending time, leaving rows untouched.
func newestFirst[T any](rows []T, at func(T) time.Time, limit int) []T {
	out := append([]T(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool { return at(out[i]).After(at(out[j])) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	if d, err := models.ParseDate(s); err == nil {
		return d.Time().Add(12 * time.Hour), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use ISO 8601 or YYYY-MM-DD HH:MM)", s)
}

func normalizeMood(s string) models.Mood {
	for _, m := range models.AllMoods {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m
		}
	}
	return models.Mood(s)
}
