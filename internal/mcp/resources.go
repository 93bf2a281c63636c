// ABOUTME: MCP resource implementations for wellness data.
// ABOUTME: Provides wellness://dashboard and wellness://today resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/wellness/internal/aggregate"
	"github.com/harperreed/wellness/internal/models"
)

const (
	dashboardURI = "wellness://dashboard"
	todayURI     = "wellness://today"
)

func (s *Server) registerResources() {
	// wellness://dashboard - server totals plus progress and records
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dashboardURI,
		Name:        "Wellness Dashboard",
		Description: "Workout, meal and calorie totals with progress summary and personal records",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	// wellness://today - everything logged today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Wellness Data",
		Description: "Workouts, meals, macros and mood entries logged today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)
}

// Resource handlers

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	dashboard, err := s.data.DashboardSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}
	progress, err := s.data.ProgressSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	records, err := s.data.ProgressRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	training, err := s.data.WeeklyTraining(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load training: %w", err)
	}

	result := map[string]interface{}{
		"generated_at":    time.Now().Format(time.RFC3339),
		"dashboard":       dashboard,
		"progress":        progress,
		"records":         records,
		"weekly_training": training,
	}
	return jsonResource(dashboardURI, result)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := models.Today()

	workouts, err := s.data.Workouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	meals, err := s.data.Meals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	moods, err := s.data.Moods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list moods: %w", err)
	}

	todayWorkouts := make([]*models.Workout, 0)
	for _, w := range workouts {
		if w.Date.Equal(today) {
			todayWorkouts = append(todayWorkouts, w)
		}
	}
	todayMeals := make([]*models.Meal, 0)
	for _, m := range meals {
		if models.DateOf(m.DateTime).Equal(today) {
			todayMeals = append(todayMeals, m)
		}
	}
	todayMoods := make([]*models.MoodEntry, 0)
	for _, e := range moods {
		if models.DateOf(e.Date).Equal(today) {
			todayMoods = append(todayMoods, e)
		}
	}

	result := map[string]interface{}{
		"date":     today.String(),
		"workouts": todayWorkouts,
		"meals":    todayMeals,
		"moods":    todayMoods,
		"macros":   aggregate.DailyMacros(meals, today),
		"counts": map[string]int{
			"workouts": len(todayWorkouts),
			"meals":    len(todayMeals),
			"moods":    len(todayMoods),
		},
	}
	return jsonResource(todayURI, result)
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
