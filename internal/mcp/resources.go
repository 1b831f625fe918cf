// ABOUTME: MCP resource implementations for liftlog.
// ABOUTME: Provides liftlog://summary and liftlog://calories resources.
package mcp

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	summaryURI  = "liftlog://summary"
	caloriesURI = "liftlog://calories"

	recentWorkoutLimit = 10
)

func (s *Server) registerResources() {
	// liftlog://summary - exercises, PRs and the latest sessions
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Training Summary",
		Description: "All exercises, personal records, and the 10 most recent workout logs",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	// liftlog://calories - daily calorie totals
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         caloriesURI,
		Name:        "Calories by Date",
		Description: "Total calories burned per day, oldest first",
		MIMEType:    "application/json",
	}, s.handleCaloriesResource)
}

// Resource handlers

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	exercises, err := s.repo.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	logs, err := s.repo.ListWorkoutLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout logs: %w", err)
	}

	totalWorkouts := len(logs)
	var totalCalories, totalMinutes float64
	for _, w := range logs {
		totalCalories += w.Calories
		totalMinutes += w.DurationMinutes
	}
	if len(logs) > recentWorkoutLimit {
		logs = logs[:recentWorkoutLimit]
	}

	recent := make([]workoutRow, 0, len(logs))
	for _, w := range logs {
		recent = append(recent, toWorkoutRow(w))
	}
	exerciseRows := make([]exerciseRow, 0, len(exercises))
	for _, e := range exercises {
		exerciseRows = append(exerciseRows, exerciseRow{ID: e.ID, Name: e.Name, Category: e.Category})
	}
	prRows := make([]prRow, 0, len(records))
	for _, r := range records {
		prRows = append(prRows, prRow{Exercise: r.ExerciseName, MaxLift: r.MaxLift})
	}

	result := map[string]interface{}{
		"generated_at":     s.now().Format(time.RFC3339),
		"exercises":        exerciseRows,
		"personal_records": prRows,
		"recent_workouts":  recent,
		"totals": map[string]interface{}{
			"workouts": totalWorkouts,
			"minutes":  totalMinutes,
			"calories": totalCalories,
		},
	}

	return jsonResource(summaryURI, result)
}

func (s *Server) handleCaloriesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	totals, err := s.repo.CaloriesByDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate calories: %w", err)
	}

	return jsonResource(caloriesURI, map[string]interface{}{
		"days": toCalorieRows(totals),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
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
