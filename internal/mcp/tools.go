// ABOUTME: MCP tool implementations for liftlog.
// ABOUTME: Exposes exercise, PR and workout log operations plus the calorie aggregate.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add an exercise with a unique name and a category (e.g. strength, cardio)",
	}, s.handleAddExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_exercise",
		Description: "Rename an exercise and/or change its category",
	}, s.handleUpdateExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_exercise",
		Description: "Delete an exercise together with its personal record and all its workout logs",
	}, s.handleDeleteExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List all exercises in the order they were added",
	}, s.handleListExercises)

	// personal records
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_pr",
		Description: "Set the personal record (max lift) for an exercise, replacing any previous PR",
	}, s.handleSetPR)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_pr",
		Description: "Remove the personal record for an exercise",
	}, s.handleDeletePR)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_prs",
		Description: "List personal records by exercise name",
	}, s.handleListPRs)

	// workout logs
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Log a workout session for an exercise on a date",
	}, s.handleLogWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_workout",
		Description: "Update a workout log by ID; omitted fields keep their stored values",
	}, s.handleUpdateWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout log by ID",
	}, s.handleDeleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List workout logs, most recent date first",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "calories_by_date",
		Description: "Total calories burned per day, oldest day first",
	}, s.handleCaloriesByDate)
}

// Tool input/output types

type emptyInput struct{}

type simpleOutput struct {
	Message string `json:"message"`
}

type addExerciseInput struct {
	Name     string `json:"name" jsonschema:"Exercise name (must be unique)"`
	Category string `json:"category" jsonschema:"Exercise category such as strength or cardio"`
}

type exerciseOutput struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

type updateExerciseInput struct {
	Name     string `json:"name" jsonschema:"Current exercise name"`
	NewName  string `json:"new_name,omitempty" jsonschema:"New name, defaults to the current name"`
	Category string `json:"category,omitempty" jsonschema:"New category, defaults to the current category"`
}

type exerciseNameInput struct {
	Name string `json:"name" jsonschema:"Exercise name"`
}

type exerciseRow struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type listExercisesOutput struct {
	Exercises []exerciseRow `json:"exercises"`
	Count     int           `json:"count"`
}

type setPRInput struct {
	Exercise string  `json:"exercise" jsonschema:"Exercise name"`
	MaxLift  float64 `json:"max_lift" jsonschema:"Maximum weight lifted"`
}

type prOutput struct {
	Exercise string  `json:"exercise"`
	MaxLift  float64 `json:"max_lift"`
	Created  bool    `json:"created"`
	Message  string  `json:"message"`
}

type deletePRInput struct {
	Exercise string `json:"exercise" jsonschema:"Exercise name"`
}

type prRow struct {
	Exercise string  `json:"exercise"`
	MaxLift  float64 `json:"max_lift"`
}

type listPRsOutput struct {
	Records []prRow `json:"records"`
	Count   int     `json:"count"`
}

type logWorkoutInput struct {
	Date            string  `json:"date,omitempty" jsonschema:"Day of the session as YYYY-MM-DD or MM/DD/YYYY, defaults to today"`
	Exercise        string  `json:"exercise" jsonschema:"Exercise name"`
	DurationMinutes float64 `json:"duration_minutes" jsonschema:"Duration in minutes"`
	Calories        float64 `json:"calories" jsonschema:"Calories burned"`
}

type updateWorkoutInput struct {
	ID              int64    `json:"id" jsonschema:"Workout log ID"`
	Date            string   `json:"date,omitempty" jsonschema:"New day as YYYY-MM-DD or MM/DD/YYYY, omit to keep the stored date"`
	Exercise        string   `json:"exercise,omitempty" jsonschema:"New exercise name, omit to keep the stored exercise"`
	DurationMinutes *float64 `json:"duration_minutes,omitempty" jsonschema:"New duration in minutes, omit to keep the stored value"`
	Calories        *float64 `json:"calories,omitempty" jsonschema:"New calories burned, omit to keep the stored value"`
}

type workoutIDInput struct {
	ID int64 `json:"id" jsonschema:"Workout log ID"`
}

type workoutRow struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`
	Exercise        string  `json:"exercise"`
	DurationMinutes float64 `json:"duration_minutes"`
	Calories        float64 `json:"calories"`
}

type workoutOutput struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`
	Exercise        string  `json:"exercise"`
	DurationMinutes float64 `json:"duration_minutes"`
	Calories        float64 `json:"calories"`
	Message         string  `json:"message"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results, 0 for all"`
}

type listWorkoutsOutput struct {
	Workouts []workoutRow `json:"workouts"`
	Count    int          `json:"count"`
}

type calorieRow struct {
	Date          string  `json:"date"`
	TotalCalories float64 `json:"total_calories"`
}

type caloriesOutput struct {
	Days []calorieRow `json:"days"`
}

// Tool handlers

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	in, err := models.NewExerciseInput(input.Name, input.Category)
	if err != nil {
		return nil, exerciseOutput{}, err
	}

	e, err := s.repo.AddExercise(ctx, in)
	if err != nil {
		return nil, exerciseOutput{}, s.toolError("add_exercise", err)
	}

	return nil, exerciseOutput{
		ID:       e.ID,
		Name:     e.Name,
		Category: e.Category,
		Message:  fmt.Sprintf("Added exercise %s (%s)", e.Name, e.Category),
	}, nil
}

func (s *Server) handleUpdateExercise(ctx context.Context, req *mcp.CallToolRequest, input updateExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	current, err := s.repo.GetExercise(ctx, input.Name)
	if err != nil {
		return nil, exerciseOutput{}, s.toolError("update_exercise", err)
	}

	name, category := current.Name, current.Category
	if input.NewName != "" {
		name = input.NewName
	}
	if input.Category != "" {
		category = input.Category
	}

	in, err := models.NewExerciseInput(name, category)
	if err != nil {
		return nil, exerciseOutput{}, err
	}
	if err := s.repo.UpdateExercise(ctx, current.Name, in); err != nil {
		return nil, exerciseOutput{}, s.toolError("update_exercise", err)
	}

	return nil, exerciseOutput{
		ID:       current.ID,
		Name:     in.Name,
		Category: in.Category,
		Message:  fmt.Sprintf("Updated exercise %s", in.Name),
	}, nil
}

func (s *Server) handleDeleteExercise(ctx context.Context, req *mcp.CallToolRequest, input exerciseNameInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteExercise(ctx, input.Name); err != nil {
		return nil, simpleOutput{}, s.toolError("delete_exercise", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted exercise %s with its PR and workout logs", input.Name),
	}, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, listExercisesOutput, error) {
	exercises, err := s.repo.ListExercises(ctx)
	if err != nil {
		return nil, listExercisesOutput{}, s.toolError("list_exercises", err)
	}

	out := listExercisesOutput{Exercises: make([]exerciseRow, 0, len(exercises))}
	for _, e := range exercises {
		out.Exercises = append(out.Exercises, exerciseRow{ID: e.ID, Name: e.Name, Category: e.Category})
	}
	out.Count = len(out.Exercises)
	return nil, out, nil
}

func (s *Server) handleSetPR(ctx context.Context, req *mcp.CallToolRequest, input setPRInput) (*mcp.CallToolResult, prOutput, error) {
	id, err := s.exerciseID(ctx, input.Exercise)
	if err != nil {
		return nil, prOutput{}, s.toolError("set_pr", err)
	}

	pr, created, err := s.repo.UpsertRecord(ctx, models.RecordInput{ExerciseID: id, MaxLift: input.MaxLift})
	if err != nil {
		return nil, prOutput{}, s.toolError("set_pr", err)
	}

	verb := "Updated"
	if created {
		verb = "Set"
	}
	return nil, prOutput{
		Exercise: input.Exercise,
		MaxLift:  pr.MaxLift,
		Created:  created,
		Message:  fmt.Sprintf("%s PR for %s: %g", verb, input.Exercise, pr.MaxLift),
	}, nil
}

func (s *Server) handleDeletePR(ctx context.Context, req *mcp.CallToolRequest, input deletePRInput) (*mcp.CallToolResult, simpleOutput, error) {
	id, err := s.exerciseID(ctx, input.Exercise)
	if err != nil {
		return nil, simpleOutput{}, s.toolError("delete_pr", err)
	}
	if err := s.repo.DeleteRecord(ctx, id); err != nil {
		return nil, simpleOutput{}, s.toolError("delete_pr", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Removed PR for %s", input.Exercise),
	}, nil
}

func (s *Server) handleListPRs(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, listPRsOutput, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, listPRsOutput{}, s.toolError("list_prs", err)
	}

	out := listPRsOutput{Records: make([]prRow, 0, len(records))}
	for _, r := range records {
		out.Records = append(out.Records, prRow{Exercise: r.ExerciseName, MaxLift: r.MaxLift})
	}
	out.Count = len(out.Records)
	return nil, out, nil
}

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	in, err := s.workoutInput(ctx, input.Date, input.Exercise, input.DurationMinutes, input.Calories)
	if err != nil {
		return nil, workoutOutput{}, s.toolError("log_workout", err)
	}

	wl, err := s.repo.AddWorkoutLog(ctx, in)
	if err != nil {
		return nil, workoutOutput{}, s.toolError("log_workout", err)
	}

	out := workoutOutput{
		ID:              wl.ID,
		Date:            wl.Date.Format(models.DateLayout),
		Exercise:        input.Exercise,
		DurationMinutes: wl.DurationMinutes,
		Calories:        wl.Calories,
	}
	out.Message = fmt.Sprintf("Logged %s on %s (ID: %d)", out.Exercise, out.Date, out.ID)
	return nil, out, nil
}

func (s *Server) handleUpdateWorkout(ctx context.Context, req *mcp.CallToolRequest, input updateWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	current, err := s.repo.GetWorkoutLog(ctx, input.ID)
	if err != nil {
		return nil, workoutOutput{}, s.toolError("update_workout", err)
	}

	date := current.Date.Format(models.DateLayout)
	if input.Date != "" {
		date = input.Date
	}
	exercise := current.ExerciseName
	if input.Exercise != "" {
		exercise = input.Exercise
	}
	duration, calories := current.DurationMinutes, current.Calories
	if input.DurationMinutes != nil {
		duration = *input.DurationMinutes
	}
	if input.Calories != nil {
		calories = *input.Calories
	}

	in, err := s.workoutInput(ctx, date, exercise, duration, calories)
	if err != nil {
		return nil, workoutOutput{}, s.toolError("update_workout", err)
	}
	if err := s.repo.UpdateWorkoutLog(ctx, input.ID, in); err != nil {
		return nil, workoutOutput{}, s.toolError("update_workout", err)
	}

	return nil, workoutOutput{
		ID:              input.ID,
		Date:            in.FormattedDate(),
		Exercise:        exercise,
		DurationMinutes: in.DurationMinutes,
		Calories:        in.Calories,
		Message:         fmt.Sprintf("Updated workout %d", input.ID),
	}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteWorkoutLog(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, s.toolError("delete_workout", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout %d", input.ID),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, listWorkoutsOutput, error) {
	logs, err := s.repo.ListWorkoutLogs(ctx)
	if err != nil {
		return nil, listWorkoutsOutput{}, s.toolError("list_workouts", err)
	}
	if input.Limit > 0 && len(logs) > input.Limit {
		logs = logs[:input.Limit]
	}

	out := listWorkoutsOutput{Workouts: make([]workoutRow, 0, len(logs))}
	for _, w := range logs {
		out.Workouts = append(out.Workouts, toWorkoutRow(w))
	}
	out.Count = len(out.Workouts)
	return nil, out, nil
}

func (s *Server) handleCaloriesByDate(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, caloriesOutput, error) {
	totals, err := s.repo.CaloriesByDate(ctx)
	if err != nil {
		return nil, caloriesOutput{}, s.toolError("calories_by_date", err)
	}

	return nil, caloriesOutput{Days: toCalorieRows(totals)}, nil
}

// exerciseID resolves an exercise name, failing with ErrUnknownExercise.
func (s *Server) exerciseID(ctx context.Context, name string) (int64, error) {
	id, ok, err := s.repo.FindExerciseID(ctx, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %s", storage.ErrUnknownExercise, name)
	}
	return id, nil
}

func (s *Server) workoutInput(ctx context.Context, date, exercise string, duration, calories float64) (models.WorkoutLogInput, error) {
	day, err := models.ParseUserDate(date, s.now())
	if err != nil {
		return models.WorkoutLogInput{}, err
	}
	id, err := s.exerciseID(ctx, exercise)
	if err != nil {
		return models.WorkoutLogInput{}, err
	}
	return models.NewWorkoutLogInput(day, id, duration, calories), nil
}

// toolError logs a failed tool call and rewrites store sentinels into
// messages an assistant can act on.
func (s *Server) toolError(tool string, err error) error {
	s.log.Debug().Err(err).Str("tool", tool).Msg("tool call failed")

	switch {
	case errors.Is(err, storage.ErrDuplicateName):
		return fmt.Errorf("an exercise with that name already exists: %w", err)
	case errors.Is(err, storage.ErrUnknownExercise):
		return fmt.Errorf("unknown exercise, add it with add_exercise first: %w", err)
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("not found: %w", err)
	}
	return err
}

func toWorkoutRow(w *models.WorkoutLogView) workoutRow {
	return workoutRow{
		ID:              w.ID,
		Date:            w.Date.Format(models.DateLayout),
		Exercise:        w.ExerciseName,
		DurationMinutes: w.DurationMinutes,
		Calories:        w.Calories,
	}
}

func toCalorieRows(totals []models.CalorieTotal) []calorieRow {
	rows := make([]calorieRow, 0, len(totals))
	for _, ct := range totals {
		rows = append(rows, calorieRow{Date: ct.Date.Format(models.DateLayout), TotalCalories: ct.TotalCalories})
	}
	return rows
}
