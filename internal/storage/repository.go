// ABOUTME: Repository interface for fitness data storage.
// ABOUTME: Defines the contract the CLI and MCP server use to reach the Store.
package storage

import (
	"context"

	"github.com/harperreed/liftlog/internal/models"
)

// Repository defines the storage interface for exercises, PRs and workout logs.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Exercise operations
	AddExercise(ctx context.Context, in models.ExerciseInput) (*models.Exercise, error)
	UpdateExercise(ctx context.Context, oldName string, in models.ExerciseInput) error
	DeleteExercise(ctx context.Context, name string) error
	ListExercises(ctx context.Context) ([]*models.Exercise, error)
	FindExerciseID(ctx context.Context, name string) (int64, bool, error)
	GetExercise(ctx context.Context, name string) (*models.Exercise, error)

	// Personal record operations
	UpsertRecord(ctx context.Context, in models.RecordInput) (*models.PersonalRecord, bool, error)
	DeleteRecord(ctx context.Context, exerciseID int64) error
	ListRecords(ctx context.Context) ([]*models.RecordView, error)

	// Workout log operations
	AddWorkoutLog(ctx context.Context, in models.WorkoutLogInput) (*models.WorkoutLog, error)
	UpdateWorkoutLog(ctx context.Context, id int64, in models.WorkoutLogInput) error
	DeleteWorkoutLog(ctx context.Context, id int64) error
	GetWorkoutLog(ctx context.Context, id int64) (*models.WorkoutLogView, error)
	ListWorkoutLogs(ctx context.Context) ([]*models.WorkoutLogView, error)
	CaloriesByDate(ctx context.Context) ([]models.CalorieTotal, error)

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) (*ImportSummary, error)

	// Lifecycle
	Close() error
}
