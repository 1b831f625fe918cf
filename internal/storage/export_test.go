// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON, YAML, and Markdown export formats and transactional import.
package storage

import (
	"context"
	"fmt"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// seedExportData adds two exercises, one PR and three workout logs.
func seedExportData(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()

	squat := mustAddExercise(t, db, "Squat", "legs")
	run := mustAddExercise(t, db, "Run", "cardio")

	_, _, err := db.UpsertRecord(ctx, models.RecordInput{ExerciseID: squat, MaxLift: 140})
	require.NoError(t, err)

	for _, in := range []models.WorkoutLogInput{
		models.NewWorkoutLogInput(day("2024-01-01"), run, 30, 300),
		models.NewWorkoutLogInput(day("2024-01-01"), squat, 45, 250),
		models.NewWorkoutLogInput(day("2024-01-05"), run, 40, 400),
	} {
		_, err := db.AddWorkoutLog(ctx, in)
		require.NoError(t, err)
	}
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	raw, err := db.ExportJSON(context.Background())
	require.NoError(t, err)

	var export ExportData
	require.NoError(t, json.Unmarshal(raw, &export))

	assert.Equal(t, ExportVersion, export.Version)
	assert.Equal(t, "liftlog", export.Tool)
	assert.Equal(t, []ExportExercise{{"Squat", "legs"}, {"Run", "cardio"}}, export.Exercises)
	assert.Equal(t, []ExportRecord{{Exercise: "Squat", MaxLift: 140}}, export.Records)
	require.Len(t, export.Workouts, 3)
	assert.Equal(t, "2024-01-05", export.Workouts[0].Date)

	// Keys are stable for external consumers
	assert.Contains(t, string(raw), `"personal_records"`)
	assert.Contains(t, string(raw), `"workout_logs"`)
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	raw, err := db.ExportYAML(context.Background())
	require.NoError(t, err)

	var export ExportData
	require.NoError(t, yaml.Unmarshal(raw, &export))
	assert.Len(t, export.Exercises, 2)
	assert.Len(t, export.Records, 1)
	assert.Len(t, export.Workouts, 3)
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	md, err := db.ExportMarkdown(context.Background(), nil)
	require.NoError(t, err)

	for _, want := range []string{
		"# Workout Export",
		"## Exercises",
		"| Squat | legs |",
		"## Personal Records",
		"| Squat | 140.00 |",
		"## Workout Log",
		"| 2024-01-05 | Run | 40 min | 400 |",
		"## Calories by Date",
		"| 2024-01-01 | 550 |",
	} {
		assert.Contains(t, md, want)
	}
}

func TestExportMarkdownSince(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	since := day("2024-01-03")
	md, err := db.ExportMarkdown(context.Background(), &since)
	require.NoError(t, err)

	assert.Contains(t, md, "| 2024-01-05 | Run | 40 min | 400 |")
	assert.NotContains(t, md, "2024-01-01")
	// The exercise table is not date filtered
	assert.Contains(t, md, "| Squat | legs |")
}

func TestExportMarkdownEmpty(t *testing.T) {
	db := setupTestDB(t)

	md, err := db.ExportMarkdown(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, md, "## Exercises")
	assert.False(t, strings.Contains(md, "## Workout Log"))
}

func TestImportJSONRoundTrip(t *testing.T) {
	src := setupTestDB(t)
	seedExportData(t, src)
	ctx := context.Background()

	raw, err := src.ExportJSON(ctx)
	require.NoError(t, err)

	dst := setupTestDB(t)
	summary, err := dst.ImportJSON(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, &ImportSummary{Exercises: 2, Records: 1, Workouts: 3}, summary)

	want, err := src.CaloriesByDate(ctx)
	require.NoError(t, err)
	got, err := dst.CaloriesByDate(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	records, err := dst.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Squat", records[0].ExerciseName)
}

func TestImportReusesExistingExercises(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	squat := mustAddExercise(t, db, "Squat", "legs")
	_, _, err := db.UpsertRecord(ctx, models.RecordInput{ExerciseID: squat, MaxLift: 100})
	require.NoError(t, err)

	summary, err := db.ImportData(ctx, &ExportData{
		Exercises: []ExportExercise{{Name: "Squat", Category: "other"}},
		Records:   []ExportRecord{{Exercise: "Squat", MaxLift: 150}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Exercises)
	assert.Equal(t, 1, summary.Records)

	e, err := db.GetExercise(ctx, "Squat")
	require.NoError(t, err)
	assert.Equal(t, squat, e.ID)
	assert.Equal(t, "legs", e.Category)

	records, err := db.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 150.0, records[0].MaxLift)
}

func TestImportRollsBackOnUnknownExercise(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.ImportData(ctx, &ExportData{
		Exercises: []ExportExercise{{Name: "Bench", Category: "chest"}},
		Workouts: []ExportWorkout{
			{Date: "2024-02-01", Exercise: "Bench", DurationMinutes: 20, Calories: 120},
			{Date: "2024-02-02", Exercise: "Ghost", DurationMinutes: 20, Calories: 120},
		},
	})
	require.ErrorIs(t, err, ErrUnknownExercise)

	exercises, err := db.ListExercises(ctx)
	require.NoError(t, err)
	assert.Empty(t, exercises, "import must be all or nothing")

	logs, err := db.ListWorkoutLogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestImportJSONInvalid(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.ImportJSON(context.Background(), []byte("{not json"))
	assert.Error(t, err)
}

func TestImportRejectsBadDate(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.ImportData(context.Background(), &ExportData{
		Exercises: []ExportExercise{{Name: "Run", Category: "cardio"}},
		Workouts:  []ExportWorkout{{Date: "01/02/2024", Exercise: "Run", DurationMinutes: 1, Calories: 1}},
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestGetAllDataIsConsistentUnderConcurrentWrites(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	writer, err := Open(db.Path())
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 25; i++ {
			e, err := writer.AddExercise(ctx, models.ExerciseInput{Name: fmt.Sprintf("Lift %d", i), Category: "strength"})
			if err != nil {
				done <- err
				return
			}
			if _, err := writer.AddWorkoutLog(ctx, models.NewWorkoutLogInput(day("2024-01-01"), e.ID, 10, 100)); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	for i := 0; i < 25; i++ {
		data, err := db.GetAllData(ctx)
		require.NoError(t, err)

		known := make(map[string]bool, len(data.Exercises))
		for _, e := range data.Exercises {
			known[e.Name] = true
		}
		for _, w := range data.Workouts {
			assert.True(t, known[w.Exercise], "workout for %q exported without its exercise", w.Exercise)
		}
	}
	require.NoError(t, <-done)
}
