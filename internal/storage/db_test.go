// ABOUTME: Tests for SQLite connection lifecycle and schema setup.
// ABOUTME: Covers reopen persistence, use-after-close and XDG path handling.
package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/liftlog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "liftlog.db"))
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// mustAddExercise inserts an exercise and returns its id.
func mustAddExercise(t *testing.T, db *DB, name, category string) int64 {
	t.Helper()

	e, err := db.AddExercise(context.Background(), models.ExerciseInput{Name: name, Category: category})
	require.NoError(t, err)
	return e.ID
}

func day(s string) time.Time {
	t, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOpenCreatesDirectoryAndTables(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "data", "liftlog.db")

	db, err := Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file should exist")

	rows, err := db.db.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	require.NoError(t, err)
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		tables = append(tables, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"exercises", "pr_records", "workout_logs"}, tables)
}

func TestOpenEnablesForeignKeys(t *testing.T) {
	db := setupTestDB(t)

	var enabled int
	require.NoError(t, db.db.QueryRow("PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)
}

func TestReopenPreservesData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "liftlog.db")

	db, err := Open(dbPath)
	require.NoError(t, err)
	id := mustAddExercise(t, db, "Deadlift", "strength")
	_, _, err = db.UpsertRecord(ctx, models.RecordInput{ExerciseID: id, MaxLift: 180})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	exercises, err := db.ListExercises(ctx)
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.Equal(t, "Deadlift", exercises[0].Name)

	records, err := db.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 180.0, records[0].MaxLift)
}

func TestOperationsAfterCloseFail(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "liftlog.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = db.AddExercise(ctx, models.ExerciseInput{Name: "Squat", Category: "legs"})
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = db.ListExercises(ctx)
	assert.ErrorIs(t, err, ErrNotConnected)

	_, _, err = db.FindExerciseID(ctx, "Squat")
	assert.ErrorIs(t, err, ErrNotConnected)

	_, _, err = db.UpsertRecord(ctx, models.RecordInput{ExerciseID: 1, MaxLift: 100})
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = db.CaloriesByDate(ctx)
	assert.ErrorIs(t, err, ErrNotConnected)

	// Closing twice is harmless
	assert.NoError(t, db.Close())
}

func TestDataDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	assert.Equal(t, "/tmp/xdg-data/liftlog", DataDir())
	assert.Equal(t, "/tmp/xdg-data/liftlog/liftlog.db", DefaultDBPath())
}

func TestDSNCarriesPragmas(t *testing.T) {
	got := dsn("/tmp/x.db")

	assert.Contains(t, got, "/tmp/x.db?")
	assert.Contains(t, got, "_pragma=foreign_keys(1)")
	assert.Contains(t, got, "_txlock=immediate")
}
