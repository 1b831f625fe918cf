// ABOUTME: Tests for CLI commands run end to end against a temp database.
// ABOUTME: Covers exercises, PRs, workouts, confirmation, export/import and config.
package main

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/liftlog/internal/config"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestCLI isolates config and data dirs and returns a database path.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv("LIFTLOG_DB_PATH", "")
	t.Setenv("LIFTLOG_DATA_DIR", "")

	// Flag-bound globals such as assumeYes outlive a single Execute.
	resetFlags(rootCmd)

	origTerm, origNow := isTerminal, now
	isTerminal = func() bool { return false }
	now = func() time.Time { return time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		isTerminal, now = origTerm, origNow
		stdin = os.Stdin
		resetFlags(rootCmd)
	})

	return filepath.Join(tmpDir, "liftlog.db")
}

// resetFlags restores every flag to its default so runs don't leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the CLI against dbFile.
func run(t *testing.T, dbFile string, args ...string) error {
	t.Helper()

	resetFlags(rootCmd)
	rootCmd.SetArgs(append([]string{"--db", dbFile}, args...))
	return Execute()
}

// openStore opens a second handle for assertions after a command has run.
func openStore(t *testing.T, dbFile string) *storage.DB {
	t.Helper()

	db, err := storage.Open(dbFile)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestExerciseCommands(t *testing.T) {
	dbFile := setupTestCLI(t)
	ctx := context.Background()

	require.NoError(t, run(t, dbFile, "exercise", "add", "Bench", "strength"))
	require.NoError(t, run(t, dbFile, "ex", "add", "Row", "cardio"))
	require.NoError(t, run(t, dbFile, "exercise", "list"))

	err := run(t, dbFile, "exercise", "add", "Bench", "chest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, run(t, dbFile, "exercise", "update", "Bench", "--name", "Bench Press"))
	require.Error(t, run(t, dbFile, "exercise", "update", "Bench Press"), "no flags is an error")

	db := openStore(t, dbFile)
	exercises, err := db.ListExercises(ctx)
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	assert.Equal(t, "Bench Press", exercises[0].Name)
	assert.Equal(t, "strength", exercises[0].Category)
}

func TestExerciseDeleteNeedsConfirmation(t *testing.T) {
	dbFile := setupTestCLI(t)
	ctx := context.Background()

	require.NoError(t, run(t, dbFile, "exercise", "add", "Run", "cardio"))
	require.NoError(t, run(t, dbFile, "pr", "set", "Run", "5"))
	require.NoError(t, run(t, dbFile, "workout", "add", "Run", "-m", "30", "-c", "300"))

	err := run(t, dbFile, "exercise", "delete", "Run")
	assert.ErrorIs(t, err, errConfirmationRequired)

	require.NoError(t, run(t, dbFile, "exercise", "delete", "Run", "--yes"))

	db := openStore(t, dbFile)
	exercises, err := db.ListExercises(ctx)
	require.NoError(t, err)
	assert.Empty(t, exercises)
	records, err := db.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	logs, err := db.ListWorkoutLogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestConfirmReadsAnswer(t *testing.T) {
	setupTestCLI(t)
	isTerminal = func() bool { return true }

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			stdin = strings.NewReader(tt.input)
			got, err := confirm("Proceed?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirmAfterYesRun(t *testing.T) {
	dbFile := setupTestCLI(t)
	require.NoError(t, run(t, dbFile, "exercise", "add", "Row", "back"))
	require.NoError(t, run(t, dbFile, "exercise", "delete", "Row", "--yes"))
	require.True(t, assumeYes)

	setupTestCLI(t)
	isTerminal = func() bool { return true }
	stdin = strings.NewReader("n\n")

	got, err := confirm("Proceed?")
	require.NoError(t, err)
	assert.False(t, got, "--yes from an earlier run must not carry over")
}

func TestPRCommands(t *testing.T) {
	dbFile := setupTestCLI(t)
	ctx := context.Background()

	require.NoError(t, run(t, dbFile, "exercise", "add", "Squat", "legs"))
	require.NoError(t, run(t, dbFile, "pr", "set", "Squat", "120"))
	require.NoError(t, run(t, dbFile, "pr", "set", "Squat", "130.5"))
	require.NoError(t, run(t, dbFile, "pr", "list"))

	assert.Error(t, run(t, dbFile, "pr", "set", "Squat", "heavy"))
	err := run(t, dbFile, "pr", "set", "Ghost", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exercise not found")

	db := openStore(t, dbFile)
	records, err := db.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 130.5, records[0].MaxLift)
	require.NoError(t, db.Close())

	require.NoError(t, run(t, dbFile, "pr", "delete", "Squat", "-y"))

	db = openStore(t, dbFile)
	records, err = db.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWorkoutCommands(t *testing.T) {
	dbFile := setupTestCLI(t)
	ctx := context.Background()

	require.NoError(t, run(t, dbFile, "exercise", "add", "Run", "cardio"))
	require.NoError(t, run(t, dbFile, "exercise", "add", "Bike", "cardio"))
	require.NoError(t, run(t, dbFile, "workout", "add", "Run", "-m", "30", "-c", "300", "-d", "01/01/2024"))
	require.NoError(t, run(t, dbFile, "workout", "add", "Run", "-m", "25", "-c", "250", "--date", "2024-01-01"))
	require.NoError(t, run(t, dbFile, "w", "add", "Bike", "-m", "40", "-c", "400"))
	require.NoError(t, run(t, dbFile, "workout", "list", "-n", "2"))
	require.NoError(t, run(t, dbFile, "workout", "calories"))

	assert.Error(t, run(t, dbFile, "workout", "add", "Swim", "-m", "10"))
	assert.Error(t, run(t, dbFile, "workout", "add", "Run", "-d", "yesterday-ish"))

	db := openStore(t, dbFile)
	logs, err := db.ListWorkoutLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "2024-03-10", logs[0].Date.Format(models.DateLayout), "default date is today")

	totals, err := db.CaloriesByDate(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, 550.0, totals[0].TotalCalories)
	require.NoError(t, db.Close())

	target := logs[1].ID
	id := idArg(target)
	require.NoError(t, run(t, dbFile, "workout", "update", id, "-c", "333", "-e", "Bike"))
	err = run(t, dbFile, "workout", "update", "9999", "-c", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workout not found: 9999")
	assert.Error(t, run(t, dbFile, "workout", "update", "abc"))

	db = openStore(t, dbFile)
	logs, err = db.ListWorkoutLogs(ctx)
	require.NoError(t, err)
	for _, w := range logs {
		if w.ID == target {
			assert.Equal(t, 333.0, w.Calories)
			assert.Equal(t, "Bike", w.ExerciseName)
			assert.Equal(t, "2024-01-01", w.Date.Format(models.DateLayout), "date is kept")
		}
	}
	require.NoError(t, db.Close())

	assert.ErrorIs(t, run(t, dbFile, "workout", "delete", id), errConfirmationRequired)
	require.NoError(t, run(t, dbFile, "workout", "delete", id, "--yes"))
	err = run(t, dbFile, "workout", "delete", id, "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workout not found")

	db = openStore(t, dbFile)
	logs, err = db.ListWorkoutLogs(ctx)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestProgressCommands(t *testing.T) {
	dbFile := setupTestCLI(t)

	require.NoError(t, run(t, dbFile, "progress", "prs"))
	require.NoError(t, run(t, dbFile, "exercise", "add", "Deadlift", "strength"))
	require.NoError(t, run(t, dbFile, "pr", "set", "Deadlift", "180"))
	require.NoError(t, run(t, dbFile, "progress", "prs", "--unit", "kg", "-w", "10"))
	require.NoError(t, run(t, dbFile, "chart", "calories"))
}

func TestExportImportCommands(t *testing.T) {
	dbFile := setupTestCLI(t)
	out := filepath.Join(t.TempDir(), "backup.json")

	require.NoError(t, run(t, dbFile, "exercise", "add", "Run", "cardio"))
	require.NoError(t, run(t, dbFile, "pr", "set", "Run", "5"))
	require.NoError(t, run(t, dbFile, "workout", "add", "Run", "-m", "30", "-c", "300", "-d", "2024-01-01"))
	require.NoError(t, run(t, dbFile, "export", "json", "-o", out))
	require.NoError(t, run(t, dbFile, "export", "markdown", "--since", "2024-01-01"))
	require.NoError(t, run(t, dbFile, "export", "yaml"))
	assert.Error(t, run(t, dbFile, "export", "csv"))

	other := filepath.Join(t.TempDir(), "other.db")
	require.NoError(t, run(t, other, "import", out))

	db := openStore(t, other)
	totals, err := db.CaloriesByDate(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 300.0, totals[0].TotalCalories)
}

func TestConfigCommands(t *testing.T) {
	dbFile := setupTestCLI(t)

	require.NoError(t, run(t, dbFile, "config", "set", "log_level", "debug"))
	require.NoError(t, run(t, dbFile, "config", "show"))
	require.NoError(t, run(t, dbFile, "config", "path"))
	assert.Error(t, run(t, dbFile, "config", "set", "colour", "blue"))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	_, err = os.Stat(dbFile)
	assert.True(t, os.IsNotExist(err), "config commands must not create the database")
}

func TestInstallSkill(t *testing.T) {
	setupTestCLI(t)
	home := t.TempDir()

	// Non-interactive without --yes refuses
	assert.ErrorIs(t, installSkill(home), errConfirmationRequired)
	_, err := os.Stat(skillPath(home))
	assert.True(t, os.IsNotExist(err))

	assumeYes = true
	t.Cleanup(func() { assumeYes = false })
	require.NoError(t, installSkill(home))

	written, err := os.ReadFile(skillPath(home))
	require.NoError(t, err)
	embedded, err := skillFS.ReadFile("skill/SKILL.md")
	require.NoError(t, err)
	assert.Equal(t, embedded, written)
	assert.Contains(t, string(written), "name: liftlog")

	info, err := os.Stat(skillPath(home))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNeedsStore(t *testing.T) {
	assert.True(t, needsStore(prSetCmd))
	assert.True(t, needsStore(workoutListCmd))
	assert.False(t, needsStore(configSetCmd), "config set shares its name with pr set")
	assert.False(t, needsStore(installSkillCmd))
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"exercise", "add"}, {"exercise", "list"}, {"exercise", "update"}, {"exercise", "delete"},
		{"pr", "set"}, {"pr", "list"}, {"pr", "delete"},
		{"workout", "add"}, {"workout", "list"}, {"workout", "update"}, {"workout", "delete"}, {"workout", "calories"},
		{"progress", "prs"}, {"progress", "calories"},
		{"export"}, {"import"}, {"mcp"}, {"install-skill"},
		{"config", "show"}, {"config", "set"}, {"config", "path"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func idArg(id int64) string {
	return strconv.FormatInt(id, 10)
}
