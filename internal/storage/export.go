// ABOUTME: Export and import functionality for fitness data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats and JSON import.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/harperreed/liftlog/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export file.
const ExportVersion = "1.0"

// ExportData represents the full export format. Rows reference exercises by
// name so a file can be imported into a database with different ids.
type ExportData struct {
	Version    string           `json:"version" yaml:"version"`
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Tool       string           `json:"tool" yaml:"tool"`
	Exercises  []ExportExercise `json:"exercises" yaml:"exercises"`
	Records    []ExportRecord   `json:"personal_records" yaml:"personal_records"`
	Workouts   []ExportWorkout  `json:"workout_logs" yaml:"workout_logs"`
}

// ExportExercise is an exercise in an export file.
type ExportExercise struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// ExportRecord is a PR in an export file.
type ExportRecord struct {
	Exercise string  `json:"exercise" yaml:"exercise"`
	MaxLift  float64 `json:"max_lift" yaml:"max_lift"`
}

// ExportWorkout is a workout log in an export file.
type ExportWorkout struct {
	Date            string  `json:"date" yaml:"date"`
	Exercise        string  `json:"exercise" yaml:"exercise"`
	DurationMinutes float64 `json:"duration_minutes" yaml:"duration_minutes"`
	Calories        float64 `json:"calories" yaml:"calories"`
}

// ImportSummary holds counts of imported rows.
type ImportSummary struct {
	Exercises int
	Records   int
	Workouts  int
}

// GetAllData retrieves all data for export from a single read transaction.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	var (
		exercises []*models.Exercise
		records   []*models.RecordView
		logs      []*models.WorkoutLogView
	)
	err := d.read(ctx, func(ctx context.Context, tx DBTX) error {
		var err error
		if exercises, err = listExercises(ctx, tx); err != nil {
			return err
		}
		if records, err = listRecords(ctx, tx); err != nil {
			return err
		}
		logs, err = listWorkoutLogs(ctx, tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get all data: %w", err)
	}

	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       "liftlog",
		Exercises:  make([]ExportExercise, 0, len(exercises)),
		Records:    make([]ExportRecord, 0, len(records)),
		Workouts:   make([]ExportWorkout, 0, len(logs)),
	}
	for _, e := range exercises {
		data.Exercises = append(data.Exercises, ExportExercise{Name: e.Name, Category: e.Category})
	}
	for _, r := range records {
		data.Records = append(data.Records, ExportRecord{Exercise: r.ExerciseName, MaxLift: r.MaxLift})
	}
	for _, w := range logs {
		data.Workouts = append(data.Workouts, ExportWorkout{
			Date:            w.Date.Format(models.DateLayout),
			Exercise:        w.ExerciseName,
			DurationMinutes: w.DurationMinutes,
			Calories:        w.Calories,
		})
	}
	return data, nil
}

// ImportData imports an export in a single transaction. Exercises that
// already exist by name are reused, PRs are upserted and workout logs are
// appended. Any failure leaves the database unchanged.
func (d *DB) ImportData(ctx context.Context, data *ExportData) (*ImportSummary, error) {
	summary := &ImportSummary{}

	err := d.write(ctx, func(ctx context.Context, tx DBTX) error {
		ids := make(map[string]int64)

		for _, e := range data.Exercises {
			in, err := models.NewExerciseInput(e.Name, e.Category)
			if err != nil {
				return err
			}
			result, err := tx.ExecContext(ctx,
				"INSERT INTO exercises (name, category) VALUES (?, ?) ON CONFLICT(name) DO NOTHING",
				in.Name, in.Category)
			if err != nil {
				return classify(err)
			}
			if n, _ := result.RowsAffected(); n > 0 {
				summary.Exercises++
			}
		}

		lookup := func(name string) (int64, error) {
			if id, ok := ids[name]; ok {
				return id, nil
			}
			e, err := getExerciseByName(ctx, tx, name)
			if errors.Is(err, ErrNotFound) {
				return 0, fmt.Errorf("%w: %s", ErrUnknownExercise, name)
			}
			if err != nil {
				return 0, err
			}
			ids[name] = e.ID
			return e.ID, nil
		}

		for _, r := range data.Records {
			id, err := lookup(r.Exercise)
			if err != nil {
				return err
			}
			if _, _, err := upsertRecord(ctx, tx, models.RecordInput{ExerciseID: id, MaxLift: r.MaxLift}); err != nil {
				return err
			}
			summary.Records++
		}

		for _, w := range data.Workouts {
			id, err := lookup(w.Exercise)
			if err != nil {
				return err
			}
			date, err := models.ParseDate(w.Date)
			if err != nil {
				return err
			}
			in := models.NewWorkoutLogInput(date, id, w.DurationMinutes, w.Calories)
			if err := in.Validate(); err != nil {
				return err
			}
			if _, err := insertWorkoutLog(ctx, tx, in); err != nil {
				return err
			}
			summary.Workouts++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import data: %w", err)
	}

	d.log.Debug().
		Int("exercises", summary.Exercises).
		Int("records", summary.Records).
		Int("workouts", summary.Workouts).
		Msg("import complete")
	return summary, nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ExportMarkdown exports data as Markdown tables. When since is set, only
// workout logs on or after that day are included.
func (d *DB) ExportMarkdown(ctx context.Context, since *time.Time) (string, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return "", err
	}
	totals, err := d.CaloriesByDate(ctx)
	if err != nil {
		return "", err
	}

	var cutoff string
	if since != nil {
		cutoff = since.Format(models.DateLayout)
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Workout Export - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	sb.WriteString("## Exercises\n\n")
	sb.WriteString("| Name | Category |\n")
	sb.WriteString("|------|----------|\n")
	for _, e := range data.Exercises {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", e.Name, e.Category))
	}
	sb.WriteString("\n")

	if len(data.Records) > 0 {
		sb.WriteString("## Personal Records\n\n")
		sb.WriteString("| Exercise | Max Lift |\n")
		sb.WriteString("|----------|----------|\n")
		for _, r := range data.Records {
			sb.WriteString(fmt.Sprintf("| %s | %.2f |\n", r.Exercise, r.MaxLift))
		}
		sb.WriteString("\n")
	}

	var workouts []ExportWorkout
	for _, w := range data.Workouts {
		// ISO dates compare lexically
		if cutoff == "" || w.Date >= cutoff {
			workouts = append(workouts, w)
		}
	}
	if len(workouts) > 0 {
		sb.WriteString("## Workout Log\n\n")
		sb.WriteString("| Date | Exercise | Duration | Calories |\n")
		sb.WriteString("|------|----------|----------|----------|\n")
		for _, w := range workouts {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.0f min | %.0f |\n",
				w.Date, w.Exercise, w.DurationMinutes, w.Calories))
		}
		sb.WriteString("\n")
	}

	var daily []models.CalorieTotal
	for _, ct := range totals {
		if cutoff == "" || ct.Date.Format(models.DateLayout) >= cutoff {
			daily = append(daily, ct)
		}
	}
	if len(daily) > 0 {
		sb.WriteString("## Calories by Date\n\n")
		sb.WriteString("| Date | Calories |\n")
		sb.WriteString("|------|----------|\n")
		for _, ct := range daily {
			sb.WriteString(fmt.Sprintf("| %s | %.0f |\n", ct.Date.Format(models.DateLayout), ct.TotalCalories))
		}
	}

	return sb.String(), nil
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, raw []byte) (*ImportSummary, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(ctx, &data)
}
