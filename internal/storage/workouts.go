// ABOUTME: Workout log CRUD and aggregate queries for SQLite storage.
// ABOUTME: Listing is newest date first; the calorie aggregate is oldest first.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/liftlog/internal/models"
)

// AddWorkoutLog inserts a new session. Several sessions for the same day and
// exercise are allowed.
func (d *DB) AddWorkoutLog(ctx context.Context, in models.WorkoutLogInput) (*models.WorkoutLog, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var wl *models.WorkoutLog
	err := d.write(ctx, func(ctx context.Context, tx DBTX) error {
		var err error
		wl, err = insertWorkoutLog(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("add workout log: %w", err)
	}
	return wl, nil
}

// UpdateWorkoutLog overwrites every field of the log with the given id.
func (d *DB) UpdateWorkoutLog(ctx context.Context, id int64, in models.WorkoutLogInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	err := d.write(ctx, func(ctx context.Context, tx DBTX) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE workout_logs
			SET date = ?, exercise_id = ?, duration_minutes = ?, calories = ?
			WHERE id = ?
		`, in.FormattedDate(), in.ExerciseID, in.DurationMinutes, in.Calories, id)
		if err != nil {
			return classify(err)
		}
		return expectOneRow(result, id)
	})
	if err != nil {
		return fmt.Errorf("update workout log: %w", err)
	}
	return nil
}

// DeleteWorkoutLog removes the log with the given id.
func (d *DB) DeleteWorkoutLog(ctx context.Context, id int64) error {
	err := d.write(ctx, func(ctx context.Context, tx DBTX) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM workout_logs WHERE id = ?", id)
		if err != nil {
			return classify(err)
		}
		return expectOneRow(result, id)
	})
	if err != nil {
		return fmt.Errorf("delete workout log: %w", err)
	}
	return nil
}

const workoutViewQuery = `
	SELECT w.id, w.date, e.name, w.duration_minutes, w.calories
	FROM workout_logs w
	JOIN exercises e ON w.exercise_id = e.id
`

// GetWorkoutLog retrieves one log joined with its exercise name.
func (d *DB) GetWorkoutLog(ctx context.Context, id int64) (*models.WorkoutLogView, error) {
	var v *models.WorkoutLogView
	err := d.read(ctx, func(ctx context.Context, tx DBTX) error {
		var err error
		v, err = scanWorkoutView(tx.QueryRowContext(ctx, workoutViewQuery+" WHERE w.id = ?", id))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("workout log %d: %w", id, ErrNotFound)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get workout log: %w", err)
	}
	return v, nil
}

// ListWorkoutLogs returns every log joined with its exercise name, sorted by
// date descending (most recent first). Logs on the same day keep insertion order.
func (d *DB) ListWorkoutLogs(ctx context.Context) ([]*models.WorkoutLogView, error) {
	var logs []*models.WorkoutLogView
	err := d.read(ctx, func(ctx context.Context, tx DBTX) error {
		var err error
		logs, err = listWorkoutLogs(ctx, tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list workout logs: %w", err)
	}
	return logs, nil
}

func listWorkoutLogs(ctx context.Context, tx DBTX) ([]*models.WorkoutLogView, error) {
	rows, err := tx.QueryContext(ctx, workoutViewQuery+" ORDER BY w.date DESC, w.id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.WorkoutLogView
	for rows.Next() {
		v, err := scanWorkoutView(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, v)
	}
	return logs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkoutView(row rowScanner) (*models.WorkoutLogView, error) {
	var (
		v    models.WorkoutLogView
		date string
	)
	if err := row.Scan(&v.ID, &date, &v.ExerciseName, &v.DurationMinutes, &v.Calories); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan workout log: %w", err)
	}
	var err error
	if v.Date, err = models.ParseDate(date); err != nil {
		return nil, fmt.Errorf("scan workout log %d: %w", v.ID, err)
	}
	return &v, nil
}

// CaloriesByDate sums calories per calendar day, oldest day first. Every
// distinct logged date appears exactly once.
func (d *DB) CaloriesByDate(ctx context.Context) ([]models.CalorieTotal, error) {
	var totals []models.CalorieTotal
	err := d.read(ctx, func(ctx context.Context, tx DBTX) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT date, SUM(calories) AS total_calories
			FROM workout_logs
			GROUP BY date
			ORDER BY date ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				ct   models.CalorieTotal
				date string
			)
			if err := rows.Scan(&date, &ct.TotalCalories); err != nil {
				return fmt.Errorf("scan calorie total: %w", err)
			}
			if ct.Date, err = models.ParseDate(date); err != nil {
				return fmt.Errorf("scan calorie total: %w", err)
			}
			totals = append(totals, ct)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("calories by date: %w", err)
	}
	return totals, nil
}

func insertWorkoutLog(ctx context.Context, tx DBTX, in models.WorkoutLogInput) (*models.WorkoutLog, error) {
	result, err := tx.ExecContext(ctx, `
		INSERT INTO workout_logs (date, exercise_id, duration_minutes, calories)
		VALUES (?, ?, ?, ?)
	`, in.FormattedDate(), in.ExerciseID, in.DurationMinutes, in.Calories)
	if err != nil {
		return nil, classify(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.WorkoutLog{
		ID:              id,
		Date:            models.DateOnly(in.Date),
		ExerciseID:      in.ExerciseID,
		DurationMinutes: in.DurationMinutes,
		Calories:        in.Calories,
	}, nil
}
