// ABOUTME: Exercise CRUD operations for SQLite storage.
// ABOUTME: Exercises are addressed by unique name; deletes cascade to PRs and logs.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/liftlog/internal/models"
)

// AddExercise inserts a new exercise. A name collision returns
// ErrDuplicateName and leaves the existing row untouched.
func (d *DB) AddExercise(ctx context.Context, in models.ExerciseInput) (*models.Exercise, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var e *models.Exercise
	err := d.write(ctx, func(ctx context.Context, tx DBTX) error {
		var err error
		e, err = insertExercise(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}

	d.log.Debug().Int64("id", e.ID).Str("name", e.Name).Msg("exercise added")
	return e, nil
}

// UpdateExercise renames and recategorizes the exercise called oldName.
func (d *DB) UpdateExercise(ctx context.Context, oldName string, in models.ExerciseInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	err := d.write(ctx, func(ctx context.Context, tx DBTX) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE exercises SET name = ?, category = ? WHERE name = ?",
			in.Name, in.Category, oldName)
		if err != nil {
			return classify(err)
		}
		return expectOneRow(result, oldName)
	})
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	return nil
}

// DeleteExercise removes the exercise called name together with its PR and
// workout logs (cascade delete).
func (d *DB) DeleteExercise(ctx context.Context, name string) error {
	err := d.write(ctx, func(ctx context.Context, tx DBTX) error {
		// CASCADE is enabled, so the PR and logs go with the exercise
		result, err := tx.ExecContext(ctx, "DELETE FROM exercises WHERE name = ?", name)
		if err != nil {
			return classify(err)
		}
		return expectOneRow(result, name)
	})
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}

// ListExercises returns all exercises in insertion order.
func (d *DB) ListExercises(ctx context.Context) ([]*models.Exercise, error) {
	var exercises []*models.Exercise
	err := d.read(ctx, func(ctx context.Context, tx DBTX) error {
		var err error
		exercises, err = listExercises(ctx, tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

func listExercises(ctx context.Context, tx DBTX) ([]*models.Exercise, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id, name, category FROM exercises ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Category); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, &e)
	}
	return exercises, rows.Err()
}

// FindExerciseID looks up an exercise id by name. The bool is false when no
// exercise has that name.
func (d *DB) FindExerciseID(ctx context.Context, name string) (int64, bool, error) {
	e, err := d.GetExercise(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return e.ID, true, nil
}

// GetExercise retrieves an exercise by name.
func (d *DB) GetExercise(ctx context.Context, name string) (*models.Exercise, error) {
	var e *models.Exercise
	err := d.read(ctx, func(ctx context.Context, tx DBTX) error {
		var err error
		e, err = getExerciseByName(ctx, tx, name)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return e, nil
}

func insertExercise(ctx context.Context, tx DBTX, in models.ExerciseInput) (*models.Exercise, error) {
	result, err := tx.ExecContext(ctx,
		"INSERT INTO exercises (name, category) VALUES (?, ?)",
		in.Name, in.Category)
	if err != nil {
		return nil, classify(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Exercise{ID: id, Name: in.Name, Category: in.Category}, nil
}

func getExerciseByName(ctx context.Context, tx DBTX, name string) (*models.Exercise, error) {
	var e models.Exercise
	err := tx.QueryRowContext(ctx,
		"SELECT id, name, category FROM exercises WHERE name = ?", name).
		Scan(&e.ID, &e.Name, &e.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("scan exercise: %w", err)
	}
	return &e, nil
}

// expectOneRow maps a zero-row result onto ErrNotFound.
func expectOneRow(result sql.Result, key any) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	return nil
}
