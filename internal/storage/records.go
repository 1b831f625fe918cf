// ABOUTME: Personal record operations for SQLite storage.
// ABOUTME: UpsertRecord keeps at most one PR row per exercise.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/liftlog/internal/models"
)

// UpsertRecord stores max lift as the PR for an exercise. An existing row is
// overwritten in place (its id is kept); otherwise a new row is inserted.
// The bool reports whether a row was created. A missing exercise fails with
// ErrUnknownExercise and writes nothing.
func (d *DB) UpsertRecord(ctx context.Context, in models.RecordInput) (*models.PersonalRecord, bool, error) {
	if err := in.Validate(); err != nil {
		return nil, false, err
	}

	var (
		pr      *models.PersonalRecord
		created bool
	)
	err := d.write(ctx, func(ctx context.Context, tx DBTX) error {
		var err error
		pr, created, err = upsertRecord(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("upsert record: %w", err)
	}

	d.log.Debug().
		Int64("exercise_id", pr.ExerciseID).
		Float64("max_lift", pr.MaxLift).
		Bool("created", created).
		Msg("personal record stored")
	return pr, created, nil
}

// DeleteRecord removes the PR for an exercise. Deleting a PR that does not
// exist is not an error.
func (d *DB) DeleteRecord(ctx context.Context, exerciseID int64) error {
	err := d.write(ctx, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM pr_records WHERE exercise_id = ?", exerciseID)
		return classify(err)
	})
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// ListRecords returns every PR joined with its exercise name, ordered by
// exercise name. Exercises without a PR are not included.
func (d *DB) ListRecords(ctx context.Context) ([]*models.RecordView, error) {
	var records []*models.RecordView
	err := d.read(ctx, func(ctx context.Context, tx DBTX) error {
		var err error
		records, err = listRecords(ctx, tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func listRecords(ctx context.Context, tx DBTX) ([]*models.RecordView, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT e.name, p.max_lift
		FROM pr_records p
		JOIN exercises e ON p.exercise_id = e.id
		ORDER BY e.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.RecordView
	for rows.Next() {
		var r models.RecordView
		if err := rows.Scan(&r.ExerciseName, &r.MaxLift); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}

// upsertRecord is the check-then-act sequence. Callers run it inside a write
// transaction; the UNIQUE constraint on exercise_id backs it at the storage layer.
func upsertRecord(ctx context.Context, tx DBTX, in models.RecordInput) (*models.PersonalRecord, bool, error) {
	pr := &models.PersonalRecord{ExerciseID: in.ExerciseID, MaxLift: in.MaxLift}

	err := tx.QueryRowContext(ctx,
		"SELECT id FROM pr_records WHERE exercise_id = ?", in.ExerciseID).Scan(&pr.ID)
	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx,
			"UPDATE pr_records SET max_lift = ? WHERE id = ?", in.MaxLift, pr.ID); err != nil {
			return nil, false, classify(err)
		}
		return pr, false, nil

	case errors.Is(err, sql.ErrNoRows):
		result, err := tx.ExecContext(ctx,
			"INSERT INTO pr_records (exercise_id, max_lift) VALUES (?, ?)", in.ExerciseID, in.MaxLift)
		if err != nil {
			return nil, false, classify(err)
		}
		if pr.ID, err = result.LastInsertId(); err != nil {
			return nil, false, err
		}
		return pr, true, nil

	default:
		return nil, false, fmt.Errorf("find record: %w", err)
	}
}
