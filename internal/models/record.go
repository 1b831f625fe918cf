// ABOUTME: PersonalRecord model: the single best lift stored per exercise.
// ABOUTME: RecordView is the joined read shape used for listing and charting.
package models

import (
	"fmt"
	"math"
)

// PersonalRecord is the stored PR row. ExerciseID is unique across records.
type PersonalRecord struct {
	ID         int64   `json:"id" yaml:"id"`
	ExerciseID int64   `json:"exercise_id" yaml:"exercise_id"`
	MaxLift    float64 `json:"max_lift" yaml:"max_lift"`
}

// RecordInput is the typed argument of a PR upsert.
type RecordInput struct {
	ExerciseID int64
	MaxLift    float64
}

// Validate rejects non-positive ids and non-finite lifts.
func (in RecordInput) Validate() error {
	if in.ExerciseID <= 0 {
		return fmt.Errorf("%w: exercise id must be positive", ErrInvalidInput)
	}
	if math.IsNaN(in.MaxLift) || math.IsInf(in.MaxLift, 0) {
		return fmt.Errorf("%w: max lift must be a number", ErrInvalidInput)
	}
	return nil
}

// RecordView is a PR joined with its exercise name.
type RecordView struct {
	ExerciseName string  `json:"exercise" yaml:"exercise"`
	MaxLift      float64 `json:"max_lift" yaml:"max_lift"`
}
