// ABOUTME: Exercise model and validated input for the exercise catalogue.
// ABOUTME: Exercises are addressed by their unique name in user-facing operations.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is wrapped by every Validate failure.
var ErrInvalidInput = errors.New("invalid input")

// Exercise is a named movement that PRs and workout logs refer to.
type Exercise struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// ExerciseInput carries the user-supplied fields for creating or renaming an exercise.
type ExerciseInput struct {
	Name     string
	Category string
}

// NewExerciseInput trims the fields and returns a validated input.
func NewExerciseInput(name, category string) (ExerciseInput, error) {
	in := ExerciseInput{
		Name:     strings.TrimSpace(name),
		Category: strings.TrimSpace(category),
	}
	return in, in.Validate()
}

// Validate checks that both fields are non-empty.
func (in ExerciseInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: exercise name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("%w: exercise category is required", ErrInvalidInput)
	}
	return nil
}
