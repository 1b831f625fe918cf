// ABOUTME: WorkoutLog model for logged training sessions.
// ABOUTME: Dates are calendar days encoded as ISO-8601 (YYYY-MM-DD).
package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the canonical on-disk and display encoding for workout dates.
// Its lexical order matches chronological order.
const DateLayout = "2006-01-02"

// WorkoutLog is a single logged session for one exercise.
type WorkoutLog struct {
	ID              int64     `json:"id" yaml:"id"`
	Date            time.Time `json:"date" yaml:"date"`
	ExerciseID      int64     `json:"exercise_id" yaml:"exercise_id"`
	DurationMinutes float64   `json:"duration_minutes" yaml:"duration_minutes"`
	Calories        float64   `json:"calories" yaml:"calories"`
}

// WorkoutLogInput is the typed argument for adding or overwriting a log.
type WorkoutLogInput struct {
	Date            time.Time
	ExerciseID      int64
	DurationMinutes float64
	Calories        float64
}

// NewWorkoutLogInput builds an input with the date truncated to its calendar day.
func NewWorkoutLogInput(date time.Time, exerciseID int64, duration, calories float64) WorkoutLogInput {
	return WorkoutLogInput{
		Date:            DateOnly(date),
		ExerciseID:      exerciseID,
		DurationMinutes: duration,
		Calories:        calories,
	}
}

// Validate checks the date is set, the exercise id is positive and the numbers are finite.
func (in WorkoutLogInput) Validate() error {
	if in.Date.IsZero() {
		return fmt.Errorf("%w: workout date is required", ErrInvalidInput)
	}
	if in.ExerciseID <= 0 {
		return fmt.Errorf("%w: exercise id must be positive", ErrInvalidInput)
	}
	for name, v := range map[string]float64{"duration": in.DurationMinutes, "calories": in.Calories} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a number", ErrInvalidInput, name)
		}
	}
	return nil
}

// FormattedDate returns the canonical encoding of the input date.
func (in WorkoutLogInput) FormattedDate() string {
	return in.Date.Format(DateLayout)
}

// WorkoutLogView is a log joined with its exercise name.
type WorkoutLogView struct {
	ID              int64     `json:"id" yaml:"id"`
	Date            time.Time `json:"date" yaml:"date"`
	ExerciseName    string    `json:"exercise" yaml:"exercise"`
	DurationMinutes float64   `json:"duration_minutes" yaml:"duration_minutes"`
	Calories        float64   `json:"calories" yaml:"calories"`
}

// CalorieTotal is the summed calories for one calendar day.
type CalorieTotal struct {
	Date          time.Time `json:"date" yaml:"date"`
	TotalCalories float64   `json:"total_calories" yaml:"total_calories"`
}

// DateOnly drops the clock part of t, keeping its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a canonical YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t, nil
}

// usLayout is the MM/DD/YYYY form date pickers commonly emit.
const usLayout = "01/02/2006"

// ParseUserDate accepts YYYY-MM-DD or MM/DD/YYYY, and "" or "today" for the
// current local day. The result is normalized with DateOnly.
func ParseUserDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "today":
		return DateOnly(now), nil
	case "yesterday":
		return DateOnly(now.AddDate(0, 0, -1)), nil
	}
	for _, layout := range []string{DateLayout, usLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD or MM/DD/YYYY", ErrInvalidInput, s)
}
