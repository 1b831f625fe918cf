// ABOUTME: CLI commands for workout logs.
// ABOUTME: Log, list, update and delete sessions, plus calories per day.
package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/chart"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	workoutDate     string
	workoutDuration float64
	workoutCalories float64
	workoutExercise string
	workoutLimit    int
)

// now is overridden in tests.
var now = time.Now

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w", "log"},
	Short:   "Manage workout logs",
	Long: `Log training sessions and review them.

Each workout is one session of one exercise on a calendar day, with a
duration in minutes and calories burned. Several sessions per day are fine.

DATES:

  Dates are YYYY-MM-DD. MM/DD/YYYY, "today" and "yesterday" are also
  accepted and normalized.`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <exercise>",
	Short: "Log a workout",
	Long: `Log a workout session for an existing exercise.

EXAMPLES:

  liftlog workout add Running -m 30 -c 280              # Today
  liftlog workout add Running -m 30 -c 280 -d 2024-01-05
  liftlog w add "Bench Press" -m 45 -c 200 -d 01/05/2024`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := models.ParseUserDate(workoutDate, now())
		if err != nil {
			return err
		}
		id, err := exerciseID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		wl, err := store.AddWorkoutLog(cmd.Context(), models.NewWorkoutLogInput(day, id, workoutDuration, workoutCalories))
		if err != nil {
			return fmt.Errorf("failed to log workout: %w", err)
		}

		color.Green("✓ Logged %s on %s", args[0], wl.Date.Format(models.DateLayout))
		fmt.Printf("  %s %g min, %g cal\n",
			color.New(color.Faint).Sprintf("#%d", wl.ID),
			wl.DurationMinutes, wl.Calories)
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List workouts, most recent first",
	Long: `List logged workouts, newest date first.

OUTPUT FORMAT:

  Each line shows: ID  DATE  EXERCISE  DURATION  CALORIES

  The ID is what 'workout update' and 'workout delete' take.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logs, err := store.ListWorkoutLogs(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		if len(logs) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}
		if workoutLimit > 0 && len(logs) > workoutLimit {
			logs = logs[:workoutLimit]
		}

		width := 0
		for _, w := range logs {
			width = max(width, chart.TextWidth(w.ExerciseName))
		}
		faint := color.New(color.Faint)
		for _, w := range logs {
			fmt.Printf("%s %s %s %6g min %6g cal\n",
				faint.Sprintf("%4d", w.ID),
				faint.Sprint(w.Date.Format(models.DateLayout)),
				chart.PadRight(w.ExerciseName, width),
				w.DurationMinutes,
				w.Calories)
		}
		return nil
	},
}

var workoutUpdateCmd = &cobra.Command{
	Use:     "update <id>",
	Aliases: []string{"edit"},
	Short:   "Edit a workout",
	Long: `Edit a logged workout. Only the flags you pass are changed.

EXAMPLES:

  liftlog workout update 12 -c 320
  liftlog workout update 12 --exercise Cycling -d 2024-01-06`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		current, err := findWorkout(cmd.Context(), id)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		day := current.Date
		if flags.Changed("date") {
			if day, err = models.ParseUserDate(workoutDate, now()); err != nil {
				return err
			}
		}
		name := current.ExerciseName
		if flags.Changed("exercise") {
			name = workoutExercise
		}
		exID, err := exerciseID(cmd.Context(), name)
		if err != nil {
			return err
		}
		duration, calories := current.DurationMinutes, current.Calories
		if flags.Changed("duration") {
			duration = workoutDuration
		}
		if flags.Changed("calories") {
			calories = workoutCalories
		}

		in := models.NewWorkoutLogInput(day, exID, duration, calories)
		if err := store.UpdateWorkoutLog(cmd.Context(), id, in); err != nil {
			return fmt.Errorf("failed to update workout: %w", err)
		}

		color.Green("✓ Updated workout #%d", id)
		fmt.Printf("  %s %s %g min, %g cal\n", in.FormattedDate(), name, duration, calories)
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a workout",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		w, err := findWorkout(cmd.Context(), id)
		if err != nil {
			return err
		}

		ok, err := confirm(fmt.Sprintf("Delete %s on %s?", w.ExerciseName, w.Date.Format(models.DateLayout)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Canceled.")
			return nil
		}

		if err := store.DeleteWorkoutLog(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.Yellow("✗ Deleted workout #%d", id)
		return nil
	},
}

var workoutCaloriesCmd = &cobra.Command{
	Use:     "calories",
	Aliases: []string{"cal"},
	Short:   "Total calories per day, oldest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		totals, err := store.CaloriesByDate(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to total calories: %w", err)
		}

		if len(totals) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}
		for _, ct := range totals {
			fmt.Printf("%s %8g\n", ct.Date.Format(models.DateLayout), ct.TotalCalories)
		}
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid workout id: %s", s)
	}
	return id, nil
}

// findWorkout returns the log with the given id.
func findWorkout(ctx context.Context, id int64) (*models.WorkoutLogView, error) {
	w, err := store.GetWorkoutLog(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("workout not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func init() {
	workoutAddCmd.Flags().StringVarP(&workoutDate, "date", "d", "", "session date (default: today)")
	workoutAddCmd.Flags().Float64VarP(&workoutDuration, "duration", "m", 0, "duration in minutes")
	workoutAddCmd.Flags().Float64VarP(&workoutCalories, "calories", "c", 0, "calories burned")

	workoutUpdateCmd.Flags().StringVarP(&workoutDate, "date", "d", "", "new session date")
	workoutUpdateCmd.Flags().Float64VarP(&workoutDuration, "duration", "m", 0, "new duration in minutes")
	workoutUpdateCmd.Flags().Float64VarP(&workoutCalories, "calories", "c", 0, "new calories burned")
	workoutUpdateCmd.Flags().StringVarP(&workoutExercise, "exercise", "e", "", "move the workout to another exercise")

	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 0, "max number of results (0 for all)")

	workoutCmd.AddCommand(workoutAddCmd, workoutListCmd, workoutUpdateCmd, workoutDeleteCmd, workoutCaloriesCmd)
	rootCmd.AddCommand(workoutCmd)
}
