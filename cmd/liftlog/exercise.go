// ABOUTME: CLI commands for managing exercises.
// ABOUTME: Add, list, update, and delete (with cascade) by exercise name.
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/chart"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exerciseNewName  string
	exerciseCategory string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex", "e"},
	Short:   "Manage exercises",
	Long: `Manage the exercises that PRs and workouts refer to.

Exercise names are unique. Deleting an exercise also deletes its PR and
every workout logged for it.`,
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name> <category>",
	Short: "Add an exercise",
	Long: `Add an exercise with a unique name and a category.

EXAMPLES:

  liftlog exercise add "Bench Press" strength
  liftlog ex add Rowing cardio`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := models.NewExerciseInput(args[0], args[1])
		if err != nil {
			return err
		}

		e, err := store.AddExercise(cmd.Context(), in)
		if errors.Is(err, storage.ErrDuplicateName) {
			return fmt.Errorf("exercise %q already exists", in.Name)
		}
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added exercise %s", e.Name)
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprintf("#%d", e.ID), e.Category)
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List exercises",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := store.ListExercises(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		if len(exercises) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		width := 0
		for _, e := range exercises {
			width = max(width, chart.TextWidth(e.Name))
		}
		faint := color.New(color.Faint)
		for _, e := range exercises {
			fmt.Printf("%s %s %s\n",
				faint.Sprintf("%4d", e.ID),
				chart.PadRight(e.Name, width),
				faint.Sprint(e.Category))
		}
		return nil
	},
}

var exerciseUpdateCmd = &cobra.Command{
	Use:     "update <name>",
	Aliases: []string{"edit", "rename"},
	Short:   "Rename or recategorize an exercise",
	Long: `Change an exercise's name and/or category. PRs and workout logs follow
the exercise.

EXAMPLES:

  liftlog exercise update Bench --name "Bench Press"
  liftlog exercise update Rowing --category endurance`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exerciseNewName == "" && exerciseCategory == "" {
			return fmt.Errorf("nothing to update: pass --name and/or --category")
		}

		current, err := getExercise(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		name, category := current.Name, current.Category
		if exerciseNewName != "" {
			name = exerciseNewName
		}
		if exerciseCategory != "" {
			category = exerciseCategory
		}
		in, err := models.NewExerciseInput(name, category)
		if err != nil {
			return err
		}

		err = store.UpdateExercise(cmd.Context(), current.Name, in)
		if errors.Is(err, storage.ErrDuplicateName) {
			return fmt.Errorf("exercise %q already exists", in.Name)
		}
		if err != nil {
			return fmt.Errorf("failed to update exercise: %w", err)
		}

		color.Green("✓ Updated exercise %s", in.Name)
		fmt.Printf("  %s\n", in.Category)
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete an exercise with its PR and workouts",
	Long: `Delete an exercise by name.

CAUTION:

  This also deletes the exercise's personal record and every workout
  logged for it. There is no undo. Pass --yes to skip the prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := getExercise(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		ok, err := confirm(fmt.Sprintf("Delete %s and all its PRs and workouts?", e.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Canceled.")
			return nil
		}

		if err := store.DeleteExercise(cmd.Context(), e.Name); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}

		color.Yellow("✗ Deleted exercise %s", e.Name)
		return nil
	},
}

// getExercise looks up an exercise by name with a CLI-friendly error.
func getExercise(ctx context.Context, name string) (*models.Exercise, error) {
	e, err := store.GetExercise(ctx, strings.TrimSpace(name))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("exercise not found: %s", name)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// exerciseID resolves a name to an id, failing when the exercise is unknown.
func exerciseID(ctx context.Context, name string) (int64, error) {
	id, ok, err := store.FindExerciseID(ctx, strings.TrimSpace(name))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("exercise not found: %s (add it with 'liftlog exercise add')", name)
	}
	return id, nil
}

func init() {
	exerciseUpdateCmd.Flags().StringVar(&exerciseNewName, "name", "", "new exercise name")
	exerciseUpdateCmd.Flags().StringVarP(&exerciseCategory, "category", "c", "", "new category")

	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd, exerciseUpdateCmd, exerciseDeleteCmd)
	rootCmd.AddCommand(exerciseCmd)
}
