// ABOUTME: CLI commands for personal records.
// ABOUTME: One PR per exercise; setting a PR overwrites the previous value.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/chart"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/spf13/cobra"
)

var prCmd = &cobra.Command{
	Use:     "pr",
	Aliases: []string{"record", "records"},
	Short:   "Manage personal records",
	Long: `Manage personal records (PRs).

Each exercise has at most one PR: its max lift. Setting a PR for an
exercise that already has one replaces it.`,
}

var prSetCmd = &cobra.Command{
	Use:   "set <exercise> <max_lift>",
	Short: "Set the PR for an exercise",
	Long: `Set the max lift for an exercise, replacing any previous PR.

EXAMPLES:

  liftlog pr set "Bench Press" 100
  liftlog pr set Deadlift 182.5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxLift, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid max lift: %s", args[1])
		}

		id, err := exerciseID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		pr, created, err := store.UpsertRecord(cmd.Context(), models.RecordInput{ExerciseID: id, MaxLift: maxLift})
		if err != nil {
			return fmt.Errorf("failed to set PR: %w", err)
		}

		if created {
			color.Green("✓ Set PR for %s: %g", args[0], pr.MaxLift)
		} else {
			color.Green("✓ Updated PR for %s: %g", args[0], pr.MaxLift)
		}
		return nil
	},
}

var prListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List personal records",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := store.ListRecords(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list PRs: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No personal records yet.")
			return nil
		}

		width := 0
		for _, r := range records {
			width = max(width, chart.TextWidth(r.ExerciseName))
		}
		for _, r := range records {
			fmt.Printf("%s %g\n", chart.PadRight(r.ExerciseName, width), r.MaxLift)
		}
		return nil
	},
}

var prDeleteCmd = &cobra.Command{
	Use:     "delete <exercise>",
	Aliases: []string{"del", "rm"},
	Short:   "Remove the PR for an exercise",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := exerciseID(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		ok, err := confirm(fmt.Sprintf("Remove the PR for %s?", args[0]))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Canceled.")
			return nil
		}

		if err := store.DeleteRecord(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete PR: %w", err)
		}

		color.Yellow("✗ Removed PR for %s", args[0])
		return nil
	},
}

func init() {
	prCmd.AddCommand(prSetCmd, prListCmd, prDeleteCmd)
	rootCmd.AddCommand(prCmd)
}
