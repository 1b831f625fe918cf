// ABOUTME: CLI commands that chart progress in the terminal.
// ABOUTME: Bar charts for personal records and calories burned per day.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/chart"
	"github.com/spf13/cobra"
)

var (
	progressWidth int
	progressUnit  string
)

var progressCmd = &cobra.Command{
	Use:     "progress",
	Aliases: []string{"chart"},
	Short:   "Chart PRs and calories",
}

var progressPRsCmd = &cobra.Command{
	Use:   "prs",
	Short: "Bar chart of personal records",
	Long: `Draw one bar per exercise with a PR, scaled to the heaviest lift.

EXAMPLES:

  liftlog progress prs
  liftlog progress prs --unit kg --width 60`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := store.ListRecords(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list PRs: %w", err)
		}
		return chart.Render(os.Stdout, "Personal Records", chart.FromRecords(records), chart.Options{
			Width: progressWidth,
			Unit:  progressUnit,
			Color: color.FgCyan,
		})
	},
}

var progressCaloriesCmd = &cobra.Command{
	Use:   "calories",
	Short: "Bar chart of calories burned per day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		totals, err := store.CaloriesByDate(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to total calories: %w", err)
		}
		return chart.Render(os.Stdout, "Calories Burned", chart.FromCalories(totals), chart.Options{
			Width: progressWidth,
			Unit:  "cal",
			Color: color.FgYellow,
		})
	},
}

func init() {
	progressCmd.PersistentFlags().IntVarP(&progressWidth, "width", "w", chart.DefaultWidth, "bar width for the largest value")
	progressPRsCmd.Flags().StringVarP(&progressUnit, "unit", "u", "", "weight unit label (kg, lb)")

	progressCmd.AddCommand(progressPRsCmd, progressCaloriesCmd)
	rootCmd.AddCommand(progressCmd)
}
