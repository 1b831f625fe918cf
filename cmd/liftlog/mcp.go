// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/harperreed/liftlog/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read and log your training through
a standardized protocol. The server communicates via stdin/stdout; logs go
to stderr.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "liftlog": {
        "command": "liftlog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_exercise      Add an exercise
  update_exercise   Rename or recategorize an exercise
  delete_exercise   Delete an exercise with its PR and workouts
  list_exercises    List exercises
  set_pr            Set the PR for an exercise
  delete_pr         Remove a PR
  list_prs          List PRs
  log_workout       Log a workout session
  update_workout    Edit a workout by ID
  delete_workout    Delete a workout by ID
  list_workouts     List workouts, most recent first
  calories_by_date  Calories burned per day

AVAILABLE RESOURCES:

  liftlog://summary    Exercises, PRs, recent workouts and totals
  liftlog://calories   Calories per day`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, mcp.WithLogger(logger))
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
