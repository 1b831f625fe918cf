// ABOUTME: Root Cobra command for liftlog CLI.
// ABOUTME: Sets up logging and the SQLite store lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/harperreed/liftlog/internal/config"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	store  *storage.DB
	logger = zerolog.Nop()

	dbPath    string
	verbose   bool
	assumeYes bool
)

// noStore marks commands (and their children) that never touch the database.
var noStore = map[string]string{"store": "none"}

func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch {
		case c.Annotations["store"] == "none":
			return false
		case c.Name() == "help" || c.Name() == "completion":
			return false
		}
	}
	return true
}

var rootCmd = &cobra.Command{
	Use:   "liftlog",
	Short: "Personal lifting and workout log",
	Long: `Liftlog is a CLI tool for tracking exercises, personal records, and workouts.

WHAT IT TRACKS:

  Exercises      named movements with a category (strength, cardio, ...)
  PRs            one personal record (max lift) per exercise
  Workouts       dated sessions with duration and calories burned

QUICK START:

  $ liftlog exercise add "Bench Press" strength   # Add an exercise
  $ liftlog pr set "Bench Press" 100              # Record a PR
  $ liftlog workout add "Bench Press" -m 45 -c 300 # Log a session today
  $ liftlog workout list                          # Most recent first
  $ liftlog workout calories                      # Calories per day
  $ liftlog progress prs                          # Chart your PRs

MCP INTEGRATION:

  Run 'liftlog mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "liftlog": { "command": "liftlog", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data is stored in SQLite at ~/.local/share/liftlog/liftlog.db
  (or $XDG_DATA_HOME/liftlog/liftlog.db). Override with --db, the
  LIFTLOG_DB_PATH environment variable, or 'liftlog config set db_path'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger = newLogger(cfg)

		if !needsStore(cmd) {
			return nil
		}

		path := cfg.GetDBPath()
		if dbPath != "" {
			path = config.ExpandPath(dbPath)
		}

		store, err = storage.Open(path, storage.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// Execute runs the root command and always releases the store, including
// when a subcommand fails before PersistentPostRunE.
func Execute() error {
	defer func() { _ = closeStore() }()
	return rootCmd.Execute()
}

func closeStore() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// newLogger writes human-readable logs to stderr so stdout stays clean for
// command output and the MCP stdio transport.
func newLogger(cfg *config.Config) zerolog.Logger {
	level := cfg.Level()
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: $XDG_DATA_HOME/liftlog/liftlog.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompts")
}
