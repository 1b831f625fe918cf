// ABOUTME: CLI commands for viewing and changing liftlog configuration.
// ABOUTME: Reads and writes $XDG_CONFIG_HOME/liftlog/config.json.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "View or change configuration",
	Annotations: noStore,
	Long: `View or change liftlog configuration.

KEYS:

  data_dir    directory holding liftlog.db (default: ~/.local/share/liftlog)
  db_path     database file, wins over data_dir
  log_level   debug, info, warn (default) or error

Every key can also be set with an environment variable, e.g. LIFTLOG_DB_PATH.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		fmt.Printf("%s %s\n", faint.Sprint("config:  "), config.GetConfigPath())
		fmt.Printf("%s %s\n", faint.Sprint("database:"), cfg.GetDBPath())
		fmt.Printf("%s %s\n", faint.Sprint("log:     "), cfg.Level())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and save it.

EXAMPLES:

  liftlog config set data_dir ~/Dropbox/liftlog
  liftlog config set log_level debug
  liftlog config set db_path ""          # clear a value`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		color.Green("✓ Set %s", args[0])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetConfigPath())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
