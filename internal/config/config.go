// ABOUTME: Liftlog configuration management backed by viper.
// ABOUTME: Resolves data paths and log level from the config file and LIFTLOG_* env vars.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const envPrefix = "LIFTLOG"

// Config stores liftlog configuration.
type Config struct {
	// DataDir is the directory holding liftlog.db. Supports ~ expansion.
	// Defaults to $XDG_DATA_HOME/liftlog.
	DataDir string `mapstructure:"data_dir" json:"data_dir,omitempty"`

	// DBPath points at the database file directly and wins over DataDir.
	DBPath string `mapstructure:"db_path" json:"db_path,omitempty"`

	// LogLevel is a zerolog level name. Defaults to "warn".
	LogLevel string `mapstructure:"log_level" json:"log_level,omitempty"`
}

// Keys lists the settable config keys in sorted order.
func Keys() []string {
	keys := []string{"data_dir", "db_path", "log_level"}
	sort.Strings(keys)
	return keys
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDBPath returns the database file path.
func (c *Config) GetDBPath() string {
	if c.DBPath != "" {
		return ExpandPath(c.DBPath)
	}
	return filepath.Join(c.GetDataDir(), "liftlog.db")
}

// Level parses LogLevel, falling back to warn when empty or unknown.
func (c *Config) Level() zerolog.Level {
	if c.LogLevel == "" {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return lvl
}

// Set assigns a config key by name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "data_dir":
		c.DataDir = value
	case "db_path":
		c.DBPath = value
	case "log_level":
		if value != "" {
			if _, err := zerolog.ParseLevel(strings.ToLower(value)); err != nil {
				return fmt.Errorf("invalid log level %q", value)
			}
		}
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// Get returns a config key by name.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "data_dir":
		return c.DataDir, nil
	case "db_path":
		return c.DBPath, nil
	case "log_level":
		return c.LogLevel, nil
	}
	return "", fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store at the configured path.
func (c *Config) OpenStorage(opts ...storage.Option) (*storage.DB, error) {
	return storage.Open(c.GetDBPath(), opts...)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "liftlog", "config.json")
}

// Load reads config from disk and applies LIFTLOG_* environment overrides.
// A missing file yields defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(GetConfigPath())
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	for _, key := range Keys() {
		v.SetDefault(key, "")
	}

	if _, err := os.Stat(GetConfigPath()); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
