// Package config loads henley-schedule settings from a .env file and HENLEY_*
// environment variables. Environment variables always take precedence over .env
// file values; command-line flags are applied on top by the cli package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "HENLEY"

// Config holds all application configuration.
type Config struct {
	// Timetable page address
	URL       string
	UserAgent string
	Timeout   time.Duration

	// Directory holding cached timetable pages
	DataDir string

	// Directory holding saved defaults
	ConfigDir string

	// YAML trophy table; empty uses the bundled table
	TrophyTable string

	LogLevel string
}

// Load reads configuration from a .env file in the working directory (if present)
// and then from the environment.
func Load() (*Config, error) {
	// A missing .env file is fine; real environment variables are enough.
	_ = godotenv.Load()

	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("URL", "https://www.hrr.co.uk/race-timetable/")
	v.SetDefault("USER_AGENT", "")
	v.SetDefault("TIMEOUT", "30s")
	v.SetDefault("DATA_DIR", "~/.local/share/henley-schedule")
	v.SetDefault("CONFIG_DIR", "")
	v.SetDefault("TROPHY_TABLE", "")
	v.SetDefault("LOG_LEVEL", "warn")

	timeout, err := time.ParseDuration(v.GetString("TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid %s_TIMEOUT: %w", envPrefix, err)
	}

	configDir := v.GetString("CONFIG_DIR")
	if configDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("config: locating user config directory: %w", err)
		}
		configDir = filepath.Join(base, "henley-schedule")
	}

	cfg := &Config{
		URL:         strings.TrimSpace(v.GetString("URL")),
		UserAgent:   v.GetString("USER_AGENT"),
		Timeout:     timeout,
		DataDir:     v.GetString("DATA_DIR"),
		ConfigDir:   configDir,
		TrophyTable: v.GetString("TROPHY_TABLE"),
		LogLevel:    v.GetString("LOG_LEVEL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.URL == "" {
		return fmt.Errorf("config: %s_URL must not be empty", envPrefix)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: %s_TIMEOUT must be positive", envPrefix)
	}
	return nil
}

// ExpandHome replaces a leading "~/" with the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
