package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HENLEY_CONFIG_DIR", t.TempDir())

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}

	if cfg.URL != "https://www.hrr.co.uk/race-timetable/" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.DataDir != "~/.local/share/henley-schedule" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.TrophyTable != "" {
		t.Errorf("TrophyTable = %q, want empty", cfg.TrophyTable)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_Environment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HENLEY_URL", "https://example.test/timetable")
	t.Setenv("HENLEY_TIMEOUT", "5s")
	t.Setenv("HENLEY_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("HENLEY_CONFIG_DIR", filepath.Join(dir, "config"))
	t.Setenv("HENLEY_TROPHY_TABLE", filepath.Join(dir, "table.yaml"))
	t.Setenv("HENLEY_USER_AGENT", "test-agent/1.0")
	t.Setenv("HENLEY_LOG_LEVEL", "debug")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}

	if cfg.URL != "https://example.test/timetable" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.DataDir != filepath.Join(dir, "data") {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.ConfigDir != filepath.Join(dir, "config") {
		t.Errorf("ConfigDir = %q", cfg.ConfigDir)
	}
	if cfg.UserAgent != "test-agent/1.0" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"bad timeout", "HENLEY_TIMEOUT", "soon", "HENLEY_TIMEOUT"},
		{"negative timeout", "HENLEY_TIMEOUT", "-1s", "HENLEY_TIMEOUT"},
		{"blank url", "HENLEY_URL", "   ", "HENLEY_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HENLEY_CONFIG_DIR", t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := load(viper.New())
			if err == nil {
				t.Fatal("load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %s", err, tt.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/.local/share/henley-schedule", filepath.Join(home, ".local/share/henley-schedule")},
		{"/var/cache/henley", "/var/cache/henley"},
		{"relative/dir", "relative/dir"},
	}

	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
