package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(originalWd)
	})
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Error("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "serene", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func TestLoad_EmptyConfig(t *testing.T) {
	chdirTemp(t)

	if err := os.WriteFile("config.toml", []byte(""), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
}

func TestLoad_BasicConfig(t *testing.T) {
	chdirTemp(t)

	configContent := `
backend_url = "https://api.serene.example/"
volume = 0.8
background_volume = 0.3
poll_interval_ms = 250
`
	if err := os.WriteFile("config.toml", []byte(configContent), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Check that URL trailing slash is removed
	if cfg.BackendURL != "https://api.serene.example" {
		t.Errorf("BackendURL = %q, want %q", cfg.BackendURL, "https://api.serene.example")
	}
	if cfg.Volume != 0.8 {
		t.Errorf("Volume = %v, want 0.8", cfg.Volume)
	}
	if cfg.BackgroundVolume != 0.3 {
		t.Errorf("BackgroundVolume = %v, want 0.3", cfg.BackgroundVolume)
	}
	if cfg.PollInterval() != 250*time.Millisecond {
		t.Errorf("PollInterval() = %v, want 250ms", cfg.PollInterval())
	}
}

func TestLoad_InvalidToml(t *testing.T) {
	chdirTemp(t)

	if err := os.WriteFile("config.toml", []byte("invalid = [[["), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for invalid TOML, got nil")
	}
}

func TestDurations_Defaults(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		poll   time.Duration
		guard  time.Duration
	}{
		{
			name:   "zero values get defaults",
			config: Config{},
			poll:   100 * time.Millisecond,
			guard:  300 * time.Millisecond,
		},
		{
			name:   "negative values get defaults",
			config: Config{PollIntervalMs: -50, GuardTTLMs: -1},
			poll:   100 * time.Millisecond,
			guard:  300 * time.Millisecond,
		},
		{
			name:   "custom values respected",
			config: Config{PollIntervalMs: 500, GuardTTLMs: 150},
			poll:   500 * time.Millisecond,
			guard:  150 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.PollInterval(); got != tt.poll {
				t.Errorf("PollInterval() = %v, want %v", got, tt.poll)
			}
			if got := tt.config.GuardTTL(); got != tt.guard {
				t.Errorf("GuardTTL() = %v, want %v", got, tt.guard)
			}
		})
	}
}
