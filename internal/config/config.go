package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	BackendURL string `koanf:"backend_url"` // content backend base URL, e.g. "https://api.serene.example"

	// Initial channel gains, 0.0-1.0. Persisted values from the history
	// store take precedence once available.
	Volume           float64 `koanf:"volume"`
	BackgroundVolume float64 `koanf:"background_volume"`

	// Playback tuning
	PollIntervalMs int `koanf:"poll_interval_ms"` // position ticker interval (default: 100)
	GuardTTLMs     int `koanf:"guard_ttl_ms"`     // transport debounce window (default: 300)
}

// PollInterval returns the configured ticker interval.
func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalMs <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// GuardTTL returns the configured debounce window.
func (c *Config) GuardTTL() time.Duration {
	if c.GuardTTLMs <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(c.GuardTTLMs) * time.Millisecond
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		Volume:           1.0,
		BackgroundVolume: 0.5,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.BackendURL = strings.TrimSuffix(cfg.BackendURL, "/")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/serene/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "serene", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}
