package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable settings read from the YAML config file.
type Config struct {
	// StorePath is the storage location. A .json extension selects the
	// JSON store; anything else opens a SQLite database.
	StorePath string `yaml:"store_path"`

	// WarmupSeconds is the countdown before the first exercise of a
	// workout session. Zero disables the warm-up.
	WarmupSeconds int `yaml:"warmup_seconds"`

	// NotificationTitle and NotificationBody seed the reminder text of
	// newly created entities. The entity name replaces {name}.
	NotificationTitle string `yaml:"notification_title"`
	NotificationBody  string `yaml:"notification_body"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		StorePath:         filepath.Join(home, ".config", "fittick", "fittick.db"),
		WarmupSeconds:     5,
		NotificationTitle: "{name}",
		NotificationBody:  "Time for {name}",
	}
}

// Path returns the config file location: $FITTICK_CONFIG if set, otherwise
// ~/.config/fittick/config.yaml.
func Path() string {
	if env := os.Getenv("FITTICK_CONFIG"); env != "" {
		return env
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "fittick", "config.yaml")
}

// Load reads the config file at path, filling unset fields from the
// defaults. A missing file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.WarmupSeconds < 0 {
		return nil, fmt.Errorf("warmup_seconds must not be negative")
	}
	if cfg.StorePath == "" {
		cfg.StorePath = DefaultConfig().StorePath
	}

	return cfg, nil
}
