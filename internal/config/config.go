package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the tool's settings.
type Config struct {
	ProjectsDir         string  `toml:"projects_dir"`
	OutputDir           string  `toml:"output_dir"`
	DefaultTrackHeight  float64 `toml:"default_track_height"`
	DefaultClipDuration float64 `toml:"default_clip_duration"`
	ShowStats           bool    `toml:"show_stats"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		ProjectsDir:         "projects",
		OutputDir:           "output",
		DefaultTrackHeight:  60,
		DefaultClipDuration: 1.0,
	}
}

// ReadFromFile reads a Config from the specified path. A missing file is not
// an error: defaults apply.
func ReadFromFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
