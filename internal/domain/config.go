package domain

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	DefaultTrackerTimeout = 30 * time.Second
	DefaultLogLevel       = "info"
)

// Config is the application configuration loaded from config.toml and the environment.
type Config struct {
	Tracker  TrackerConfig `koanf:"tracker"`
	Commit   CommitConfig  `koanf:"commit"`
	Log      LogConfig     `koanf:"log"`
	Warnings []string      `koanf:"-"`
}

// TrackerConfig holds tracker connection settings.
// URL and APIKey, when set, act like the --url and --api-key flags.
type TrackerConfig struct {
	URL     string        `koanf:"url" validate:"omitempty,url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// CommitConfig holds defaults for the commit step.
type CommitConfig struct {
	// TemplatePath overrides the location of the commit message template.
	TemplatePath string `koanf:"template_path"`
	Silent       bool   `koanf:"silent"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

// NewDefaultConfig returns a Config populated with defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Tracker: TrackerConfig{
			Timeout: DefaultTrackerTimeout,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	return nil
}
