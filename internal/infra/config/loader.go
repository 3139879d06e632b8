// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/runoshun/git-issue-commit/internal/domain"
)

// EnvPrefix is the prefix of environment variables read into the configuration.
// GIT_ISSUE_COMMIT_TRACKER__API_KEY maps to tracker.api_key; "__" separates nesting levels.
const EnvPrefix = "GIT_ISSUE_COMMIT_"

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from config.toml, an optional .env file and the environment.
type Loader struct {
	appDir string // Path to the per-user directory (e.g., ~/.config/git-issue-commit)
}

// NewLoader creates a new Loader reading from appDir.
func NewLoader(appDir string) *Loader {
	return &Loader{appDir: appDir}
}

// DefaultAppDir returns the default per-user application directory.
func DefaultAppDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.AppDir(configHome)
}

// Load returns the configuration.
// Loading order: defaults <- config.toml <- .env <- environment (later overrides earlier).
// Variables already present in the environment take precedence over .env entries.
func (l *Loader) Load() (*domain.Config, error) {
	k := koanf.New(".")
	cfg := domain.NewDefaultConfig()

	if l.appDir != "" {
		path := domain.ConfigPath(l.appDir)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), TOMLParser()); err != nil {
				return nil, fmt.Errorf("%w: load config file %s: %w", domain.ErrInvalidConfig, path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config file: %w", err)
		}

		envPath := domain.EnvPath(l.appDir)
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring %s: %v", envPath, err))
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
