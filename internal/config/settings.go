// Package config loads the installer's own settings: defaults, an optional
// YAML settings file, and environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/RosieTheGhostie/seaside-installer/internal/logging"
	"github.com/RosieTheGhostie/seaside-installer/internal/release"
)

// Environment variables recognised by ApplyEnv and DefaultSettingsPath.
const (
	EnvRepoURL   = "SEASIDE_INSTALLER_REPO_URL"
	EnvLogLevel  = "SEASIDE_INSTALLER_LOG_LEVEL"
	EnvLogFormat = "SEASIDE_INSTALLER_LOG_FORMAT"
	EnvSettings  = "SEASIDE_INSTALLER_SETTINGS"
)

// ErrInvalidSettings wraps every validation failure.
var ErrInvalidSettings = errors.New("invalid installer settings")

// Settings configures the installer itself, not seaside.
type Settings struct {
	// RepoURL is the GitHub repository releases are fetched from.
	RepoURL string        `yaml:"repo_url"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds diagnostic logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		RepoURL: release.DefaultRepoURL,
		Logging: LoggingConfig{
			Level:  logging.DefaultLevel,
			Format: logging.FormatConsole,
		},
	}
}

// DefaultSettingsPath returns $SEASIDE_INSTALLER_SETTINGS, or
// <user config dir>/seaside-installer/settings.yaml.
func DefaultSettingsPath(getenv func(string) string) string {
	if p := getenv(EnvSettings); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "seaside-installer", "settings.yaml")
}

// Load returns defaults overlaid with the YAML file at path.
// When explicit is false a missing file is not an error.
func Load(path string, explicit bool) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return s, nil
		}
		return s, fmt.Errorf("reading settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	return s, nil
}

// ApplyEnv overrides fields from the environment.
func (s *Settings) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvRepoURL); ok && v != "" {
		s.RepoURL = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		s.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		s.Logging.Format = v
	}
}

// Validate reports the first problem with s.
func (s Settings) Validate() error {
	u, err := url.Parse(s.RepoURL)
	if err != nil {
		return fmt.Errorf("%w: repo_url: %w", ErrInvalidSettings, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: repo_url must be an http(s) URL, got %q", ErrInvalidSettings, s.RepoURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: repo_url has no host: %q", ErrInvalidSettings, s.RepoURL)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(s.Logging.Level)); err != nil {
		return fmt.Errorf("%w: logging.level: %w", ErrInvalidSettings, err)
	}

	switch s.Logging.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: logging.format must be %q or %q, got %q",
			ErrInvalidSettings, logging.FormatConsole, logging.FormatJSON, s.Logging.Format)
	}
	return nil
}

// ToLoggingConfig converts the logging section for the logging package.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
	}
}
