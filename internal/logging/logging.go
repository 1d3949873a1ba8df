// Package logging builds the zerolog loggers used throughout the installer
// and carries them through context.Context.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Log output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// DefaultLevel keeps diagnostic logs quiet unless --verbose is given;
// progress is reported through the ui package instead.
const DefaultLevel = "warn"

// Config controls logger construction.
type Config struct {
	Level  string
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
	// NoColor disables ANSI colors in console output.
	NoColor bool
}

// New returns a logger configured from cfg. Unparseable levels fall back to
// DefaultLevel.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl, _ = zerolog.ParseLevel(DefaultLevel)
	}

	var writer io.Writer = out
	if cfg.Format != FormatJSON {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor,
		}
	}

	return zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Str("invocation_id", NewInvocationID()).
		Logger()
}

// NewInvocationID returns a sortable unique ID for one installer run.
func NewInvocationID() string {
	return ulid.Make().String()
}

// ComponentLogger returns a child logger tagged with component.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
