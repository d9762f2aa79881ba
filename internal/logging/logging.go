// Package logging wires [log/slog] to the tool configuration. Commands
// pull their logger from the context, so library code never reaches for
// a global and tests can swap the sink freely.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/manifex/internal/config"
)

type loggerKey struct{}

// Setup builds the process logger from cfg and installs it as the slog
// default. Log lines go to stderr; stdout is reserved for rendered
// manifests.
func Setup(cfg *config.Config) *slog.Logger {
	return SetupWithWriter(cfg, os.Stderr)
}

// SetupWithWriter is Setup with a caller-chosen sink, used by tests to
// capture log output.
func SetupWithWriter(cfg *config.Config, w io.Writer) *slog.Logger {
	logger := slog.New(newHandler(cfg, w))
	slog.SetDefault(logger)

	return logger
}

func newHandler(cfg *config.Config, w io.Writer) slog.Handler {
	level := ParseLevel(cfg.EffectiveLogLevel())

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	if cfg.LogFormat == config.LogFormatJSON {
		return slog.NewJSONHandler(w, opts)
	}

	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps a level name to its slog.Level. Unrecognized names
// fall back to info rather than failing startup.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}

	return level
}

// NewContext returns a child context carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger carried by ctx, or slog.Default when
// none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}

	return slog.Default()
}
