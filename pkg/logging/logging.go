// Package logging configures structured logging for tripwrap binaries.
//
// Usage:
//
//	logging.Setup(cfg.LogLevel, cfg.LogFormat) // tint text or JSON on stderr
//	logging.SetupWithLevel(slog.LevelDebug)    // colored text, explicit level
//
// Format "json" writes one JSON object per line for log shippers; anything
// else writes colored human-readable output via tint.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default logger at level in the given format.
func Setup(level slog.Level, format string) {
	slog.SetDefault(New(os.Stderr, level, format))
}

// SetupWithLevel installs a colored text logger at the given level.
func SetupWithLevel(level slog.Level) {
	Setup(level, "text")
}

// New builds a logger writing to w.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}))
	}
	return slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
			NoColor:    w != os.Stderr && w != os.Stdout,
		}),
	)
}
