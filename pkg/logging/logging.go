// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup("debug")                  // level by name
//	logging.SetupWithLevel(slog.LevelWarn)  // explicit level
//
// Unknown level names fall back to info.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/mmynk/tripzy/internal/config"
)

// Setup installs a tint handler on stderr as the default logger and
// returns it.
func Setup(level string) *slog.Logger {
	lvl, err := config.ParseLevel(level)
	logger := SetupWithLevel(lvl)
	if err != nil {
		logger.Warn("Unknown log level, using info", "level", level)
	}
	return logger
}

// SetupWithLevel configures colored logging at the given level.
func SetupWithLevel(level slog.Level) *slog.Logger {
	logger := New(os.Stderr, level)
	slog.SetDefault(logger)
	return logger
}

// New builds a tint logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
		NoColor:    !isTerminal(w),
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
