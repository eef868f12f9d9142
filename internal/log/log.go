// Package log wraps zerolog with a file sink. The terminal belongs to the
// fuzzy finder, so nothing here may write to stdout or stderr.
package log

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/korbo/claude-chats/internal/config"
)

var logger = zerolog.Nop()

// Init opens the log file and configures the global logger. Debug level is
// gated on CLAUDE_CHATS_DEBUG; without it only warnings and errors land.
func Init() {
	path := filepath.Join(config.StateDir(), "claude-chats.log")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}

	level := zerolog.WarnLevel
	if os.Getenv("CLAUDE_CHATS_DEBUG") != "" {
		level = zerolog.DebugLevel
	}

	logger = zerolog.New(f).Level(level).With().Timestamp().Logger()
}

// SetOutput redirects the logger, used by tests.
func SetOutput(w io.Writer) {
	logger = zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event {
	return logger.Debug()
}

// Info starts an info-level event.
func Info() *zerolog.Event {
	return logger.Info()
}

// Warn starts a warn-level event.
func Warn() *zerolog.Event {
	return logger.Warn()
}

// Error starts an error-level event.
func Error() *zerolog.Event {
	return logger.Error()
}
