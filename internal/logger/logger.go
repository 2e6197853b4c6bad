package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger creates the root zerolog logger with console output.
// Services derive sub-loggers from it via With().Str("module", ...).
func NewLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return log.Output(output).With().Timestamp().Logger()
}

// NewLoggerWithLevel creates a root logger capped at the given level.
func NewLoggerWithLevel(level zerolog.Level) zerolog.Logger {
	return NewLogger().Level(level)
}
