package config

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds the process-wide logger. Pretty console output when
// LOG_PRETTY is set, JSON otherwise.
func NewLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}

	if os.Getenv("LOG_PRETTY") != "" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}
