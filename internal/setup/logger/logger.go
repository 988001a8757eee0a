// Package logger builds the process-wide zerolog logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a stdout logger at the requested level. Unrecognized level
// strings fall back to info.
func New(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).
		Level(parsed).
		With().
		Timestamp().
		Caller().
		Logger()
}
