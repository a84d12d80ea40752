// Package logger constructs the process-wide zerolog logger.  The logger is
// created once in main and passed by reference into the components that log
// (queue consumer, event publisher, error funnel).
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a JSON logger writing to stdout.  In development the level is
// lowered to debug and output is switched to the human-readable console
// writer; any other environment logs structured JSON at info level.
func New(env string) zerolog.Logger {
	level := zerolog.InfoLevel
	var out = zerolog.New(os.Stdout)
	if env == "development" {
		level = zerolog.DebugLevel
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return out.Level(level).With().
		Str("service", "videoclub-api").
		Timestamp().
		Logger()
}

// Nop returns a disabled logger for tests.
func Nop() zerolog.Logger { return zerolog.Nop() }
