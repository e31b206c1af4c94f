package internal

import (
	"os"

	"github.com/rs/zerolog"
)

// NewDevLogger returns a human-readable console logger for cmd/valuator
// and for tests that want to see what the engine is doing. The core
// itself never configures logging globally: every component defaults to
// zerolog.Nop() and only logs when a caller supplies one of the
// With*Logger options.
func NewDevLogger() zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).With().Timestamp().Logger()
}
