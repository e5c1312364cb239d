package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger. Development gets a human readable console
// writer at debug level; every other environment logs JSON at info level.
func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.EqualFold(environment, "development") {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		return zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Str("service", "procurement").Logger()
	}
	return zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Str("service", "procurement").Logger()
}
