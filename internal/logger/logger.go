// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ServiceName is attached to every log line.
const ServiceName = "flock-service"

// Init sets the global level and output. Unknown or empty levels fall back to info.
func Init(level string, pretty bool) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = os.Stderr
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	log.Logger = New(out)
}

// New builds a logger that writes to out with the service fields attached.
func New(out io.Writer) zerolog.Logger {
	return zerolog.New(out).With().Timestamp().Str("service", ServiceName).Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Logger returns the global logger instance.
func Logger() zerolog.Logger {
	return log.Logger
}

// Component returns a child of the global logger tagged with a component name,
// e.g. "scheduler" or "optimizer".
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}

// ForFarm returns a component logger for work done on behalf of one farm.
func ForFarm(component, farmID string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Str("farm_id", farmID).Logger()
}
