// Package ulogger provides the structured logger used across this module.
// It wraps zerolog the way the rest of the codebase's ambient stack expects:
// one named logger per subsystem, level set from configuration, pretty
// console output in development.
package ulogger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the minimal leveled-logging contract every package in this
// module depends on. It is small enough to embed in test doubles.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// ZLogger wraps a zerolog.Logger and tags every line with the owning
// subsystem's name.
type ZLogger struct {
	zerolog.Logger
	service string
}

// New creates a logger for service at the given level ("debug", "info",
// "warn", "error"). Pretty console formatting is used unless
// NODECORE_PLAIN_LOGS is set, matching the teacher's PRETTY_LOGS switch.
func New(service string, level string) *ZLogger {
	if service == "" {
		service = "nodecore"
	}

	var z *ZLogger
	if os.Getenv("NODECORE_PLAIN_LOGS") == "" {
		z = prettyLogger(service)
	} else {
		z = &ZLogger{
			zerolog.New(os.Stdout).With().Timestamp().Logger(),
			service,
		}
	}

	z.Logger = z.Logger.Level(parseLevel(level))

	return z
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "FATAL":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

func prettyLogger(service string) *ZLogger {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	output.FormatMessage = func(i interface{}) string {
		return "| " + service + "\t| " + fmtAny(i)
	}

	return &ZLogger{
		zerolog.New(output).With().Timestamp().Logger(),
		service,
	}
}

func fmtAny(i interface{}) string {
	if s, ok := i.(string); ok {
		return s
	}

	return ""
}

func (z *ZLogger) Debugf(format string, args ...interface{}) { z.Logger.Debug().Msgf(format, args...) }
func (z *ZLogger) Infof(format string, args ...interface{})  { z.Logger.Info().Msgf(format, args...) }
func (z *ZLogger) Warnf(format string, args ...interface{})  { z.Logger.Warn().Msgf(format, args...) }
func (z *ZLogger) Errorf(format string, args ...interface{}) { z.Logger.Error().Msgf(format, args...) }
func (z *ZLogger) Fatalf(format string, args ...interface{}) { z.Logger.Fatal().Msgf(format, args...) }

// TestLogger is a no-op Logger, used by tests that don't want console noise.
type TestLogger struct{}

func (TestLogger) Debugf(string, ...interface{}) {}
func (TestLogger) Infof(string, ...interface{})  {}
func (TestLogger) Warnf(string, ...interface{})  {}
func (TestLogger) Errorf(string, ...interface{}) {}
func (TestLogger) Fatalf(string, ...interface{}) {}
