package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

var (
	current = LevelInfo
	logger  = newLogger(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
)

func newLogger(w zerolog.ConsoleWriter) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// ParseLevel maps a LOG_LEVEL value to a Level. Unknown values mean info.
func ParseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "error":
		return LevelError
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

func SetLevel(l Level) {
	current = l
	switch l {
	case LevelDebug:
		logger = logger.Level(zerolog.DebugLevel)
	case LevelError:
		logger = logger.Level(zerolog.ErrorLevel)
	default:
		logger = logger.Level(zerolog.InfoLevel)
	}
}

// SetOutput redirects log output to w without colors.
func SetOutput(w io.Writer) {
	logger = newLogger(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"})
	SetLevel(current)
}

// CurrentLevel reports the active level.
func CurrentLevel() Level {
	return current
}

// Logger exposes the underlying zerolog logger for structured fields.
func Logger() *zerolog.Logger {
	return &logger
}

func Debugf(format string, args ...interface{}) {
	if current <= LevelDebug {
		logger.Debug().Msgf(format, args...)
	}
}

func Infof(format string, args ...interface{}) {
	if current <= LevelInfo {
		logger.Info().Msgf(format, args...)
	}
}

func Errorf(format string, args ...interface{}) {
	logger.Error().Msgf(format, args...)
}

func Fatalf(format string, args ...interface{}) {
	logger.Fatal().Msgf(format, args...)
}
