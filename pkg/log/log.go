package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultPerms = 0o0600

	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 30
)

//nolint:gochecknoglobals
var loggerSetTimeFormat sync.Once

// Logger extends zerolog's Logger.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns a logger writing to stdout, or to a rotated file at output when set.
func NewLogger(level, output string) Logger {
	if output == "" {
		return NewLoggerWithWriter(level, os.Stdout)
	}

	return NewLoggerWithWriter(level, &lumberjack.Logger{
		Filename:   output,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		LocalTime:  true,
	})
}

func NewLoggerWithWriter(level string, writer io.Writer) Logger {
	setGlobals(level)

	log := zerolog.New(writer)

	return Logger{Logger: log.With().Caller().Timestamp().Logger()}
}

// NewAuditLogger returns the logger receiving one entry per deleted package version.
func NewAuditLogger(level, output string) (*Logger, error) {
	setGlobals(level)

	var auditLog zerolog.Logger

	if output == "" {
		auditLog = zerolog.New(os.Stdout)
	} else {
		auditFile, err := os.OpenFile(output, os.O_APPEND|os.O_WRONLY|os.O_CREATE, defaultPerms)
		if err != nil {
			return nil, err
		}

		auditLog = zerolog.New(auditFile)
	}

	return &Logger{Logger: auditLog.With().Timestamp().Logger()}, nil
}

// NewNopLogger discards everything, handy for tests and library callers.
func NewNopLogger() Logger {
	return Logger{Logger: zerolog.Nop()}
}

func setGlobals(level string) {
	loggerSetTimeFormat.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano
	})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		panic(err)
	}

	zerolog.SetGlobalLevel(lvl)
}
