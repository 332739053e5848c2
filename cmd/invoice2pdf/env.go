package main

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// newLogger creates a logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// loggerFor returns the command logger for the common flags:
// --quiet keeps errors only, --verbose adds render timings.
func loggerFor(w io.Writer, f commonFlags) *log.Logger {
	level := log.InfoLevel
	switch {
	case f.quiet:
		level = log.ErrorLevel
	case f.verbose:
		level = log.DebugLevel
	}
	return newLogger(w, level)
}
