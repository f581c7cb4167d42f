// Package logging builds the leveled console logger shared by the service
// and HTTP layers.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

type Options struct {
	Level           string
	Prefix          string
	ReportTimestamp bool
}

func DefaultOptions() Options {
	return Options{
		Level:           "info",
		Prefix:          "dashboard",
		ReportTimestamp: true,
	}
}

// New returns a logger writing to w, or stderr when w is nil. An unknown
// level falls back to info.
func New(w io.Writer, opts Options) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.ReportTimestamp,
		Formatter:       log.TextFormatter,
	})
}

// Discard is a logger for tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
