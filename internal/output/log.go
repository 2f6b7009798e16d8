// SPDX-License-Identifier: MPL-2.0

// Package output configures the structured logger shared by the CLI.
package output

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns a logger writing to w. Verbose mode lowers the level to
// debug and adds timestamps.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "facmod",
		ReportTimestamp: verbose,
	})
}

// SetupLogging builds a logger with NewLogger and installs it as the
// package-level default used by code that logs through log.Debug and friends.
func SetupLogging(w io.Writer, verbose bool) *log.Logger {
	logger := NewLogger(w, verbose)
	log.SetDefault(logger)
	return logger
}
