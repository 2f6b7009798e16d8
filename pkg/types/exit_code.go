// SPDX-License-Identifier: MPL-2.0

// Package types holds small value types shared by the command layer.
package types

import (
	"errors"
	"fmt"
	"strconv"
)

// Process exit codes reported by facmod.
const (
	ExitSuccess ExitCode = 0
	// ExitFailure covers usage errors and anything without a dedicated code.
	ExitFailure ExitCode = 1
	// ExitBuildFailed means no artifact was produced.
	ExitBuildFailed ExitCode = 2
	// ExitLaunchFailed means the artifact was deployed but the game did not start.
	ExitLaunchFailed ExitCode = 3
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside 0-255.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates success.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
