// SPDX-License-Identifier: MPL-2.0

package modpack

import (
	"errors"
	"fmt"
)

var (
	// ErrDestinationUnwritable is returned when the destination directory cannot be created.
	ErrDestinationUnwritable = errors.New("destination unwritable")
	// ErrStaleArtifactRemovalFailed is returned when a previous artifact cannot be removed.
	ErrStaleArtifactRemovalFailed = errors.New("stale artifact removal failed")
	// ErrArtifactCreateFailed is returned when the artifact file cannot be created.
	ErrArtifactCreateFailed = errors.New("artifact create failed")
	// ErrEntryWriteFailed is returned when an entry cannot be read or written into the archive.
	ErrEntryWriteFailed = errors.New("entry write failed")
	// ErrArchiveFinalizeFailed is returned when the archive cannot be finalized or closed.
	ErrArchiveFinalizeFailed = errors.New("archive finalize failed")
	// ErrLaunchFailed is returned when the game could not be started after a deploy.
	ErrLaunchFailed = errors.New("launch failed")
)

// Error is a packaging failure. Kind is one of the package sentinels and
// Path names the file or directory the failing step was working on.
type Error struct {
	Kind error
	Path string
	Err  error
}

func newError(kind error, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns the kind sentinel and the cause for errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
