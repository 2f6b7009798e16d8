// SPDX-License-Identifier: MPL-2.0

//go:build linux || darwin || freebsd

package buildlock

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
)

// Lock holds a blocking exclusive flock.
type Lock struct {
	file *os.File
}

// Acquire opens (or creates) the lock file at path and blocks until the
// exclusive flock is granted.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("flock %s: %w", path, err)
	}

	return &Lock{file: f}, nil
}

// Release unlocks and closes the lock file. Subsequent calls are no-ops.
func (l *Lock) Release() {
	if l == nil || l.file == nil {
		return
	}
	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		log.Debug("flock unlock failed", "error", err)
	}
	if err := l.file.Close(); err != nil {
		log.Debug("lock file close failed", "error", err)
	}
	l.file = nil
}
