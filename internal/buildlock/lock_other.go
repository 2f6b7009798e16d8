// SPDX-License-Identifier: MPL-2.0

//go:build !linux && !darwin && !freebsd

package buildlock

// Lock is the stub used where flock is unavailable.
type Lock struct{}

// Acquire always fails with ErrUnavailable on this platform.
func Acquire(string) (*Lock, error) {
	return nil, ErrUnavailable
}

// Release is a no-op.
func (l *Lock) Release() {}
