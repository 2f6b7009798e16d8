// SPDX-License-Identifier: MPL-2.0

package buildlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
)

// ErrUnavailable is returned by Acquire on platforms without flock.
var ErrUnavailable = errors.New("flock not available on this platform")

// Path returns the lock file used for artifactPath.
// It lives in $XDG_RUNTIME_DIR when set, otherwise in the temp dir.
func Path(artifactPath string) string {
	return pathWith(artifactPath, os.Getenv)
}

func pathWith(artifactPath string, getenv func(string) string) string {
	dir := getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	sum := sha256.Sum256([]byte(filepath.Clean(artifactPath)))
	return filepath.Join(dir, "facmod-"+hex.EncodeToString(sum[:8])+".lock")
}

// ForArtifact acquires the lock for artifactPath and returns its release
// function. On platforms without flock it returns a no-op release so builds
// proceed unserialised.
func ForArtifact(artifactPath string) (func(), error) {
	l, err := Acquire(Path(artifactPath))
	if errors.Is(err, ErrUnavailable) {
		return func() {}, nil
	}
	if err != nil {
		return nil, err
	}
	return l.Release, nil
}
