// SPDX-License-Identifier: MPL-2.0

package modpack

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Output is the resolved destination of an artifact.
type Output struct {
	// Path is the absolute path the artifact will be written to.
	Path string
	// Existed records whether something occupied Path before it was cleared.
	Existed bool
}

// ResolveOutput creates destDir if needed and clears whatever occupies
// destDir/artifactName, so the next write starts from a fresh file.
func ResolveOutput(destDir, artifactName string) (*Output, error) {
	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, newError(ErrDestinationUnwritable, destDir, err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, newError(ErrDestinationUnwritable, absDir, err)
	}

	out := &Output{Path: filepath.Join(absDir, artifactName)}

	_, err = os.Lstat(out.Path)
	switch {
	case err == nil:
		out.Existed = true
		if err := os.RemoveAll(out.Path); err != nil {
			return nil, newError(ErrStaleArtifactRemovalFailed, out.Path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, newError(ErrStaleArtifactRemovalFailed, out.Path, err)
	}

	return out, nil
}
