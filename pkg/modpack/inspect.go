// SPDX-License-Identifier: MPL-2.0

package modpack

import (
	"archive/zip"
	"fmt"
	"strings"
)

// ListedEntry is one record of an existing artifact.
type ListedEntry struct {
	Name             string
	Dir              bool
	Method           string
	CompressedSize   uint64
	UncompressedSize uint64
}

// ListEntries returns the entries of the zip at path in archive order.
func ListEntries(path string) (entries []ListedEntry, err error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	entries = make([]ListedEntry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, ListedEntry{
			Name:             f.Name,
			Dir:              strings.HasSuffix(f.Name, "/"),
			Method:           methodName(f.Method),
			CompressedSize:   f.CompressedSize64,
			UncompressedSize: f.UncompressedSize64,
		})
	}
	return entries, nil
}

func methodName(m uint16) string {
	switch m {
	case zip.Store:
		return "store"
	case zip.Deflate:
		return "deflate"
	default:
		return fmt.Sprintf("method(%d)", m)
	}
}
