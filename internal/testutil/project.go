// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// WriteProject creates a mod project under dir with an info.json for
// name/version and the given extra files (slash-separated relative path to
// content). Paths ending in "/" create empty directories.
func WriteProject(t testing.TB, dir, name, version string, files map[string]string) {
	t.Helper()

	manifest := fmt.Sprintf("{\n  \"name\": %q,\n  \"version\": %q\n}\n", name, version)
	MustWriteFile(t, filepath.Join(dir, "info.json"), manifest)

	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("failed to create directory %s: %v", path, err)
			}
			continue
		}
		MustWriteFile(t, path, content)
	}
}

// MustWriteFile writes content to path, creating parent directories.
func MustWriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ZipEntries returns the sorted entry names of the zip archive at path.
func ZipEntries(t testing.TB, path string) []string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open archive %s: %v", path, err)
	}
	defer func() { _ = zr.Close() }()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}
