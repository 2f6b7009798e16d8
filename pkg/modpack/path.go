// SPDX-License-Identifier: MPL-2.0

package modpack

import (
	"path"
	"path/filepath"
	"strings"
)

// ArchivePath maps a path relative to the traversal root to its location in
// the artifact: root + "/" + rel, always with forward slashes. The second
// result is false for the traversal root itself, which has no entry.
func ArchivePath(root, rel string) (string, bool) {
	rel = filepath.ToSlash(rel)
	for strings.HasPrefix(rel, "./") {
		rel = rel[len("./"):]
	}
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	if rel == "" || rel == "." {
		return "", false
	}
	return root + "/" + rel, true
}
