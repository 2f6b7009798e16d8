// SPDX-License-Identifier: MPL-2.0

package modpack

import "strings"

// LocalOutputDir is the project-relative directory local builds write to.
// It is never packaged, so the output and source trees may overlap.
const LocalOutputDir = "build"

// Exclude reports whether a filesystem entry must be left out of the artifact.
// Excluding a directory prunes everything below it.
//
// The traversal root is never excluded. Any other entry is excluded when its
// name equals artifactName, starts with a dot, or equals LocalOutputDir.
func Exclude(name string, isRoot bool, artifactName string) bool {
	if isRoot {
		return false
	}
	return name == artifactName ||
		strings.HasPrefix(name, ".") ||
		name == LocalOutputDir
}
