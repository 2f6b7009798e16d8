// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It locates the Factorio user data directories on each operating system and
// rejects file names that cannot exist on Windows.
package platform
