// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Besides environment and working-directory helpers it can lay out a mod
// project on disk (WriteProject) and read a built archive back (ZipEntries).
package testutil
