// SPDX-License-Identifier: MPL-2.0

// Package buildlock serialises facmod processes that write the same artifact.
//
// The lock is an exclusive flock on a zero-byte file whose name is derived
// from the artifact path. The kernel drops the flock when the descriptor is
// closed, including on a crash, so an orphaned lock file is harmless.
package buildlock
