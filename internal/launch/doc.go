// SPDX-License-Identifier: MPL-2.0

// Package launch starts the game after a deploy.
//
// Launchers are fire-and-forget: they start a process and release it without
// waiting, so facmod exits while the game keeps running.
package launch
