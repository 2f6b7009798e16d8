// SPDX-License-Identifier: MPL-2.0

// Package scaffold creates the skeleton of a new Factorio mod: an info.json
// manifest, a changelog, data.lua and control.lua stubs, an empty
// prototypes/ directory and, optionally, a git repository.
package scaffold
