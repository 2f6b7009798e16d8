// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is read from, in order of precedence:
//
//  1. the file passed with --config
//  2. .facmod.cue in the mod project directory
//  3. config.cue in the user config directory ($XDG_CONFIG_HOME/facmod on
//     Linux, ~/Library/Application Support/facmod on macOS, %APPDATA%\facmod
//     on Windows)
//
// Files are validated against the embedded #Config schema before being merged
// over the defaults. Every key can be overridden with a FACMOD_ environment
// variable, e.g. FACMOD_FACTORIO_MODS_DIR for factorio.mods_dir.
package config
