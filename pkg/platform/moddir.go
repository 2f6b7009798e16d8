// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ModsDirName is the name of the directory Factorio loads mod zips from.
const ModsDirName = "mods"

// UserDataDir returns Factorio's user data directory for goos:
//
//	windows: %APPDATA%\Factorio (falling back to <home>\AppData\Roaming\Factorio)
//	darwin:  <home>/Library/Application Support/factorio
//	others:  <home>/.factorio
func UserDataDir(goos, home string, getenv func(string) string) string {
	switch goos {
	case Windows:
		appData := getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "Factorio")
	case Darwin:
		return filepath.Join(home, "Library", "Application Support", "factorio")
	default:
		return filepath.Join(home, ".factorio")
	}
}

// ModsDir returns the mods directory inside UserDataDir.
func ModsDir(goos, home string, getenv func(string) string) string {
	return filepath.Join(UserDataDir(goos, home, getenv), ModsDirName)
}

// UserModsDir resolves the mods directory of the current user.
func UserModsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return ModsDir(runtime.GOOS, home, os.Getenv), nil
}
