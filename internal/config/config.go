// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/facmod/facmod/internal/issue"
	"github.com/facmod/facmod/pkg/platform"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "facmod"
	// ConfigFileName is the name of the user config file.
	ConfigFileName = "config.cue"
	// ProjectFileName is the project-local config file. Its leading dot keeps
	// it out of built archives.
	ProjectFileName = ".facmod.cue"
	// EnvPrefix prefixes environment overrides (FACMOD_BUILD_LOCK=false).
	EnvPrefix = "FACMOD"
)

// ConfigDir returns the facmod configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// UserConfigPath returns the path of the user config file, honoring
// opts.ConfigDirPath. The file may not exist.
func UserConfigPath(opts LoadOptions) (string, error) {
	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		var err error
		if cfgDir, err = ConfigDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(cfgDir, ConfigFileName), nil
}

// FilePath returns the config file Load would read for opts, or "" when
// none exists.
func FilePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, nil
	}
	if opts.ProjectDir != "" {
		local := filepath.Join(opts.ProjectDir, ProjectFileName)
		if fileExists(local) {
			return local, nil
		}
	}
	userPath, err := UserConfigPath(opts)
	if err != nil {
		return "", err
	}
	if fileExists(userPath) {
		return userPath, nil
	}
	return "", nil
}

// newViper returns a viper instance carrying the defaults and the FACMOD_
// environment binding. Every key must have a default for AutomaticEnv to
// reach it during Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("factorio.mods_dir", defaults.Factorio.ModsDir)
	v.SetDefault("factorio.launch.uri", defaults.Factorio.Launch.URI)
	v.SetDefault("factorio.launch.command", defaults.Factorio.Launch.Command)
	v.SetDefault("build.lock", defaults.Build.Lock)
	v.SetDefault("build.reproducible", defaults.Build.Reproducible)
	v.SetDefault("new.author", defaults.New.Author)
	v.SetDefault("new.git_init", defaults.New.GitInit)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.interactive", defaults.UI.Interactive)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// loadWithOptions performs option-driven config loading without touching
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	if opts.ConfigFilePath != "" && !fileExists(opts.ConfigFilePath) {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(opts.ConfigFilePath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Use 'facmod config init' to create a default configuration").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
			BuildError()
	}

	resolvedPath, err := FilePath(opts)
	if err != nil {
		return nil, "", err
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'facmod config --help' for configuration options").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, resolvedPath, nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default config file to the user config
// directory unless one already exists. It reports the path and whether the
// file was created.
func CreateDefaultConfig(opts LoadOptions) (path string, created bool, err error) {
	path, err = UserConfigPath(opts)
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return path, true, nil
}

// GenerateCUE renders cfg as a config file accepted by the #Config schema.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// facmod configuration file\n\n")

	sb.WriteString("factorio: {\n")
	if cfg.Factorio.ModsDir != "" {
		fmt.Fprintf(&sb, "\tmods_dir: %q\n", cfg.Factorio.ModsDir)
	}
	sb.WriteString("\tlaunch: {\n")
	fmt.Fprintf(&sb, "\t\turi: %q\n", cfg.Factorio.Launch.URI)
	if cfg.Factorio.Launch.Command != "" {
		fmt.Fprintf(&sb, "\t\tcommand: %q\n", cfg.Factorio.Launch.Command)
	}
	sb.WriteString("\t}\n")
	sb.WriteString("}\n")

	sb.WriteString("\nbuild: {\n")
	fmt.Fprintf(&sb, "\tlock: %v\n", cfg.Build.Lock)
	fmt.Fprintf(&sb, "\treproducible: %v\n", cfg.Build.Reproducible)
	sb.WriteString("}\n")

	sb.WriteString("\nnew: {\n")
	if cfg.New.Author != "" {
		fmt.Fprintf(&sb, "\tauthor: %q\n", cfg.New.Author)
	}
	fmt.Fprintf(&sb, "\tgit_init: %v\n", cfg.New.GitInit)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tinteractive: %v\n", cfg.UI.Interactive)
	sb.WriteString("}\n")

	return sb.String()
}
