// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/facmod/facmod/internal/config"
	"github.com/facmod/facmod/internal/launch"
	"github.com/facmod/facmod/internal/scaffold"
	"github.com/facmod/facmod/pkg/modpack"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives the App and reads configuration, output streams and the logger
	// from it.
	App struct {
		Config    config.Provider
		NewLaunch LauncherFactory
		Prompt    PromptFunc
		stdout    io.Writer
		stderr    io.Writer

		// Resolved by the root command before any subcommand runs.
		cfgFile     string
		verbose     bool
		interactive bool
		cfg         *config.Config
		cfgPath     string
		logger      *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config    config.Provider
		NewLaunch LauncherFactory
		Prompt    PromptFunc
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// LauncherFactory returns the launcher matching the launch settings.
	LauncherFactory func(lc config.LaunchConfig) modpack.Launcher

	// PromptFunc lets the user complete scaffold options interactively.
	PromptFunc func(opts *scaffold.Options) error
)

// NewApp creates an App, filling unset dependencies with defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:    deps.Config,
		NewLaunch: deps.NewLaunch,
		Prompt:    deps.Prompt,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		cfg:       config.DefaultConfig(),
		logger:    log.New(io.Discard),
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.NewLaunch == nil {
		app.NewLaunch = defaultLauncher
	}
	if app.Prompt == nil {
		app.Prompt = promptModDetails
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// defaultLauncher prefers a configured command over the URI handler.
func defaultLauncher(lc config.LaunchConfig) modpack.Launcher {
	if lc.Command != "" {
		return launch.NewCommandLauncher(lc.Command)
	}
	return launch.NewURILauncher()
}
