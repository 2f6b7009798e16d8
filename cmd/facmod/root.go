// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for facmod.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/facmod/facmod/internal/config"
	"github.com/facmod/facmod/internal/issue"
	"github.com/facmod/facmod/internal/output"
	"github.com/facmod/facmod/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the facmod command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "facmod",
		Short: "Package, install and launch Factorio mods",
		Long: TitleStyle.Render("facmod") + SubtitleStyle.Render(" - Package, install and launch Factorio mods") + `

facmod turns a mod directory (anything with an info.json) into the
{name}_{version}.zip archive Factorio loads, leaving out dotfiles and
the local build/ directory.

` + SubtitleStyle.Render("Examples:") + `
  facmod new my_mod         Scaffold a new mod in ./my_mod
  facmod build              Package the mod into ./build
  facmod run                Install into the Factorio mods directory and start the game
  facmod inspect build/my_mod_0.1.0.zip
  facmod config show        Show current configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initRootConfig(cmd)
		},
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $HOME/.config/facmod/config.cue)")
	rootCmd.PersistentFlags().BoolVarP(&app.interactive, "interactive", "i", false, "prompt for missing details")

	rootCmd.AddCommand(
		newNewCommand(app),
		newBuildCommand(app),
		newRunCommand(app),
		newInspectCommand(app),
		newConfigCommand(app),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the resulting code. It is called by
// main.main.
func Execute() {
	app := NewApp(Dependencies{})
	os.Exit(int(run(context.Background(), app, NewRootCommand(app))))
}

func run(ctx context.Context, app *App, rootCmd *cobra.Command) types.ExitCode {
	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.renderError),
	); err != nil {
		return exitCodeOf(err)
	}
	return types.ExitSuccess
}

// exitCodeOf maps an error returned by a command to the process exit code.
func exitCodeOf(err error) types.ExitCode {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code.Validate() == nil {
		return exitErr.Code
	}
	return types.ExitFailure
}

// initRootConfig loads configuration for the current project and applies the
// UI settings the flags left unset.
func (a *App) initRootConfig(cmd *cobra.Command) error {
	wd, err := os.Getwd()
	if err != nil {
		return &ExitError{Code: types.ExitFailure, Err: fmt.Errorf("failed to get working directory: %w", err)}
	}

	cfg, path, err := a.Config.Load(cmd.Context(), config.LoadOptions{
		ConfigFilePath: a.cfgFile,
		ProjectDir:     wd,
	})
	if err != nil {
		return &ExitError{Code: types.ExitFailure, Err: err}
	}
	a.cfg = cfg
	a.cfgPath = path

	if !a.verbose {
		a.verbose = cfg.UI.Verbose
	}
	if !a.interactive {
		a.interactive = cfg.UI.Interactive
	}

	a.logger = output.SetupLogging(a.stderr, a.verbose)
	a.logger.Debug("configuration loaded", "path", path)
	return nil
}

// renderError prints command errors on a terminal: the Markdown guide for the
// failure, when one exists, followed by the error and its suggestions.
func (a *App) renderError(w io.Writer, _ fang.Styles, err error) {
	if id := issueFor(err); id != 0 {
		if rendered, rerr := issue.Get(id).Render("dark"); rerr == nil {
			fmt.Fprint(w, rendered)
		}
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, a.verbose))
}

// verboseHint is appended to errors that carry no suggestions of their own.
const verboseHint = "Run with --verbose to see the full error chain."

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return err.Error()
	}
	msg := ae.Format(verboseMode)
	if !verboseMode && !ae.HasSuggestions() {
		msg += "\n\n" + SubtitleStyle.Render(verboseHint)
	}
	return msg
}
