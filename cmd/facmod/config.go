// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/facmod/facmod/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `facmod config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage facmod configuration",
		Long: `Manage facmod configuration.

Configuration is read from .facmod.cue in the mod directory, or from:
  - Linux: ~/.config/facmod/config.cue
  - macOS: ~/Library/Application Support/facmod/config.cue
  - Windows: %APPDATA%\facmod\config.cue

Every key can be overridden with a FACMOD_ environment variable, for
example FACMOD_FACTORIO_MODS_DIR or FACMOD_BUILD_LOCK=false.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			showConfig(cmd.OutOrStdout(), app.cfg, app.cfgPath)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userPath, err := config.UserConfigPath(config.LoadOptions{})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "User config file: %s\n", userPath)
			if app.cfgPath != "" {
				fmt.Fprintf(w, "Active config file: %s\n", app.cfgPath)
			} else {
				fmt.Fprintf(w, "Active config file: %s\n", "(none, using defaults)")
			}
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig(config.LoadOptions{})
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			w := cmd.OutOrStdout()
			if created {
				fmt.Fprintf(w, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			} else {
				fmt.Fprintf(w, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
			}
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config, path string) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	modsDir := cfg.Factorio.ModsDir
	if modsDir == "" {
		modsDir = "(platform default)"
	}
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("factorio"))
	fmt.Fprintf(w, "  mods_dir: %s\n", valueStyle.Render(modsDir))
	fmt.Fprintf(w, "  launch.uri: %s\n", valueStyle.Render(cfg.Factorio.Launch.URI))
	fmt.Fprintf(w, "  launch.command: %s\n", valueStyle.Render(cfg.Factorio.Launch.Command))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("build"))
	fmt.Fprintf(w, "  lock: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Build.Lock)))
	fmt.Fprintf(w, "  reproducible: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Build.Reproducible)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("new"))
	fmt.Fprintf(w, "  author: %s\n", valueStyle.Render(cfg.New.Author))
	fmt.Fprintf(w, "  git_init: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.New.GitInit)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(w, "  interactive: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Interactive)))
}
