// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/facmod/facmod/internal/launch"
	"github.com/facmod/facmod/pkg/modpack"
	"github.com/facmod/facmod/pkg/platform"

	"github.com/spf13/cobra"
)

func newRunCommand(app *App) *cobra.Command {
	var (
		modsDir  string
		noLaunch bool
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Install the mod into Factorio and start the game",
		Long: `Package the mod in the current directory straight into the Factorio mods
directory and start the game.

The mods directory is taken from --mods-dir, then factorio.mods_dir in the
configuration, then the platform default:
  - Linux: ~/.factorio/mods
  - macOS: ~/Library/Application Support/factorio/mods
  - Windows: %APPDATA%\Factorio\mods

The game is started through factorio.launch.command when set, otherwise by
opening factorio.launch.uri (Steam by default). facmod does not wait for the
game. If the launch fails the installed archive is kept and facmod exits
with status 3.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := os.Getwd()
			if err != nil {
				return err
			}

			dest, err := app.resolveModsDir(modsDir)
			if err != nil {
				return err
			}

			var (
				launcher modpack.Launcher = launch.NopLauncher{}
				target   string
			)
			if !noLaunch {
				lc := app.cfg.Factorio.Launch
				launcher = app.NewLaunch(lc)
				target = lc.URI
				if lc.Command != "" {
					target = dest
				}
			}

			artifact, err := app.newBuilder(projectDir).Deploy(dest, launcher, target)
			if artifact == nil {
				return buildFailure(err, projectDir)
			}

			w := cmd.OutOrStdout()
			printArtifact(w, artifact)

			if modpack.IsLaunchFailure(err) {
				return launchFailure(err, target)
			}
			if err != nil {
				return buildFailure(err, projectDir)
			}

			if noLaunch {
				fmt.Fprintf(w, "%s %s\n", SubtitleStyle.Render("-"), SubtitleStyle.Render("launch skipped"))
			} else {
				fmt.Fprintf(w, "%s Launched %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(target))
			}
			return nil
		},
	}

	runCmd.Flags().StringVar(&modsDir, "mods-dir", "", "install into this directory instead of the Factorio mods directory")
	runCmd.Flags().BoolVar(&noLaunch, "no-launch", false, "install without starting the game")

	return runCmd
}

// resolveModsDir picks the deploy destination: flag, then config, then the
// platform default.
func (a *App) resolveModsDir(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if a.cfg.Factorio.ModsDir != "" {
		return a.cfg.Factorio.ModsDir, nil
	}
	dir, err := platform.UserModsDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate the Factorio mods directory, set --mods-dir: %w", err)
	}
	return dir, nil
}
