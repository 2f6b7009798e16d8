// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/facmod/facmod/internal/buildlock"
	"github.com/facmod/facmod/pkg/modpack"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// reproducibleModTime is the zip epoch, used for every entry when
// build.reproducible is set.
var reproducibleModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

func newBuildCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Package the mod in the current directory",
		Long: `Package the mod in the current directory into build/{name}_{version}.zip.

The archive contains a single top-level {name}_{version}/ directory holding
every file of the project except dotfiles and the build/ directory. A
previous artifact with the same name is replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := os.Getwd()
			if err != nil {
				return err
			}

			b := app.newBuilder(projectDir)
			artifact, err := b.Build(b.LocalDestination())
			if err != nil {
				return buildFailure(err, projectDir)
			}

			printArtifact(cmd.OutOrStdout(), artifact)
			return nil
		},
	}
}

// newBuilder returns a builder configured from the loaded configuration.
func (a *App) newBuilder(projectDir string) *modpack.Builder {
	opts := []modpack.Option{modpack.WithLogger(a.logger)}
	if a.cfg.Build.Lock {
		opts = append(opts, modpack.WithLock(buildlock.ForArtifact))
	}
	if a.cfg.Build.Reproducible {
		opts = append(opts, modpack.WithModTime(reproducibleModTime))
	}
	return modpack.NewBuilder(projectDir, opts...)
}

func printArtifact(w io.Writer, a *modpack.Artifact) {
	verb := "Built"
	if a.Replaced {
		verb = "Rebuilt"
	}
	fmt.Fprintf(w, "%s %s %s\n", SuccessStyle.Render("✓"), verb, CmdStyle.Render(a.Path))
	fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render(fmt.Sprintf("%d files, %d directories, %s",
		a.Files, a.Dirs, humanize.Bytes(uint64(a.Size)))))
}
