// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/facmod/facmod/internal/issue"
	"github.com/facmod/facmod/internal/scaffold"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newNewCommand(app *App) *cobra.Command {
	var (
		opts  scaffold.Options
		noGit bool
	)

	newCmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new mod skeleton",
		Long: `Create a new mod in ./<name> with info.json, changelog.txt, data.lua,
control.lua, an empty prototypes/ directory and a .gitignore for build/.

The name may contain letters, digits, '_' and '-'. The directory must not
exist yet. With --interactive the title, author and description are
prompted for.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			if opts.Author == "" {
				opts.Author = app.cfg.New.Author
			}
			opts.GitInit = app.cfg.New.GitInit && !noGit

			if app.interactive {
				if err := app.Prompt(&opts); err != nil {
					return err
				}
			}

			res, err := scaffold.Create(opts)
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("create mod").
					WithResource(opts.Name).
					WithIssue(issue.ScaffoldFailedId).
					Wrap(err).
					BuildError()
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s Created %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(res.Dir))
			for _, f := range res.Files {
				fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render(f))
			}
			fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("prototypes"+string(filepath.Separator)))
			if res.GitInitialized {
				fmt.Fprintf(w, "%s Initialised git repository\n", SuccessStyle.Render("✓"))
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, SubtitleStyle.Render("Next steps:"))
			fmt.Fprintf(w, "  cd %s\n", opts.Name)
			fmt.Fprintln(w, "  facmod run")
			return nil
		},
	}

	newCmd.Flags().StringVar(&opts.Title, "title", "", "mod title (default: the name)")
	newCmd.Flags().StringVar(&opts.Author, "author", "", "mod author (default: new.author from config)")
	newCmd.Flags().StringVar(&opts.Description, "description", "", "mod description (default: the name)")
	newCmd.Flags().StringVar(&opts.Version, "mod-version", scaffold.DefaultVersion, "initial mod version")
	newCmd.Flags().StringVar(&opts.FactorioVersion, "factorio-version", scaffold.DefaultFactorioVersion, "targeted Factorio version")
	newCmd.Flags().StringVarP(&opts.ParentDir, "dir", "C", ".", "directory to create the mod in")
	newCmd.Flags().BoolVar(&noGit, "no-git", false, "do not initialise a git repository")

	return newCmd
}

// promptModDetails asks for the free-form manifest fields with a huh form.
func promptModDetails(opts *scaffold.Options) error {
	if fd := os.Stdin.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New("--interactive needs a terminal on stdin")
	}
	if opts.Title == "" {
		opts.Title = opts.Name
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("Shown in the in-game mod list").
				Value(&opts.Title),
			huh.NewInput().
				Title("Author").
				Value(&opts.Author),
			huh.NewText().
				Title("Description").
				Value(&opts.Description),
		),
	).WithOutput(os.Stderr)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("aborted")
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}
