// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/facmod/facmod/internal/issue"
	"github.com/facmod/facmod/pkg/modpack"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newInspectCommand(_ *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <archive.zip>",
		Short: "List the entries of a built mod archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := modpack.ListEntries(args[0])
			if err != nil {
				return issue.NewErrorContext().
					WithOperation("inspect archive").
					WithResource(args[0]).
					WithIssue(issue.ArchiveUnreadableId).
					Wrap(err).
					BuildError()
			}

			var total uint64
			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(SubtitleStyle).
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return tableHeaderStyle
					}
					return tableCellStyle
				}).
				Headers("ENTRY", "METHOD", "SIZE", "COMPRESSED")
			for _, e := range entries {
				size, compressed := "-", "-"
				if !e.Dir {
					size = humanize.Bytes(e.UncompressedSize)
					compressed = humanize.Bytes(e.CompressedSize)
					total += e.UncompressedSize
				}
				t.Row(e.Name, e.Method, size, compressed)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, t.Render())
			fmt.Fprintln(w, SubtitleStyle.Render(fmt.Sprintf("%d entries, %s uncompressed", len(entries), humanize.Bytes(total))))
			return nil
		},
	}
}
