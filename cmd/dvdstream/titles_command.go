package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dvdstream/internal/titlestream"
)

func newTitlesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "titles [locator]",
		Short: "List the titles on a DVD volume",
		Long: `List the titles on a DVD volume.

The locator is a mounted DVD directory or dvd:-prefixed path. Without an
argument the configured drive device is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			path := ctx.discPath(args)
			summary, err := probeVolume(cmd.Context(), cfg, logger, path, false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%d titles)\n", summary.DisplayLabel(), len(summary.Titles))

			rows := make([][]string, 0, len(summary.Titles))
			for _, title := range summary.Titles {
				rows = append(rows, []string{
					strconv.Itoa(title.Title),
					strconv.Itoa(title.TitleSet),
					strconv.Itoa(title.Chapters),
					strconv.Itoa(title.Angles),
					formatBytes(title.Sectors * titlestream.SectorSize),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Title", "Set", "Chapters", "Angles", "Size"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			if summary.FromCache {
				fmt.Fprintln(out, "(from cache)")
			}
			return nil
		},
	}
}
