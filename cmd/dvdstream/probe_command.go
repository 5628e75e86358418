package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "probe [locator]",
		Short: "Show volume metadata for a DVD",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			path := ctx.discPath(args)
			summary, err := probeVolume(cmd.Context(), cfg, logger, path, refresh)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path:        %s\n", summary.Path)
			fmt.Fprintf(out, "Label:       %s\n", summary.DisplayLabel())
			fmt.Fprintf(out, "Fingerprint: %s\n", summary.Fingerprint)
			fmt.Fprintf(out, "Titles:      %d\n", len(summary.Titles))
			if summary.FromCache {
				fmt.Fprintln(out, "Source:      cache")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Drop the cached entry and re-read the volume")
	return cmd
}
