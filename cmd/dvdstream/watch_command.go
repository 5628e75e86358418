package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dvdstream/internal/drive"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [device]",
		Short: "Wait until a disc is present in the drive",
		Long: `Wait until a readable disc is present in the drive.

The command returns once the drive reports a disc, making it useful as a
pipeline gate: dvdstream watch && dvdstream dump -o title.vob`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			device := ctx.discPath(args)
			if !drive.IsDevicePath(device) {
				return fmt.Errorf("%s is not a drive device; watch needs a /dev path", device)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if err := drive.WaitForDisc(ctx, device, logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Disc ready in %s\n", device)
			return nil
		},
	}
}
