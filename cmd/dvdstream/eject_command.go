package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dvdstream/internal/drive"
)

func newEjectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "eject [device]",
		Short: "Eject the disc from the drive",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			device := ctx.discPath(args)
			if !drive.IsDevicePath(device) {
				return fmt.Errorf("%s is not a drive device; eject needs a /dev path", device)
			}

			if err := drive.NewEjector().Eject(cmd.Context(), device); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ejected %s\n", device)
			return nil
		},
	}
}
