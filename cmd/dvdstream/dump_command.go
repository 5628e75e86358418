package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dvdstream/internal/drive"
	"dvdstream/internal/logging"
	"dvdstream/internal/titlestream"
)

const progressLogEvery = 8192 // sectors, 16 MiB

func newDumpCommand(ctx *commandContext) *cobra.Command {
	var titleFlag int
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "dump [locator]",
		Short: "Stream a title's sectors to a file or stdout",
		Long: `Stream a title's VOB sector stream to a file or stdout.

The stream is forward-only and ends after the last sector of the title. Use
--output - to write to stdout for piping into a demuxer.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			title := cfg.Stream.Title
			if cmd.Flags().Changed("title") {
				title = titleFlag
			}

			locator := ctx.locator(args)
			path := titlestream.StripScheme(locator)

			// One streamer per volume at a time.
			lock, err := drive.NewLock(cfg.Drive.LockDir, path)
			if err != nil {
				return err
			}
			acquired, err := lock.TryAcquire()
			if err != nil {
				return err
			}
			if !acquired {
				return fmt.Errorf("%s is busy: another dvdstream process holds %s", path, lock.Path())
			}
			defer lock.Release()

			session, err := titlestream.Open(locator, titlestream.Options{
				Title:  title,
				Logger: logger,
			})
			if err != nil {
				return err
			}
			defer session.Close()

			out, closeOut, err := openOutput(outputFlag)
			if err != nil {
				return err
			}
			defer closeOut()

			return copyTitle(logger, session, out)
		},
	}

	cmd.Flags().IntVarP(&titleFlag, "title", "t", -1, "Title to stream (-1 selects the first title)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "-", "Output file, or - for stdout")
	return cmd
}

func openOutput(target string) (io.Writer, func(), error) {
	if target == "" || target == "-" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(target)
	if err != nil {
		return nil, nil, fmt.Errorf("create output %s: %w", target, err)
	}
	return file, func() { file.Close() }, nil
}

func copyTitle(logger *slog.Logger, session *titlestream.Session, out io.Writer) error {
	logger.Info("dumping title",
		logging.Args(
			logging.Int("title", session.Title()),
			logging.Int64("blocks", session.TotalBlocks()),
			logging.String("size", formatBytes(session.Size())),
		)...,
	)

	start := time.Now()
	buf := make([]byte, titlestream.SectorSize)
	var sectors int64
	for {
		n, err := session.Read(buf)
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, titlestream.ErrShortRead) {
			logger.Warn("skipping unreadable sector", logging.Args(logging.Error(err))...)
			continue
		}
		if err != nil {
			return err
		}
		if _, err := out.Write(buf[:n]); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		sectors++
		if sectors%progressLogEvery == 0 {
			logger.Info("dump progress",
				logging.Args(
					logging.Int64("sectors", sectors),
					logging.Int64("blocks", session.TotalBlocks()),
				)...,
			)
		}
	}

	logger.Info("dump complete",
		logging.Args(
			logging.Int64("sectors", sectors),
			logging.String("written", formatBytes(sectors*titlestream.SectorSize)),
			logging.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
		)...,
	)
	return nil
}
