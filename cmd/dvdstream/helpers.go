package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dvdstream/internal/config"
	"dvdstream/internal/disccache"
	"dvdstream/internal/drive"
	"dvdstream/internal/dvdnav"
	"dvdstream/internal/logging"
)

// volumeSummary is a probed (or cache-recalled) view of one disc.
type volumeSummary struct {
	Path        string
	Label       string
	Fingerprint string
	Titles      []disccache.TitleSummary
	FromCache   bool
}

// probeVolume reads a volume's navigation metadata, consulting and filling
// the disc cache when it is enabled. refresh drops any cached entry and
// forces a fresh volume read.
func probeVolume(ctx context.Context, cfg *config.Config, logger *slog.Logger, path string, refresh bool) (*volumeSummary, error) {
	logger = logging.NewComponentLogger(logger, "probe")

	disc, err := dvdnav.Open(path)
	if err != nil {
		return nil, err
	}
	defer disc.Close()

	fingerprint, err := disc.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("fingerprint volume: %w", err)
	}

	var store *disccache.Store
	if cfg.Cache.Enabled {
		store, err = disccache.Open(cfg.Cache.Path)
		if err != nil {
			logger.Warn("disc cache unavailable", logging.Error(err))
		} else {
			defer store.Close()
			if refresh {
				if err := store.Forget(ctx, fingerprint); err != nil {
					logger.Warn("disc cache invalidation failed", logging.Error(err))
				}
			} else if entry, ok, err := store.Get(ctx, fingerprint); err != nil {
				logger.Warn("disc cache lookup failed", logging.Error(err))
			} else if ok {
				logger.Debug("disc served from cache",
					logging.String("fingerprint", fingerprint),
					logging.Int("titles", len(entry.Titles)),
				)
				return &volumeSummary{
					Path:        path,
					Label:       entry.Label,
					Fingerprint: fingerprint,
					Titles:      entry.Titles,
					FromCache:   true,
				}, nil
			}
		}
	}

	info, err := disc.OpenInfo(0)
	if err != nil {
		return nil, fmt.Errorf("read volume info: %w", err)
	}
	defer info.Close()

	// Titles in the same title set share one sector file, so measure each
	// set once.
	setSectors := map[int]int64{}
	titles := make([]disccache.TitleSummary, 0, info.TitleCount())
	for n := 1; n <= info.TitleCount(); n++ {
		entry, ok := info.Title(n)
		if !ok {
			continue
		}
		sectors, measured := setSectors[entry.TitleSet]
		if !measured {
			file, err := disc.OpenTitleFile(entry.TitleSet, dvdnav.TitleVOBs)
			if err != nil {
				logger.Warn("title set sector file unreadable",
					logging.Int("title_set", entry.TitleSet),
					logging.Error(err),
				)
			} else {
				sectors = file.Len()
				file.Close()
			}
			setSectors[entry.TitleSet] = sectors
		}
		titles = append(titles, disccache.TitleSummary{
			Title:    n,
			TitleSet: entry.TitleSet,
			Chapters: entry.Chapters,
			Angles:   entry.Angles,
			Sectors:  sectors,
		})
	}

	label, err := drive.VolumeLabel(disc.Root())
	if err != nil {
		logger.Debug("volume label unavailable", logging.Error(err))
		label = ""
	}

	summary := &volumeSummary{
		Path:        path,
		Label:       label,
		Fingerprint: fingerprint,
		Titles:      titles,
	}

	if store != nil {
		if err := store.Put(ctx, disccache.Entry{
			Fingerprint: fingerprint,
			Label:       label,
			Titles:      titles,
			ProbedAt:    time.Now(),
		}); err != nil {
			logger.Warn("disc cache write failed", logging.Error(err))
		}
	}

	return summary, nil
}

// DisplayLabel renders the summary's label for humans.
func (s *volumeSummary) DisplayLabel() string {
	if drive.IsUnusableLabel(s.Label) {
		return drive.DisplayLabel("")
	}
	return drive.DisplayLabel(s.Label)
}

func formatBytes(n int64) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
		gib = 1 << 30
	)
	switch {
	case n >= gib:
		return fmt.Sprintf("%.2f GiB", float64(n)/gib)
	case n >= mib:
		return fmt.Sprintf("%.2f MiB", float64(n)/mib)
	case n >= kib:
		return fmt.Sprintf("%.2f KiB", float64(n)/kib)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
