package drive

import (
	"context"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/pilebones/go-udev/netlink"

	"dvdstream/internal/logging"
)

const (
	watchPollInterval = 2 * time.Second
	// How long an insert event is given to settle: drives report not_ready
	// while they spin the disc up.
	watchSettleTimeout = 30 * time.Second
)

// WaitForDisc blocks until a disc is present and readable in device. It
// prefers udev netlink events for wakeups and falls back to plain polling
// when the netlink socket is unavailable (containers, restricted users).
func WaitForDisc(ctx context.Context, device string, logger *slog.Logger) error {
	logger = logging.NewComponentLogger(logger, "drive-watch")

	if status, err := CheckStatus(device); err == nil && status == StatusDiscOK {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		logger.Warn("netlink unavailable, falling back to polling",
			logging.Error(err),
			logging.String("device", device),
		)
		return pollForDisc(ctx, device)
	}
	defer conn.Close()

	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	monitorQuit := conn.Monitor(queue, errs, discMatcher())
	defer close(monitorQuit)

	logger.Info("waiting for disc", logging.String("device", device))

	ticker := time.NewTicker(watchPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case uevent := <-queue:
			if eventDevice(uevent) != device {
				continue
			}
			logger.Debug("disc event received",
				logging.String("device", device),
				logging.String("action", string(uevent.Action)),
			)
			settleCtx, cancel := context.WithTimeout(ctx, watchSettleTimeout)
			status, err := WaitForReady(settleCtx, device)
			cancel()
			if err == nil && status == StatusDiscOK {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("disc event did not settle into a readable disc",
				logging.String("device", device),
				logging.String("status", status.String()),
			)
		case err := <-errs:
			logger.Warn("netlink monitor error", logging.Error(err))
		case <-ticker.C:
			// Events can be missed while connecting; poll as a safety net.
			if status, err := CheckStatus(device); err == nil && status == StatusDiscOK {
				return nil
			}
		}
	}
}

func pollForDisc(ctx context.Context, device string) error {
	ticker := time.NewTicker(watchPollInterval)
	defer ticker.Stop()
	for {
		if status, err := CheckStatus(device); err == nil && status == StatusDiscOK {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// discMatcher selects disc media events: SUBSYSTEM=block, ID_CDROM=1,
// ID_CDROM_MEDIA=1, ACTION=change|add.
func discMatcher() netlink.Matcher {
	action := "change|add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	})
	return rules
}

// eventDevice resolves the /dev path named by a uevent.
func eventDevice(uevent netlink.UEvent) string {
	devname := strings.TrimSpace(uevent.Env["DEVNAME"])
	if devname == "" {
		if kobj := strings.TrimSpace(uevent.KObj); kobj != "" {
			devname = path.Base(kobj)
		}
	}
	if devname == "" {
		return ""
	}
	if !strings.HasPrefix(devname, "/") {
		devname = "/dev/" + devname
	}
	return devname
}
