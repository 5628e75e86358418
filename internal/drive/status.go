package drive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// ioctlCDROMDriveStatus is the Linux ioctl number for CDROM_DRIVE_STATUS.
const ioctlCDROMDriveStatus = 0x5326

// Status represents the result of a CDROM_DRIVE_STATUS ioctl call.
type Status int

const (
	StatusNoInfo   Status = 0
	StatusNoDisc   Status = 1
	StatusTrayOpen Status = 2
	StatusNotReady Status = 3
	StatusDiscOK   Status = 4
)

// String returns a human-readable label for the drive status.
func (s Status) String() string {
	switch s {
	case StatusNoInfo:
		return "no_info"
	case StatusNoDisc:
		return "no_disc"
	case StatusTrayOpen:
		return "tray_open"
	case StatusNotReady:
		return "not_ready"
	case StatusDiscOK:
		return "disc_ok"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// IsDevicePath reports whether path names a block device rather than a
// mounted directory or image file.
func IsDevicePath(path string) bool {
	return strings.HasPrefix(strings.TrimSpace(path), "/dev/")
}

// CheckStatus queries the drive state using the CDROM_DRIVE_STATUS ioctl.
func CheckStatus(device string) (Status, error) {
	device = strings.TrimSpace(device)
	if device == "" {
		return StatusNoInfo, fmt.Errorf("empty device path")
	}

	fd, err := unix.Open(device, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return StatusNoInfo, fmt.Errorf("open %s: %w", device, err)
	}
	defer unix.Close(fd)

	ret, err := unix.IoctlRetInt(fd, ioctlCDROMDriveStatus)
	if err != nil {
		return StatusNoInfo, fmt.Errorf("ioctl CDROM_DRIVE_STATUS on %s: %w", device, err)
	}

	return Status(ret), nil
}

// WaitForReady polls the drive at 1-second intervals until it reports
// StatusDiscOK, the poll budget runs out, or the context is cancelled.
func WaitForReady(ctx context.Context, device string) (Status, error) {
	const (
		maxPolls     = 60
		pollInterval = 1 * time.Second
	)

	var lastStatus Status
	for i := 0; i < maxPolls; i++ {
		status, err := CheckStatus(device)
		if err != nil {
			return status, err
		}
		lastStatus = status
		if status == StatusDiscOK {
			return status, nil
		}

		select {
		case <-ctx.Done():
			return lastStatus, ctx.Err()
		case <-time.After(pollInterval):
		}
	}

	return lastStatus, fmt.Errorf("drive %s not ready after %d polls (last status: %s)", device, maxPolls, lastStatus)
}
