package drive

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusNoInfo, "no_info"},
		{StatusNoDisc, "no_disc"},
		{StatusTrayOpen, "tray_open"},
		{StatusNotReady, "not_ready"},
		{StatusDiscOK, "disc_ok"},
		{Status(99), "unknown(99)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.status.String(); got != tt.want {
				t.Errorf("Status(%d).String() = %q, want %q", int(tt.status), got, tt.want)
			}
		})
	}
}

func TestIsDevicePath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/dev/sr0", true},
		{" /dev/sr1", true},
		{"/mnt/movie", false},
		{"disc.iso", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsDevicePath(tt.path); got != tt.want {
			t.Errorf("IsDevicePath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCheckStatusEmptyPath(t *testing.T) {
	if _, err := CheckStatus(""); err == nil {
		t.Fatal("expected error for empty device path")
	}
}

func TestCheckStatusInvalidPath(t *testing.T) {
	if _, err := CheckStatus("/dev/nonexistent_device_12345"); err == nil {
		t.Fatal("expected error for nonexistent device")
	}
}

func TestWaitForReadyUnopenableDevice(t *testing.T) {
	// An unopenable device fails the first status check immediately rather
	// than burning the whole poll budget.
	start := time.Now()
	if _, err := WaitForReady(context.Background(), filepath.Join(t.TempDir(), "sr0")); err == nil {
		t.Fatal("expected error for unopenable device")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("WaitForReady took %v, want immediate failure", elapsed)
	}
}

func TestWaitForReadyCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := WaitForReady(ctx, "/dev/nonexistent_device_12345"); err == nil {
		t.Fatal("expected error for cancelled context or invalid device")
	}
}
