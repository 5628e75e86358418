// Package drive handles the physical optical drive: tray status polling,
// disc-insert watching via udev netlink, ejecting, volume labels, and
// per-device advisory locks that keep concurrent dvdstream invocations off
// the same drive.
package drive
