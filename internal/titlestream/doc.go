// Package titlestream exposes one DVD title as a flat, forward-only byte
// stream so a demuxer can consume it like a file.
//
// A Session resolves a locator ("dvd:/path" or a bare path) and a requested
// title number against the volume's navigation metadata, opens the title
// set's sector file, and serves it sector by sector: full-sector reads get
// exactly one 2048-byte sector, smaller reads drain a staged sector. Seek
// always fails; the stream is forward-only. Close releases every acquired
// handle exactly once and tolerates partially opened sessions.
package titlestream
