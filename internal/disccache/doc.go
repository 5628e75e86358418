// Package disccache persists probed disc metadata in SQLite, keyed by the
// disc fingerprint, so listing titles on a previously seen disc skips the
// volume read.
package disccache
