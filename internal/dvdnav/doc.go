// Package dvdnav reads DVD-Video navigation structures from a mounted disc
// or extracted volume directory.
//
// It deliberately covers only what title streaming needs: the VMG table of
// titles (title count, per-title title set, chapter and angle counts), the
// VTS presence check, and the title VOBs exposed as one logical sector file.
// UDF parsing and CSS decryption are out of scope; the volume must already be
// mounted or extracted to a directory tree.
//
// Entry names are resolved case-insensitively because mounted discs usually
// present upper-case names while extracted trees vary.
package dvdnav
