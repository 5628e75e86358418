package titlestream

import "errors"

var (
	// ErrDiscOpen reports that the disc volume could not be opened at all.
	ErrDiscOpen = errors.New("cannot open disc volume")

	// ErrNavigation reports absent or malformed navigation metadata: no
	// volume info, an empty title table, or a missing title set.
	ErrNavigation = errors.New("disc navigation metadata unusable")

	// ErrIO reports a transport-level failure opening or reading the
	// title's sector file.
	ErrIO = errors.New("title sector file i/o failed")

	// ErrSeekUnsupported reports a seek attempt; the stream is forward-only.
	ErrSeekUnsupported = errors.New("seek not supported on dvd title stream")

	// ErrShortRead reports a sector read that returned no data before the
	// known end of the title. Distinct from io.EOF, which marks the
	// legitimate end of the stream.
	ErrShortRead = errors.New("short sector read before end of title")

	// ErrTitleOutOfRange reports a requested title outside the accepted
	// option range of -1 through 99999.
	ErrTitleOutOfRange = errors.New("title number out of accepted range")

	// ErrClosed reports use of a closed session.
	ErrClosed = errors.New("title stream session closed")
)
