package titlestream

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"dvdstream/internal/logging"
)

// SectorSize is the DVD logical block size; every successful Read produces
// exactly one sector.
const SectorSize = 2048

// Options configures a session. The zero value selects the first title,
// silences diagnostics, and uses the dvdnav-backed navigator.
type Options struct {
	// Title is the 1-based title to stream; values below 1 select the
	// first title. Accepted range is -1 through MaxTitle.
	Title int
	// Logger receives session diagnostics; nil discards them.
	Logger *slog.Logger
	// Navigator overrides the disc navigation library, for tests.
	Navigator Navigator
}

// Session streams one DVD title as a forward-only sequence of sectors. It
// owns the disc, both navigation info handles, and the title sector file; a
// session is single-caller and performs blocking I/O on every operation.
type Session struct {
	logger *slog.Logger
	id     string

	disc Disc
	vmg  Info
	vts  Info
	file SectorFile

	path        string
	title       int
	titleSet    int
	totalBlocks int64
	cursor      int64
	closed      bool

	sector  []byte // staging for destinations smaller than one sector
	pending []byte // unread tail of the staged sector
}

// Open resolves locator and the requested title into a ready session. Any
// failure tears down whatever handles were already acquired; the caller only
// needs to Close sessions that opened successfully.
func Open(locator string, opts Options) (*Session, error) {
	if !titleInRange(opts.Title) {
		return nil, fmt.Errorf("%w: %d not in [-1, %d]", ErrTitleOutOfRange, opts.Title, MaxTitle)
	}

	nav := opts.Navigator
	if nav == nil {
		nav = DVDNavigator{}
	}

	path := StripScheme(locator)
	id := uuid.NewString()
	logger := logging.NewComponentLogger(opts.Logger, "titlestream").With(
		logging.String(logging.FieldSession, id),
		logging.String("path", path),
	)

	s := &Session{logger: logger, id: id, path: path}
	if err := s.open(nav, path, opts.Title); err != nil {
		if cerr := s.Close(); cerr != nil {
			logger.Warn("cleanup after failed open", logging.Error(cerr))
		}
		return nil, err
	}
	return s, nil
}

func (s *Session) open(nav Navigator, path string, requested int) error {
	disc, err := nav.OpenDisc(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDiscOpen, path, err)
	}
	s.disc = disc

	vmg, err := disc.OpenInfo(0)
	if err != nil {
		return fmt.Errorf("%w: volume info: %w", ErrNavigation, err)
	}
	s.vmg = vmg
	if !vmg.OK() {
		return fmt.Errorf("%w: volume info block missing", ErrNavigation)
	}

	titleCount := vmg.TitleCount()
	if titleCount < 1 {
		return fmt.Errorf("%w: disc has no usable titles", ErrNavigation)
	}
	s.logger.Debug("volume info loaded", logging.Int("titles", titleCount))

	title := requested
	if title < 1 {
		title = 1
	}
	if title > titleCount {
		s.logger.Warn("requested title not on disc, falling back to title 1",
			logging.Int("requested", requested),
			logging.Int("titles", titleCount),
		)
		title = 1
	}
	s.title = title

	titleSet, ok := vmg.TitleSet(title)
	if !ok {
		return fmt.Errorf("%w: title %d missing from title table", ErrNavigation, title)
	}
	s.titleSet = titleSet

	vts, err := disc.OpenInfo(titleSet)
	if err != nil {
		return fmt.Errorf("%w: title set %d: %w", ErrNavigation, titleSet, err)
	}
	s.vts = vts
	if !vts.OK() {
		return fmt.Errorf("%w: title set %d info block missing", ErrNavigation, titleSet)
	}

	file, err := disc.OpenTitleFile(titleSet)
	if err != nil {
		return fmt.Errorf("%w: title set %d: %w", ErrIO, titleSet, err)
	}
	s.file = file
	s.totalBlocks = file.Len()
	s.cursor = 0
	s.sector = make([]byte, SectorSize)

	s.logger.Info("title stream ready",
		logging.Int("title", title),
		logging.Int("title_set", titleSet),
		logging.Int64("blocks", s.totalBlocks),
		logging.Int64("bytes", s.Size()),
	)
	return nil
}

// Read fills p from the sector stream and satisfies io.Reader for any
// destination size. A destination of SectorSize bytes or more receives
// exactly one sector per call; smaller destinations drain a staged sector
// across calls, so ReadFrom-style consumers such as io.Copy work. Past the
// last sector every call returns io.EOF; a zero-sector read before that
// point is ErrShortRead, and the session stays usable either way.
func (s *Session) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}

	if len(s.pending) == 0 && len(p) >= SectorSize {
		return s.readSector(p[:SectorSize])
	}

	if len(s.pending) == 0 {
		if _, err := s.readSector(s.sector); err != nil {
			return 0, err
		}
		s.pending = s.sector
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

// readSector reads the sector at the cursor into dst, which must hold
// exactly SectorSize bytes. The cursor advances on every attempt.
func (s *Session) readSector(dst []byte) (int, error) {
	if s.cursor >= s.totalBlocks {
		return 0, io.EOF
	}

	sector := s.cursor
	n, err := s.file.ReadSectors(sector, 1, dst)
	s.cursor++
	if err != nil {
		return 0, fmt.Errorf("%w: sector %d: %w", ErrIO, sector, err)
	}
	if n == 0 {
		s.logger.Warn("sector read returned no data before end of title",
			logging.Int64("sector", sector),
			logging.Int64("blocks", s.totalBlocks),
		)
		return 0, fmt.Errorf("%w: sector %d of %d", ErrShortRead, sector, s.totalBlocks)
	}
	return SectorSize, nil
}

// Seek always fails: the sector stream is forward-only. The failure is
// non-destructive; subsequent reads continue from the current cursor.
func (s *Session) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	s.logger.Error("unsupported seek on dvd title stream",
		logging.Int64("offset", offset),
		logging.Int("whence", whence),
	)
	return 0, fmt.Errorf("%w: whence %d", ErrSeekUnsupported, whence)
}

// Close releases every acquired handle exactly once: title set info first,
// then the sector file, volume info, and the disc. Handles never acquired
// are skipped, and calling Close again is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	if s.vts != nil {
		s.vts.Close()
		s.vts = nil
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			firstErr = err
		}
		s.file = nil
	}
	if s.vmg != nil {
		s.vmg.Close()
		s.vmg = nil
	}
	if s.disc != nil {
		if err := s.disc.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.disc = nil
	}
	return firstErr
}

// ID returns the session identifier used in log records.
func (s *Session) ID() string { return s.id }

// Path returns the bare disc path after scheme stripping.
func (s *Session) Path() string { return s.path }

// Title returns the effective 1-based title being streamed.
func (s *Session) Title() int { return s.title }

// TitleSet returns the title set the effective title lives in.
func (s *Session) TitleSet() int { return s.titleSet }

// TotalBlocks returns the title file length in sectors.
func (s *Session) TotalBlocks() int64 { return s.totalBlocks }

// Size returns the stream length in bytes. Informational: a malformed title
// may end short of this.
func (s *Session) Size() int64 { return s.totalBlocks * SectorSize }
