package dvdnav

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// FileKind selects which VOB group of a title set to open.
type FileKind int

const (
	// MenuVOBs is the title set's menu domain (VTS_nn_0.VOB).
	MenuVOBs FileKind = iota
	// TitleVOBs is the title playback domain (VTS_nn_1.VOB through VTS_nn_9.VOB).
	TitleVOBs
)

func (k FileKind) String() string {
	switch k {
	case MenuVOBs:
		return "menu"
	case TitleVOBs:
		return "title"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// SectorFile exposes a title set's VOB parts as one logical run of
// 2048-byte sectors. VOB parts are capped at 1 GiB on disc, so a feature
// spans several; part boundaries are invisible to readers.
type SectorFile struct {
	parts  []*os.File
	counts []int64
	total  int64
	closed bool
}

// OpenTitleFile opens the sector file for a title set.
func (d *Disc) OpenTitleFile(titleSet int, kind FileKind) (*SectorFile, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	if titleSet < 1 || titleSet > 99 {
		return nil, fmt.Errorf("open title file: title set %d out of range", titleSet)
	}

	var names []string
	switch kind {
	case MenuVOBs:
		names = []string{fmt.Sprintf("VTS_%02d_0.VOB", titleSet)}
	case TitleVOBs:
		for part := 1; part <= 9; part++ {
			names = append(names, fmt.Sprintf("VTS_%02d_%d.VOB", titleSet, part))
		}
	default:
		return nil, fmt.Errorf("open title file: unknown kind %d", int(kind))
	}

	sf := &SectorFile{}
	for _, name := range names {
		path, ok := resolveEntry(d.videoTS, name)
		if !ok {
			break
		}
		file, err := os.Open(path)
		if err != nil {
			sf.Close()
			return nil, fmt.Errorf("open title file %s: %w", name, err)
		}
		info, err := file.Stat()
		if err != nil {
			file.Close()
			sf.Close()
			return nil, fmt.Errorf("open title file %s: %w", name, err)
		}
		sectors := info.Size() / SectorSize
		sf.parts = append(sf.parts, file)
		sf.counts = append(sf.counts, sectors)
		sf.total += sectors
	}

	if len(sf.parts) == 0 {
		return nil, fmt.Errorf("open title file: no %s VOBs for title set %d", kind, titleSet)
	}
	return sf, nil
}

// Len returns the file length in sectors.
func (f *SectorFile) Len() int64 {
	if f == nil {
		return 0
	}
	return f.total
}

// ReadSectors reads up to count sectors starting at sector start into dst and
// returns how many sectors were actually read. A start at or past the end
// reads zero sectors without error; a read cut short by the underlying file
// also returns fewer sectors without error, mirroring block-device semantics.
func (f *SectorFile) ReadSectors(start int64, count int, dst []byte) (int, error) {
	if f == nil || f.closed {
		return 0, fmt.Errorf("read sectors: file closed")
	}
	if start < 0 {
		return 0, fmt.Errorf("read sectors: negative start %d", start)
	}
	if count < 0 {
		return 0, fmt.Errorf("read sectors: negative count %d", count)
	}
	if len(dst) < count*SectorSize {
		return 0, fmt.Errorf("read sectors: destination holds %d bytes, need %d", len(dst), count*SectorSize)
	}
	if start >= f.total {
		return 0, nil
	}
	if remaining := f.total - start; int64(count) > remaining {
		count = int(remaining)
	}

	read := 0
	for read < count {
		sector := start + int64(read)
		part, offset := f.locate(sector)

		// Contiguous run within this part.
		run := count - read
		if partRemaining := f.counts[part] - offset; int64(run) > partRemaining {
			run = int(partRemaining)
		}

		buf := dst[read*SectorSize : (read+run)*SectorSize]
		n, err := f.parts[part].ReadAt(buf, offset*SectorSize)
		read += n / SectorSize
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// Part shrank underneath us: report the short read, not an error.
				return read, nil
			}
			return read, fmt.Errorf("read sectors at %d: %w", sector, err)
		}
	}
	return read, nil
}

// locate maps a linear sector to (part index, sector offset within part).
func (f *SectorFile) locate(sector int64) (int, int64) {
	for part, sectors := range f.counts {
		if sector < sectors {
			return part, sector
		}
		sector -= sectors
	}
	// Callers bound sector by total first.
	last := len(f.counts) - 1
	return last, f.counts[last]
}

// Close releases all VOB parts. Safe on nil and after Close.
func (f *SectorFile) Close() error {
	if f == nil || f.closed {
		return nil
	}
	f.closed = true
	var firstErr error
	for _, part := range f.parts {
		if err := part.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	f.parts = nil
	return firstErr
}
