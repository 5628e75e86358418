package dvdnav

import (
	"encoding/binary"
	"fmt"
	"os"
)

const (
	vmgMagic = "DVDVIDEO-VMG"
	vtsMagic = "DVDVIDEO-VTS"

	// Byte offset of the table-of-titles sector pointer in the VMG IFO.
	ttSRPTPointerOffset = 0xC4

	titleEntrySize = 12

	// IFO files are small; anything larger is not a navigation file.
	maxIFOSize = 16 << 20
)

// TitleEntry is one row of the VMG table of titles.
type TitleEntry struct {
	PlaybackType byte
	Angles       int
	Chapters     int
	ParentalMask uint16
	TitleSet     int
	TitleInSet   int
	StartSector  uint32
}

// Info is parsed navigation metadata for the volume (title set 0) or for a
// specific title set.
type Info struct {
	titleSet int
	titles   []TitleEntry
	released bool
}

// OpenInfo loads navigation info. Title set 0 loads the volume-level
// VIDEO_TS.IFO including the table of titles; title sets 1-99 load the
// corresponding VTS_nn_0.IFO and verify its info block.
func (d *Disc) OpenInfo(titleSet int) (*Info, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	if titleSet < 0 || titleSet > 99 {
		return nil, fmt.Errorf("open navigation info: title set %d out of range", titleSet)
	}

	if titleSet == 0 {
		return d.openVMG()
	}
	return d.openVTS(titleSet)
}

func (d *Disc) openVMG() (*Info, error) {
	data, err := d.readIFO("VIDEO_TS.IFO")
	if err != nil {
		return nil, err
	}
	if len(data) < ttSRPTPointerOffset+4 || string(data[:len(vmgMagic)]) != vmgMagic {
		return nil, fmt.Errorf("VIDEO_TS.IFO: not a video manager info file")
	}

	titles, err := parseTitleTable(data)
	if err != nil {
		return nil, fmt.Errorf("VIDEO_TS.IFO: %w", err)
	}

	return &Info{titleSet: 0, titles: titles}, nil
}

func (d *Disc) openVTS(titleSet int) (*Info, error) {
	name := fmt.Sprintf("VTS_%02d_0.IFO", titleSet)
	data, err := d.readIFO(name)
	if err != nil {
		return nil, err
	}
	if len(data) < len(vtsMagic) || string(data[:len(vtsMagic)]) != vtsMagic {
		return nil, fmt.Errorf("%s: not a title set info file", name)
	}
	return &Info{titleSet: titleSet}, nil
}

func (d *Disc) readIFO(name string) ([]byte, error) {
	path, ok := resolveEntry(d.videoTS, name)
	if !ok {
		return nil, fmt.Errorf("navigation info %s missing", name)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("navigation info %s: %w", name, err)
	}
	if info.Size() > maxIFOSize {
		return nil, fmt.Errorf("navigation info %s: implausible size %d", name, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("navigation info %s: %w", name, err)
	}
	return data, nil
}

// parseTitleTable reads the TT_SRPT from a VMG IFO image. A zero table pointer
// yields an empty table, which callers treat as a disc without usable titles.
func parseTitleTable(data []byte) ([]TitleEntry, error) {
	tableSector := binary.BigEndian.Uint32(data[ttSRPTPointerOffset : ttSRPTPointerOffset+4])
	if tableSector == 0 {
		return nil, nil
	}

	tableOffset := int64(tableSector) * SectorSize
	if tableOffset+8 > int64(len(data)) {
		return nil, fmt.Errorf("title table at sector %d is outside the file", tableSector)
	}

	table := data[tableOffset:]
	count := int(binary.BigEndian.Uint16(table[0:2]))
	if count == 0 {
		return nil, nil
	}
	if 8+count*titleEntrySize > len(table) {
		return nil, fmt.Errorf("title table truncated: %d entries do not fit", count)
	}

	titles := make([]TitleEntry, 0, count)
	for i := 0; i < count; i++ {
		entry := table[8+i*titleEntrySize:]
		titles = append(titles, TitleEntry{
			PlaybackType: entry[0],
			Angles:       int(entry[1]),
			Chapters:     int(binary.BigEndian.Uint16(entry[2:4])),
			ParentalMask: binary.BigEndian.Uint16(entry[4:6]),
			TitleSet:     int(entry[6]),
			TitleInSet:   int(entry[7]),
			StartSector:  binary.BigEndian.Uint32(entry[8:12]),
		})
	}
	return titles, nil
}

// OK reports whether the info block is present and the handle is live.
func (i *Info) OK() bool {
	return i != nil && !i.released
}

// TitleSetIndex returns which title set this info describes; 0 is the volume.
func (i *Info) TitleSetIndex() int {
	if i == nil {
		return -1
	}
	return i.titleSet
}

// TitleCount returns the number of entries in the table of titles. Only
// volume-level info carries a table; title-set info reports 0.
func (i *Info) TitleCount() int {
	if !i.OK() {
		return 0
	}
	return len(i.titles)
}

// Title returns the 1-based title entry.
func (i *Info) Title(n int) (TitleEntry, bool) {
	if !i.OK() || n < 1 || n > len(i.titles) {
		return TitleEntry{}, false
	}
	return i.titles[n-1], true
}

// Titles returns a copy of the table of titles.
func (i *Info) Titles() []TitleEntry {
	if !i.OK() {
		return nil
	}
	out := make([]TitleEntry, len(i.titles))
	copy(out, i.titles)
	return out
}

// Close releases the info handle. Safe on nil and after Close.
func (i *Info) Close() {
	if i == nil {
		return
	}
	i.released = true
	i.titles = nil
}
