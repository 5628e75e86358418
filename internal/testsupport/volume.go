package testsupport

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

const sectorSize = 2048

// TitleSpec describes one entry of the VMG table of titles.
type TitleSpec struct {
	TitleSet   int
	TitleInSet int
	Chapters   int
	Angles     int
}

// TitleSetSpec describes one VTS directory payload.
type TitleSetSpec struct {
	Index       int
	VOBSectors  []int64 // sectors per title VOB part, in part order
	MenuSectors int64   // sectors in VTS_nn_0.VOB; 0 omits the menu VOB
	OmitIFO     bool
}

// VolumeSpec describes a synthetic DVD volume.
type VolumeSpec struct {
	Titles    []TitleSpec
	TitleSets []TitleSetSpec

	// BadVMGMagic corrupts the VMG identifier so the volume probes as unusable.
	BadVMGMagic bool
	// NoTitleTable zeroes the table-of-titles pointer.
	NoTitleTable bool
	// LowercaseNames writes video_ts/vts_... the way extracted trees often do.
	LowercaseNames bool
}

// WriteVolume materializes spec under dir and returns the volume root.
func WriteVolume(t *testing.T, dir string, spec VolumeSpec) string {
	t.Helper()

	videoTS := filepath.Join(dir, spec.name("VIDEO_TS"))
	if err := os.MkdirAll(videoTS, 0o755); err != nil {
		t.Fatalf("create VIDEO_TS: %v", err)
	}

	vmg := buildVMG(spec)
	if err := os.WriteFile(filepath.Join(videoTS, spec.name("VIDEO_TS.IFO")), vmg, 0o644); err != nil {
		t.Fatalf("write VMG IFO: %v", err)
	}

	for _, ts := range spec.TitleSets {
		writeTitleSet(t, videoTS, spec, ts)
	}

	return dir
}

func (s VolumeSpec) name(upper string) string {
	if !s.LowercaseNames {
		return upper
	}
	lower := make([]byte, len(upper))
	for i := 0; i < len(upper); i++ {
		c := upper[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	return string(lower)
}

func buildVMG(spec VolumeSpec) []byte {
	// Sector 0 holds the header, sector 1 the table of titles.
	tableSectors := 1 + (8+len(spec.Titles)*12)/sectorSize
	data := make([]byte, (1+tableSectors)*sectorSize)

	magic := "DVDVIDEO-VMG"
	if spec.BadVMGMagic {
		magic = "NOTDVD-VIDEO"
	}
	copy(data, magic)

	if !spec.NoTitleTable {
		binary.BigEndian.PutUint32(data[0xC4:], 1)
	}

	table := data[sectorSize:]
	binary.BigEndian.PutUint16(table[0:2], uint16(len(spec.Titles)))
	binary.BigEndian.PutUint32(table[4:8], uint32(8+len(spec.Titles)*12-1))
	for i, title := range spec.Titles {
		entry := table[8+i*12:]
		entry[0] = 0x3C // playback flags, unused by the reader
		entry[1] = byte(title.Angles)
		binary.BigEndian.PutUint16(entry[2:4], uint16(title.Chapters))
		entry[6] = byte(title.TitleSet)
		titleInSet := title.TitleInSet
		if titleInSet == 0 {
			titleInSet = 1
		}
		entry[7] = byte(titleInSet)
		binary.BigEndian.PutUint32(entry[8:12], uint32(100*(i+1)))
	}
	return data
}

func writeTitleSet(t *testing.T, videoTS string, spec VolumeSpec, ts TitleSetSpec) {
	t.Helper()

	if !ts.OmitIFO {
		ifo := make([]byte, sectorSize)
		copy(ifo, "DVDVIDEO-VTS")
		name := spec.name(vtsName(ts.Index, 0, ".IFO"))
		if err := os.WriteFile(filepath.Join(videoTS, name), ifo, 0o644); err != nil {
			t.Fatalf("write VTS IFO: %v", err)
		}
	}

	if ts.MenuSectors > 0 {
		menu := make([]byte, ts.MenuSectors*sectorSize)
		for i := range menu {
			menu[i] = 0xEE
		}
		name := spec.name(vtsName(ts.Index, 0, ".VOB"))
		if err := os.WriteFile(filepath.Join(videoTS, name), menu, 0o644); err != nil {
			t.Fatalf("write menu VOB: %v", err)
		}
	}

	var linear int64
	for part, sectors := range ts.VOBSectors {
		data := make([]byte, sectors*sectorSize)
		for s := int64(0); s < sectors; s++ {
			copy(data[s*sectorSize:], TitleSectorPayload(ts.Index, linear))
			linear++
		}
		name := spec.name(vtsName(ts.Index, part+1, ".VOB"))
		if err := os.WriteFile(filepath.Join(videoTS, name), data, 0o644); err != nil {
			t.Fatalf("write title VOB: %v", err)
		}
	}
}

func vtsName(set, part int, ext string) string {
	digits := func(n int) string {
		return string([]byte{'0' + byte(n/10), '0' + byte(n%10)})
	}
	return "VTS_" + digits(set) + "_" + string([]byte{'0' + byte(part)}) + ext
}

// TitleSectorPayload returns the deterministic 2048-byte payload written at
// linear sector index within a title set's title VOBs.
func TitleSectorPayload(titleSet int, linear int64) []byte {
	payload := make([]byte, sectorSize)
	binary.BigEndian.PutUint32(payload[0:4], uint32(titleSet))
	binary.BigEndian.PutUint64(payload[4:12], uint64(linear))
	fill := byte(linear%251) + 1
	for i := 12; i < sectorSize; i++ {
		payload[i] = fill
	}
	return payload
}
