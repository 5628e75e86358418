package titlestream

import "dvdstream/internal/dvdnav"

// Navigator opens disc volumes for sessions. The production implementation
// is backed by package dvdnav; tests inject fakes to exercise failure paths.
type Navigator interface {
	OpenDisc(path string) (Disc, error)
}

// Disc is an opened disc volume owned by one session.
type Disc interface {
	OpenInfo(titleSet int) (Info, error)
	OpenTitleFile(titleSet int) (SectorFile, error)
	Close() error
}

// Info is navigation metadata for the volume (title set 0) or a title set.
type Info interface {
	OK() bool
	TitleCount() int
	// TitleSet maps a 1-based title number to its title set index.
	TitleSet(title int) (int, bool)
	Close()
}

// SectorFile serves whole 2048-byte sectors from a title's VOB stream.
type SectorFile interface {
	Len() int64
	ReadSectors(start int64, count int, dst []byte) (int, error)
	Close() error
}

// DVDNavigator adapts package dvdnav to the session's navigation contract.
type DVDNavigator struct{}

func (DVDNavigator) OpenDisc(path string) (Disc, error) {
	disc, err := dvdnav.Open(path)
	if err != nil {
		return nil, err
	}
	return navDisc{disc}, nil
}

type navDisc struct {
	disc *dvdnav.Disc
}

func (d navDisc) OpenInfo(titleSet int) (Info, error) {
	info, err := d.disc.OpenInfo(titleSet)
	if err != nil {
		return nil, err
	}
	return navInfo{info}, nil
}

func (d navDisc) OpenTitleFile(titleSet int) (SectorFile, error) {
	return d.disc.OpenTitleFile(titleSet, dvdnav.TitleVOBs)
}

func (d navDisc) Close() error {
	return d.disc.Close()
}

type navInfo struct {
	info *dvdnav.Info
}

func (i navInfo) OK() bool { return i.info.OK() }

func (i navInfo) TitleCount() int { return i.info.TitleCount() }

func (i navInfo) TitleSet(title int) (int, bool) {
	entry, ok := i.info.Title(title)
	if !ok {
		return 0, false
	}
	return entry.TitleSet, true
}

func (i navInfo) Close() { i.info.Close() }
