package musiclib

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"howett.net/plist"

	"tracklink/internal/library"
)

// ErrNoTracks is returned when an export contains no Tracks dictionary entries.
var ErrNoTracks = errors.New("library export contains no tracks")

type libraryDocument struct {
	MajorVersion       int                   `plist:"Major Version"`
	MinorVersion       int                   `plist:"Minor Version"`
	ApplicationVersion string                `plist:"Application Version"`
	MusicFolder        string                `plist:"Music Folder"`
	Tracks             map[string]trackEntry `plist:"Tracks"`
}

type trackEntry struct {
	TrackID      int    `plist:"Track ID"`
	PersistentID string `plist:"Persistent ID"`
	Name         string `plist:"Name"`
	Artist       string `plist:"Artist"`
	AlbumArtist  string `plist:"Album Artist"`
	Album        string `plist:"Album"`
	TotalTime    int64  `plist:"Total Time"`
	DiscNumber   int    `plist:"Disc Number"`
	TrackNumber  int    `plist:"Track Number"`
	Location     string `plist:"Location"`
	Kind         string `plist:"Kind"`
}

// Snapshot is a parsed library export.
type Snapshot struct {
	ApplicationVersion string
	MusicFolder        string
	Records            []library.Record
}

// Local counts records that reference a file.
func (s Snapshot) Local() int {
	n := 0
	for i := range s.Records {
		if s.Records[i].HasLocation() {
			n++
		}
	}
	return n
}

// LoadFile parses the library export at path.
func LoadFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open library export: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a library export. Records are ordered by Track ID.
func Load(r io.ReadSeeker) (Snapshot, error) {
	var doc libraryDocument
	if err := plist.NewDecoder(r).Decode(&doc); err != nil {
		return Snapshot{}, fmt.Errorf("decode library export: %w", err)
	}
	if len(doc.Tracks) == 0 {
		return Snapshot{}, ErrNoTracks
	}

	records := make([]library.Record, 0, len(doc.Tracks))
	for key, entry := range doc.Tracks {
		id := entry.TrackID
		if id == 0 {
			if _, err := fmt.Sscanf(key, "%d", &id); err != nil {
				continue
			}
		}
		artist := strings.TrimSpace(entry.Artist)
		if artist == "" {
			artist = strings.TrimSpace(entry.AlbumArtist)
		}
		records = append(records, library.Record{
			TrackID:      id,
			PersistentID: strings.TrimSpace(entry.PersistentID),
			Artist:       artist,
			Title:        strings.TrimSpace(entry.Name),
			Album:        strings.TrimSpace(entry.Album),
			Seconds:      library.SecondsFromMillis(entry.TotalTime),
			Disc:         entry.DiscNumber,
			Track:        entry.TrackNumber,
			Location:     strings.TrimSpace(entry.Location),
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].TrackID < records[j].TrackID })

	return Snapshot{
		ApplicationVersion: doc.ApplicationVersion,
		MusicFolder:        doc.MusicFolder,
		Records:            records,
	}, nil
}
