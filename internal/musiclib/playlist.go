package musiclib

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"

	"howett.net/plist"
)

const applicationVersion = "13.0"

type playlistDocument struct {
	MajorVersion       int                 `plist:"Major Version"`
	MinorVersion       int                 `plist:"Minor Version"`
	ApplicationVersion string              `plist:"Application Version"`
	Features           int                 `plist:"Features"`
	ShowContentRatings bool                `plist:"Show Content Ratings"`
	Tracks             map[string]any      `plist:"Tracks"`
	Playlists          []playlistDictEntry `plist:"Playlists"`
}

type playlistDictEntry struct {
	Name         string         `plist:"Name"`
	PlaylistID   int            `plist:"Playlist ID"`
	PersistentID string         `plist:"Playlist Persistent ID"`
	AllItems     bool           `plist:"All Items"`
	Items        []playlistItem `plist:"Playlist Items"`
}

type playlistItem struct {
	TrackID int `plist:"Track ID"`
}

// Playlist is a named list of library Track IDs.
type Playlist struct {
	Name     string
	TrackIDs []int
}

// PersistentID derives a stable 16-hex-digit id from the playlist name so
// re-importing a regenerated playlist updates it instead of duplicating it.
func PersistentID(name string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return fmt.Sprintf("%016X", h.Sum64())
}

// EncodePlaylist writes pl as an importable XML property list.
func EncodePlaylist(w io.Writer, pl Playlist) error {
	items := make([]playlistItem, 0, len(pl.TrackIDs))
	for _, id := range pl.TrackIDs {
		items = append(items, playlistItem{TrackID: id})
	}
	doc := playlistDocument{
		MajorVersion:       1,
		MinorVersion:       1,
		ApplicationVersion: applicationVersion,
		Features:           5,
		ShowContentRatings: true,
		Tracks:             map[string]any{},
		Playlists: []playlistDictEntry{{
			Name:         pl.Name,
			PlaylistID:   1,
			PersistentID: PersistentID(pl.Name),
			AllItems:     true,
			Items:        items,
		}},
	}
	encoder := plist.NewEncoderForFormat(w, plist.XMLFormat)
	encoder.Indent("\t")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode playlist %q: %w", pl.Name, err)
	}
	return nil
}

// WritePlaylist writes pl to path atomically.
func WritePlaylist(path string, pl Playlist) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create playlist directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".playlist-*.xml")
	if err != nil {
		return fmt.Errorf("create temp playlist: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := EncodePlaylist(tmp, pl); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp playlist: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename playlist: %w", err)
	}
	return nil
}
