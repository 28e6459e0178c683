package musiclib

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"howett.net/plist"
)

const sampleLibrary = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Major Version</key><integer>1</integer>
	<key>Minor Version</key><integer>1</integer>
	<key>Application Version</key><string>1.4.5.7</string>
	<key>Music Folder</key><string>file:///Users/dj/Music/Music/Media.localized/</string>
	<key>Tracks</key>
	<dict>
		<key>2041</key>
		<dict>
			<key>Track ID</key><integer>2041</integer>
			<key>Name</key><string>One More Time</string>
			<key>Artist</key><string>Daft Punk</string>
			<key>Album</key><string>Discovery</string>
			<key>Total Time</key><integer>320357</integer>
			<key>Disc Number</key><integer>1</integer>
			<key>Track Number</key><integer>1</integer>
			<key>Persistent ID</key><string>7A1C3D4F5E6B7081</string>
			<key>Location</key><string>file:///Users/dj/Music/Daft%20Punk/Discovery/01%20One%20More%20Time.mp3</string>
		</dict>
		<key>17</key>
		<dict>
			<key>Track ID</key><integer>17</integer>
			<key>Name</key><string>Windowlicker</string>
			<key>Album Artist</key><string>Aphex Twin</string>
			<key>Total Time</key><integer>366000</integer>
			<key>Persistent ID</key><string>00000000000000AA</string>
			<key>Kind</key><string>Apple Music AAC audio file</string>
		</dict>
	</dict>
	<key>Playlists</key>
	<array/>
</dict>
</plist>
`

func TestLoadParsesTracks(t *testing.T) {
	snap, err := Load(strings.NewReader(sampleLibrary))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(snap.Records))
	}
	if snap.Local() != 1 {
		t.Fatalf("expected 1 local record, got %d", snap.Local())
	}

	cloud := snap.Records[0]
	if cloud.TrackID != 17 {
		t.Fatalf("expected records sorted by track id, first = %d", cloud.TrackID)
	}
	if cloud.Artist != "Aphex Twin" {
		t.Fatalf("expected album artist fallback, got %q", cloud.Artist)
	}
	if cloud.HasLocation() {
		t.Fatal("streaming-only track should have no location")
	}

	local := snap.Records[1]
	if local.Title != "One More Time" || local.Album != "Discovery" {
		t.Fatalf("unexpected local record %+v", local)
	}
	if local.Seconds != 320 {
		t.Fatalf("expected 320 seconds, got %d", local.Seconds)
	}
	if local.Disc != 1 || local.Track != 1 {
		t.Fatalf("unexpected disc/track %d/%d", local.Disc, local.Track)
	}
	if local.PersistentID != "7A1C3D4F5E6B7081" {
		t.Fatalf("unexpected persistent id %q", local.PersistentID)
	}
	if snap.ApplicationVersion != "1.4.5.7" {
		t.Fatalf("unexpected application version %q", snap.ApplicationVersion)
	}
}

func TestLoadRejectsEmptyExport(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0"><dict><key>Tracks</key><dict/></dict></plist>`
	if _, err := Load(strings.NewReader(doc)); !errors.Is(err, ErrNoTracks) {
		t.Fatalf("expected ErrNoTracks, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Fatal("expected error for missing export")
	}
}

func TestWritePlaylistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "Road Trip.xml")
	pl := Playlist{Name: "Road Trip", TrackIDs: []int{2041, 17, 2041}}
	if err := WritePlaylist(path, pl); err != nil {
		t.Fatalf("WritePlaylist failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read playlist: %v", err)
	}
	if !bytes.Contains(data, []byte("<plist")) {
		t.Fatalf("expected XML plist, got %s", data)
	}

	var doc playlistDocument
	if _, err := plist.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal playlist: %v", err)
	}
	if doc.ApplicationVersion != "13.0" || doc.Features != 5 || doc.MajorVersion != 1 {
		t.Fatalf("unexpected header %+v", doc)
	}
	if len(doc.Playlists) != 1 {
		t.Fatalf("expected one playlist, got %d", len(doc.Playlists))
	}
	got := doc.Playlists[0]
	if got.Name != "Road Trip" || got.PersistentID != PersistentID("Road Trip") {
		t.Fatalf("unexpected playlist %+v", got)
	}
	want := []int{2041, 17, 2041}
	if len(got.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got.Items))
	}
	for i, id := range want {
		if got.Items[i].TrackID != id {
			t.Fatalf("item %d = %d, want %d", i, got.Items[i].TrackID, id)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp file cleanup, found %d entries", len(entries))
	}
}

func TestPersistentIDStable(t *testing.T) {
	a := PersistentID("Chill")
	if a != PersistentID("Chill") {
		t.Fatal("persistent id must be deterministic")
	}
	if a == PersistentID("Chill 2") {
		t.Fatal("different names should not collide")
	}
	if len(a) != 16 {
		t.Fatalf("expected 16 hex digits, got %q", a)
	}
}
