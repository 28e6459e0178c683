package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const exportifyCSV = "\ufeffTrack URI,Track Name,Artist Name(s),Album Name,Disc Number,Track Number,Track Duration (ms),ISRC\n" +
	"spotify:track:1,One More Time - Radio Edit,Daft Punk,Discovery,1,1,321000,GBDUW0000053\n" +
	"spotify:track:2,\"Get Lucky (feat. Pharrell Williams, Nile Rodgers)\",\"Daft Punk, Pharrell Williams, Nile Rodgers\",Random Access Memories,,8,abc,\n"

func TestReadExportify(t *testing.T) {
	records, err := Read(strings.NewReader(exportifyCSV))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Artist != "Daft Punk" || first.Title != "One More Time - Radio Edit" || first.Album != "Discovery" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.DurationMS != 321000 || first.Seconds() != 321 {
		t.Fatalf("unexpected duration: %d (%ds)", first.DurationMS, first.Seconds())
	}
	if first.Disc != 1 || first.Track != 1 || first.Code() != "GBDUW0000053" || first.Row != 1 {
		t.Fatalf("unexpected numbering/code: %+v", first)
	}

	second := records[1]
	if second.PrimaryArtist() != "Daft Punk" {
		t.Fatalf("unexpected primary artist %q", second.PrimaryArtist())
	}
	if second.DurationMS != 0 {
		t.Fatalf("malformed duration should be unknown, got %d", second.DurationMS)
	}
	if second.Disc != 0 || second.DiscNumber() != 1 || second.Track != 8 {
		t.Fatalf("unexpected disc/track: %+v", second)
	}
	if second.Code() != "" {
		t.Fatalf("expected empty code, got %q", second.Code())
	}
}

func TestReadLegacyHeaders(t *testing.T) {
	data := "artist,track,album,Duration\nJustice,D.A.N.C.E.,Cross,242000.0\n"
	records, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Artist != "Justice" || rec.Title != "D.A.N.C.E." || rec.Album != "Cross" || rec.Seconds() != 242 {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestReadEmpty(t *testing.T) {
	records, err := Read(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"3", 3},
		{"3/12", 3},
		{"x", 0},
		{"-1", 0},
	}
	for _, tt := range tests {
		if got := parseCount(tt.in); got != tt.want {
			t.Errorf("parseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.csv", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("Track Name\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	playlists, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(playlists) != 2 || playlists[0].Name != "a" || playlists[1].Name != "b" {
		t.Fatalf("unexpected playlists: %+v", playlists)
	}

	empty := t.TempDir()
	if _, err := Discover(empty); !errors.Is(err, ErrNoPlaylists) {
		t.Fatalf("expected ErrNoPlaylists, got %v", err)
	}
}

func TestLabel(t *testing.T) {
	if got := (Record{Artist: "A", Title: "B"}).Label(); got != "A - B" {
		t.Fatalf("Label = %q", got)
	}
	if got := (Record{Title: "B"}).Label(); got != "B" {
		t.Fatalf("Label = %q", got)
	}
}
