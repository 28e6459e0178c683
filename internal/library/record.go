package library

import (
	"math"
	"strings"
)

// Record is one track from the local library snapshot.
type Record struct {
	// TrackID is the snapshot-local numeric id written to playlists.
	TrackID int
	// PersistentID survives re-exports and keys the confirmation cache.
	PersistentID string
	Artist       string
	Title        string
	Album        string
	// Seconds is the rounded duration; zero when unknown.
	Seconds int
	// Disc defaults to 1 when the snapshot omits it.
	Disc int
	// Track is zero when unknown.
	Track    int
	Location string
	// ISRC is set only after a confirmation.
	ISRC string

	Normalized Normalized
}

// Normalized carries the folded forms of a record's text fields.
type Normalized struct {
	Artist      string
	Title       string
	SimpleTitle string
	Album       string
}

// SecondsFromMillis rounds a millisecond duration to whole seconds. Non-positive
// input yields zero (unknown).
func SecondsFromMillis(ms int64) int {
	if ms <= 0 {
		return 0
	}
	return int(math.Round(float64(ms) / 1000.0))
}

// HasLocation reports whether the record points at a playable file.
func (r *Record) HasLocation() bool {
	return strings.TrimSpace(r.Location) != ""
}

// DiscNumber returns the disc, defaulting to 1.
func (r *Record) DiscNumber() int {
	if r.Disc <= 0 {
		return 1
	}
	return r.Disc
}
