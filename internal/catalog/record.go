package catalog

import (
	"strings"

	"tracklink/internal/library"
	"tracklink/internal/textutil"
)

// Record is one row of a catalog export.
type Record struct {
	// Artist may list several artists joined by commas; the first is primary.
	Artist string
	Title  string
	Album  string
	// DurationMS is zero when unknown.
	DurationMS int64
	// Disc and Track are zero when unknown.
	Disc  int
	Track int
	ISRC  string
	// Row is the 1-based data row within its source file.
	Row int
}

// Seconds returns the rounded duration, zero when unknown.
func (r Record) Seconds() int {
	return library.SecondsFromMillis(r.DurationMS)
}

// PrimaryArtist returns the first credited artist.
func (r Record) PrimaryArtist() string {
	return textutil.PrimaryArtist(r.Artist)
}

// Code returns the canonical ISRC, or "" when absent.
func (r Record) Code() string {
	return library.NormalizeCode(r.ISRC)
}

// DiscNumber returns the disc, defaulting to 1.
func (r Record) DiscNumber() int {
	if r.Disc <= 0 {
		return 1
	}
	return r.Disc
}

// Label formats the record for reports.
func (r Record) Label() string {
	artist := strings.TrimSpace(r.Artist)
	title := strings.TrimSpace(r.Title)
	switch {
	case artist == "":
		return title
	case title == "":
		return artist
	default:
		return artist + " - " + title
	}
}
