package playlist

import "tracklink/internal/matcher"

// Unmatched is one row no tier could resolve.
type Unmatched struct {
	Playlist string
	Artist   string
	Title    string
}

// TierCounts tallies matches by tier.
type TierCounts map[matcher.Tier]int

// Add merges other into c.
func (c TierCounts) Add(other TierCounts) {
	for tier, n := range other {
		c[tier] += n
	}
}

// PlaylistSummary describes one converted CSV.
type PlaylistSummary struct {
	Name    string
	Source  string
	Rows    int
	Matched int
	Tiers   TierCounts
	// Output is empty when nothing matched and no file was written.
	Output string
	// Err is set when the CSV could not be read.
	Err error
}

// Unresolved returns the number of rows left unmatched.
func (s PlaylistSummary) Unresolved() int {
	return s.Rows - s.Matched
}

// Summary aggregates a conversion run.
type Summary struct {
	Playlists  []PlaylistSummary
	Unmatched  []Unmatched
	Tiers      TierCounts
	ReportPath string
}

// Written counts playlists that produced an output file.
func (s Summary) Written() int {
	n := 0
	for _, pl := range s.Playlists {
		if pl.Output != "" {
			n++
		}
	}
	return n
}

// Rows counts every catalog row processed.
func (s Summary) Rows() int {
	n := 0
	for _, pl := range s.Playlists {
		n += pl.Rows
	}
	return n
}

// Matched counts every resolved row.
func (s Summary) Matched() int {
	n := 0
	for _, pl := range s.Playlists {
		n += pl.Matched
	}
	return n
}
