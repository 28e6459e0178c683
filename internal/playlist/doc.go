// Package playlist converts catalog CSV playlists into Music.app playlists.
//
// The Converter resolves every row of every playlist through a Resolver,
// writes one playlist document per CSV that produced at least one match, and
// collects unmatched rows into a tab-separated report. Per-file read failures
// are logged and skipped; resolver errors end the run.
package playlist
