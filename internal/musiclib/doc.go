// Package musiclib reads and writes Music.app XML property lists.
//
// Load parses the "Export Library" document into library records; tracks
// without a file Location are kept so callers can report them, but the index
// ignores them. WritePlaylist emits the minimal document Music.app accepts
// through File > Library > Import Playlist: an empty Tracks dictionary plus
// one playlist whose items reference Track IDs already in the library.
package musiclib
