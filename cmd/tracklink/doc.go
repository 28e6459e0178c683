// Command tracklink converts Exportify playlist CSVs into Music.app playlist
// XML files that reference tracks already present in the local library.
package main
