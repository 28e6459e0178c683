// Package config loads, normalizes, and validates tracklink configuration.
//
// It supplies defaults that mirror a working directory layout (MusicLibrary.xml,
// spotify_csv/, music_playlists_xml/), expands user paths including tilde
// shortcuts, reads TOML files, and honours the TRACKLINK_CONFIG environment
// fallback. Matching thresholds and the deep-inspection budget live here so the
// CLI and tests share one source of defaults.
package config
