// Package probe reads embedded ISRC codes from media files.
//
// A probe never fails across its boundary: every outcome is a Result that is
// Present (with the code), Absent (the file was read and carries no code), or
// Error (the file could not be read or its format is unsupported). Results
// carry the file fingerprint observed at probe time so the confirmation cache
// can record what was inspected.
//
// MP3 files are read through their ID3v2 TSRC frame and FLAC files through the
// ISRC Vorbis comment. Other containers report an unsupported-format error.
package probe
