// Package library holds the local media library snapshot and the lookup
// tables the matcher resolves catalog rows against.
//
// Build copies the snapshot into an Index that owns every Record. Callers get
// pointers into the index and must treat them as read-only; the only mutation
// after construction is AttachCode, which records an ISRC confirmed by deep
// inspection so later lookups observe it.
//
// Index construction never touches media files: every table is derived from
// metadata already present in the snapshot, and the code table is seeded only
// from previously confirmed cache entries.
package library
