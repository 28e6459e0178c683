// Package confirmcache persists deep-inspection outcomes in SQLite so ISRC
// confirmations survive between runs.
//
// Entries are keyed by library persistent id and record the file fingerprint
// (modification time and size) that was inspected, the ISRC found (if any),
// and a status of present, absent, or error. Entries are upserted and never
// deleted during a run; Clear exists for the cache CLI command.
//
// Open takes an exclusive lock next to the database so two runs cannot share
// one cache. Schema changes bump the version in schema.go; users clear the
// cache to adopt the new schema.
package confirmcache
