// Package catalog reads external catalog exports (Exportify-style playlist
// CSVs) into Records for matching.
//
// Column names vary between exporter versions, so each field is looked up
// through a list of accepted headers. Malformed numeric fields are treated as
// unknown rather than failing the row.
package catalog
