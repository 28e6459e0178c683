package confirmcache

import (
	"sort"
	"strings"
	"time"
)

// Status is the verification outcome stored for a library record.
type Status string

const (
	// StatusPresent means the file carries ISRC.
	StatusPresent Status = "present"
	// StatusAbsent means the file was read and carries no ISRC.
	StatusAbsent Status = "absent"
	// StatusError means the file could not be inspected; it may be retried.
	StatusError Status = "error"
)

// Known reports whether the status is a trusted verdict.
func (s Status) Known() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Entry is the cached verification state of one library record.
type Entry struct {
	PersistentID string
	ModTime      int64
	Size         int64
	ISRC         string
	Status       Status
	Reason       string
	UpdatedAt    time.Time
}

// ConfirmedCodes derives ISRC -> persistent id from present entries. When
// several records carry the same code the lowest persistent id wins so the
// mapping is stable across runs.
func ConfirmedCodes(entries map[string]Entry) map[string]string {
	ids := make([]string, 0, len(entries))
	for id, entry := range entries {
		if entry.Status == StatusPresent && strings.TrimSpace(entry.ISRC) != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	codes := make(map[string]string, len(ids))
	for _, id := range ids {
		code := strings.ToUpper(strings.TrimSpace(entries[id].ISRC))
		if _, exists := codes[code]; !exists {
			codes[code] = id
		}
	}
	return codes
}
