package matcher

import (
	"context"
	"sync"

	"tracklink/internal/confirmcache"
)

// CacheWriter persists confirmation batches.
type CacheWriter interface {
	UpsertBatch(ctx context.Context, entries []confirmcache.Entry) error
}

// CacheView is the in-memory snapshot of the confirmation cache for one run.
// Writes go to the store first and become visible to readers once committed.
type CacheView struct {
	mu      sync.RWMutex
	entries map[string]confirmcache.Entry
	store   CacheWriter
}

// NewCacheView wraps loaded entries. A nil store keeps results in memory only.
func NewCacheView(entries map[string]confirmcache.Entry, store CacheWriter) *CacheView {
	copied := make(map[string]confirmcache.Entry, len(entries))
	for id, entry := range entries {
		copied[id] = entry
	}
	return &CacheView{entries: copied, store: store}
}

// Get returns the entry cached for a persistent id.
func (v *CacheView) Get(persistentID string) (confirmcache.Entry, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	entry, ok := v.entries[persistentID]
	return entry, ok
}

// Len returns the number of cached entries.
func (v *CacheView) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries)
}

// Record commits a batch and then publishes it to readers.
func (v *CacheView) Record(ctx context.Context, batch []confirmcache.Entry) error {
	if len(batch) == 0 {
		return nil
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.store != nil {
		if err := v.store.UpsertBatch(ctx, batch); err != nil {
			return err
		}
	}
	for _, entry := range batch {
		v.entries[entry.PersistentID] = entry
	}
	return nil
}
