package testsupport

import (
	"testing"

	"tracklink/internal/config"
	"tracklink/internal/confirmcache"
)

// MustOpenCache opens the confirmation cache for tests and registers cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *confirmcache.Store {
	t.Helper()

	store, err := confirmcache.Open(cfg.Paths.CachePath)
	if err != nil {
		t.Fatalf("confirmcache.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
