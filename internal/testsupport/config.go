package testsupport

import (
	"path/filepath"
	"testing"

	"tracklink/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LibraryXML = filepath.Join(base, "MusicLibrary.xml")
	cfgVal.Paths.CSVDir = filepath.Join(base, "spotify_csv")
	cfgVal.Paths.OutputDir = filepath.Join(base, "music_playlists_xml")
	cfgVal.Paths.CachePath = filepath.Join(base, "cache", "confirmations.db")
	cfgVal.Paths.LogDir = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithReadBudget overrides the deep-inspection budget.
func WithReadBudget(budget int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Confirm.ReadBudget = budget
	}
}

// WithoutConfirm disables deep inspection.
func WithoutConfirm() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Confirm.Enabled = false
	}
}

// WithLogDir enables file logging under the temp root.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LibraryXML)
}
