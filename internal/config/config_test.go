package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"tracklink/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv(config.ConfigEnv, "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "tracklink", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCache := filepath.Join(tempHome, ".cache", "tracklink", "confirmations.db")
	if cfg.Paths.CachePath != wantCache {
		t.Fatalf("cache path = %q, want %q", cfg.Paths.CachePath, wantCache)
	}
	if !filepath.IsAbs(cfg.Paths.LibraryXML) || filepath.Base(cfg.Paths.LibraryXML) != "MusicLibrary.xml" {
		t.Fatalf("unexpected library xml %q", cfg.Paths.LibraryXML)
	}
	if filepath.Base(cfg.Paths.CSVDir) != "spotify_csv" {
		t.Fatalf("unexpected csv dir %q", cfg.Paths.CSVDir)
	}
	if cfg.Matching.DurationFloorSeconds != 3 || cfg.Matching.DurationFraction != 0.02 {
		t.Fatalf("unexpected tolerance defaults: %+v", cfg.Matching)
	}
	if cfg.Matching.FuzzyThreshold != 95 {
		t.Fatalf("unexpected fuzzy threshold %d", cfg.Matching.FuzzyThreshold)
	}
	if !cfg.Confirm.Enabled || cfg.Confirm.RevalidateOnChange {
		t.Fatalf("unexpected confirm defaults: %+v", cfg.Confirm)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "tracklink.toml")
	content := `
[paths]
library_xml = "~/exports/Library.xml"
csv_dir = "~/exports/csv"
output_dir = "~/exports/out"
cache_path = "~/state/cache.db"
log_dir = ""

[matching]
duration_floor_seconds = 5
use_album = false

[confirm]
read_budget = 12
parallelism = 2
revalidate_on_change = true

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.LibraryXML != filepath.Join(tempHome, "exports", "Library.xml") {
		t.Fatalf("unexpected library xml %q", cfg.Paths.LibraryXML)
	}
	if cfg.Paths.CachePath != filepath.Join(tempHome, "state", "cache.db") {
		t.Fatalf("unexpected cache path %q", cfg.Paths.CachePath)
	}
	if cfg.Paths.LogDir != "" {
		t.Fatalf("expected empty log dir to stay disabled, got %q", cfg.Paths.LogDir)
	}
	if cfg.Matching.DurationFloorSeconds != 5 || cfg.Matching.UseAlbum {
		t.Fatalf("unexpected matching: %+v", cfg.Matching)
	}
	if cfg.Matching.FuzzyThreshold != 95 {
		t.Fatalf("expected unset fields to keep defaults, got %d", cfg.Matching.FuzzyThreshold)
	}
	if cfg.Confirm.ReadBudget != 12 || cfg.Confirm.Parallelism != 2 || !cfg.Confirm.RevalidateOnChange {
		t.Fatalf("unexpected confirm: %+v", cfg.Confirm)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
}

func TestLoadUsesEnvironmentPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "env.toml")
	if err := os.WriteFile(configPath, []byte("[confirm]\nread_budget = 7\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(config.ConfigEnv, configPath)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected env config path, got %q exists=%v", resolved, exists)
	}
	if cfg.Confirm.ReadBudget != 7 {
		t.Fatalf("read budget = %d, want 7", cfg.Confirm.ReadBudget)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(configPath, []byte("[matching]\nfuzzy_treshold = 90\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Paths.CSVDir != "spotify_csv" {
		t.Fatalf("unexpected sample csv dir %q", cfg.Paths.CSVDir)
	}
	defaults := config.Default()
	if cfg.Matching != defaults.Matching {
		t.Fatalf("sample matching %+v differs from defaults %+v", cfg.Matching, defaults.Matching)
	}
	if cfg.Confirm != defaults.Confirm {
		t.Fatalf("sample confirm %+v differs from defaults %+v", cfg.Confirm, defaults.Confirm)
	}
}

func TestWriteSampleKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("# mine\n"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	resolved, err := config.WriteSample(path, false)
	if !errors.Is(err, config.ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "# mine\n" {
		t.Fatalf("existing config was modified: %q", data)
	}

	if _, err := config.WriteSample(path, true); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if !strings.Contains(string(data), "[confirm]") {
		t.Fatalf("expected sample after overwrite, got:\n%s", data)
	}
}

func TestWriteSampleDefaultsToHomeConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	resolved, err := config.WriteSample("  ", false)
	if err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	want := filepath.Join(tempHome, ".config", "tracklink", "config.toml")
	if resolved != want {
		t.Fatalf("expected %q, got %q", want, resolved)
	}
	if _, _, exists, err := config.Load(resolved); err != nil || !exists {
		t.Fatalf("expected loadable sample at %q (exists=%v): %v", resolved, exists, err)
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	cfg := config.Default()
	encoded, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(encoded, "read_budget") {
		t.Fatalf("encoded config missing confirm section:\n%s", encoded)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"negative floor", func(c *config.Config) { c.Matching.DurationFloorSeconds = -1 }},
		{"fraction too large", func(c *config.Config) { c.Matching.DurationFraction = 1 }},
		{"fuzzy threshold zero", func(c *config.Config) { c.Matching.FuzzyThreshold = 0 }},
		{"fuzzy threshold above 100", func(c *config.Config) { c.Matching.FuzzyThreshold = 101 }},
		{"negative budget", func(c *config.Config) { c.Confirm.ReadBudget = -1 }},
		{"zero parallelism", func(c *config.Config) { c.Confirm.Parallelism = 0 }},
		{"negative row cap", func(c *config.Config) { c.Confirm.PerRowCap = -5 }},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "trace" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
