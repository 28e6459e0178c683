package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tracklink/internal/testsupport"
)

func TestConfigInitWritesSample(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "generated", "config.toml")

	out, err := env.run(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	for _, want := range []string{target, "Exportify CSVs:", "spotify_csv", "deep inspection: yes (500 file reads per run)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Fatalf("sample config missing [paths]:\n%s", data)
	}

	if _, err := env.run(t, "config", "init", "--path", target); err == nil || !strings.Contains(err.Error(), "--overwrite") {
		t.Fatalf("expected overwrite hint when config already exists, got %v", err)
	}
	if _, err := env.run(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
}

func TestConfigShowPrintsEffectiveConfig(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutConfirm())

	out, err := env.run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"# source: " + env.configPath, "# deep inspection: no", "[matching]", env.cfg.Paths.CachePath} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCacheCommandsOnEmptyCache(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "cache", "list")
	if err != nil {
		t.Fatalf("cache list failed: %v", err)
	}
	if !strings.Contains(out, "No cached verdicts") {
		t.Fatalf("unexpected list output %q", out)
	}

	out, err = env.run(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear failed: %v", err)
	}
	if !strings.Contains(out, "Cache already empty") {
		t.Fatalf("unexpected clear output %q", out)
	}

	if _, err := env.run(t, "cache", "list", "--status", "bogus"); err == nil {
		t.Fatal("expected error for unknown status filter")
	}
}
