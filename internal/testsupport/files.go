package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes contents to path, creating parent directories.
func WriteFile(t testing.TB, path string, contents []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteCSV writes an Exportify-style playlist with the given header and rows.
func WriteCSV(t testing.TB, path string, header []string, rows ...[]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header %s: %v", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write rows %s: %v", path, err)
	}
}

// ExportifyHeader is the column layout of an Exportify export.
var ExportifyHeader = []string{
	"Track URI", "Track Name", "Artist Name(s)", "Album Name", "Disc Number",
	"Track Number", "Track Duration (ms)", "ISRC",
}
