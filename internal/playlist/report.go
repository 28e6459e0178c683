package playlist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var tsvFieldReplacer = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

// WriteUnmatchedReport writes rows as Playlist/Artist/Track TSV.
func WriteUnmatchedReport(path string, rows []Unmatched) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create unmatched report: %w", err)
	}
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "Playlist\tArtist\tTrack")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			tsvFieldReplacer.Replace(row.Playlist),
			tsvFieldReplacer.Replace(row.Artist),
			tsvFieldReplacer.Replace(row.Title))
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write unmatched report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close unmatched report: %w", err)
	}
	return nil
}
