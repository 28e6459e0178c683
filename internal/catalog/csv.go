package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Header aliases accepted for each field, in priority order.
var (
	artistColumns   = []string{"Artist Name(s)", "Artist Name", "Artist", "artist"}
	titleColumns    = []string{"Track Name", "track_name", "Track", "track", "title"}
	albumColumns    = []string{"Album Name", "album"}
	durationColumns = []string{"Track Duration (ms)", "Duration (ms)", "duration_ms", "Duration"}
	discColumns     = []string{"Disc Number", "disc_number"}
	trackColumns    = []string{"Track Number", "track_number"}
	isrcColumns     = []string{"ISRC", "isrc"}
)

// ErrNoPlaylists is returned when a catalog directory holds no CSV files.
var ErrNoPlaylists = errors.New("no CSV playlists found")

// Playlist is one catalog export file.
type Playlist struct {
	Name string
	Path string
}

// Discover lists the CSV exports in dir sorted by name.
func Discover(dir string) ([]Playlist, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat catalog dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path %s is not a directory", dir)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("glob catalog dir: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPlaylists, dir)
	}
	sort.Strings(matches)
	playlists := make([]Playlist, 0, len(matches))
	for _, path := range matches {
		playlists = append(playlists, Playlist{
			Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Path: path,
		})
	}
	return playlists, nil
}

// ReadFile parses a catalog export from disk.
func ReadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()
	records, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// Read parses catalog rows from r. The first row must be a header.
func Read(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := newColumnMap(header)

	var records []Record
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		records = append(records, Record{
			Artist:     cols.value(fields, artistColumns),
			Title:      cols.value(fields, titleColumns),
			Album:      cols.value(fields, albumColumns),
			DurationMS: parseMillis(cols.value(fields, durationColumns)),
			Disc:       parseCount(cols.value(fields, discColumns)),
			Track:      parseCount(cols.value(fields, trackColumns)),
			ISRC:       cols.value(fields, isrcColumns),
			Row:        row,
		})
	}
	return records, nil
}

type columnMap map[string]int

func newColumnMap(header []string) columnMap {
	cols := make(columnMap, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, exists := cols[name]; !exists {
			cols[name] = i
		}
	}
	return cols
}

// value returns the first non-empty field among the aliases.
func (c columnMap) value(fields []string, aliases []string) string {
	for _, alias := range aliases {
		i, ok := c[alias]
		if !ok || i >= len(fields) {
			continue
		}
		if v := strings.TrimSpace(fields[i]); v != "" {
			return v
		}
	}
	return ""
}

func parseMillis(value string) int64 {
	if value == "" {
		return 0
	}
	ms, err := strconv.ParseFloat(value, 64)
	if err != nil || ms <= 0 {
		return 0
	}
	return int64(ms)
}

// parseCount accepts "3" as well as "3/12" style numbers.
func parseCount(value string) int {
	if idx := strings.Index(value, "/"); idx >= 0 {
		value = value[:idx]
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
