package probe

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tracklink/internal/library"
)

// ErrUnsupportedFormat marks containers the probe cannot read.
var ErrUnsupportedFormat = errors.New("unsupported format")

// reader extracts an ISRC from one container format. An empty code with a nil
// error means the file carries none.
type reader func(path string) (string, error)

var readers = map[string]reader{
	".mp3":  readID3ISRC,
	".flac": readFLACISRC,
}

// FileProbe inspects local files referenced by library locations.
type FileProbe struct{}

// NewFileProbe returns a probe backed by the local filesystem.
func NewFileProbe() *FileProbe {
	return &FileProbe{}
}

// Probe reads the embedded ISRC of the file at location.
func (p *FileProbe) Probe(ctx context.Context, location string) Result {
	start := time.Now()
	result := p.probe(ctx, location)
	result.Elapsed = time.Since(start)
	return result
}

func (p *FileProbe) probe(ctx context.Context, location string) Result {
	if err := ctx.Err(); err != nil {
		return Failed(err.Error(), Fingerprint{})
	}
	path, err := PathFromLocation(location)
	if err != nil {
		return Failed(err.Error(), Fingerprint{})
	}
	fp, err := Stat(path)
	if err != nil {
		return Failed(err.Error(), Fingerprint{})
	}
	read, ok := readers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Failed(fmt.Sprintf("%s: %s", ErrUnsupportedFormat, filepath.Ext(path)), fp)
	}
	code, err := read(path)
	if err != nil {
		return Failed(err.Error(), fp)
	}
	code = library.NormalizeCode(code)
	if code == "" {
		return Absent(fp)
	}
	return Present(code, fp)
}

// Fingerprint stats the file behind location.
func (p *FileProbe) Fingerprint(location string) (Fingerprint, error) {
	path, err := PathFromLocation(location)
	if err != nil {
		return Fingerprint{}, err
	}
	return Stat(path)
}

// Stat returns the fingerprint of the file at path.
func Stat(path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("stat media file: %w", err)
	}
	if info.IsDir() {
		return Fingerprint{}, fmt.Errorf("media path %s is a directory", path)
	}
	return Fingerprint{ModTime: info.ModTime().Unix(), Size: info.Size()}, nil
}

// PathFromLocation converts a library location (a file:// URL as written by
// Music.app, or a plain path) into a filesystem path.
func PathFromLocation(location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", errors.New("empty location")
	}
	if !strings.Contains(location, "://") {
		return filepath.Clean(location), nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parse location: %w", err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("location scheme %q is not a local file", u.Scheme)
	}
	path := u.Path
	if u.Host != "" && u.Host != "localhost" {
		path = "//" + u.Host + path
	}
	return filepath.FromSlash(path), nil
}
