package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2/v2"

	"tracklink/internal/config"
	"tracklink/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

type libraryTrack struct {
	id       int
	name     string
	artist   string
	album    string
	millis   int64
	disc     int
	track    int
	location string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv(config.ConfigEnv, "")

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	encoded, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	testsupport.WriteFile(t, path, []byte(encoded))
}

func (env *cliTestEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func (env *cliTestEnv) writeLibrary(t *testing.T, tracks ...libraryTrack) {
	t.Helper()
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Major Version</key><integer>1</integer>
	<key>Minor Version</key><integer>1</integer>
	<key>Application Version</key><string>1.4.5.7</string>
	<key>Tracks</key>
	<dict>
`)
	for _, tr := range tracks {
		fmt.Fprintf(&sb, "\t\t<key>%d</key>\n\t\t<dict>\n", tr.id)
		fmt.Fprintf(&sb, "\t\t\t<key>Track ID</key><integer>%d</integer>\n", tr.id)
		fmt.Fprintf(&sb, "\t\t\t<key>Name</key><string>%s</string>\n", tr.name)
		fmt.Fprintf(&sb, "\t\t\t<key>Artist</key><string>%s</string>\n", tr.artist)
		if tr.album != "" {
			fmt.Fprintf(&sb, "\t\t\t<key>Album</key><string>%s</string>\n", tr.album)
		}
		fmt.Fprintf(&sb, "\t\t\t<key>Total Time</key><integer>%d</integer>\n", tr.millis)
		if tr.disc > 0 {
			fmt.Fprintf(&sb, "\t\t\t<key>Disc Number</key><integer>%d</integer>\n", tr.disc)
		}
		if tr.track > 0 {
			fmt.Fprintf(&sb, "\t\t\t<key>Track Number</key><integer>%d</integer>\n", tr.track)
		}
		fmt.Fprintf(&sb, "\t\t\t<key>Persistent ID</key><string>%016X</string>\n", tr.id)
		fmt.Fprintf(&sb, "\t\t\t<key>Location</key><string>%s</string>\n", tr.location)
		sb.WriteString("\t\t</dict>\n")
	}
	sb.WriteString("\t</dict>\n\t<key>Playlists</key>\n\t<array/>\n</dict>\n</plist>\n")
	testsupport.WriteFile(t, env.cfg.Paths.LibraryXML, []byte(sb.String()))
}

// writeTaggedMP3 writes a stub MP3 carrying isrc and returns its file:// location.
func (env *cliTestEnv) writeTaggedMP3(t *testing.T, name, isrc string) string {
	t.Helper()
	path := filepath.Join(env.baseDir, "media", name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir media: %v", err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()
	tag := id3v2.NewEmptyTag()
	tag.AddTextFrame("TSRC", tag.DefaultEncoding(), isrc)
	if _, err := tag.WriteTo(file); err != nil {
		t.Fatalf("write id3 tag: %v", err)
	}
	if _, err := file.Write([]byte("not really audio")); err != nil {
		t.Fatalf("write body: %v", err)
	}
	return "file://" + path
}
