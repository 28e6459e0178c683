package probe

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
)

const isrcCommentField = "ISRC"

// readFLACISRC reads only the metadata blocks; audio frames are never loaded.
func readFLACISRC(path string) (string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open flac: %w", err)
	}
	defer fh.Close()

	file, err := flac.ParseMetadata(fh)
	if err != nil {
		return "", fmt.Errorf("read flac metadata: %w", err)
	}
	for _, block := range file.Meta {
		if block.Type != flac.VorbisComment {
			continue
		}
		comment, err := flacvorbis.ParseFromMetaDataBlock(*block)
		if err != nil {
			return "", fmt.Errorf("parse vorbis comment: %w", err)
		}
		if code := commentValue(comment.Comments, isrcCommentField); code != "" {
			return code, nil
		}
	}
	return "", nil
}

// commentValue finds a KEY=value comment; keys compare case-insensitively.
func commentValue(comments []string, field string) string {
	for _, entry := range comments {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.EqualFold(key, field) {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
