package probe

import (
	"fmt"
	"strings"

	"github.com/bogem/id3v2/v2"
)

const isrcFrameID = "TSRC"

func readID3ISRC(path string) (string, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{isrcFrameID}})
	if err != nil {
		return "", fmt.Errorf("read id3 tag: %w", err)
	}
	defer tag.Close()
	return strings.TrimSpace(tag.GetTextFrame(isrcFrameID).Text), nil
}
