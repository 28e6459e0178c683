package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName makes a playlist name safe to use as a file name.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. A name that sanitizes to nothing becomes "playlist".
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(fileNameReplacer.Replace(strings.TrimSpace(name)))
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "playlist"
	}
	return name
}
