package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letterFolds covers letters that carry no Unicode decomposition and so
// survive mark stripping untouched.
var letterFolds = strings.NewReplacer(
	"ø", "o",
	"ß", "ss",
	"æ", "ae",
	"œ", "oe",
	"ł", "l",
	"đ", "d",
	"ð", "d",
	"þ", "th",
	"ı", "i",
)

var (
	qualifierSuffixPattern = regexp.MustCompile(`(?i)\s+-\s+(?:\d{4}\s+)?(?:remaster(?:ed)?|mono|stereo|radio edit|edit|version|live|extended|deluxe)\b.*$`)
	qualifierParenPattern  = regexp.MustCompile(`(?i)\s*\((?:feat\b|featuring\b|with\b|remaster|live\b|extended\b)[^)]*\)\s*$`)
	bracketSuffixPattern   = regexp.MustCompile(`\s*\[[^\]]*\]\s*$`)
)

func markStripper() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
}

// Normalize folds text into the canonical comparison form: diacritics are
// removed, letters are lowercased, and whitespace runs collapse to a single
// space. Invalid UTF-8 bytes become U+FFFD. Empty input yields an empty
// string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	lowered := cases.Lower(language.Und).String(strings.ToValidUTF8(text, "\uFFFD"))
	// The input is valid UTF-8 here, so the chain cannot fail.
	stripped, _, _ := transform.String(markStripper(), lowered)
	stripped = strings.ToLower(letterFolds.Replace(stripped))
	return strings.Join(strings.Fields(stripped), " ")
}

// SimplifyTitle removes trailing release qualifiers from a track title. The
// dash suffix, parenthesized qualifier, and bracketed clause patterns are each
// applied once, in that order. Only titles should be simplified.
func SimplifyTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	for _, pattern := range []*regexp.Regexp{qualifierSuffixPattern, qualifierParenPattern, bracketSuffixPattern} {
		title = pattern.ReplaceAllString(title, "")
	}
	return strings.TrimSpace(title)
}

// PrimaryArtist returns the first comma-separated segment of a multi-artist
// credit.
func PrimaryArtist(artist string) string {
	if idx := strings.Index(artist, ","); idx >= 0 {
		artist = artist[:idx]
	}
	return strings.TrimSpace(artist)
}
