package textutil

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// TokenSetRatio scores the token overlap of two strings on a 0-100 scale.
// Both inputs are tokenized after normalization; the score is the best
// indel ratio among the shared tokens and the shared tokens extended by either
// side's leftovers. Identical normalized strings score 100 and strings with no
// tokens score 0.
func TokenSetRatio(a, b string) int {
	setA := newTokenSet(a)
	setB := newTokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	common, onlyA, onlyB := setA.split(setB)
	base := strings.Join(common, " ")
	withA := joinNonEmpty(base, strings.Join(onlyA, " "))
	withB := joinNonEmpty(base, strings.Join(onlyB, " "))

	best := ratio(withA, withB)
	if base != "" {
		best = max(best, ratio(base, withA), ratio(base, withB))
	}
	return best
}

// ratio is the normalized indel similarity 2*LCS/(len(a)+len(b)) on runes.
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	lcs := edlib.LCS(a, b)
	return int(math.Round(200 * float64(lcs) / float64(total)))
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
