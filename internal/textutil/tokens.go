package textutil

import (
	"sort"
	"strings"
	"unicode"
)

// Tokenize splits normalized text into letter/digit runs. Punctuation acts as
// a separator and is dropped.
func Tokenize(text string) []string {
	return strings.FieldsFunc(Normalize(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// tokenSet is a sorted, de-duplicated token list.
type tokenSet []string

func newTokenSet(text string) tokenSet {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	sort.Strings(tokens)
	out := tokens[:1]
	for _, token := range tokens[1:] {
		if token != out[len(out)-1] {
			out = append(out, token)
		}
	}
	return out
}

// split partitions two sets into their intersection and the two differences,
// each kept in sorted order.
func (s tokenSet) split(other tokenSet) (common, onlyS, onlyOther tokenSet) {
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] == other[j]:
			common = append(common, s[i])
			i++
			j++
		case s[i] < other[j]:
			onlyS = append(onlyS, s[i])
			i++
		default:
			onlyOther = append(onlyOther, other[j])
			j++
		}
	}
	onlyS = append(onlyS, s[i:]...)
	onlyOther = append(onlyOther, other[j:]...)
	return common, onlyS, onlyOther
}
