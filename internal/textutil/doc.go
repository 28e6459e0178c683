// Package textutil provides the text folding used to compare catalog and
// library metadata.
//
// The primary use cases are:
//   - Normalizing artist, title, and album strings into a canonical form
//   - Stripping release qualifiers ("- Remastered 2009", "(feat. X)") from titles
//   - Scoring token-overlap similarity between two titles
//   - Sanitizing playlist names for safe filesystem use
//
// Normalization transliterates to a diacritic-free form, lowercases, and
// collapses whitespace. It is idempotent, so keys derived from normalized
// text can be compared directly.
package textutil
