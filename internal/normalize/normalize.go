// Package normalize canonicalizes text for keyword matching: lower-casing,
// punctuation folding, and whitespace collapsing. Everything that compares
// document text goes through this package so matching stays consistent.
package normalize

import (
	"strings"
	"unicode"
)

// Normalize lower-cases the input, replaces every run of non-alphanumeric
// characters with a single space, and trims the result. It is total and
// idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingSpace = true
	}

	return b.String()
}

// CountOccurrences counts non-overlapping, left-to-right occurrences of the
// normalized term inside the normalized text. Returns 0 if either input
// normalizes to empty.
func CountOccurrences(text, term string) int {
	haystack := Normalize(text)
	needle := Normalize(term)
	if haystack == "" || needle == "" {
		return 0
	}

	count := 0
	for offset := 0; ; {
		i := strings.Index(haystack[offset:], needle)
		if i < 0 {
			return count
		}
		count++
		offset += i + len(needle)
	}
}
