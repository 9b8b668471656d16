package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// zeroWidthRunes are format characters OCR engines emit between glyphs.
// Unicode does not classify them as whitespace, but they are invisible in the same way.
var zeroWidthRunes = map[rune]bool{
	'\u200b': true, // zero width space
	'\u200c': true, // zero width non-joiner
	'\u200d': true, // zero width joiner
	'\u2060': true, // word joiner
	'\ufeff': true, // zero width no-break space / BOM
}

// isWordRune reports whether r is a word character: a letter, a digit or an underscore
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Normalize canonicalizes text for comparison.
// Everything that is neither a word character nor whitespace is dropped,
// whitespace runs collapse to a single space, the result is trimmed and lowercased.
func Normalize(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)

	return strings.ToLower(strings.Join(strings.Fields(stripped), " "))
}

// RemoveHiddenCharacters drops every whitespace character except the ASCII space
// (non-breaking spaces, tabs, newlines) along with zero-width characters, then trims.
func RemoveHiddenCharacters(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' {
			return r
		}
		if unicode.IsSpace(r) || zeroWidthRunes[r] {
			return -1
		}
		return r
	}, text)

	return strings.TrimSpace(cleaned)
}

// FoldAccents strips combining marks after canonical decomposition (Élodie -> Elodie)
func FoldAccents(text string) string {
	// transform.Chain keeps state, so a fresh chain is built per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return result
}
