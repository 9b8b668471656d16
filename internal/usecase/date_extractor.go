package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// dateDigits is the length of a compact date token such as 10102024
const dateDigits = 8

// fieldLabels are the words OCR regions usually start with on the paper form
var fieldLabels = []string{"date", "brand", "name"}

// stripFieldLabel removes a leading field label (case-insensitive, whole word) and the whitespace after it
func stripFieldLabel(text string) string {
	for _, label := range fieldLabels {
		if len(text) < len(label) || !strings.EqualFold(text[:len(label)], label) {
			continue
		}

		rest := text[len(label):]
		if r, _ := utf8.DecodeRuneInString(rest); rest != "" && isWordRune(r) {
			// "dates", "named": the label is only a prefix of a longer word
			continue
		}

		return strings.TrimLeftFunc(rest, unicode.IsSpace)
	}

	return text
}

// ExtractDate finds the first run of exactly eight digits in a normalized fragment.
// A leading field label is stripped and hidden characters removed first.
// The run must be bounded by non-digits or the ends of the string.
func ExtractDate(fragment string) (string, bool) {
	text := RemoveHiddenCharacters(stripFieldLabel(fragment))

	start := -1
	count := 0
	for i, r := range text {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			count++
			continue
		}
		if count == dateDigits {
			return text[start:i], true
		}
		start = -1
		count = 0
	}

	if count == dateDigits {
		return text[start:], true
	}

	return "", false
}

// MatchDate reports whether the date extracted from fragment equals referenceDate.
// Comparison is exact after hidden character removal only: a reference that still
// carries separators such as "10-10-2024" never equals an eight digit token.
func MatchDate(fragment, referenceDate string) bool {
	extracted, ok := ExtractDate(fragment)
	if !ok {
		return false
	}

	return extracted == RemoveHiddenCharacters(referenceDate)
}
