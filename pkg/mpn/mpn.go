// Package mpn normalizes and tokenizes manufacturer part numbers.
package mpn

import (
	"strings"

	"golang.org/x/text/width"
)

// Normalize trims, folds full-width characters to ASCII and upper-cases s.
// Whitespace-only input yields "".
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(width.Fold.String(s)))
}

func isSeparator(r rune) bool {
	switch r {
	case '-', '_', '/', '(', ')', ',', '.', ' ', '#', '\t':
		return true
	}
	return false
}

// Tokens splits a part number on common separators, dropping empty tokens.
// The input is normalized first.
func Tokens(s string) []string {
	return strings.FieldsFunc(Normalize(s), isSeparator)
}

// LeadingDigits parses the run of decimal digits starting at byte offset
// from. It reports false when there is no digit at that offset.
func LeadingDigits(s string, from int) (int, bool) {
	if from < 0 || from >= len(s) {
		return 0, false
	}
	n, digits := 0, 0
	for i := from; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		// Part numbers never carry numeric runs this long; stop before overflow.
		if digits == 9 {
			break
		}
		n = n*10 + int(s[i]-'0')
		digits++
	}
	return n, digits > 0
}

// RegistrationNumber parses the number that follows prefix in s, as in
// 4148 for "1N4148WS" and prefix "1N", and returns the text after it. A run
// starting with 0 is not a registration number.
func RegistrationNumber(s, prefix string) (int, string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return 0, "", false
	}
	from := len(prefix)
	if from < len(s) && s[from] == '0' {
		return 0, "", false
	}
	n, ok := LeadingDigits(s, from)
	if !ok {
		return 0, "", false
	}
	end := from
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return n, s[end:], true
}
