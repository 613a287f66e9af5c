// Package slug derives URL-safe identifiers from display strings.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases the input, drops everything that is not a letter,
// digit, space, hyphen or underscore, and collapses separator runs
// into single hyphens.
func Make(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	lastHyphen := false
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
