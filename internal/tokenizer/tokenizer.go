// Package tokenizer splits raw CSV lines into field tokens.
package tokenizer

import "strings"

// Quote is the character that toggles literal-delimiter mode.
const Quote = '"'

// SplitLine splits one line of text on the delimiter, honoring quoted
// segments in which the delimiter is treated as literal text. Quote
// characters themselves are not emitted. Escaped quotes inside a quoted
// field are not supported. Leading and trailing whitespace of each token
// is trimmed after quote processing.
//
// SplitLine never fails; an empty line yields a single empty token, which
// callers treat as a skip.
func SplitLine(line string, delimiter rune) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == Quote:
			inQuotes = !inQuotes
		case ch == delimiter && !inQuotes:
			tokens = append(tokens, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	tokens = append(tokens, strings.TrimSpace(current.String()))

	return tokens
}

// IsBlank reports whether a tokenized line carries no data at all.
func IsBlank(tokens []string) bool {
	for _, t := range tokens {
		if t != "" {
			return false
		}
	}
	return true
}
