package index

import "strings"

// Tokenize lower-cases the input, replaces every character outside
// word characters, whitespace, '+', '-' and '/' with a space, splits
// on whitespace, and drops tokens of length one or less.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '_', r == '+', r == '-', r == '/':
			return r
		case r == ' ', r == '\t', r == '\n', r == '\r':
			return r
		default:
			return ' '
		}
	}, strings.ToLower(s))

	var tokens []string
	for _, token := range strings.Fields(cleaned) {
		if len(token) <= 1 {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// normalizeValue lower-cases and trims an index value.
func normalizeValue(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
