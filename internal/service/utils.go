package service

import (
	"strings"
	"unicode/utf8"
)

const previewLimit = 500

// sanitizeUTF8 removes invalid UTF-8 sequences from string
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}

// preview returns at most limit characters of s and whether s was cut.
func preview(s string, limit int) (string, bool) {
	s = sanitizeUTF8(s)
	if utf8.RuneCountInString(s) <= limit {
		return s, false
	}

	n := 0
	for i := range s {
		if n == limit {
			return s[:i], true
		}
		n++
	}
	return s, false
}
