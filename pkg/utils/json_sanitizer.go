package utils

import (
	"regexp"
	"strings"
)

var fencedBlockPattern = regexp.MustCompile("(?s)```[A-Za-z]*[ \t]*\\r?\\n?(.*?)```")

// SanitizeJSONText pulls the JSON payload out of an oracle reply. Text that
// is exactly one bracketed document is returned as is; otherwise a fenced
// block is unwrapped and any prose still surrounding a JSON object or array
// is cut. When nothing JSON-like is found the input comes back unchanged,
// and the parse failure is left to the normalizer.
func SanitizeJSONText(raw string) string {
	if isWholeDocument(raw) {
		return raw
	}

	candidate := raw
	extracted := false
	if m := fencedBlockPattern.FindStringSubmatch(raw); m != nil {
		candidate = strings.TrimSpace(m[1])
		extracted = true
	}
	if isWholeDocument(candidate) {
		return candidate
	}

	if start := strings.IndexByte(candidate, '{'); start != -1 {
		if end := findMatchingClose(candidate, start, '{', '}'); end != -1 {
			return candidate[start : end+1]
		}
	}
	if start := strings.IndexByte(candidate, '['); start != -1 {
		if end := findMatchingClose(candidate, start, '[', ']'); end != -1 {
			return candidate[start : end+1]
		}
	}

	if extracted {
		return candidate
	}
	return raw
}

// isWholeDocument reports whether s opens with a bracket whose match is the
// last byte of s. "[Draft] text" is not a document.
func isWholeDocument(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	switch s[0] {
	case '{':
		return findMatchingClose(s, 0, '{', '}') == len(s)-1
	case '[':
		return findMatchingClose(s, 0, '[', ']') == len(s)-1
	default:
		return false
	}
}

// findMatchingClose returns the index of the bracket closing the one at start,
// skipping brackets inside JSON strings, or -1 when unbalanced.
func findMatchingClose(s string, start int, open, close byte) int {
	if start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
