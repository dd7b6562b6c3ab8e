// File: stringx.go
// Title: Core String Utility Functions
// Description: Implements blank checks, comparison, truncation and quoting.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2026-10-19 v0.2.0: Added Equal and QuoteIfNeeded, dropped interning and validation

package stringx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsBlank returns true if the string is empty or contains only whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsNotBlank is the inverse of IsBlank.
func IsNotBlank(s string) bool {
	return !IsBlank(s)
}

// Equal compares two strings, optionally using Unicode case folding.
func Equal(a, b string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// Truncate shortens s to maxLen runes, ending with ellipsis if anything was cut.
// Multi-byte characters are never split.
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string([]rune(s)[:maxLen])
	}
	return string([]rune(s)[:maxLen-ellipsisLen]) + ellipsis
}

// FirstNonBlank returns the first non-blank string, or "" if there is none.
func FirstNonBlank(values ...string) string {
	for _, s := range values {
		if IsNotBlank(s) {
			return s
		}
	}
	return ""
}

// QuoteIfNeeded wraps s in double quotes when it is empty or contains
// whitespace, a quote character or any rune of special, so that it reads as a
// single token. A value that contains a double quote is wrapped in single
// quotes instead. Values containing both quote characters are returned
// unchanged since no wrapping can represent them without escapes.
func QuoteIfNeeded(s, special string) string {
	if s == "" {
		return `""`
	}
	needs := strings.ContainsAny(s, `"'`+special) || strings.IndexFunc(s, unicode.IsSpace) >= 0
	if !needs {
		return s
	}
	switch {
	case !strings.Contains(s, `"`):
		return `"` + s + `"`
	case !strings.Contains(s, `'`):
		return `'` + s + `'`
	default:
		return s
	}
}

// SplitLines splits s into lines, accepting \n, \r\n and \r endings.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
