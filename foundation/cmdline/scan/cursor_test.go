// File: cursor_test.go
// Title: Scan Cursor Unit Tests
// Description: Tests for cursor traversal, extraction contracts and quoted
//              text parsing including Unicode input.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial test suite

package scan

import (
	"testing"
	"unicode"

	mdwerror "github.com/msto63/cmdline/foundation/core/error"
)

func TestCursor_PeekAdvance(t *testing.T) {
	c := New("aß c")

	expected := []rune{'a', 'ß', ' ', 'c', EndOfText, EndOfText}
	for i, want := range expected {
		if got := c.Peek(); got != want {
			t.Fatalf("step %d: Peek() = %q, want %q", i, got, want)
		}
		c.Advance()
	}

	if !c.EndOfText() {
		t.Error("EndOfText() = false after consuming input")
	}
	if c.Index() != c.Len() {
		t.Errorf("Index() = %d, want saturation at %d", c.Index(), c.Len())
	}
}

func TestCursor_Empty(t *testing.T) {
	var c Cursor

	if c.Peek() != EndOfText {
		t.Errorf("Peek() = %q, want EndOfText", c.Peek())
	}
	c.Advance()
	c.SkipWhitespace()
	if c.Index() != 0 {
		t.Errorf("Index() = %d, want 0", c.Index())
	}
	if got := c.ParseQuotedText(); got != "" {
		t.Errorf("ParseQuotedText() = %q, want empty", got)
	}
	if c.Remaining() != "" {
		t.Errorf("Remaining() = %q, want empty", c.Remaining())
	}
}

func TestCursor_PeekAt(t *testing.T) {
	c := New("xäy")

	tests := []struct {
		offset   int
		expected rune
	}{
		{0, 'x'},
		{1, 'ä'},
		{2, 'y'},
		{3, EndOfText},
		{10, EndOfText},
		{-1, EndOfText},
	}

	for _, tt := range tests {
		if got := c.PeekAt(tt.offset); got != tt.expected {
			t.Errorf("PeekAt(%d) = %q, want %q", tt.offset, got, tt.expected)
		}
	}
	if c.Index() != 0 {
		t.Error("PeekAt() must not move the cursor")
	}
}

func TestCursor_SkipWhitespace(t *testing.T) {
	c := New(" \t\r\n\u00a0\u3000x ")
	c.SkipWhitespace()

	if c.Peek() != 'x' {
		t.Errorf("Peek() = %q, want 'x'", c.Peek())
	}

	c.Advance()
	c.SkipWhitespace()
	if !c.EndOfText() {
		t.Error("trailing whitespace should be skipped to end of text")
	}
}

func TestCursor_Extract(t *testing.T) {
	c := New("hello")

	tests := []struct {
		name       string
		start, end int
		expected   string
	}{
		{"full", 0, 5, "hello"},
		{"inner", 1, 3, "el"},
		{"empty at start", 0, 0, ""},
		{"empty at end", 5, 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Extract(tt.start, tt.end); got != tt.expected {
				t.Errorf("Extract(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.expected)
			}
		})
	}
}

func TestCursor_ExtractPanics(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{"negative start", -1, 2},
		{"start after end", 3, 2},
		{"end past length", 0, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("Extract() did not panic")
				}
				err, ok := r.(*mdwerror.Error)
				if !ok {
					t.Fatalf("panic value %T, want *error.Error", r)
				}
				if err.Code() != mdwerror.CodeInvalidArgument {
					t.Errorf("Code() = %v, want %v", err.Code(), mdwerror.CodeInvalidArgument)
				}
			}()
			New("hello").Extract(tt.start, tt.end)
		})
	}
}

func TestCursor_ParseWhile(t *testing.T) {
	c := New("abc123 rest")

	letters := c.ParseWhile(unicode.IsLetter)
	if letters != "abc" {
		t.Errorf("ParseWhile(IsLetter) = %q, want abc", letters)
	}

	digits := c.ParseWhile(unicode.IsDigit)
	if digits != "123" {
		t.Errorf("ParseWhile(IsDigit) = %q, want 123", digits)
	}

	none := c.ParseWhile(unicode.IsDigit)
	if none != "" || c.Peek() != ' ' {
		t.Errorf("ParseWhile() without match = %q at %q", none, c.Peek())
	}

	c.SkipWhitespace()
	all := c.ParseWhile(func(rune) bool { return true })
	if all != "rest" || !c.EndOfText() {
		t.Errorf("ParseWhile(true) = %q, EndOfText = %v", all, c.EndOfText())
	}
}

func TestCursor_ParseQuotedText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		remaining string
	}{
		{"double quoted", `"def ghi" x`, "def ghi", " x"},
		{"single quoted", `'a b'c`, "a b", "c"},
		{"other quote is literal", `"it's"`, "it's", ""},
		{"flag chars and colon are literal", `"-a:/b"z`, "-a:/b", "z"},
		{"empty", `""rest`, "", "rest"},
		{"unterminated", `"open to the end`, "open to the end", ""},
		{"first closing quote wins", `"a"b"`, "a", `b"`},
		{"unicode", `'grüße'`, "grüße", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.input)
			if got := c.ParseQuotedText(); got != tt.expected {
				t.Errorf("ParseQuotedText() = %q, want %q", got, tt.expected)
			}
			if got := c.Remaining(); got != tt.remaining {
				t.Errorf("Remaining() = %q, want %q", got, tt.remaining)
			}
		})
	}
}
