// File: cursor.go
// Title: Scan Cursor
// Description: Implements peek, advance, whitespace skipping, span extraction
//              and quoted text parsing over a string.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation derived from the TCOL lexer cursor

package scan

import (
	"unicode"
	"unicode/utf8"

	mdwerror "github.com/msto63/cmdline/foundation/core/error"
)

// EndOfText is returned by Peek when the cursor is at or past the end of input
const EndOfText rune = -1

// Cursor walks an immutable string rune by rune.
// The zero value is a cursor over the empty string.
type Cursor struct {
	text  string
	index int // byte offset of the current rune
}

// New creates a cursor positioned at the start of text
func New(text string) *Cursor {
	return &Cursor{text: text}
}

// Text returns the full input
func (c *Cursor) Text() string {
	return c.text
}

// Len returns the input length in bytes
func (c *Cursor) Len() int {
	return len(c.text)
}

// Index returns the current byte offset
func (c *Cursor) Index() int {
	return c.index
}

// EndOfText reports whether the cursor has consumed all input
func (c *Cursor) EndOfText() bool {
	return c.index >= len(c.text)
}

// Remaining returns the unconsumed part of the input
func (c *Cursor) Remaining() string {
	if c.EndOfText() {
		return ""
	}
	return c.text[c.index:]
}

// Peek returns the current rune without advancing
func (c *Cursor) Peek() rune {
	if c.EndOfText() {
		return EndOfText
	}
	r, _ := utf8.DecodeRuneInString(c.text[c.index:])
	return r
}

// PeekAt returns the rune offset runes ahead of the current one.
// PeekAt(0) is equivalent to Peek. Negative offsets return EndOfText.
func (c *Cursor) PeekAt(offset int) rune {
	if offset < 0 {
		return EndOfText
	}
	i := c.index
	for ; offset > 0; offset-- {
		if i >= len(c.text) {
			return EndOfText
		}
		_, size := utf8.DecodeRuneInString(c.text[i:])
		i += size
	}
	if i >= len(c.text) {
		return EndOfText
	}
	r, _ := utf8.DecodeRuneInString(c.text[i:])
	return r
}

// Advance moves forward one rune; it does nothing at the end of input
func (c *Cursor) Advance() {
	if c.EndOfText() {
		return
	}
	_, size := utf8.DecodeRuneInString(c.text[c.index:])
	c.index += size
}

// SkipWhitespace advances over consecutive whitespace runes
func (c *Cursor) SkipWhitespace() {
	for !c.EndOfText() && unicode.IsSpace(c.Peek()) {
		c.Advance()
	}
}

// Extract returns text[start:end].
// It panics if the range is not within 0 <= start <= end <= Len().
func (c *Cursor) Extract(start, end int) string {
	if start < 0 || start > end || end > len(c.text) {
		panic(mdwerror.Newf("scan: invalid range [%d,%d) for input of length %d", start, end, len(c.text)).
			WithCode(mdwerror.CodeInvalidArgument).
			WithOperation("scan.Extract").
			WithDetail("start", start).
			WithDetail("end", end).
			WithDetail("length", len(c.text)))
	}
	return c.text[start:end]
}

// ParseWhile advances while pred holds for the current rune and returns the
// consumed span
func (c *Cursor) ParseWhile(pred func(rune) bool) string {
	start := c.index
	for !c.EndOfText() && pred(c.Peek()) {
		c.Advance()
	}
	return c.Extract(start, c.index)
}

// ParseQuotedText consumes the quote rune at the cursor, the text up to the
// next occurrence of the same rune, and the closing quote. It returns the text
// between the quotes. Without a closing quote the rest of the input is
// returned. There is no escape mechanism.
func (c *Cursor) ParseQuotedText() string {
	quote := c.Peek()
	c.Advance()

	start := c.index
	for !c.EndOfText() && c.Peek() != quote {
		c.Advance()
	}
	text := c.Extract(start, c.index)

	// closing quote
	c.Advance()
	return text
}
