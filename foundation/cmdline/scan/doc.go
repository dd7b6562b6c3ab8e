// File: doc.go
// Title: Scan Cursor Package Documentation
// Description: Bounds-checked rune cursor over an immutable string, used by
//              the command line tokenizer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation derived from the TCOL lexer cursor

/*
Package scan provides a small cursor for hand-written lexers.

A Cursor holds a string and a byte index into it. Peek returns the rune at the
index or EndOfText, Advance moves one rune forward and saturates at the end, and
the Parse helpers return spans of the input. None of the traversal operations
fail; reading past the end yields EndOfText and empty spans.

Extract is the only operation with a caller contract. Indices outside
0 <= start <= end <= Len() are a programming error and cause a panic with a
structured error carrying CodeInvalidArgument.

	c := scan.New(`copy "my file.txt" dst`)
	c.SkipWhitespace()
	cmd := c.ParseWhile(func(r rune) bool { return !unicode.IsSpace(r) })
	c.SkipWhitespace()
	src := c.ParseQuotedText() // my file.txt
*/
package scan
