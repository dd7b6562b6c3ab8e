// File: parser.go
// Title: Command Line Tokenizer
// Description: Implements the scan that turns a command line string into
//              an ordered list of arguments.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package cmdline

import (
	"strings"
	"unicode"

	"github.com/msto63/cmdline/foundation/cmdline/scan"
	"github.com/msto63/cmdline/foundation/utils/stringx"
)

const (
	// FlagPrefixes are the runes that mark a flag argument
	FlagPrefixes = "-/"

	// QuoteChars are the runes that open and close a quoted span
	QuoteChars = `"'`

	// ExtendedDelimiter separates an argument from its extended value
	ExtendedDelimiter = ':'
)

// specialChars must be quoted for a value to read back as one token
const specialChars = FlagPrefixes + string(ExtendedDelimiter)

// Options controls tokenization
type Options struct {
	// ExtendedArguments enables "name:value" extended values
	ExtendedArguments bool `json:"extended_arguments" yaml:"extended_arguments"`

	// DiscardFirstToken drops the first argument, typically the program name
	DiscardFirstToken bool `json:"discard_first_token" yaml:"discard_first_token"`
}

// Parser tokenizes command lines with fixed options.
// A Parser holds no state between calls and is safe for concurrent use.
type Parser struct {
	opts Options
}

// NewParser creates a parser with the given options
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Options returns the parser's options
func (p *Parser) Options() Options {
	return p.opts
}

// Parse tokenizes commandLine
func (p *Parser) Parse(commandLine string) Arguments {
	return Parse(commandLine, p.opts)
}

// Parse tokenizes commandLine into arguments in left to right order.
// It never fails: malformed input yields an empty or partial result.
func Parse(commandLine string, opts Options) Arguments {
	c := scan.New(commandLine)
	args := Arguments{}
	discardPending := opts.DiscardFirstToken

	c.SkipWhitespace()
	for !c.EndOfText() {
		var arg Argument

		if isFlagPrefix(c.Peek()) {
			arg.flag = true
			c.Advance()
		}

		arg.value = parseToken(c, opts.ExtendedArguments)

		if opts.ExtendedArguments && c.Peek() == ExtendedDelimiter {
			c.Advance()
			arg.extended = parseToken(c, false)
			arg.hasExtended = true
		}

		switch {
		case stringx.IsBlank(arg.value):
			// blank tokens never count as the first token
		case discardPending:
			discardPending = false
		default:
			args = append(args, arg)
		}

		c.SkipWhitespace()
	}

	return args
}

// parseToken reads a quoted span or an unquoted run of text. An unquoted run
// ends at whitespace, a flag prefix, or the extended delimiter when
// stopAtDelimiter is set.
func parseToken(c *scan.Cursor, stopAtDelimiter bool) string {
	if isQuote(c.Peek()) {
		return c.ParseQuotedText()
	}
	return c.ParseWhile(func(r rune) bool {
		return !unicode.IsSpace(r) &&
			!isFlagPrefix(r) &&
			!(stopAtDelimiter && r == ExtendedDelimiter)
	})
}

func isFlagPrefix(r rune) bool {
	return r != scan.EndOfText && strings.ContainsRune(FlagPrefixes, r)
}

func isQuote(r rune) bool {
	return r != scan.EndOfText && strings.ContainsRune(QuoteChars, r)
}
