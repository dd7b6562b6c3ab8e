// File: doc.go
// Title: Command Line Tokenizer Package Documentation
// Description: Converts raw command line strings into ordered, immutable
//              argument records with flag and extended value support.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial tokenizer and query functions

/*
Package cmdline tokenizes command line strings.

A command line is split into Arguments. An argument introduced by '-' or '/'
is a flag. Tokens are separated by whitespace, and a flag prefix inside an
unquoted token starts a new argument, so "-a/b" yields the flags a and b.
Single or double quotes group text containing whitespace or special
characters; there is no escape mechanism and the first matching quote closes
the span. An unterminated quote runs to the end of the input.

With Options.ExtendedArguments set, a ':' directly after a token introduces an
extended value:

	args := cmdline.Parse(`-log:off -out:"my file.txt" input.txt`, cmdline.Options{
		ExtendedArguments: true,
	})

	flag, _ := args.FindFlagArgument("log", false)
	mode, ok := flag.Extended() // "off", true

Without ExtendedArguments the colon is an ordinary character and "-log:off" is
a single flag named "log:off".

Options.DiscardFirstToken drops the first argument, which is typically the
program name of a full process command line. Nothing is discarded
automatically.

Parsing never fails. Empty or whitespace-only tokens produce no argument, and
malformed input yields an empty or partial result. Parse is a pure function
and safe for concurrent use.

Query functions on Arguments (HasArgument, FindFlagArgument, Flags, NonFlags
and friends) are linear scans that never modify the receiver.
*/
package cmdline
