// File: argument.go
// Title: Argument Records
// Description: Defines the immutable Argument record produced by the
//              tokenizer and its text and serialized forms.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package cmdline

import (
	"encoding/json"

	"github.com/msto63/cmdline/foundation/utils/stringx"
)

// Argument is a single token of a parsed command line.
// Its fields are fixed at creation.
type Argument struct {
	flag        bool
	value       string
	extended    string
	hasExtended bool
}

// NewArgument creates an argument without an extended value
func NewArgument(value string, isFlag bool) Argument {
	return Argument{flag: isFlag, value: value}
}

// NewExtendedArgument creates an argument carrying an extended value
func NewExtendedArgument(value, extended string, isFlag bool) Argument {
	return Argument{flag: isFlag, value: value, extended: extended, hasExtended: true}
}

// IsFlag reports whether the argument was introduced by a flag prefix
func (a Argument) IsFlag() bool {
	return a.flag
}

// Value returns the primary text of the argument
func (a Argument) Value() string {
	return a.value
}

// Extended returns the extended value and whether one was given.
// An extended value may be present and empty, as in "-out:".
func (a Argument) Extended() (string, bool) {
	return a.extended, a.hasExtended
}

// HasExtended reports whether an extended value was given
func (a Argument) HasExtended() bool {
	return a.hasExtended
}

// String renders the argument in command line form, quoting values that
// would otherwise not read back as a single token.
func (a Argument) String() string {
	s := stringx.QuoteIfNeeded(a.value, specialChars)
	if a.flag {
		s = string(FlagPrefixes[0]) + s
	}
	if a.hasExtended {
		s += string(ExtendedDelimiter) + stringx.QuoteIfNeeded(a.extended, specialChars)
	}
	return s
}

// argumentJSON is the serialized form shared by JSON and YAML
type argumentJSON struct {
	Flag     bool    `json:"flag" yaml:"flag"`
	Value    string  `json:"value" yaml:"value"`
	Extended *string `json:"extended,omitempty" yaml:"extended,omitempty"`
}

func (a Argument) serialized() argumentJSON {
	out := argumentJSON{Flag: a.flag, Value: a.value}
	if a.hasExtended {
		ext := a.extended
		out.Extended = &ext
	}
	return out
}

// MarshalJSON encodes the argument; "extended" is omitted when absent
func (a Argument) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.serialized())
}

// UnmarshalJSON decodes an argument written by MarshalJSON
func (a *Argument) UnmarshalJSON(data []byte) error {
	var in argumentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*a = Argument{flag: in.Flag, value: in.Value}
	if in.Extended != nil {
		a.extended = *in.Extended
		a.hasExtended = true
	}
	return nil
}

// MarshalYAML implements the yaml.v3 Marshaler interface
func (a Argument) MarshalYAML() (interface{}, error) {
	return a.serialized(), nil
}
