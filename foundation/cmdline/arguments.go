// File: arguments.go
// Title: Argument Queries
// Description: Read-only lookup and filter functions over parsed arguments.
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

	"github.com/msto63/cmdline/foundation/utils/slicex"
	"github.com/msto63/cmdline/foundation/utils/stringx"
)

// Arguments is the ordered result of a parse
type Arguments []Argument

// HasArgument reports whether a non-flag argument equals value
func (a Arguments) HasArgument(value string, ignoreCase bool) bool {
	return slicex.Some(a, matcher(false, value, ignoreCase))
}

// HasFlagArgument reports whether a flag argument equals value
func (a Arguments) HasFlagArgument(value string, ignoreCase bool) bool {
	return slicex.Some(a, matcher(true, value, ignoreCase))
}

// FindArgument returns the first non-flag argument equal to value
func (a Arguments) FindArgument(value string, ignoreCase bool) (Argument, bool) {
	return slicex.Find(a, matcher(false, value, ignoreCase))
}

// FindFlagArgument returns the first flag argument equal to value
func (a Arguments) FindFlagArgument(value string, ignoreCase bool) (Argument, bool) {
	return slicex.Find(a, matcher(true, value, ignoreCase))
}

// NonFlags returns the non-flag arguments in their original order
func (a Arguments) NonFlags() Arguments {
	_, rest := slicex.Partition(a, Argument.IsFlag)
	return rest
}

// Flags returns the flag arguments in their original order
func (a Arguments) Flags() Arguments {
	flags, _ := slicex.Partition(a, Argument.IsFlag)
	return flags
}

// Values returns the primary values in order
func (a Arguments) Values() []string {
	return slicex.Map(a, Argument.Value)
}

// String renders the arguments as a command line
func (a Arguments) String() string {
	return strings.Join(slicex.Map(a, Argument.String), " ")
}

func matcher(flag bool, value string, ignoreCase bool) func(Argument) bool {
	return func(arg Argument) bool {
		return arg.flag == flag && stringx.Equal(arg.value, value, ignoreCase)
	}
}
