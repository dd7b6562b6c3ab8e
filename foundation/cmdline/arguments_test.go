// File: arguments_test.go
// Title: Argument Query Tests
// Description: Tests for lookup, filtering and serialization of arguments.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial test suite

package cmdline

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestArguments_HasArgument(t *testing.T) {
	args := Parse(`abc "def ghi" "jkl":abcdef`, extended)

	tests := []struct {
		value      string
		ignoreCase bool
		expected   bool
	}{
		{"abc", false, true},
		{"def ghi", false, true},
		{"jkl", false, true},
		{"Abc", false, false},
		{"Abc", true, true},
		{"abcdef", true, false},
		{"xyz", true, false},
	}

	for _, tt := range tests {
		if got := args.HasArgument(tt.value, tt.ignoreCase); got != tt.expected {
			t.Errorf("HasArgument(%q, %v) = %v, want %v", tt.value, tt.ignoreCase, got, tt.expected)
		}
		if args.HasFlagArgument(tt.value, tt.ignoreCase) {
			t.Errorf("HasFlagArgument(%q) = true for a non-flag", tt.value)
		}
	}
}

func TestArguments_HasFlagArgument(t *testing.T) {
	args := Parse(`-a/b/c-d -e:arg/f:arg/g:arg-h:arg -i /j -k:"a b c"/l:"a b c" /m-n-o/p`, extended)

	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p"} {
		if !args.HasFlagArgument(name, false) {
			t.Errorf("HasFlagArgument(%q) = false", name)
		}
		if args.HasArgument(name, false) {
			t.Errorf("HasArgument(%q) = true for a flag", name)
		}
	}

	if args.HasFlagArgument("A", false) {
		t.Error("HasFlagArgument(A) should be case sensitive by default")
	}
	if !args.HasFlagArgument("A", true) {
		t.Error("HasFlagArgument(A, ignoreCase) = false")
	}
	for _, name := range []string{"q", "r"} {
		if args.HasFlagArgument(name, true) {
			t.Errorf("HasFlagArgument(%q) = true", name)
		}
	}

	if len(args.NonFlags()) != 0 {
		t.Errorf("NonFlags() = %v, want none", args.NonFlags())
	}
	want := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p"}
	if got := args.Flags().Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Flags().Values() = %v, want %v", got, want)
	}
}

func TestArguments_Find(t *testing.T) {
	args := Parse("copy -out:a.txt Copy -OUT:b.txt", extended)

	a, ok := args.FindArgument("copy", false)
	if !ok || a.Value() != "copy" {
		t.Errorf("FindArgument(copy) = %v, %v", a, ok)
	}

	a, ok = args.FindArgument("COPY", true)
	if !ok || a.Value() != "copy" {
		t.Errorf("FindArgument(COPY, ignoreCase) should return the first match, got %v, %v", a, ok)
	}

	if _, ok := args.FindArgument("ABC", false); ok {
		t.Error("FindArgument(ABC) should not match")
	}
	if _, ok := args.FindArgument("out", false); ok {
		t.Error("FindArgument() must not return flags")
	}

	f, ok := args.FindFlagArgument("out", true)
	if !ok {
		t.Fatal("FindFlagArgument(out) not found")
	}
	if ext, _ := f.Extended(); ext != "a.txt" {
		t.Errorf("first flag match extended = %q, want a.txt", ext)
	}

	f, ok = args.FindFlagArgument("OUT", false)
	if !ok {
		t.Fatal("FindFlagArgument(OUT) not found")
	}
	if ext, _ := f.Extended(); ext != "b.txt" {
		t.Errorf("case sensitive flag match extended = %q, want b.txt", ext)
	}

	if _, ok := args.FindFlagArgument("copy", true); ok {
		t.Error("FindFlagArgument() must not return non-flags")
	}
}

func TestArguments_Partition(t *testing.T) {
	args := Parse(`one -two /three four "five" -six:6`, extended)

	flags := args.Flags()
	nonFlags := args.NonFlags()

	if len(flags)+len(nonFlags) != len(args) {
		t.Fatalf("partition sizes %d + %d != %d", len(flags), len(nonFlags), len(args))
	}
	if got := flags.Values(); !reflect.DeepEqual(got, []string{"two", "three", "six"}) {
		t.Errorf("Flags() = %v", got)
	}
	if got := nonFlags.Values(); !reflect.DeepEqual(got, []string{"one", "four", "five"}) {
		t.Errorf("NonFlags() = %v", got)
	}
	for _, a := range flags {
		if !a.IsFlag() {
			t.Errorf("Flags() contains non-flag %v", a)
		}
	}
	for _, a := range nonFlags {
		if a.IsFlag() {
			t.Errorf("NonFlags() contains flag %v", a)
		}
	}
}

func TestArguments_Empty(t *testing.T) {
	var args Arguments

	if args.HasArgument("x", true) || args.HasFlagArgument("x", true) {
		t.Error("empty Arguments should match nothing")
	}
	if len(args.Flags()) != 0 || len(args.NonFlags()) != 0 {
		t.Error("empty Arguments should have no flags or non-flags")
	}
	if args.String() != "" {
		t.Errorf("String() = %q, want empty", args.String())
	}
}

func TestArgument_Extended(t *testing.T) {
	a := NewArgument("v", true)
	if ext, ok := a.Extended(); ok || ext != "" {
		t.Errorf("Extended() = %q, %v, want absent", ext, ok)
	}
	if a.HasExtended() {
		t.Error("HasExtended() = true")
	}

	e := NewExtendedArgument("out", "", false)
	if ext, ok := e.Extended(); !ok || ext != "" {
		t.Errorf("Extended() = %q, %v, want present and empty", ext, ok)
	}
}

func TestArgument_String(t *testing.T) {
	tests := []struct {
		arg      Argument
		expected string
	}{
		{NewArgument("file.txt", false), "file.txt"},
		{NewArgument("v", true), "-v"},
		{NewExtendedArgument("log", "off", true), "-log:off"},
		{NewExtendedArgument("out", "my file", true), `-out:"my file"`},
		{NewExtendedArgument("k", "", false), `k:""`},
		{NewArgument("a/b", false), `"a/b"`},
	}

	for _, tt := range tests {
		if got := tt.arg.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestArgument_JSON(t *testing.T) {
	tests := []struct {
		name     string
		arg      Argument
		expected string
	}{
		{"plain", NewArgument("abc", false), `{"flag":false,"value":"abc"}`},
		{"extended", NewExtendedArgument("mode", "read", true), `{"flag":true,"value":"mode","extended":"read"}`},
		{"empty extended", NewExtendedArgument("mode", "", true), `{"flag":true,"value":"mode","extended":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.arg)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.expected {
				t.Errorf("Marshal() = %s, want %s", data, tt.expected)
			}

			var decoded Argument
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if decoded != tt.arg {
				t.Errorf("Unmarshal() = %#v, want %#v", decoded, tt.arg)
			}
		})
	}
}
