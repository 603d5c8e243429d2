// SPDX-License-Identifier: MPL-2.0

package script

import (
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/workscript/workscript/pkg/types"
	"github.com/workscript/workscript/pkg/workunit"
)

// FlagSpec describes the CLI flag derived from one declared input.
type FlagSpec struct {
	// Input is the declared input the flag feeds.
	Input types.InputName
	// Long is the flag name, always the input name itself (--name).
	Long string
	// Short is the single-letter shortcut, empty when the input's first
	// letter was already claimed by an earlier input or is not an ASCII
	// letter.
	Short string
	// Usage is the one-line help text.
	Usage string
	// Bool marks flags registered as booleans (bare --flag convention);
	// all other flags take a string value.
	Bool bool
}

// Flags derives the flag table for the given inputs, in declaration order.
// Shortcut letters are claimed first-come-first-served: once an input's
// first letter has been considered, no later input gets it, even when the
// earlier claim produced no visible shortcut.
func Flags(inputs []workunit.InputSpec) []FlagSpec {
	claimed := make(map[string]bool, len(inputs))
	specs := make([]FlagSpec, 0, len(inputs))

	for _, in := range inputs {
		name := string(in.Name)
		spec := FlagSpec{
			Input: in.Name,
			Long:  name,
			Usage: usageLine(in),
			Bool:  isBoolExample(in.Example),
		}
		if letter := firstLetter(name); letter != "" {
			if !claimed[letter] {
				spec.Short = letter
			}
			claimed[letter] = true
		}
		specs = append(specs, spec)
	}
	return specs
}

// newFlagSet registers the derived flags on a freshly constructed FlagSet.
// The set is local to one Adapt call; nothing here touches global parser
// state.
func newFlagSet(name string, flags []FlagSpec, output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false

	for _, f := range flags {
		if f.Bool {
			fs.BoolP(f.Long, f.Short, false, f.Usage)
			continue
		}
		fs.StringP(f.Long, f.Short, "", f.Usage)
	}
	return fs
}

// usageLine picks the input's description, falling back to its friendly
// name, and lower-cases only the first rune.
func usageLine(in workunit.InputSpec) string {
	text := string(in.Description)
	if text == "" {
		text = in.FriendlyName
	}
	return lowerFirst(text)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// firstLetter returns the name's first rune when it is an ASCII letter,
// the only form pflag accepts as a shorthand. Names opening with any
// other rune derive no shortcut and claim no letter.
func firstLetter(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
		return string(r)
	}
	return ""
}

func isBoolExample(example any) bool {
	_, ok := example.(bool)
	return ok
}
