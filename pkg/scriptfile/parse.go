// SPDX-License-Identifier: MPL-2.0

package scriptfile

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"

	"github.com/workscript/workscript/pkg/cueutil"
	"github.com/workscript/workscript/pkg/types"
)

//go:embed scriptfile_schema.cue
var scriptfileSchema string

// Parse reads and parses a CUE definition file from the given path.
func Parse(path string) (*ScriptFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workscript file at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses CUE definition file content from bytes.
// Uses cueutil.ParseAndDecodeString for the 3-step CUE parsing flow:
// compile schema → compile user data → validate and decode. Input and exit
// declaration order is recovered from the unified CUE value, since Go map
// decoding loses it and flag shortcut claiming depends on it.
func ParseBytes(data []byte, path string) (*ScriptFile, error) {
	result, err := cueutil.ParseAndDecodeString[ScriptFile](
		scriptfileSchema,
		data,
		"#ScriptFile",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}

	sf := result.Value
	sf.FilePath = path

	scripts := result.Unified.LookupPath(cue.ParsePath("scripts"))
	it, err := scripts.Fields()
	if err != nil {
		return nil, cueutil.FormatError(err, path)
	}
	for it.Next() {
		name := it.Selector().Unquoted()
		s, ok := sf.Scripts[name]
		if !ok {
			continue
		}
		s.Name = name
		s.FilePath = path
		s.InputOrder = fieldOrder(it.Value().LookupPath(cue.ParsePath("inputs")))
		s.ExitOrder = fieldOrder(it.Value().LookupPath(cue.ParsePath("exits")))
	}

	if err := sf.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sf, nil
}

// Validate applies the Go-level rules the CUE schema cannot express:
// input names must be valid flag names and exit codes must fit a process
// exit status. All violations are reported together.
func (f *ScriptFile) Validate() error {
	var errs []error
	for name, s := range f.Scripts {
		for inputName := range s.Inputs {
			if err := types.InputName(inputName).Validate(); err != nil {
				errs = append(errs, fmt.Errorf("script %q: %w", name, err))
			}
		}
		for exitName, exit := range s.Exits {
			if err := types.ExitCode(exit.Code).Validate(); err != nil {
				errs = append(errs, fmt.Errorf("script %q: exit %q: %w", name, exitName, err))
			}
		}
	}
	return errors.Join(errs...)
}

// fieldOrder lists a struct value's field names in declaration order.
func fieldOrder(v cue.Value) []string {
	if !v.Exists() {
		return nil
	}
	it, err := v.Fields()
	if err != nil {
		return nil
	}
	var out []string
	for it.Next() {
		out = append(out, it.Selector().Unquoted())
	}
	return out
}
