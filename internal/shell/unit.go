// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/workscript/workscript/pkg/coerce"
	"github.com/workscript/workscript/pkg/scriptfile"
	"github.com/workscript/workscript/pkg/types"
	"github.com/workscript/workscript/pkg/workunit"
)

// InputEnvPrefix is prepended to upper-cased input names when exposing the
// coerced configuration to the script body (input "dry-run" becomes
// $WS_DRY_RUN).
const InputEnvPrefix = "WS_"

// UnitOptions controls how a script-backed work unit executes.
type UnitOptions struct {
	// Dir is the script's working directory; empty means the directory of
	// the defining file's caller.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Unit converts a parsed script declaration into a work-unit definition
// whose function runs the shell body. Coerced inputs arrive in the script
// as WS_* environment variables; positional arguments become $1, $2, ....
//
// The exit code maps back to an outcome: 0 is success, a code declared on
// one of the script's exits selects that exit channel, anything else is a
// plain failure. When the script's success exit declares structured output,
// stdout is captured and parsed as that output's type; otherwise stdout
// streams through untouched.
func Unit(s *scriptfile.Script, opts UnitOptions) workunit.Definition {
	return workunit.Definition{
		Name:        s.Name,
		Description: types.DescriptionText(s.Description),
		Inputs:      s.InputSpecs(),
		Exits:       s.ExitSpecs(),
		Fn: func(ctx context.Context, cfg workunit.Config) workunit.Outcome {
			return runScript(ctx, s, opts, cfg)
		},
	}
}

func runScript(ctx context.Context, s *scriptfile.Script, opts UnitOptions, cfg workunit.Config) workunit.Outcome {
	job := Job{
		Script: s.Body,
		Dir:    opts.Dir,
		Env:    scriptEnv(cfg),
		Args:   positionals(cfg),
		Stdin:  opts.Stdin,
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
	}

	var captured *bytes.Buffer
	successExit, hasSuccess := findExit(s, workunit.ExitSuccess)
	if hasSuccess && successExit.HasStructuredOutput() {
		captured = &bytes.Buffer{}
		job.Stdout = captured
	}

	code, err := Run(ctx, job)
	if err != nil {
		return workunit.Failure(err)
	}

	if code.IsSuccess() {
		if captured == nil {
			return workunit.Success(nil)
		}
		raw := strings.TrimRight(captured.String(), "\n")
		value := coerce.FromString(raw, coerce.ImpliedType(outputExample(s, successExit)))
		return workunit.Success(value)
	}

	failErr := fmt.Errorf("script %q exited with code %s", s.Name, code)
	if name, ok := exitNameForCode(s, code); ok {
		return workunit.FailureVia(name, failErr)
	}
	return workunit.Failure(failErr)
}

// scriptEnv builds the script's environment: the process environment plus
// one WS_* variable per configured input. Non-string values are rendered as
// JSON so lists and dictionaries survive the trip.
func scriptEnv(cfg workunit.Config) map[string]string {
	env := environMap()
	for key, value := range cfg {
		if key == types.ReservedArgsKey {
			if _, isList := value.([]string); isList {
				continue
			}
		}
		env[InputEnvPrefix+envName(key)] = envValue(value)
	}
	return env
}

func envName(input string) string {
	upper := strings.ToUpper(input)
	return strings.NewReplacer("-", "_", ".", "_").Replace(upper)
}

func envValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool, float64:
		return fmt.Sprintf("%v", t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}

func positionals(cfg workunit.Config) []string {
	if raw, ok := cfg[types.ReservedArgsKey].([]string); ok {
		return raw
	}
	return nil
}

func findExit(s *scriptfile.Script, name string) (workunit.ExitSpec, bool) {
	for _, e := range s.ExitSpecs() {
		if e.Name == name {
			return e, true
		}
	}
	return workunit.ExitSpec{}, false
}

// outputExample resolves the example describing the success output,
// following like/item_of references to input examples.
func outputExample(s *scriptfile.Script, exit workunit.ExitSpec) any {
	switch {
	case exit.Example != nil:
		return exit.Example
	case exit.GetExample != nil:
		return exit.GetExample()
	case exit.Like != "":
		if in, ok := s.Inputs[string(exit.Like)]; ok {
			return in.Example
		}
	case exit.ItemOf != "":
		if in, ok := s.Inputs[string(exit.ItemOf)]; ok {
			return []any{in.Example}
		}
	}
	return nil
}

// exitNameForCode finds the declared exit carrying the given code.
// Custom exits are checked in declaration order so duplicate codes always
// resolve to the first declaration; the error exit matches last so a
// declared custom exit with code 1 wins.
func exitNameForCode(s *scriptfile.Script, code types.ExitCode) (string, bool) {
	for _, e := range s.ExitSpecs() {
		if e.Name == workunit.ExitSuccess || e.Name == workunit.ExitError {
			continue
		}
		if e.Code == code {
			return e.Name, true
		}
	}
	if decl, ok := s.Exits[workunit.ExitError]; ok && types.ExitCode(decl.Code) == code {
		return workunit.ExitError, true
	}
	return "", false
}
