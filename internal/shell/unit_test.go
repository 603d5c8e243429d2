// SPDX-License-Identifier: MPL-2.0

package shell_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/workscript/workscript/internal/shell"
	"github.com/workscript/workscript/pkg/scriptfile"
	"github.com/workscript/workscript/pkg/workunit"
)

func parseScript(t *testing.T, src string) *scriptfile.Script {
	t.Helper()
	sf, err := scriptfile.ParseBytes([]byte(src), "workscript.cue")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	for _, s := range sf.Scripts {
		return s
	}
	t.Fatal("no script parsed")
	return nil
}

func callUnit(t *testing.T, s *scriptfile.Script, cfg workunit.Config, opts shell.UnitOptions) workunit.Outcome {
	t.Helper()
	if opts.Stdout == nil {
		opts.Stdout = &bytes.Buffer{}
	}
	if opts.Stderr == nil {
		opts.Stderr = &bytes.Buffer{}
	}
	inst, err := shell.Unit(s, opts).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return inst.Call(context.Background(), cfg)
}

func TestUnit_InputsBecomeEnv(t *testing.T) {
	t.Parallel()

	s := parseScript(t, `
scripts: greet: {
	inputs: {
		name: {example: "world"}
		"dry-run": {example: false}
	}
	script: "printf '%s %s' \"$WS_NAME\" \"$WS_DRY_RUN\""
}
`)

	var out bytes.Buffer
	outcome := callUnit(t, s, workunit.Config{"name": "earth", "dry-run": true}, shell.UnitOptions{Stdout: &out})
	if !outcome.IsSuccess() {
		t.Fatalf("outcome err = %v", outcome.Err())
	}
	if out.String() != "earth true" {
		t.Errorf("stdout = %q, want %q", out.String(), "earth true")
	}
}

func TestUnit_PositionalArgs(t *testing.T) {
	t.Parallel()

	s := parseScript(t, `
scripts: join: {
	script: "printf '%s+%s' \"$1\" \"$2\""
}
`)

	var out bytes.Buffer
	outcome := callUnit(t, s, workunit.Config{"args": []string{"a", "b"}}, shell.UnitOptions{Stdout: &out})
	if !outcome.IsSuccess() {
		t.Fatalf("outcome err = %v", outcome.Err())
	}
	if out.String() != "a+b" {
		t.Errorf("stdout = %q, want %q", out.String(), "a+b")
	}
}

func TestUnit_StructuredOutputCapture(t *testing.T) {
	t.Parallel()

	s := parseScript(t, `
scripts: count: {
	exits: success: {example: 1}
	script: "echo 42"
}
`)

	var out bytes.Buffer
	outcome := callUnit(t, s, workunit.Config{}, shell.UnitOptions{Stdout: &out})
	if !outcome.IsSuccess() {
		t.Fatalf("outcome err = %v", outcome.Err())
	}
	if outcome.Value() != float64(42) {
		t.Errorf("value = %#v, want float64(42)", outcome.Value())
	}
	// Captured output must not also stream through.
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want captured (empty)", out.String())
	}
}

func TestUnit_UnstructuredOutputStreams(t *testing.T) {
	t.Parallel()

	s := parseScript(t, `
scripts: noisy: {
	script: "echo progress"
}
`)

	var out bytes.Buffer
	outcome := callUnit(t, s, workunit.Config{}, shell.UnitOptions{Stdout: &out})
	if !outcome.IsSuccess() {
		t.Fatalf("outcome err = %v", outcome.Err())
	}
	if outcome.Value() != nil {
		t.Errorf("value = %#v, want nil", outcome.Value())
	}
	if out.String() != "progress\n" {
		t.Errorf("stdout = %q, want streamed output", out.String())
	}
}

func TestUnit_ExitCodeMapsToDeclaredExit(t *testing.T) {
	t.Parallel()

	s := parseScript(t, `
scripts: flaky: {
	exits: {
		timeout: {code: 5}
	}
	script: "exit 5"
}
`)

	outcome := callUnit(t, s, workunit.Config{}, shell.UnitOptions{})
	if outcome.IsSuccess() {
		t.Fatal("exit 5 reported success")
	}
	if outcome.Exit() != "timeout" {
		t.Errorf("exit channel = %q, want timeout", outcome.Exit())
	}
}

func TestUnit_DuplicateExitCodesResolveInDeclarationOrder(t *testing.T) {
	t.Parallel()

	s := parseScript(t, `
scripts: flaky: {
	exits: {
		busy: {code: 5}
		stuck: {code: 5}
	}
	script: "exit 5"
}
`)

	// Repeat to catch map-iteration nondeterminism.
	for i := 0; i < 10; i++ {
		outcome := callUnit(t, s, workunit.Config{}, shell.UnitOptions{})
		if outcome.Exit() != "busy" {
			t.Fatalf("exit channel = %q, want first-declared busy", outcome.Exit())
		}
	}
}

func TestUnit_UndeclaredExitCodeFails(t *testing.T) {
	t.Parallel()

	s := parseScript(t, `
scripts: crash: {
	script: "exit 9"
}
`)

	outcome := callUnit(t, s, workunit.Config{}, shell.UnitOptions{})
	if outcome.IsSuccess() {
		t.Fatal("exit 9 reported success")
	}
	if outcome.Exit() != workunit.ExitError {
		t.Errorf("exit channel = %q, want error", outcome.Exit())
	}
	if outcome.Err() == nil {
		t.Error("failing outcome carries no error")
	}
}
