// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListScripts(t *testing.T) {
	stdout, _, cmd := setupWorkspace(t, greetWorkspace)

	if err := listScripts(cmd, nil); err != nil {
		t.Fatalf("listScripts() error: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"Available Scripts", "greet", "fail3", "current directory"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestListScripts_Empty(t *testing.T) {
	_, stderr, cmd := setupWorkspace(t, "")

	if err := listScripts(cmd, nil); err == nil {
		t.Fatal("listScripts() should fail with no scripts")
	}
	if stderr.Len() == 0 {
		t.Error("expected an issue card on stderr")
	}
}

func TestShowScript(t *testing.T) {
	stdout, _, cmd := setupWorkspace(t, greetWorkspace)

	if err := showScript(cmd, []string{"greet"}); err != nil {
		t.Fatalf("showScript() error: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"-n, --name", "--shout", "bool", "example:", "Exits:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestShowScript_NotFound(t *testing.T) {
	_, _, cmd := setupWorkspace(t, greetWorkspace)

	err := showScript(cmd, []string{"nope"})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %T, want *ExitError", err)
	}
}

func TestValidateWorkspace_Valid(t *testing.T) {
	stdout, _, cmd := setupWorkspace(t, greetWorkspace)

	if err := validateWorkspace(cmd); err != nil {
		t.Fatalf("validateWorkspace() error: %v", err)
	}
	if !strings.Contains(stdout.String(), "All files valid") {
		t.Errorf("output = %q, want success summary", stdout.String())
	}
}

func TestValidateWorkspace_BadBody(t *testing.T) {
	stdout, _, cmd := setupWorkspace(t, `scripts: {
	broken: {
		script: "if [ missing then fi"
	}
}
`)

	err := validateWorkspace(cmd)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %T, want *ExitError", err)
	}
	if !strings.Contains(stdout.String(), "syntax error") {
		t.Errorf("output = %q, want a syntax diagnostic", stdout.String())
	}
}

func TestValidatePath_ParseError(t *testing.T) {
	_, _, cmd := setupWorkspace(t, "")

	path := filepath.Join(t.TempDir(), "workscript.cue")
	if err := os.WriteFile(path, []byte(`scripts: { broken: { script: "" } }`), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	err := validatePath(cmd, path)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %T, want *ExitError", err)
	}
}

func TestRunInit(t *testing.T) {
	stdout, _, cmd := setupWorkspace(t, "")

	if err := runInit(cmd, nil); err != nil {
		t.Fatalf("runInit() error: %v", err)
	}
	if !strings.Contains(stdout.String(), "Created") {
		t.Errorf("output = %q, want creation notice", stdout.String())
	}

	// The scaffolded file must itself pass validation.
	if err := validateWorkspace(cmd); err != nil {
		t.Errorf("scaffolded file should validate: %v", err)
	}

	// A second init without --force refuses to overwrite.
	if err := runInit(cmd, nil); err == nil {
		t.Error("runInit() should refuse to overwrite without --force")
	}

	initForce = true
	t.Cleanup(func() { initForce = false })
	if err := runInit(cmd, nil); err != nil {
		t.Errorf("runInit() with force error: %v", err)
	}
}

func TestInitCmd_ArgsContract(t *testing.T) {
	if initCmd.Use != "init [filename]" {
		t.Errorf("Use = %q, want %q", initCmd.Use, "init [filename]")
	}
	if err := initCmd.Args(initCmd, []string{"custom.cue"}); err != nil {
		t.Errorf("one positional rejected: %v", err)
	}
	if err := initCmd.Args(initCmd, []string{"a.cue", "b.cue"}); err == nil {
		t.Error("two positionals accepted, want error")
	}
}

func TestRunInit_CustomFilename(t *testing.T) {
	stdout, _, cmd := setupWorkspace(t, "")

	if err := runInit(cmd, []string{"tasks.cue"}); err != nil {
		t.Fatalf("runInit() error: %v", err)
	}
	if _, err := os.Stat("tasks.cue"); err != nil {
		t.Errorf("named file not created: %v", err)
	}
	if !strings.Contains(stdout.String(), "tasks.cue") {
		t.Errorf("output = %q, want the chosen filename", stdout.String())
	}
}

func TestRunInit_MinimalTemplate(t *testing.T) {
	_, _, cmd := setupWorkspace(t, "")

	initTemplate = "minimal"
	t.Cleanup(func() { initTemplate = "default" })

	if err := runInit(cmd, nil); err != nil {
		t.Fatalf("runInit() error: %v", err)
	}

	data, err := os.ReadFile("workscript.cue")
	if err != nil {
		t.Fatalf("failed to read scaffolded file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("minimal template should declare a hello script")
	}
}
