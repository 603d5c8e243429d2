// SPDX-License-Identifier: MPL-2.0

package scriptfile_test

import (
	"strings"
	"testing"

	"github.com/workscript/workscript/pkg/scriptfile"
)

const greetCUE = `
scripts: {
	greet: {
		description: "Say hello"
		inputs: {
			name: {
				example:     "world"
				description: "Who to greet"
			}
			count: {example: 1}
			loud: {example: false}
		}
		exits: {
			success: {example: ""}
			error: {code: 1}
		}
		script: """
			echo "hello"
			"""
	}
}
`

func TestParseBytes(t *testing.T) {
	t.Parallel()

	sf, err := scriptfile.ParseBytes([]byte(greetCUE), "workscript.cue")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	greet, ok := sf.Scripts["greet"]
	if !ok {
		t.Fatal("parsed file has no greet script")
	}
	if greet.Name != "greet" || greet.FilePath != "workscript.cue" {
		t.Errorf("script identity = %q at %q", greet.Name, greet.FilePath)
	}
	if greet.Description != "Say hello" {
		t.Errorf("description = %q", greet.Description)
	}
	if !strings.Contains(greet.Body, "echo") {
		t.Errorf("body = %q", greet.Body)
	}

	name := greet.Inputs["name"]
	if name == nil || name.Example != "world" || name.Description != "Who to greet" {
		t.Errorf("name input = %+v", name)
	}
	count := greet.Inputs["count"]
	if count == nil || count.Example == nil {
		t.Fatalf("count input = %+v", count)
	}

	success := greet.Exits["success"]
	if success == nil || success.Example != "" {
		t.Errorf("success exit = %+v", success)
	}
	errExit := greet.Exits["error"]
	if errExit == nil || errExit.Code != 1 {
		t.Errorf("error exit = %+v", errExit)
	}
}

func TestParseBytes_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	sf, err := scriptfile.ParseBytes([]byte(greetCUE), "workscript.cue")
	if err != nil {
		t.Fatal(err)
	}

	got := sf.Scripts["greet"].InputOrder
	want := []string{"name", "count", "loud"}
	if len(got) != len(want) {
		t.Fatalf("InputOrder = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("InputOrder = %v, want %v", got, want)
		}
	}

	specs := sf.Scripts["greet"].InputSpecs()
	if len(specs) != 3 || specs[0].Name != "name" || specs[1].Name != "count" || specs[2].Name != "loud" {
		t.Errorf("InputSpecs order = %v", specs)
	}
}

func TestParseBytes_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{
			name: "missing body",
			src:  `scripts: noop: {}`,
		},
		{
			name: "empty body",
			src:  `scripts: noop: {script: ""}`,
		},
		{
			name: "input without example",
			src:  `scripts: noop: {inputs: x: {description: "d"}, script: "true"}`,
		},
		{
			name: "exit code out of range",
			src:  `scripts: noop: {exits: error: {code: 300}, script: "true"}`,
		},
		{
			name: "invalid cue syntax",
			src:  `scripts: {`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := scriptfile.ParseBytes([]byte(tt.src), "workscript.cue"); err == nil {
				t.Errorf("ParseBytes(%q) accepted invalid content", tt.src)
			}
		})
	}
}

func TestParseBytes_InvalidInputName(t *testing.T) {
	t.Parallel()

	src := `scripts: noop: {inputs: "bad name": {example: ""}, script: "true"}`
	_, err := scriptfile.ParseBytes([]byte(src), "workscript.cue")
	if err == nil {
		t.Fatal("ParseBytes() accepted an invalid input name")
	}
	if !strings.Contains(err.Error(), "invalid input name") {
		t.Errorf("error = %v", err)
	}
}

func TestScript_ExitSpecs(t *testing.T) {
	t.Parallel()

	sf, err := scriptfile.ParseBytes([]byte(greetCUE), "workscript.cue")
	if err != nil {
		t.Fatal(err)
	}

	specs := sf.Scripts["greet"].ExitSpecs()
	if len(specs) != 2 {
		t.Fatalf("ExitSpecs() len = %d, want 2", len(specs))
	}
	if specs[0].Name != "success" || !specs[0].HasStructuredOutput() {
		t.Errorf("success spec = %+v", specs[0])
	}
	if specs[1].Name != "error" || specs[1].Code != 1 {
		t.Errorf("error spec = %+v", specs[1])
	}
}
