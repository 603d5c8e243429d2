// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name: "operation only",
			err: &ActionableError{
				Operation: "load workscript file",
			},
			expected: "failed to load workscript file",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "load workscript file",
				Resource:  "./workscript.cue",
			},
			expected: "failed to load workscript file: ./workscript.cue",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "parse config",
				Cause:     errors.New("syntax error at line 5"),
			},
			expected: "failed to parse config: syntax error at line 5",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "load workscript file",
				Resource:  "./workscript.cue",
				Cause:     errors.New("file not found"),
			},
			expected: "failed to load workscript file: ./workscript.cue: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &ActionableError{
		Operation: "test",
		Cause:     cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap() should return the cause error")
	}

	errNoCause := &ActionableError{Operation: "test"}
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	cause := errors.New("specific error")
	wrapped := &ActionableError{
		Operation: "test",
		Cause:     cause,
	}

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "non-verbose without suggestions",
			err: &ActionableError{
				Operation: "run script",
				Resource:  "greet",
				Cause:     errors.New("exit status 2"),
			},
			verbose:  false,
			contains: []string{"failed to run script: greet: exit status 2"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "non-verbose with suggestions",
			err: &ActionableError{
				Operation:   "load workscript file",
				Suggestions: []string{"Run 'workscript init' to create one"},
			},
			verbose:  false,
			contains: []string{"• Run 'workscript init' to create one"},
		},
		{
			name: "verbose includes error chain",
			err: &ActionableError{
				Operation: "parse config",
				Cause:     errors.New("syntax error"),
			},
			verbose:  true,
			contains: []string{"Error chain:", "1. syntax error"},
		},
		{
			name: "verbose walks wrapped causes",
			err: &ActionableError{
				Operation: "parse config",
				Cause:     errors.Join(errors.New("outer")),
			},
			verbose:  true,
			contains: []string{"Error chain:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(tt.verbose)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Format(%v) = %q, should contain %q", tt.verbose, got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("Format(%v) = %q, should not contain %q", tt.verbose, got, unwanted)
				}
			}
		})
	}
}

func TestActionableError_HasSuggestions(t *testing.T) {
	withSuggestions := &ActionableError{
		Operation:   "test",
		Suggestions: []string{"try this"},
	}
	if !withSuggestions.HasSuggestions() {
		t.Error("HasSuggestions() should return true")
	}

	without := &ActionableError{Operation: "test"}
	if without.HasSuggestions() {
		t.Error("HasSuggestions() should return false")
	}
}

func TestErrorContext_Build(t *testing.T) {
	cause := errors.New("no such file")

	err := NewErrorContext().
		WithOperation("load workscript file").
		WithResource("./workscript.cue").
		WithSuggestion("Run 'workscript init' to create one").
		WithSuggestion("Check your search_paths configuration").
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build() returned nil")
	}
	if err.Operation != "load workscript file" {
		t.Errorf("Operation = %q", err.Operation)
	}
	if err.Resource != "./workscript.cue" {
		t.Errorf("Resource = %q", err.Resource)
	}
	if len(err.Suggestions) != 2 {
		t.Errorf("Suggestions count = %d, want 2", len(err.Suggestions))
	}
	if !errors.Is(err, cause) {
		t.Error("Build() should preserve the wrapped cause")
	}
}

func TestErrorContext_Build_RequiresOperation(t *testing.T) {
	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}
	if got := NewErrorContext().BuildError(); got != nil {
		t.Errorf("BuildError() without operation = %v, want nil", got)
	}
}

func TestWrapWithOperation(t *testing.T) {
	if got := WrapWithOperation(nil, "noop"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}

	cause := errors.New("boom")
	wrapped := WrapWithOperation(cause, "run script")
	if wrapped == nil {
		t.Fatal("WrapWithOperation() returned nil")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("WrapWithOperation() should preserve the cause")
	}
}
