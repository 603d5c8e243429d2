// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"github.com/workscript/workscript/pkg/types"
)

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	withErr := &ExitError{Code: 3, Err: errors.New("boom")}
	if withErr.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", withErr.Error(), "boom")
	}

	withoutErr := &ExitError{Code: types.ExitCode(7)}
	if withoutErr.Error() != "exit status 7" {
		t.Errorf("Error() = %q, want %q", withoutErr.Error(), "exit status 7")
	}
}

func TestExitError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying")
	err := &ExitError{Code: 1, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	var exitErr *ExitError
	if !errors.As(error(err), &exitErr) {
		t.Error("errors.As should match *ExitError")
	}
	if exitErr.Code != 1 {
		t.Errorf("Code = %d, want 1", exitErr.Code)
	}
}
