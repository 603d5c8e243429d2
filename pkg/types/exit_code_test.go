// SPDX-License-Identifier: MPL-2.0

package types_test

import (
	"errors"
	"testing"

	"github.com/workscript/workscript/pkg/types"
)

func TestExitCode_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    types.ExitCode
		wantErr bool
	}{
		{name: "zero is success", code: 0, wantErr: false},
		{name: "one is valid", code: 1, wantErr: false},
		{name: "upper bound", code: 255, wantErr: false},
		{name: "negative", code: -1, wantErr: true},
		{name: "too large", code: 256, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.code.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("ExitCode(%d).Validate() error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, types.ErrInvalidExitCode) {
				t.Errorf("ExitCode(%d).Validate() error does not wrap ErrInvalidExitCode", tt.code)
			}
		})
	}
}

func TestExitCode_IsSuccess(t *testing.T) {
	t.Parallel()

	if !types.ExitCode(0).IsSuccess() {
		t.Error("ExitCode(0).IsSuccess() = false, want true")
	}
	if types.ExitCode(1).IsSuccess() {
		t.Error("ExitCode(1).IsSuccess() = true, want false")
	}
}

func TestExitCode_String(t *testing.T) {
	t.Parallel()

	if got := types.ExitCode(42).String(); got != "42" {
		t.Errorf("ExitCode(42).String() = %q, want %q", got, "42")
	}
}
