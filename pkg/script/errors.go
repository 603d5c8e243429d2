// SPDX-License-Identifier: MPL-2.0

package script

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownInput is the sentinel error wrapped by UnknownInputError.
	ErrUnknownInput = errors.New("unknown input")
	// ErrUnsupportedUnit is returned by Adapt when the unit argument is not
	// a Definition, an Instance, or an already adapted Invocation.
	ErrUnsupportedUnit = errors.New("unsupported work unit value")
)

// UnknownInputError is returned when the assembled configuration carries a
// key that matches no declared input. This is a usage error on the caller's
// side, not something end-user input can recover from.
type UnknownInputError struct {
	Unit string
	Name string
}

// Error implements the error interface.
func (e *UnknownInputError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("unknown input %q: unit %q declares no such input", e.Name, e.Unit)
	}
	return fmt.Sprintf("unknown input %q", e.Name)
}

// Unwrap returns ErrUnknownInput for errors.Is() compatibility.
func (e *UnknownInputError) Unwrap() error { return ErrUnknownInput }
