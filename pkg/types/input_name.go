// SPDX-License-Identifier: MPL-2.0

// Package types defines cross-cutting value types used by multiple domain
// packages (workunit, scriptfile, script). These are foundation types that
// carry semantic meaning and validation but have no domain-specific
// dependencies.
//
// This package is a leaf dependency: it imports only the standard library.
// Domain packages import it; it never imports domain packages.
package types

import (
	"errors"
	"fmt"
	"unicode"
)

// ReservedArgsKey is the configuration key that collects positional
// arguments. It may double as a regular input name when a unit declares an
// input literally called "args".
const ReservedArgsKey = "args"

// ErrInvalidInputName is the sentinel error wrapped by InvalidInputNameError.
var ErrInvalidInputName = errors.New("invalid input name")

type (
	// InputName identifies a declared input of a work unit. A valid name is
	// non-empty, starts with a letter, and contains only letters, digits,
	// hyphens, and underscores — the characters a long CLI flag can carry.
	InputName string

	// InvalidInputNameError is returned when an InputName does not satisfy
	// the naming rules.
	InvalidInputNameError struct {
		Value  InputName
		Reason string
	}
)

// String returns the string representation of the InputName.
func (n InputName) String() string { return string(n) }

// IsValid returns whether the InputName is valid.
func (n InputName) IsValid() (bool, []error) {
	if n == "" {
		return false, []error{&InvalidInputNameError{Value: n, Reason: "must not be empty"}}
	}
	runes := []rune(string(n))
	if !unicode.IsLetter(runes[0]) {
		return false, []error{&InvalidInputNameError{Value: n, Reason: "must start with a letter"}}
	}
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			continue
		}
		return false, []error{&InvalidInputNameError{Value: n, Reason: fmt.Sprintf("contains invalid character %q", r)}}
	}
	return true, nil
}

// Validate returns the first validation error, or nil if the name is valid.
func (n InputName) Validate() error {
	if ok, errs := n.IsValid(); !ok {
		return errs[0]
	}
	return nil
}

// Error implements the error interface for InvalidInputNameError.
func (e *InvalidInputNameError) Error() string {
	return fmt.Sprintf("invalid input name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidInputName for errors.Is() compatibility.
func (e *InvalidInputNameError) Unwrap() error { return ErrInvalidInputName }
