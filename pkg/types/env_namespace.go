// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"unicode"
)

// DefaultEnvNamespace is the sentinel prefix prepended to input names when
// looking them up in the process environment. Three underscores are unlikely
// to collide with real environment variables.
const DefaultEnvNamespace EnvNamespace = "___"

// ErrInvalidEnvNamespace is the sentinel error wrapped by InvalidEnvNamespaceError.
var ErrInvalidEnvNamespace = errors.New("invalid environment namespace")

type (
	// EnvNamespace is the prefix used to map declared inputs to environment
	// variables (`<namespace><inputName>`). The zero value ("") is invalid;
	// use DefaultEnvNamespace when no override is configured.
	EnvNamespace string

	// InvalidEnvNamespaceError is returned when an EnvNamespace contains
	// characters that cannot appear in an environment variable name.
	InvalidEnvNamespaceError struct {
		Value  EnvNamespace
		Reason string
	}
)

// String returns the string representation of the EnvNamespace.
func (n EnvNamespace) String() string { return string(n) }

// Key returns the environment variable name for the given input.
func (n EnvNamespace) Key(input InputName) string {
	return string(n) + string(input)
}

// IsValid returns whether the EnvNamespace is valid.
// A valid namespace is non-empty and contains only letters, digits, and
// underscores (no '=' or whitespace can appear in a variable name).
func (n EnvNamespace) IsValid() (bool, []error) {
	if n == "" {
		return false, []error{&InvalidEnvNamespaceError{Value: n, Reason: "must not be empty"}}
	}
	for _, r := range string(n) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			continue
		}
		return false, []error{&InvalidEnvNamespaceError{Value: n, Reason: fmt.Sprintf("contains invalid character %q", r)}}
	}
	return true, nil
}

// Validate returns the first validation error, or nil if the namespace is valid.
func (n EnvNamespace) Validate() error {
	if ok, errs := n.IsValid(); !ok {
		return errs[0]
	}
	return nil
}

// Error implements the error interface for InvalidEnvNamespaceError.
func (e *InvalidEnvNamespaceError) Error() string {
	return fmt.Sprintf("invalid environment namespace %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidEnvNamespace for errors.Is() compatibility.
func (e *InvalidEnvNamespaceError) Unwrap() error { return ErrInvalidEnvNamespace }
