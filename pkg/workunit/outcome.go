// SPDX-License-Identifier: MPL-2.0

package workunit

// Well-known exit names. Every unit has these two channels even when its
// definition declares no exits at all.
const (
	ExitSuccess = "success"
	ExitError   = "error"
)

// Outcome is the tagged result of calling a work unit: a named exit channel
// plus either a produced value (success) or an error (failure). There is no
// callback registration — callers inspect the tag and apply whatever
// rendering or exit-code policy they want.
type Outcome struct {
	exit  string
	value any
	err   error
}

// Success returns an Outcome on the "success" exit carrying value.
// A nil value means the unit completed without producing output.
func Success(value any) Outcome {
	return Outcome{exit: ExitSuccess, value: value}
}

// Failure returns an Outcome on the "error" exit carrying err.
func Failure(err error) Outcome {
	return Outcome{exit: ExitError, err: err}
}

// FailureVia returns an Outcome on a custom failing exit channel.
// Units with domain-specific exits (e.g. "notFound", "timeout") use this to
// name the channel while still carrying the underlying error.
func FailureVia(exit string, err error) Outcome {
	return Outcome{exit: exit, err: err}
}

// Exit returns the name of the exit channel this outcome arrived on.
func (o Outcome) Exit() string { return o.exit }

// Value returns the produced output value, nil for failures.
func (o Outcome) Value() any { return o.value }

// Err returns the carried error, nil for successes.
func (o Outcome) Err() error { return o.err }

// IsSuccess reports whether the outcome arrived on the success exit.
func (o Outcome) IsSuccess() bool { return o.exit == ExitSuccess }
