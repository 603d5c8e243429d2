// SPDX-License-Identifier: MPL-2.0

// Package workunit models a declarative unit of work: named inputs whose
// types are inferred from example values, named exit channels, and a
// function implementing the behavior. A Definition is the immutable
// declaration; Build turns it into a callable Instance.
package workunit

import (
	"context"
	"errors"
	"fmt"

	"github.com/workscript/workscript/pkg/types"
)

var (
	// ErrNilFunction is returned by Build when a Definition has no function.
	ErrNilFunction = errors.New("work unit has no function")
	// ErrDuplicateInput is the sentinel error wrapped by DuplicateInputError.
	ErrDuplicateInput = errors.New("duplicate input name")
)

type (
	// Config maps input names to values: raw strings before coercion,
	// strongly-typed values after.
	Config map[string]any

	// InputSpec declares one input of a work unit. Example carries a sample
	// value used only to infer the input's target type (string, number,
	// boolean, list, dictionary).
	InputSpec struct {
		Name         types.InputName
		Example      any
		Description  types.DescriptionText
		FriendlyName string
	}

	// ExitSpec declares one outcome channel of a work unit.
	ExitSpec struct {
		Name         string
		Description  types.DescriptionText
		FriendlyName string

		// Example is a sample output value; its presence marks the exit as
		// carrying structured data.
		Example any
		// GetExample lazily provides a sample output value (Go API only).
		GetExample func() any
		// Like references an input whose example describes this exit's output.
		Like types.InputName
		// ItemOf references an input whose example describes one element of
		// this exit's (list-shaped) output.
		ItemOf types.InputName

		// Code is the process exit code a launcher should report when the
		// unit terminates through this exit. Zero for success exits.
		Code types.ExitCode
	}

	// Definition is the immutable declaration of a work unit. Input order is
	// significant: flag shortcuts are claimed first-come-first-served in
	// declaration order.
	Definition struct {
		Name        string
		Description types.DescriptionText
		Inputs      []InputSpec
		Exits       []ExitSpec
		Fn          func(context.Context, Config) Outcome
	}

	// Instance is a built ("wet") work unit, ready to be called with a
	// configuration mapping.
	Instance struct {
		def Definition
	}

	// DuplicateInputError is returned by Build when two inputs share a name.
	DuplicateInputError struct {
		Name types.InputName
	}
)

// Error implements the error interface.
func (e *DuplicateInputError) Error() string {
	return fmt.Sprintf("duplicate input name %q", e.Name)
}

// Unwrap returns ErrDuplicateInput for errors.Is() compatibility.
func (e *DuplicateInputError) Unwrap() error { return ErrDuplicateInput }

// HasStructuredOutput reports whether the exit declares the shape of the
// value it carries, via any of Example, GetExample, Like, or ItemOf.
func (s ExitSpec) HasStructuredOutput() bool {
	return s.Example != nil || s.GetExample != nil || s.Like != "" || s.ItemOf != ""
}

// Build validates the definition and returns a callable Instance.
// Missing "success" and "error" exits are supplied implicitly so every
// instance has both channels.
func (d Definition) Build() (*Instance, error) {
	if d.Fn == nil {
		return nil, fmt.Errorf("build %q: %w", d.Name, ErrNilFunction)
	}

	seen := make(map[types.InputName]struct{}, len(d.Inputs))
	for _, in := range d.Inputs {
		if err := in.Name.Validate(); err != nil {
			return nil, fmt.Errorf("build %q: %w", d.Name, err)
		}
		if _, dup := seen[in.Name]; dup {
			return nil, fmt.Errorf("build %q: %w", d.Name, &DuplicateInputError{Name: in.Name})
		}
		seen[in.Name] = struct{}{}
	}

	inst := &Instance{def: d}
	inst.def.Exits = withDefaultExits(d.Exits)
	return inst, nil
}

// withDefaultExits appends implicit success/error exits when undeclared.
// Declared exits keep their position; implicit ones go at the end.
func withDefaultExits(exits []ExitSpec) []ExitSpec {
	hasSuccess, hasError := false, false
	for _, e := range exits {
		switch e.Name {
		case ExitSuccess:
			hasSuccess = true
		case ExitError:
			hasError = true
		}
	}
	out := make([]ExitSpec, len(exits), len(exits)+2)
	copy(out, exits)
	if !hasSuccess {
		out = append(out, ExitSpec{Name: ExitSuccess})
	}
	if !hasError {
		out = append(out, ExitSpec{Name: ExitError, Code: 1})
	}
	return out
}

// Name returns the unit's declared name.
func (i *Instance) Name() string { return i.def.Name }

// Description returns the unit's declared description.
func (i *Instance) Description() types.DescriptionText { return i.def.Description }

// Inputs returns the declared inputs in declaration order.
func (i *Instance) Inputs() []InputSpec {
	out := make([]InputSpec, len(i.def.Inputs))
	copy(out, i.def.Inputs)
	return out
}

// Exits returns the unit's exit channels, including the implicit
// success/error ones.
func (i *Instance) Exits() []ExitSpec {
	out := make([]ExitSpec, len(i.def.Exits))
	copy(out, i.def.Exits)
	return out
}

// Input looks up a declared input by name.
func (i *Instance) Input(name string) (InputSpec, bool) {
	for _, in := range i.def.Inputs {
		if string(in.Name) == name {
			return in, true
		}
	}
	return InputSpec{}, false
}

// Exit looks up an exit channel by name.
func (i *Instance) Exit(name string) (ExitSpec, bool) {
	for _, e := range i.def.Exits {
		if e.Name == name {
			return e, true
		}
	}
	return ExitSpec{}, false
}

// Call invokes the unit's function with the given configuration.
// A panic inside the function is recovered and reported as a Failure so a
// misbehaving unit cannot take the adapter down with it.
func (i *Instance) Call(ctx context.Context, cfg Config) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Failure(fmt.Errorf("work unit %q panicked: %v", i.def.Name, r))
		}
	}()
	return i.def.Fn(ctx, cfg)
}
