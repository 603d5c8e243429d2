// SPDX-License-Identifier: MPL-2.0

// Package script adapts a declarative work unit into a runnable command-line
// invocation. Adapt derives CLI flags from the unit's declared inputs,
// parses process arguments and environment variables into a configuration
// mapping, coerces each value to the type implied by the input's example,
// and returns an Invocation that renders its outcome to the terminal when
// run.
//
// Configuration precedence, later sources overwriting earlier ones:
// supplied CLI flags, then environment variables (<namespace><inputName>),
// then a synthetic "args" key with the positional tokens, then positional
// overrides for the names listed in Options.ArgNames. Environment values
// overwriting explicit flags is long-standing behavior that embedders
// depend on and is kept as is.
package script

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/workscript/workscript/pkg/coerce"
	"github.com/workscript/workscript/pkg/types"
	"github.com/workscript/workscript/pkg/workunit"
)

// Options controls how a unit is adapted. The zero value reads os.Args and
// the process environment and writes to the standard streams.
type Options struct {
	// Args is the argument vector to parse, without the program name.
	// Nil means os.Args[1:]; an empty non-nil slice means no arguments.
	Args []string

	// EnvNamespace is the prefix for environment lookups of declared inputs.
	// Empty means types.DefaultEnvNamespace.
	EnvNamespace types.EnvNamespace

	// ArgNames maps positional arguments onto declared inputs: the Nth name
	// receives the Nth positional token, overriding any other source.
	ArgNames []string

	// Stdout and Stderr receive the rendered outcome. Nil means the
	// process streams.
	Stdout io.Writer
	Stderr io.Writer

	// LookupEnv overrides environment access, mainly for tests.
	// Nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// Render overrides the default outcome rendering. Unset fields keep
	// their defaults.
	Render *RenderPolicy
}

// Invocation is a configured, not-yet-executed call of a work unit. Its
// type doubles as the "already adapted" marker: passing an Invocation back
// into Adapt returns it unchanged.
type Invocation struct {
	inst   *workunit.Instance
	config workunit.Config
	render RenderPolicy
	stdout io.Writer
	stderr io.Writer
}

// Adapt turns a work unit into a runnable Invocation. The unit may be a
// workunit.Definition (built here), a pre-built *workunit.Instance, or an
// *Invocation from an earlier Adapt call (returned as is, so layered
// tooling never wraps twice). The variant is resolved once, at this
// boundary.
//
// The returned Invocation has its inputs bound and its outcome rendering
// attached; executing it is the caller's move via Run.
func Adapt(unit any, opts Options) (*Invocation, error) {
	var inst *workunit.Instance
	switch u := unit.(type) {
	case *Invocation:
		return u, nil
	case *workunit.Instance:
		inst = u
	case workunit.Definition:
		built, err := u.Build()
		if err != nil {
			return nil, err
		}
		inst = built
	case *workunit.Definition:
		built, err := u.Build()
		if err != nil {
			return nil, err
		}
		inst = built
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedUnit, unit)
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	args := opts.Args
	if args == nil {
		args = os.Args[1:]
	}

	inputs := inst.Inputs()
	fs := newFlagSet(inst.Name(), Flags(inputs), stderr)
	if err := fs.Parse(args); err != nil {
		// Covers both -h/--help (pflag.ErrHelp) and strict rejection of
		// unrecognized flags; usage has already been written to stderr.
		return nil, err
	}

	cfg := assemble(fs.Args(), visitSupplied(fs), inputs, opts)
	if err := coerceConfig(cfg, inst); err != nil {
		return nil, err
	}

	return &Invocation{
		inst:   inst,
		config: cfg,
		render: opts.Render.withDefaults(),
		stdout: stdout,
		stderr: stderr,
	}, nil
}

// supplied is the raw value of one flag the user actually set.
type supplied struct {
	name  string
	value string
}

// visitSupplied collects the flags present on the command line. Defaults
// never appear here: an input the user did not mention stays out of the
// configuration entirely.
func visitSupplied(fs *pflag.FlagSet) []supplied {
	var out []supplied
	fs.Visit(func(f *pflag.Flag) {
		out = append(out, supplied{name: f.Name, value: f.Value.String()})
	})
	return out
}

// assemble builds the raw configuration mapping from the parsed sources.
func assemble(positionals []string, flags []supplied, inputs []workunit.InputSpec, opts Options) workunit.Config {
	cfg := make(workunit.Config)

	for _, f := range flags {
		cfg[f.name] = f.value
	}

	ns := opts.EnvNamespace
	if ns == "" {
		ns = types.DefaultEnvNamespace
	}
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, in := range inputs {
		if v, ok := lookup(ns.Key(in.Name)); ok {
			cfg[string(in.Name)] = v
		}
	}

	if len(positionals) > 0 {
		cfg[types.ReservedArgsKey] = positionals
	}

	for i, name := range opts.ArgNames {
		if i >= len(positionals) {
			break
		}
		cfg[name] = positionals[i]
	}

	return cfg
}

// coerceConfig replaces each raw value with the strongly-typed value implied
// by its input's example. The reserved "args" key passes through untouched
// unless the unit declares an input by that name.
func coerceConfig(cfg workunit.Config, inst *workunit.Instance) error {
	for key, raw := range cfg {
		in, declared := inst.Input(key)
		if !declared {
			if key == types.ReservedArgsKey {
				continue
			}
			return &UnknownInputError{Unit: inst.Name(), Name: key}
		}
		cfg[key] = coerce.FromString(stringify(raw), coerce.ImpliedType(in.Example))
	}
	return nil
}

// stringify normalizes a raw configuration value to text before coercion.
// Flag parsers occasionally hand back non-string values for what should be
// treated as text, and positional lists arrive as slices.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		return strings.Join(t, ",")
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Instance returns the underlying built work unit.
func (inv *Invocation) Instance() *workunit.Instance { return inv.inst }

// Config returns the coerced configuration the unit will be called with.
func (inv *Invocation) Config() workunit.Config {
	out := make(workunit.Config, len(inv.config))
	for k, v := range inv.config {
		out[k] = v
	}
	return out
}
