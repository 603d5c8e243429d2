// SPDX-License-Identifier: MPL-2.0

// Package scriptfile defines the schema and parsing for workscript
// definition files. The primary format is CUE (workscript.cue,
// schema-validated); an alternate HCL format (*.ws.hcl) is parsed into the
// same model. A parsed Script converts to a workunit.Definition whose
// function runs the shell body.
package scriptfile

import (
	"sort"

	"github.com/workscript/workscript/pkg/types"
	"github.com/workscript/workscript/pkg/workunit"
)

// CUEFileName is the canonical name of a CUE definition file.
const CUEFileName = "workscript.cue"

// HCLFileSuffix is the suffix of an alternate HCL definition file.
const HCLFileSuffix = ".ws.hcl"

type (
	// ScriptFile is one parsed definition file.
	ScriptFile struct {
		Scripts map[string]*Script `json:"scripts"`

		// FilePath is where the file was loaded from (not part of the schema).
		FilePath string `json:"-"`
	}

	// Script is one declared unit of work.
	Script struct {
		Description string                `json:"description,omitempty"`
		Inputs      map[string]*InputDecl `json:"inputs,omitempty"`
		Exits       map[string]*ExitDecl  `json:"exits,omitempty"`
		Body        string                `json:"script"`

		// Name is the key the script was declared under.
		Name string `json:"-"`
		// InputOrder preserves declaration order, which drives flag
		// shortcut claiming. Populated by the parsers.
		InputOrder []string `json:"-"`
		// ExitOrder preserves exit declaration order for display.
		ExitOrder []string `json:"-"`
		// FilePath is the defining file.
		FilePath string `json:"-"`
	}

	// InputDecl declares one input in a definition file.
	InputDecl struct {
		Example      any    `json:"example"`
		Description  string `json:"description,omitempty"`
		FriendlyName string `json:"friendly_name,omitempty"`
	}

	// ExitDecl declares one exit channel in a definition file.
	ExitDecl struct {
		Description  string `json:"description,omitempty"`
		FriendlyName string `json:"friendly_name,omitempty"`
		Example      any    `json:"example,omitempty"`
		Like         string `json:"like,omitempty"`
		ItemOf       string `json:"item_of,omitempty"`
		Code         int    `json:"code,omitempty"`
	}
)

// Names returns the script names in a stable (sorted) order.
func (f *ScriptFile) Names() []string {
	names := make([]string, 0, len(f.Scripts))
	for name := range f.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InputSpecs converts the declared inputs into workunit input specs, in
// declaration order. Names missing from InputOrder (never produced by the
// parsers, but possible for hand-built values) are appended sorted.
func (s *Script) InputSpecs() []workunit.InputSpec {
	order := s.InputOrder
	if len(order) != len(s.Inputs) {
		order = appendMissing(order, s.Inputs)
	}

	specs := make([]workunit.InputSpec, 0, len(order))
	for _, name := range order {
		decl, ok := s.Inputs[name]
		if !ok {
			continue
		}
		specs = append(specs, workunit.InputSpec{
			Name:         types.InputName(name),
			Example:      decl.Example,
			Description:  types.DescriptionText(decl.Description),
			FriendlyName: decl.FriendlyName,
		})
	}
	return specs
}

// ExitSpecs converts the declared exits into workunit exit specs, in
// declaration order.
func (s *Script) ExitSpecs() []workunit.ExitSpec {
	order := s.ExitOrder
	if len(order) != len(s.Exits) {
		order = appendMissing(order, s.Exits)
	}

	specs := make([]workunit.ExitSpec, 0, len(order))
	for _, name := range order {
		decl, ok := s.Exits[name]
		if !ok {
			continue
		}
		specs = append(specs, workunit.ExitSpec{
			Name:         name,
			Description:  types.DescriptionText(decl.Description),
			FriendlyName: decl.FriendlyName,
			Example:      decl.Example,
			Like:         types.InputName(decl.Like),
			ItemOf:       types.InputName(decl.ItemOf),
			Code:         types.ExitCode(decl.Code),
		})
	}
	return specs
}

// appendMissing completes an order slice with any declared names it lacks,
// sorted for determinism.
func appendMissing[V any](order []string, decls map[string]V) []string {
	seen := make(map[string]struct{}, len(order))
	out := make([]string, 0, len(decls))
	for _, name := range order {
		if _, declared := decls[name]; !declared {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	var missing []string
	for name := range decls {
		if _, ok := seen[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return append(out, missing...)
}
