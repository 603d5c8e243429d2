// SPDX-License-Identifier: MPL-2.0

package scriptfile

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/workscript/workscript/pkg/coerce"
)

// HCL decode targets. Blocks keep their source order, which the CUE path
// recovers from the unified value instead.
type (
	hclRoot struct {
		Scripts []*hclScript `hcl:"script,block"`
	}

	hclScript struct {
		Name        string      `hcl:"name,label"`
		Description string      `hcl:"description,optional"`
		Inputs      []*hclInput `hcl:"input,block"`
		Exits       []*hclExit  `hcl:"exit,block"`
		Body        string      `hcl:"body"`
	}

	hclInput struct {
		Name         string    `hcl:"name,label"`
		Example      cty.Value `hcl:"example"`
		Description  string    `hcl:"description,optional"`
		FriendlyName string    `hcl:"friendly_name,optional"`
	}

	hclExit struct {
		Name         string    `hcl:"name,label"`
		Description  string    `hcl:"description,optional"`
		FriendlyName string    `hcl:"friendly_name,optional"`
		Example      cty.Value `hcl:"example,optional"`
		Like         string    `hcl:"like,optional"`
		ItemOf       string    `hcl:"item_of,optional"`
		Code         int       `hcl:"code,optional"`
	}
)

// ParseHCL reads and parses an alternate-format (*.ws.hcl) definition file.
func ParseHCL(path string) (*ScriptFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workscript file at %s: %w", path, err)
	}
	return ParseHCLBytes(data, path)
}

// ParseHCLBytes parses HCL definition file content from bytes into the same
// model the CUE parser produces. Example attributes are evaluated as
// literals and converted to their native Go shapes.
func ParseHCLBytes(data []byte, path string) (*ScriptFile, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
	}

	sf := &ScriptFile{
		Scripts:  make(map[string]*Script, len(root.Scripts)),
		FilePath: path,
	}

	for _, hs := range root.Scripts {
		if _, dup := sf.Scripts[hs.Name]; dup {
			return nil, fmt.Errorf("%s: script %q declared twice", path, hs.Name)
		}

		s := &Script{
			Name:        hs.Name,
			Description: hs.Description,
			Inputs:      make(map[string]*InputDecl, len(hs.Inputs)),
			Exits:       make(map[string]*ExitDecl, len(hs.Exits)),
			Body:        hs.Body,
			FilePath:    path,
		}

		for _, hi := range hs.Inputs {
			if _, dup := s.Inputs[hi.Name]; dup {
				return nil, fmt.Errorf("%s: script %q: input %q declared twice", path, hs.Name, hi.Name)
			}
			s.Inputs[hi.Name] = &InputDecl{
				Example:      coerce.Native(hi.Example),
				Description:  hi.Description,
				FriendlyName: hi.FriendlyName,
			}
			s.InputOrder = append(s.InputOrder, hi.Name)
		}

		for _, he := range hs.Exits {
			if _, dup := s.Exits[he.Name]; dup {
				return nil, fmt.Errorf("%s: script %q: exit %q declared twice", path, hs.Name, he.Name)
			}
			decl := &ExitDecl{
				Description:  he.Description,
				FriendlyName: he.FriendlyName,
				Like:         he.Like,
				ItemOf:       he.ItemOf,
				Code:         he.Code,
			}
			if he.Example.Type() != cty.NilType {
				decl.Example = coerce.Native(he.Example)
			}
			s.Exits[he.Name] = decl
			s.ExitOrder = append(s.ExitOrder, he.Name)
		}

		if s.Body == "" {
			return nil, fmt.Errorf("%s: script %q has an empty body", path, hs.Name)
		}
		sf.Scripts[hs.Name] = s
	}

	if err := sf.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sf, nil
}
