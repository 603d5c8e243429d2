// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/workscript/workscript/internal/config"
	"github.com/workscript/workscript/internal/discovery"
	"github.com/workscript/workscript/internal/shell"
	"github.com/workscript/workscript/pkg/scriptfile"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path...]",
	Short: "Validate workscript files",
	Long: `Validate workscript files without running anything.

Without arguments, validates every file found by discovery: schema and
declaration checks, plus a syntax check of each script body.

With path arguments, validates those files only.

Examples:
  workscript validate                  Validate all discovered files
  workscript validate ./workscript.cue Validate a single file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return validateWorkspace(cmd)
		}
		failed := false
		for _, path := range args {
			if err := validatePath(cmd, path); err != nil {
				failed = true
			}
		}
		if failed {
			return &ExitError{Code: 1}
		}
		return nil
	},
}

func validateWorkspace(cmd *cobra.Command) error {
	stdout := cmd.OutOrStdout()

	cfg, _ := config.Get()

	files, err := discovery.New(cfg).LoadAll()
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Fprintln(stdout, WarningStyle.Render("No workscript files found."))
		return nil
	}

	fmt.Fprintln(stdout, TitleStyle.Render("Workspace Validation"))
	fmt.Fprintln(stdout)

	failures := 0
	for _, file := range files {
		failures += reportFile(cmd, file.Path, file.File, file.Error)
	}

	fmt.Fprintln(stdout)
	if failures > 0 {
		fmt.Fprintf(stdout, "%s %d problem(s) found\n", ErrorStyle.Render("✗"), failures)
		return &ExitError{Code: 1}
	}
	fmt.Fprintf(stdout, "%s All files valid\n", SuccessStyle.Render("✓"))
	return nil
}

func validatePath(cmd *cobra.Command, path string) error {
	var sf *scriptfile.ScriptFile
	var err error
	if strings.HasSuffix(path, scriptfile.HCLFileSuffix) {
		sf, err = scriptfile.ParseHCL(path)
	} else {
		sf, err = scriptfile.Parse(path)
	}

	if reportFile(cmd, path, sf, err) > 0 {
		return &ExitError{Code: 1}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s is valid\n", SuccessStyle.Render("✓"), path)
	return nil
}

// reportFile prints diagnostics for one parsed file and returns how many
// problems were found. Body syntax is checked with the same interpreter
// the run command uses.
func reportFile(cmd *cobra.Command, path string, sf *scriptfile.ScriptFile, parseErr error) int {
	stdout := cmd.OutOrStdout()

	if parseErr != nil {
		fmt.Fprintf(stdout, "%s %s\n    %v\n", ErrorStyle.Render("✗"), path, parseErr)
		return 1
	}

	failures := 0
	for _, name := range sf.Names() {
		s := sf.Scripts[name]
		if err := shell.Check(s.Body); err != nil {
			fmt.Fprintf(stdout, "%s %s: script %s has a syntax error\n    %v\n",
				ErrorStyle.Render("✗"), path, ScriptStyle.Render(name), err)
			failures++
		}
	}

	if failures == 0 {
		fmt.Fprintf(stdout, "%s %s (%d script(s))\n", SuccessStyle.Render("✓"), path, len(sf.Scripts))
	}
	return failures
}
