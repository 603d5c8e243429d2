// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workscript/workscript/internal/config"
	"github.com/workscript/workscript/internal/discovery"
	"github.com/workscript/workscript/internal/issue"
	"github.com/workscript/workscript/pkg/script"
	"github.com/workscript/workscript/pkg/workunit"
)

var showCmd = &cobra.Command{
	Use:   "show <script>",
	Short: "Show a script's inputs, exits, and derived flags",
	Long: `Show the full interface of a discovered script: its declared inputs
with their example values, the flags derived from them, and the declared
exit channels with their process exit codes.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeScripts,
	RunE:              showScript,
}

func showScript(cmd *cobra.Command, args []string) error {
	stdout := cmd.OutOrStdout()

	cfg, _ := config.Get()

	info, err := discovery.New(cfg).GetScript(args[0])
	if err != nil {
		renderIssue(cmd, issue.ScriptNotFoundId)
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Fprintln(stdout, TitleStyle.Render(info.Name))
	if info.Description != "" {
		fmt.Fprintln(stdout, SubtitleStyle.Render(info.Description))
	}
	fmt.Fprintf(stdout, "%s %s (%s)\n", VerboseStyle.Render("defined in:"), info.FilePath, info.Source)
	fmt.Fprintln(stdout)

	inputs := info.Script.InputSpecs()
	if len(inputs) > 0 {
		fmt.Fprintln(stdout, SubtitleStyle.Bold(true).Render("Inputs:"))
		for _, spec := range script.Flags(inputs) {
			flag := "--" + spec.Long
			if spec.Short != "" {
				flag = "-" + spec.Short + ", " + flag
			}
			kind := "string"
			if spec.Bool {
				kind = "bool"
			}

			in, _ := lookupInput(inputs, string(spec.Input))
			line := fmt.Sprintf("  %s %s", ScriptStyle.Render(flag), VerboseStyle.Render(kind))
			if spec.Usage != "" {
				line += "  " + spec.Usage
			}
			fmt.Fprintln(stdout, line)
			fmt.Fprintf(stdout, "    %s %s\n", VerboseStyle.Render("example:"), exampleString(in.Example))
		}
		fmt.Fprintln(stdout)
	}

	exits := info.Script.ExitSpecs()
	fmt.Fprintln(stdout, SubtitleStyle.Bold(true).Render("Exits:"))
	if len(exits) == 0 {
		fmt.Fprintln(stdout, VerboseStyle.Render("  success (code 0), error (code 1)"))
	}
	for _, ex := range exits {
		line := fmt.Sprintf("  %s %s", SuccessStyle.Render(ex.Name), VerboseStyle.Render(fmt.Sprintf("(code %d)", ex.Code)))
		if ex.Description != "" {
			line += "  " + string(ex.Description)
		}
		fmt.Fprintln(stdout, line)
	}

	return nil
}

func lookupInput(inputs []workunit.InputSpec, name string) (workunit.InputSpec, bool) {
	for _, in := range inputs {
		if string(in.Name) == name {
			return in, true
		}
	}
	return workunit.InputSpec{}, false
}

// exampleString renders an example value the way it appears in a definition
// file: JSON for structured values, plain for scalars.
func exampleString(example any) string {
	switch example.(type) {
	case nil:
		return `""`
	case string, bool, int, int64, float64:
		return fmt.Sprintf("%v", example)
	default:
		if data, err := json.Marshal(example); err == nil {
			return string(data)
		}
		return fmt.Sprintf("%v", example)
	}
}
