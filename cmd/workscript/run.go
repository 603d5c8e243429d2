// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/workscript/workscript/internal/config"
	"github.com/workscript/workscript/internal/discovery"
	"github.com/workscript/workscript/internal/issue"
	"github.com/workscript/workscript/internal/shell"
	"github.com/workscript/workscript/pkg/script"
	"github.com/workscript/workscript/pkg/types"
)

// runCmd executes a discovered script. Flag parsing is disabled on the
// cobra side: everything after the script name belongs to the script's own
// derived flag set.
var runCmd = &cobra.Command{
	Use:   "run <script> [flags] [args...]",
	Short: "Run a script with derived flags and coerced inputs",
	Long: `Run a discovered script.

Each declared input becomes a --flag (with a single-letter shortcut when
available) and an environment variable in the configured namespace.
Supplied values are coerced to the type implied by the input's example
value. Remaining positional arguments are passed to the script.

Examples:
  workscript run greet --name=world
  workscript run greet -n world extra args
  workscript run deploy --help        Show the script's derived flags`,
	DisableFlagParsing: true,
	ValidArgsFunction:  completeScripts,
	RunE:               runScript,
}

func runScript(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
		return cmd.Help()
	}
	name, rest := args[0], args[1:]

	cfg, _ := config.Get()

	info, err := discovery.New(cfg).GetScript(name)
	if err != nil {
		renderIssue(cmd, issue.ScriptNotFoundId)
		return &ExitError{Code: 1, Err: issue.NewErrorContext().
			WithOperation("run script").
			WithResource(name).
			WithSuggestion("Run 'workscript list' to see available scripts").
			Wrap(err).
			BuildError()}
	}

	logger.Debug("resolved script", "name", info.Name, "file", info.FilePath, "source", info.Source.String())

	unit := shell.Unit(info.Script, shell.UnitOptions{
		Dir:    filepath.Dir(info.FilePath),
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})

	inv, err := script.Adapt(unit, script.Options{
		Args:         rest,
		EnvNamespace: types.EnvNamespace(cfg.EnvNamespace),
		Stdout:       cmd.OutOrStdout(),
		Stderr:       cmd.ErrOrStderr(),
	})
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		var unknown *script.UnknownInputError
		if errors.As(err, &unknown) {
			renderIssue(cmd, issue.UnknownInputId)
		}
		return &ExitError{Code: 1, Err: err}
	}

	logger.Debug("assembled config", "inputs", len(inv.Config()))

	outcome := inv.Run(cmd.Context())
	if outcome.IsSuccess() {
		return nil
	}
	logger.Debug("script failed", "exit", outcome.Exit())

	code := types.ExitCode(1)
	if spec, ok := inv.Instance().Exit(outcome.Exit()); ok && spec.Code != 0 {
		code = spec.Code
	}
	return &ExitError{Code: code}
}

// completeScripts offers discovered script names for shell completion.
func completeScripts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}

	cfg, _ := config.Get()
	scripts, err := discovery.New(cfg).GetScriptsWithPrefix(toComplete)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	completions := make([]string, 0, len(scripts))
	for _, s := range scripts {
		if s.Description != "" {
			completions = append(completions, s.Name+"\t"+s.Description)
		} else {
			completions = append(completions, s.Name)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// renderIssue prints a known issue card to stderr. Rendering problems are
// swallowed: the card is advisory, the error itself still propagates.
func renderIssue(cmd *cobra.Command, id issue.Id) {
	iss := issue.Get(id)
	if iss == nil {
		return
	}
	card, err := iss.Render("dark")
	if err != nil {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), card)
}
