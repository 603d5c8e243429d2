// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workscript/workscript/internal/config"
	"github.com/workscript/workscript/internal/discovery"
	"github.com/workscript/workscript/internal/issue"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scripts",
	Long: `List every script discovered from the current directory,
~/.workscript/scripts, and configured search paths, grouped by source.`,
	RunE: listScripts,
}

// listScripts displays all available scripts
func listScripts(cmd *cobra.Command, args []string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	cfg, _ := config.Get()
	disc := discovery.New(cfg)

	// Load everything first so parse errors surface next to the listing.
	files, err := disc.LoadAll()
	if err != nil {
		renderIssue(cmd, issue.ScriptFileNotFoundId)
		return err
	}

	for _, file := range files {
		if file.Error != nil {
			fmt.Fprintf(stderr, "%s Failed to parse %s: %v\n", ErrorStyle.Render("✗"), file.Path, file.Error)
		}
	}

	scripts, err := disc.DiscoverScripts()
	if err != nil {
		renderIssue(cmd, issue.ScriptFileNotFoundId)
		return err
	}

	if len(scripts) == 0 {
		renderIssue(cmd, issue.ScriptFileNotFoundId)
		return fmt.Errorf("no scripts found")
	}

	// Group scripts by source
	bySource := make(map[discovery.Source][]*discovery.ScriptInfo)
	for _, s := range scripts {
		bySource[s.Source] = append(bySource[s.Source], s)
	}

	fmt.Fprintln(stdout, TitleStyle.Render("Available Scripts"))
	fmt.Fprintln(stdout)

	sources := []discovery.Source{discovery.SourceCurrentDir, discovery.SourceUserDir, discovery.SourceConfigPath}
	for _, source := range sources {
		group := bySource[source]
		if len(group) == 0 {
			continue
		}

		fmt.Fprintln(stdout, SubtitleStyle.Italic(true).Render(fmt.Sprintf("From %s:", source.String())))

		for _, s := range group {
			line := fmt.Sprintf("  %s", ScriptStyle.Bold(true).Render(s.Name))
			if s.Description != "" {
				line += fmt.Sprintf(" - %s", VerboseStyle.Render(s.Description))
			}
			if n := len(s.Script.InputSpecs()); n > 0 {
				line += fmt.Sprintf(" (%s)", WarningStyle.Render(fmt.Sprintf("%d inputs", n)))
			}
			fmt.Fprintln(stdout, line)
		}
		fmt.Fprintln(stdout)
	}

	return nil
}
