// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/workscript/workscript/pkg/scriptfile"
)

var (
	initForce    bool
	initTemplate string

	// initCmd creates a new workscript file
	initCmd = &cobra.Command{
		Use:   "init [filename]",
		Short: "Create a new workscript file in the current directory",
		Long: `Create a new workscript file in the current directory with example
scripts to help you get started quickly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing workscript file")
	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "default", "template to use (default, minimal)")
}

func runInit(cmd *cobra.Command, args []string) error {
	filename := scriptfile.CUEFileName
	if len(args) > 0 {
		filename = args[0]
	}

	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	content := generateScriptFile(initTemplate)

	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	stdout := cmd.OutOrStdout()
	absPath, _ := filepath.Abs(filename)
	fmt.Fprintf(stdout, "%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, SubtitleStyle.Render("Next steps:"))
	fmt.Fprintln(stdout, "  1. Edit the workscript file to declare your scripts")
	fmt.Fprintln(stdout, "  2. Run 'workscript list' to see available scripts")
	fmt.Fprintln(stdout, "  3. Run 'workscript run <script>' to execute one")

	return nil
}

func generateScriptFile(template string) string {
	switch template {
	case "minimal":
		return `scripts: {
	hello: {
		description: "Print a greeting"
		script: "echo 'Hello from workscript!'"
	}
}
`
	default:
		return `scripts: {
	greet: {
		description: "Print a personalized greeting"
		inputs: {
			name: {
				example:     "world"
				description: "Who to greet"
			}
			shout: {
				example:     false
				description: "Uppercase the greeting"
			}
		}
		script: """
			greeting="hello $WS_NAME"
			if [ "$WS_SHOUT" = "true" ]; then
				greeting=$(echo "$greeting" | tr '[:lower:]' '[:upper:]')
			fi
			echo "$greeting"
			"""
	}

	disk_usage: {
		description: "Report disk usage of a directory"
		inputs: {
			path: {example: "."}
		}
		exits: {
			success: {
				description: "Usage in kilobytes"
				example:     42
			}
			missing: {
				description: "The directory does not exist"
				code:        3
			}
		}
		script: """
			if [ ! -d "$WS_PATH" ]; then
				exit 3
			fi
			du -sk "$WS_PATH" | cut -f1
			"""
	}
}
`
	}
}
