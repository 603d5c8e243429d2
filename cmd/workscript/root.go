// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for workscript.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/workscript/workscript/internal/config"
	"github.com/workscript/workscript/internal/issue"
	"github.com/workscript/workscript/internal/logging"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// noColor disables styled output
	noColor bool

	// logger is the shared diagnostic logger; rebuilt once flags and
	// config have been read.
	logger *charmlog.Logger = logging.New(os.Stderr, false)

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "workscript",
		Short: "Run declarative shell scripts as first-class CLI programs",
		Long: TitleStyle.Render("workscript") + SubtitleStyle.Render(" - declarative shell scripts as CLI programs") + `

workscript turns a declared unit of work - named inputs with example
values, named exit channels, and a shell body - into a runnable program
with derived flags, environment variable lookup, positional arguments,
and example-based type coercion.

Scripts are defined in 'workscript.cue' files (or '*.ws.hcl') and
discovered from the current directory, ~/.workscript/scripts, and
configured search paths.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a workscript file: workscript init
  2. Declare scripts with inputs and exits
  3. Run them: workscript run <script> [flags]

` + SubtitleStyle.Render("Examples:") + `
  workscript list               List all available scripts
  workscript run greet --name=world
  workscript show greet         Show inputs, exits, and derived flags
  workscript validate           Check workscript files for problems`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/workscript/config.cue)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, err := config.Get()
	if err != nil {
		// Config problems must never block a run; warn and fall back to defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
	if cfg != nil && !noColor {
		noColor = cfg.UI.NoColor
	}

	if noColor {
		// lipgloss, glamour, and charmbracelet/log all honor NO_COLOR.
		os.Setenv("NO_COLOR", "1")
	}

	logger = logging.New(os.Stderr, verbose)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
