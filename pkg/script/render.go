// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/workscript/workscript/pkg/workunit"
)

var (
	failureBannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	successStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mutedStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// RenderPolicy decides how each outcome tag is written to the terminal.
// Nil fields fall back to the default renderers.
type RenderPolicy struct {
	// Success renders a success outcome to stdout.
	Success func(w io.Writer, exit workunit.ExitSpec, value any)
	// Failure renders a failing outcome to stderr.
	Failure func(w io.Writer, exit workunit.ExitSpec, err error)
}

// withDefaults fills unset renderers; the receiver may be nil.
func (p *RenderPolicy) withDefaults() RenderPolicy {
	out := RenderPolicy{Success: renderSuccess, Failure: renderFailure}
	if p == nil {
		return out
	}
	if p.Success != nil {
		out.Success = p.Success
	}
	if p.Failure != nil {
		out.Failure = p.Failure
	}
	return out
}

// Run calls the work unit with the bound configuration and renders the
// outcome per the attached policy. The outcome is returned unmodified so a
// launcher can map it to a process exit code.
func (inv *Invocation) Run(ctx context.Context) workunit.Outcome {
	out := inv.inst.Call(ctx, inv.config)
	exit, _ := inv.inst.Exit(out.Exit())
	if out.IsSuccess() {
		inv.render.Success(inv.stdout, exit, out.Value())
	} else {
		inv.render.Failure(inv.stderr, exit, out.Err())
	}
	return out
}

// renderFailure prints the failure banner and the error's diagnostic
// detail — the full unwrap chain — in the muted style.
func renderFailure(w io.Writer, exit workunit.ExitSpec, err error) {
	label := exit.Name
	if label == "" {
		label = workunit.ExitError
	}
	fmt.Fprintln(w, failureBannerStyle.Render("✗ "+label))
	for _, line := range errorChain(err) {
		fmt.Fprintln(w, mutedStyle.Render("  "+line))
	}
}

// renderSuccess pretty-prints the produced value when the exit declares a
// structured output shape; otherwise (or when pretty-printing fails for any
// reason) it prints a generic affirmative line. Rendering must never break
// the success path.
func renderSuccess(w io.Writer, exit workunit.ExitSpec, value any) {
	if value != nil && exit.HasStructuredOutput() {
		if err := prettyPrint(w, value); err == nil {
			return
		}
	}
	fmt.Fprintln(w, successStyle.Render("✓ OK"))
}

// prettyPrint renders the value as a syntax-highlighted JSON document with
// no depth limit.
func prettyPrint(w io.Writer, value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render output value: %v", r)
		}
	}()

	doc, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	rendered, err := glamour.Render("```json\n"+string(doc)+"\n```", "auto")
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, rendered)
	return err
}

// errorChain flattens an error into the messages of its unwrap chain, most
// specific first. A nil error still yields one line so the banner is never
// left dangling.
func errorChain(err error) []string {
	if err == nil {
		return []string{"unknown error"}
	}
	lines := []string{err.Error()}
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		lines = append(lines, "caused by: "+cause.Error())
	}
	return lines
}
