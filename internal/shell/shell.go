// SPDX-License-Identifier: MPL-2.0

// Package shell runs workscript bodies in an embedded POSIX shell
// interpreter (mvdan.cc/sh). No external shell binary is involved, so
// script execution behaves the same on every platform.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/workscript/workscript/pkg/types"
)

// Job describes one shell execution.
type Job struct {
	// Script is the shell source to run.
	Script string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env is the full environment for the script. Nil means the process
	// environment.
	Env map[string]string
	// Args become the positional parameters ($1, $2, ...).
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Check parses the script without running it, reporting syntax errors.
func Check(script string) error {
	if strings.TrimSpace(script) == "" {
		return errors.New("script has no content")
	}
	if _, err := syntax.NewParser().Parse(strings.NewReader(script), "script"); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}

// Run executes the job and returns the script's exit code. A non-zero exit
// status is not an error here: the error return covers parse failures and
// interpreter-level trouble only.
func Run(ctx context.Context, job Job) (types.ExitCode, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(job.Script), "script")
	if err != nil {
		return 1, fmt.Errorf("failed to parse script: %w", err)
	}

	env := job.Env
	if env == nil {
		env = environMap()
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(envToSlice(env)...)),
		interp.StdIO(job.Stdin, job.Stdout, job.Stderr),
	}
	if job.Dir != "" {
		opts = append(opts, interp.Dir(job.Dir))
	}
	// Prepend "--" to signal end of options; without it args like "-v"
	// are read as shell options by interp.Params.
	if len(job.Args) > 0 {
		params := append([]string{"--"}, job.Args...)
		opts = append(opts, interp.Params(params...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return 1, fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return types.ExitCode(exitStatus), nil
		}
		return 1, fmt.Errorf("script execution failed: %w", err)
	}
	return 0, nil
}

func environMap() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}

func envToSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	return out
}
