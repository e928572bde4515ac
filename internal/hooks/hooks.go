// SPDX-License-Identifier: MPL-2.0

// Package hooks runs the bundlefile's pre/post-build scripts in an
// embedded POSIX shell interpreter, so the same hook script behaves
// identically on Windows, macOS, and Linux.
package hooks

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
)

// ErrHookFailed tags hook script failures so the CLI layer can map them to
// remediation text.
var ErrHookFailed = errors.New("hook failed")

type (
	// Runner executes hook scripts in a fixed working directory.
	Runner struct {
		dir    string
		env    []string
		stdout io.Writer
		stderr io.Writer
	}

	// Option configures a Runner during construction.
	Option func(*Runner)
)

// WithStdIO directs hook output to the given writers.
func WithStdIO(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithEnv appends extra KEY=VALUE pairs to the hook environment.
func WithEnv(extra ...string) Option {
	return func(r *Runner) {
		r.env = append(r.env, extra...)
	}
}

// NewRunner creates a Runner rooted at dir. Hooks inherit the process
// environment plus anything added through WithEnv.
func NewRunner(dir string, opts ...Option) *Runner {
	r := &Runner{
		dir:    dir,
		env:    os.Environ(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run parses and executes the named hook script. The script's exit status
// is surfaced in the returned error; a nil return means the hook passed.
func (r *Runner) Run(ctx context.Context, name, script string) error {
	if strings.TrimSpace(script) == "" {
		return nil
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), name)
	if err != nil {
		return fmt.Errorf("%w: failed to parse %s hook: %w", ErrHookFailed, name, err)
	}

	runner, err := interp.New(
		interp.Dir(r.dir),
		interp.Env(expand.ListEnviron(r.env...)),
		interp.StdIO(nil, r.stdout, r.stderr),
	)
	if err != nil {
		return fmt.Errorf("failed to create hook interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return fmt.Errorf("%w: %s hook exited with status %d: %w", ErrHookFailed, name, int(status), err)
		}
		return fmt.Errorf("%w: %s hook: %w", ErrHookFailed, name, err)
	}
	return nil
}
