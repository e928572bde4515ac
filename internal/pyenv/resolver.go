// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// ErrInstallFailed tags pip failures so the CLI layer can map them to
// remediation text.
var ErrInstallFailed = errors.New("pip install failed")

type (
	// Resolver installs pip requirements into the interpreter environment.
	Resolver struct {
		py     *Interpreter
		stdout io.Writer
		stderr io.Writer
		run    runFunc
	}

	// ResolverOption configures a Resolver during construction.
	ResolverOption func(*Resolver)

	// runFunc executes the interpreter with the given arguments. It exists
	// so tests can observe invocations without a real Python install.
	runFunc func(ctx context.Context, python string, args []string, stdout, stderr io.Writer) error
)

// WithOutput directs subprocess output to the given writers.
func WithOutput(stdout, stderr io.Writer) ResolverOption {
	return func(r *Resolver) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithRunFunc overrides subprocess execution, primarily for tests.
func WithRunFunc(run runFunc) ResolverOption {
	return func(r *Resolver) {
		r.run = run
	}
}

// NewResolver creates a Resolver bound to a located interpreter.
func NewResolver(py *Interpreter, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		py:     py,
		stdout: io.Discard,
		stderr: io.Discard,
		run:    runPython,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// runPython executes the interpreter as a subprocess.
func runPython(ctx context.Context, python string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, python, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// UpgradePip brings pip itself up to date before any installs.
func (r *Resolver) UpgradePip(ctx context.Context) error {
	args := []string{"-m", "pip", "install", "--upgrade", "pip", "--quiet"}
	if err := r.run(ctx, r.py.Path, args, r.stdout, r.stderr); err != nil {
		return fmt.Errorf("%w: could not upgrade pip: %w", ErrInstallFailed, err)
	}
	return nil
}

// Install installs each requirement in order, failing fast on the first
// error. Re-running with already-satisfied requirements is a no-op at the
// pip level. A failure partway through leaves earlier installs in place;
// the environment is shared state with no rollback.
func (r *Resolver) Install(ctx context.Context, reqs []string) error {
	for _, req := range reqs {
		args := []string{"-m", "pip", "install", req, "--quiet"}
		if err := r.run(ctx, r.py.Path, args, r.stdout, r.stderr); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInstallFailed, req, err)
		}
	}
	return nil
}

// Installed returns the name → version map of every package visible to the
// interpreter, from `pip list --format=json`.
func (r *Resolver) Installed(ctx context.Context) (map[string]string, error) {
	var buf bytes.Buffer
	args := []string{"-m", "pip", "list", "--format=json"}
	if err := r.run(ctx, r.py.Path, args, &buf, r.stderr); err != nil {
		return nil, fmt.Errorf("failed to list installed packages: %w", err)
	}

	var entries []struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
		return nil, fmt.Errorf("failed to parse pip list output: %w", err)
	}

	installed := make(map[string]string, len(entries))
	for _, e := range entries {
		installed[e.Name] = e.Version
	}
	return installed, nil
}
