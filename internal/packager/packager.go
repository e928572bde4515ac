// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"pybundle-cli/internal/bundle"
)

var (
	// ErrArtifactMissing indicates PyInstaller exited successfully but the
	// expected output path does not exist. A build is only a success when
	// the artifact is actually on disk.
	ErrArtifactMissing = errors.New("expected artifact not found")

	// ErrPyInstallerFailed tags packaging subprocess failures so the CLI
	// layer can map them to remediation text.
	ErrPyInstallerFailed = errors.New("pyinstaller failed")
)

type (
	// Packager shells out to PyInstaller through the resolved Python
	// interpreter.
	Packager struct {
		python string
		out    io.Writer
		errOut io.Writer
		run    runFunc
	}

	// runFunc executes the interpreter; swapped out in tests.
	runFunc func(ctx context.Context, python string, args []string, dir string, stdout, stderr io.Writer) error

	// Option configures a Packager during construction.
	Option func(*Packager)

	// Artifact describes a verified build output.
	Artifact struct {
		Path string
		Size int64
	}
)

// WithOutput directs subprocess stdout/stderr to w.
func WithOutput(w io.Writer) Option {
	return func(p *Packager) {
		p.out = w
		p.errOut = w
	}
}

// WithRunFunc replaces the subprocess runner.
func WithRunFunc(run runFunc) Option {
	return func(p *Packager) {
		p.run = run
	}
}

// New creates a Packager bound to the given interpreter path.
func New(python string, opts ...Option) *Packager {
	p := &Packager{
		python: python,
		out:    os.Stdout,
		errOut: os.Stderr,
		run:    runCommand,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func runCommand(ctx context.Context, python string, args []string, dir string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, python, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Build writes the spec file and runs PyInstaller over it. The subprocess
// output streams to the operator; a non-zero exit is propagated verbatim.
func (p *Packager) Build(ctx context.Context, d *bundle.Descriptor) error {
	spec := bundle.RenderSpec(d)
	if err := os.WriteFile(d.SpecFilePath(), []byte(spec), 0o644); err != nil {
		return fmt.Errorf("failed to write spec file: %w", err)
	}

	args := []string{"-m", "PyInstaller", d.SpecFileName(), "--clean", "--noconfirm"}
	if err := p.run(ctx, p.python, args, d.WorkDir, p.out, p.errOut); err != nil {
		return fmt.Errorf("%w: %w", ErrPyInstallerFailed, err)
	}
	return nil
}

// Verify checks that the build produced the expected artifact. PyInstaller
// can exit zero and still write nothing useful, so existence on disk is the
// only success criterion.
func Verify(d *bundle.Descriptor) (*Artifact, error) {
	target := DistPath(d)
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, target)
	}

	if d.OneFile {
		if info.IsDir() || info.Size() == 0 {
			return nil, fmt.Errorf("%w: %s is not a usable executable", ErrArtifactMissing, target)
		}
		return &Artifact{Path: target, Size: info.Size()}, nil
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrArtifactMissing, target)
	}
	exe := filepath.Join(target, d.ArtifactName+ExeSuffix())
	if _, err := os.Stat(exe); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, exe)
	}
	size, err := dirSize(target)
	if err != nil {
		return nil, err
	}
	return &Artifact{Path: target, Size: size}, nil
}

// Export places the portable convenience copy at the top of the work
// directory: <Name>_Portable[.exe] for onefile, <Name>_Portable/ for
// onedir. An existing copy from a previous run is replaced.
func Export(d *bundle.Descriptor) (string, error) {
	src := DistPath(d)
	dest := PortablePath(d)

	if err := os.RemoveAll(dest); err != nil {
		return "", fmt.Errorf("failed to replace previous export: %w", err)
	}

	if d.OneFile {
		if err := copyFile(src, dest); err != nil {
			return "", fmt.Errorf("failed to export artifact: %w", err)
		}
		return dest, nil
	}

	if err := os.Rename(src, dest); err != nil {
		return "", fmt.Errorf("failed to export artifact: %w", err)
	}
	return dest, nil
}

// DistPath returns where PyInstaller places the artifact for d.
func DistPath(d *bundle.Descriptor) string {
	if d.OneFile {
		return filepath.Join(d.WorkDir, "dist", d.ArtifactName+ExeSuffix())
	}
	return filepath.Join(d.WorkDir, "dist", d.ArtifactName)
}

// PortablePath returns the top-level convenience copy location for d.
func PortablePath(d *bundle.Descriptor) string {
	name := d.ArtifactName + "_Portable"
	if d.OneFile {
		name += ExeSuffix()
	}
	return filepath.Join(d.WorkDir, name)
}

// ExeSuffix returns ".exe" on Windows and "" elsewhere.
func ExeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}

func dirSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}
