// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"pybundle-cli/internal/bundle"
	"pybundle-cli/internal/config"
	"pybundle-cli/internal/fetch"
	"pybundle-cli/internal/hooks"
	"pybundle-cli/internal/packager"
	"pybundle-cli/internal/pyenv"
	"pybundle-cli/pkg/bundlefile"
)

type (
	// Options are the per-invocation build knobs set by CLI flags.
	Options struct {
		// ModeOverride forces onefile or onedir; empty keeps the
		// bundlefile's choice.
		ModeOverride string
		SkipDeps     bool
		SkipFetch    bool
		NoClean      bool
		// Strict promotes asset-fetch failures and audit findings from
		// warnings to build failures.
		Strict bool
	}

	// Result is the outcome of a successful build.
	Result struct {
		Interpreter  *pyenv.Interpreter
		Artifact     *packager.Artifact
		PortablePath string
		Warnings     []string
		AuditSkipped bool
	}

	// Build runs the full packaging pipeline for one bundlefile. The
	// function fields are seams: production wiring is installed by
	// NewBuild and tests replace individual stages.
	Build struct {
		cfg    *config.Config
		bf     *bundlefile.Bundlefile
		opts   Options
		logger *log.Logger
		out    io.Writer

		findPython  func(ctx context.Context, override string) (*pyenv.Interpreter, error)
		installDeps func(ctx context.Context, py *pyenv.Interpreter, reqs []string) error
		fetchTool   func(ctx context.Context, tool *bundlefile.Tool, dir string) (bool, error)
		runHook     func(ctx context.Context, name, script string) error
		packageApp  func(ctx context.Context, python string, d *bundle.Descriptor) error
		verify      func(d *bundle.Descriptor) (*packager.Artifact, error)
		manifest    func(d *bundle.Descriptor) ([]string, error)
		export      func(d *bundle.Descriptor) (string, error)
		clean       func(d *bundle.Descriptor) ([]string, error)

		// state shared between steps
		interp   *pyenv.Interpreter
		desc     *bundle.Descriptor
		artifact *packager.Artifact
		portable string
		warnings []string
		skipped  bool
	}

	// BuildOption adjusts a Build after default wiring.
	BuildOption func(*Build)
)

// WithOutput directs subprocess and hook output to w.
func WithOutput(w io.Writer) BuildOption {
	return func(b *Build) {
		b.out = w
	}
}

// NewBuild wires a Build with production components.
func NewBuild(cfg *config.Config, bf *bundlefile.Bundlefile, logger *log.Logger, opts Options, extra ...BuildOption) *Build {
	b := &Build{
		cfg:    cfg,
		bf:     bf,
		opts:   opts,
		logger: logger,
		out:    os.Stdout,
	}

	b.findPython = pyenv.Find
	b.installDeps = func(ctx context.Context, py *pyenv.Interpreter, reqs []string) error {
		resolver := pyenv.NewResolver(py, pyenv.WithOutput(b.out, b.out))
		if err := resolver.UpgradePip(ctx); err != nil {
			return err
		}
		return resolver.Install(ctx, reqs)
	}
	b.fetchTool = func(ctx context.Context, tool *bundlefile.Tool, dir string) (bool, error) {
		timeout := time.Duration(cfg.Download.TimeoutSeconds) * time.Second
		return fetch.New(timeout, fetch.WithAttempts(cfg.Download.Attempts)).Fetch(ctx, tool, dir)
	}
	b.runHook = func(ctx context.Context, name, script string) error {
		runner := hooks.NewRunner(b.workDir(),
			hooks.WithStdIO(b.out, b.out),
			hooks.WithEnv("PYBUNDLE_NAME="+bf.Name, "PYBUNDLE_MODE="+bf.Mode))
		return runner.Run(ctx, name, script)
	}
	b.packageApp = func(ctx context.Context, python string, d *bundle.Descriptor) error {
		return packager.New(python, packager.WithOutput(b.out)).Build(ctx, d)
	}
	b.verify = packager.Verify
	b.manifest = packager.Manifest
	b.export = packager.Export
	b.clean = packager.Clean

	for _, opt := range extra {
		opt(b)
	}
	return b
}

// workDir is where the build runs: the bundlefile's directory.
func (b *Build) workDir() string {
	if b.bf.FilePath == "" {
		return "."
	}
	return filepath.Dir(b.bf.FilePath)
}

func (b *Build) strict() bool {
	return b.opts.Strict || b.cfg.StrictAssets
}

// Run executes the pipeline and returns the build result. The first
// failing step aborts the run.
func (b *Build) Run(ctx context.Context) (*Result, error) {
	steps := []Step{
		{Name: "clean", Skip: b.opts.NoClean, Run: b.stepClean},
		{Name: "check python", Run: b.stepFindPython},
		{Name: "resolve dependencies", Skip: b.opts.SkipDeps || len(b.bf.Requires) == 0, Run: b.stepDeps},
		{Name: "fetch tool", Skip: b.opts.SkipFetch || b.bf.Tool == nil, Run: b.stepFetch},
		{Name: "resolve descriptor", Run: b.stepResolve},
		{Name: "pre-build hook", Skip: b.preHook() == "", Run: b.stepPreHook},
		{Name: "package", Run: b.stepPackage},
		{Name: "verify artifact", Run: b.stepVerify},
		{Name: "audit bundle", Run: b.stepAudit},
		{Name: "export", Run: b.stepExport},
		{Name: "post-build hook", Skip: b.postHook() == "", Run: b.stepPostHook},
	}

	if err := NewRunner(b.logger).Run(ctx, steps); err != nil {
		return nil, err
	}

	return &Result{
		Interpreter:  b.interp,
		Artifact:     b.artifact,
		PortablePath: b.portable,
		Warnings:     b.warnings,
		AuditSkipped: b.skipped,
	}, nil
}

func (b *Build) preHook() string {
	if b.bf.Hooks == nil {
		return ""
	}
	return b.bf.Hooks.PreBuild
}

func (b *Build) postHook() string {
	if b.bf.Hooks == nil {
		return ""
	}
	return b.bf.Hooks.PostBuild
}

func (b *Build) stepClean(context.Context) error {
	// The pre-build descriptor is only used for clean targets; the real
	// one is resolved after the tool fetch.
	d := bundle.BuildDescriptor(b.bf, b.workDir(), bundle.WithModeOverride(b.opts.ModeOverride))
	removed, err := b.clean(d)
	if err != nil {
		return err
	}
	for _, path := range removed {
		b.logger.Debug("removed", "path", path)
	}
	return nil
}

func (b *Build) stepFindPython(ctx context.Context) error {
	interp, err := b.findPython(ctx, b.cfg.Python.Interpreter)
	if err != nil {
		return err
	}
	b.interp = interp
	b.logger.Info("python found", "path", interp.Path, "version", interp.Version)
	return nil
}

func (b *Build) stepDeps(ctx context.Context) error {
	return b.installDeps(ctx, b.interp, b.bf.Requires)
}

func (b *Build) stepFetch(ctx context.Context) error {
	fetched, err := b.fetchTool(ctx, b.bf.Tool, b.workDir())
	if err != nil {
		if b.strict() || b.bf.Tool.Required {
			return err
		}
		warning := fmt.Sprintf("tool fetch failed, continuing without %s: %v", b.bf.Tool.Name, err)
		b.warnings = append(b.warnings, warning)
		b.logger.Warn(warning)
		return nil
	}
	if fetched {
		b.logger.Info("tool downloaded", "tool", b.bf.Tool.Name)
	} else {
		b.logger.Debug("tool already present", "tool", b.bf.Tool.Name)
	}
	return nil
}

func (b *Build) stepResolve(context.Context) error {
	b.desc = bundle.BuildDescriptor(b.bf, b.workDir(), bundle.WithModeOverride(b.opts.ModeOverride))
	for _, w := range b.desc.Warnings {
		b.warnings = append(b.warnings, w)
		b.logger.Warn(w)
	}
	return nil
}

func (b *Build) stepPreHook(ctx context.Context) error {
	return b.runHook(ctx, "pre_build", b.preHook())
}

func (b *Build) stepPackage(ctx context.Context) error {
	return b.packageApp(ctx, b.interp.Path, b.desc)
}

func (b *Build) stepVerify(context.Context) error {
	artifact, err := b.verify(b.desc)
	if err != nil {
		return err
	}
	b.artifact = artifact
	b.logger.Info("artifact verified", "path", artifact.Path, "bytes", artifact.Size)
	return nil
}

func (b *Build) stepAudit(context.Context) error {
	manifest, err := b.manifest(b.desc)
	if err != nil {
		return err
	}

	report := bundle.Audit(b.desc, manifest)
	b.skipped = report.Skipped
	if report.Clean() {
		return nil
	}
	if b.strict() {
		return fmt.Errorf("bundle audit found %d problem(s): %s", len(report.Findings), report.Findings[0])
	}
	for _, finding := range report.Findings {
		b.warnings = append(b.warnings, finding)
		b.logger.Warn(finding)
	}
	return nil
}

func (b *Build) stepExport(context.Context) error {
	path, err := b.export(b.desc)
	if err != nil {
		return err
	}
	b.portable = path
	// A onedir export moves the dist directory, so the verified artifact
	// now lives at the portable path. Onefile keeps the dist original.
	if !b.desc.OneFile {
		b.artifact.Path = path
	}
	b.logger.Info("portable copy ready", "path", path)
	return nil
}

func (b *Build) stepPostHook(ctx context.Context) error {
	return b.runHook(ctx, "post_build", b.postHook())
}
