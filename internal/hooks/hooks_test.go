// SPDX-License-Identifier: MPL-2.0

package hooks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mvdan.cc/sh/v3/interp"
)

func TestRunExecutesBuiltinsInDir(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(dir, WithStdIO(io.Discard, io.Discard))

	err := r.Run(context.Background(), "pre_build", "echo ready > marker.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "marker.txt"))
	if err != nil {
		t.Fatalf("hook did not run in work dir: %v", err)
	}
	if strings.TrimSpace(string(data)) != "ready" {
		t.Errorf("marker content = %q", data)
	}
}

func TestRunEmptyScriptIsNoOp(t *testing.T) {
	r := NewRunner(t.TempDir())
	if err := r.Run(context.Background(), "pre_build", "  \n "); err != nil {
		t.Fatalf("empty script must be a no-op, got %v", err)
	}
}

func TestRunSurfacesExitStatus(t *testing.T) {
	r := NewRunner(t.TempDir(), WithStdIO(io.Discard, io.Discard))

	err := r.Run(context.Background(), "post_build", "exit 3")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	var status interp.ExitStatus
	if !errors.As(err, &status) || int(status) != 3 {
		t.Errorf("expected exit status 3 in chain, got %v", err)
	}
	if !errors.Is(err, ErrHookFailed) {
		t.Errorf("expected ErrHookFailed in chain, got %v", err)
	}
	if !strings.Contains(err.Error(), "post_build") {
		t.Errorf("error does not name the hook: %v", err)
	}
}

func TestRunRejectsUnparsableScript(t *testing.T) {
	r := NewRunner(t.TempDir())
	err := r.Run(context.Background(), "pre_build", "if then fi (")
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestRunExtraEnv(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	r := NewRunner(dir, WithStdIO(&out, io.Discard), WithEnv("BUNDLE_NAME=CameraFinder"))

	if err := r.Run(context.Background(), "pre_build", "echo $BUNDLE_NAME"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "CameraFinder" {
		t.Errorf("env var not visible to hook: %q", out.String())
	}
}
