// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"strings"
	"testing"

	"pybundle-cli/pkg/bundlefile"
)

func TestRunInitCreatesBundlefile(t *testing.T) {
	t.Chdir(t.TempDir())
	origForce, origTemplate := initForce, initTemplate
	t.Cleanup(func() { initForce, initTemplate = origForce, origTemplate })
	initForce, initTemplate = false, "default"

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(bundlefile.DefaultFileName)
	if err != nil {
		t.Fatalf("bundlefile not created: %v", err)
	}
	if _, err := bundlefile.ParseBytes(data, bundlefile.DefaultFileName); err != nil {
		t.Errorf("generated bundlefile does not parse: %v", err)
	}
}

func TestRunInitRefusesOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())
	origForce := initForce
	t.Cleanup(func() { initForce = origForce })
	initForce = false

	if err := os.WriteFile(bundlefile.DefaultFileName, []byte("name: \"x\""), 0o644); err != nil {
		t.Fatal(err)
	}

	err := runInit(initCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}

	initForce = true
	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("force overwrite failed: %v", err)
	}
}
