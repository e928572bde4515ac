// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func stubLookup(t *testing.T, found map[string]string) {
	t.Helper()
	orig := lookPath
	lookPath = func(name string) (string, error) {
		if path, ok := found[name]; ok {
			return path, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
	t.Cleanup(func() { lookPath = orig })
}

func stubVersion(t *testing.T, output string) {
	t.Helper()
	orig := versionOutput
	versionOutput = func(_ context.Context, _ string) (string, error) {
		return output, nil
	}
	t.Cleanup(func() { versionOutput = orig })
}

func TestFindPrefersPython3(t *testing.T) {
	stubLookup(t, map[string]string{
		"python3": "/usr/bin/python3",
		"python":  "/usr/bin/python",
	})
	stubVersion(t, "Python 3.11.4\n")

	py, err := Find(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if py.Path != "/usr/bin/python3" {
		t.Errorf("expected python3 to win, got %q", py.Path)
	}
	if py.Version.String() != "3.11" {
		t.Errorf("unexpected version: %s", py.Version)
	}
}

func TestFindHonorsOverride(t *testing.T) {
	stubLookup(t, map[string]string{
		"/opt/py/bin/python": "/opt/py/bin/python",
		"python3":            "/usr/bin/python3",
	})
	stubVersion(t, "Python 3.12.0")

	py, err := Find(context.Background(), "/opt/py/bin/python")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if py.Path != "/opt/py/bin/python" {
		t.Errorf("override not honored, got %q", py.Path)
	}
}

func TestFindRejectsOldInterpreter(t *testing.T) {
	stubLookup(t, map[string]string{"python3": "/usr/bin/python3"})
	stubVersion(t, "Python 3.6.9")

	_, err := Find(context.Background(), "")
	if !errors.Is(err, ErrInterpreterTooOld) {
		t.Fatalf("expected ErrInterpreterTooOld, got %v", err)
	}
}

func TestFindNothingOnPath(t *testing.T) {
	stubLookup(t, nil)

	_, err := Find(context.Background(), "")
	if !errors.Is(err, ErrInterpreterNotFound) {
		t.Fatalf("expected ErrInterpreterNotFound, got %v", err)
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{"Python 3.11.4", Version{3, 11}, false},
		{"Python 3.7.0\n", Version{3, 7}, false},
		{"Python 2.7.18", Version{2, 7}, false},
		{"not python output", Version{}, true},
		{"Python three", Version{}, true},
		{"", Version{}, true},
	}
	for _, tt := range tests {
		got, err := ParseVersion(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseVersion(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVersion(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVersion(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVersionAtLeast(t *testing.T) {
	tests := []struct {
		v            Version
		major, minor int
		want         bool
	}{
		{Version{3, 7}, 3, 7, true},
		{Version{3, 11}, 3, 7, true},
		{Version{4, 0}, 3, 7, true},
		{Version{3, 6}, 3, 7, false},
		{Version{2, 7}, 3, 7, false},
	}
	for _, tt := range tests {
		if got := tt.v.AtLeast(tt.major, tt.minor); got != tt.want {
			t.Errorf("%v.AtLeast(%d, %d) = %v, want %v",
				tt.v, tt.major, tt.minor, got, tt.want)
		}
	}
}

func TestQueryVersionErrorIncludesPath(t *testing.T) {
	stubLookup(t, map[string]string{"python3": "/usr/bin/python3"})
	orig := versionOutput
	versionOutput = func(_ context.Context, path string) (string, error) {
		return "", fmt.Errorf("exec format error")
	}
	t.Cleanup(func() { versionOutput = orig })

	if _, err := Find(context.Background(), ""); err == nil {
		t.Fatal("expected error when version query fails for all candidates")
	}
}
