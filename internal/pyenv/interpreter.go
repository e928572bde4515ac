// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Minimum interpreter version accepted by the pipeline.
const (
	MinMajor = 3
	MinMinor = 7
)

var (
	// ErrInterpreterNotFound indicates no Python binary was found on PATH.
	ErrInterpreterNotFound = errors.New("python interpreter not found")

	// ErrInterpreterTooOld indicates the found interpreter predates 3.7.
	ErrInterpreterTooOld = errors.New("python interpreter too old")

	// candidates are tried in order when no override is configured.
	// "py" is the Windows launcher.
	candidates = []string{"python3", "python", "py"}

	// Test seams for PATH lookup and subprocess output.
	lookPath      = exec.LookPath
	versionOutput = func(ctx context.Context, path string) (string, error) {
		out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
		return string(out), err
	}
)

type (
	// Interpreter is a located, version-checked Python binary.
	Interpreter struct {
		Path    string
		Version Version
	}

	// Version is a parsed major.minor interpreter version.
	Version struct {
		Major int
		Minor int
	}
)

// String formats the version as "3.11".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v is >= major.minor.
func (v Version) AtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// Find locates a usable Python interpreter. An explicit override (from the
// global config) wins over PATH lookup; the first candidate that exists and
// reports version >= 3.7 is returned.
func Find(ctx context.Context, override string) (*Interpreter, error) {
	names := candidates
	if override != "" {
		names = []string{override}
	}

	var lastErr error
	for _, name := range names {
		path, err := lookPath(name)
		if err != nil {
			lastErr = err
			continue
		}

		version, err := queryVersion(ctx, path)
		if err != nil {
			lastErr = err
			continue
		}

		if !version.AtLeast(MinMajor, MinMinor) {
			return nil, fmt.Errorf("%w: %s is Python %s, need %d.%d+",
				ErrInterpreterTooOld, path, version, MinMajor, MinMinor)
		}

		return &Interpreter{Path: path, Version: version}, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInterpreterNotFound, lastErr)
	}
	return nil, ErrInterpreterNotFound
}

// queryVersion runs `<python> --version` and parses the reported version.
func queryVersion(ctx context.Context, path string) (Version, error) {
	out, err := versionOutput(ctx, path)
	if err != nil {
		return Version{}, fmt.Errorf("failed to query %s version: %w", path, err)
	}
	return ParseVersion(out)
}

// ParseVersion parses interpreter version output such as "Python 3.11.4".
func ParseVersion(out string) (Version, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) < 2 || fields[0] != "Python" {
		return Version{}, fmt.Errorf("unrecognized version output: %q", strings.TrimSpace(out))
	}

	parts := strings.Split(fields[1], ".")
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("unrecognized version number: %q", fields[1])
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("unrecognized major version in %q", fields[1])
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("unrecognized minor version in %q", fields[1])
	}

	return Version{Major: major, Minor: minor}, nil
}
