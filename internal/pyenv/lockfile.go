// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"fmt"
	"os"
	"sort"

	"pybundle-cli/pkg/bundlefile"

	"github.com/pelletier/go-toml/v2"
)

// LockFileName is the pinned-requirements manifest written next to the
// bundlefile.
const LockFileName = "pybundle.lock.toml"

// Lock pins the resolved version of every build requirement so later
// builds can re-create the same environment instead of mutating the shared
// one with whatever pip resolves that day.
type Lock struct {
	// Packages maps requirement name to the exact installed version.
	Packages map[string]string `toml:"packages"`
}

// NewLock builds a Lock for the given requirements from the installed
// package map. Requirements missing from the environment are an error; the
// lockfile must never record a package that is not actually installed.
func NewLock(reqs []string, installed map[string]string) (*Lock, error) {
	lock := &Lock{Packages: make(map[string]string, len(reqs))}
	for _, req := range reqs {
		name := bundlefile.RequirementName(req)
		version, ok := installed[name]
		if !ok {
			return nil, fmt.Errorf("requirement %s is not installed, cannot lock", name)
		}
		lock.Packages[name] = version
	}
	return lock, nil
}

// Requirements returns the pinned entries as "name==version", sorted by
// name for deterministic output.
func (l *Lock) Requirements() []string {
	names := make([]string, 0, len(l.Packages))
	for name := range l.Packages {
		names = append(names, name)
	}
	sort.Strings(names)

	reqs := make([]string, 0, len(names))
	for _, name := range names {
		reqs = append(reqs, name+"=="+l.Packages[name])
	}
	return reqs
}

// WriteLock writes the lockfile to path.
func WriteLock(path string, lock *Lock) error {
	data, err := toml.Marshal(lock)
	if err != nil {
		return fmt.Errorf("failed to encode lockfile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write lockfile: %w", err)
	}
	return nil
}

// ReadLock reads a lockfile from path.
func ReadLock(path string) (*Lock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile at %s: %w", path, err)
	}

	var lock Lock
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("failed to parse lockfile at %s: %w", path, err)
	}
	return &lock, nil
}
