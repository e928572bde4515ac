// SPDX-License-Identifier: MPL-2.0

// Package pyenv locates the Python interpreter and resolves the build's
// pip requirements.
//
// Installation mutates the shared interpreter environment; there is no
// rollback. A failed partial install can leave the environment inconsistent
// between runs, which the pipeline reports but does not repair. The
// lockfile support (pybundle.lock.toml) exists so builds can pin exact
// versions and re-create the same environment deliberately.
package pyenv
