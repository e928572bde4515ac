// SPDX-License-Identifier: MPL-2.0

// Package config handles the global pybundle configuration using Viper.
//
// The config file itself is CUE (config.cue in the platform config
// directory), validated against an embedded #Config schema before being
// merged into Viper on top of the built-in defaults. Everything in it is
// optional; a missing file is not an error.
package config
