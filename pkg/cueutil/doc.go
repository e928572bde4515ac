// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Both the bundlefile and the global config are CUE documents validated
// against an embedded schema. The package consolidates that 3-step flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema root definition
//  3. Validate and decode to a Go struct
//
// # Usage
//
//	//go:embed bundlefile_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.Decode[Bundlefile](
//	    schemaBytes,
//	    userFileBytes,
//	    "#Bundlefile",
//	    cueutil.WithFilename("bundlefile.cue"),
//	)
//	if err != nil {
//	    return nil, err // error includes the CUE path to the bad field
//	}
//	return result, nil
package cueutil
