// SPDX-License-Identifier: MPL-2.0

package bundlefile

import (
	_ "embed"
	"fmt"
	"os"

	"pybundle-cli/pkg/cueutil"
)

//go:embed bundlefile_schema.cue
var bundlefileSchema []byte

// DefaultFileName is the bundlefile looked up when no path is given.
const DefaultFileName = "bundlefile.cue"

// Parse reads and parses a bundlefile from the given path.
func Parse(path string) (*Bundlefile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundlefile at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses bundlefile content from bytes. The data is unified with
// the embedded #Bundlefile schema, validated, and decoded; validation then
// applies Go-level checks the schema cannot express.
func ParseBytes(data []byte, path string) (*Bundlefile, error) {
	bf, err := cueutil.Decode[Bundlefile](
		bundlefileSchema,
		data,
		"#Bundlefile",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}

	bf.FilePath = path

	if err := bf.validate(); err != nil {
		return nil, err
	}
	return bf, nil
}
