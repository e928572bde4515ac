// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// maxMemberBytes is the upper bound on the extracted tool binary (200 MB).
// Prevents decompression bombs.
const maxMemberBytes = 200 << 20

// ErrMemberNotFound indicates the archive does not contain the requested
// member under any directory.
var ErrMemberNotFound = errors.New("member not found in archive")

// extractMember finds member inside the zip at archivePath (matching on
// base name anywhere in the tree, the way release archives nest binaries
// under versioned directories) and writes it to dest with executable
// permissions. Returns the number of bytes written.
func extractMember(archivePath, member, dest string) (int64, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	for _, file := range r.File {
		if file.FileInfo().IsDir() || filepath.Base(file.Name) != member {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return 0, fmt.Errorf("failed to open archive member: %w", err)
		}
		defer src.Close()

		out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o755)
		if err != nil {
			return 0, fmt.Errorf("failed to create %s: %w", dest, err)
		}

		written, err := io.Copy(out, io.LimitReader(src, maxMemberBytes+1))
		closeErr := out.Close()
		if err != nil {
			os.Remove(dest)
			return 0, fmt.Errorf("failed to extract member: %w", err)
		}
		if closeErr != nil {
			os.Remove(dest)
			return 0, closeErr
		}
		if written > maxMemberBytes {
			os.Remove(dest)
			return 0, fmt.Errorf("member %s exceeds size limit", member)
		}
		return written, nil
	}

	return 0, fmt.Errorf("%w: %s", ErrMemberNotFound, member)
}
