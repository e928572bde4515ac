// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"pybundle-cli/pkg/bundlefile"
)

const (
	// maxArchiveBytes is the upper bound on the downloaded archive (500 MB).
	maxArchiveBytes = 500 << 20

	// defaultAttempts is the retry budget for the download.
	defaultAttempts = 3

	// defaultBackoff is the base delay between retries.
	defaultBackoff = 2 * time.Second
)

var (
	// ErrArchiveTooLarge indicates the download exceeded the size cap.
	ErrArchiveTooLarge = errors.New("archive exceeds size limit")

	// ErrDownloadFailed tags download failures so the CLI layer can map
	// them to remediation text.
	ErrDownloadFailed = errors.New("tool download failed")
)

type (
	// Fetcher downloads and extracts the external probe tool.
	Fetcher struct {
		client   *http.Client
		clk      clock
		attempts int
		backoff  time.Duration
	}

	// Option configures a Fetcher during construction.
	Option func(*Fetcher)
)

// WithHTTPClient sets a custom HTTP client, useful for tests or proxies.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithAttempts sets the retry budget.
func WithAttempts(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.attempts = n
		}
	}
}

// WithBackoff sets the base retry delay. Zero disables waiting, which
// tests use to retry without sleeping.
func WithBackoff(d time.Duration) Option {
	return func(f *Fetcher) {
		f.backoff = d
	}
}

// WithClock overrides the clock used for backoff waits.
func WithClock(c clock) Option {
	return func(f *Fetcher) {
		f.clk = c
	}
}

// New creates a Fetcher. timeout bounds each individual download attempt.
func New(timeout time.Duration, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: timeout},
		clk:      realClock{},
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Present reports whether the tool already exists, non-empty, in dir.
func Present(tool *bundlefile.Tool, dir string) bool {
	if tool == nil {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, tool.Name))
	return err == nil && !info.IsDir() && info.Size() > 0
}

// Fetch ensures the tool binary exists in dir. It returns true when a
// download actually happened and false when the existing binary was kept.
// Re-running with the tool already present is a no-op.
func (f *Fetcher) Fetch(ctx context.Context, tool *bundlefile.Tool, dir string) (bool, error) {
	if tool == nil {
		return false, errors.New("no tool declared in bundlefile")
	}
	if Present(tool, dir) {
		return false, nil
	}

	archive, err := f.download(ctx, tool.URL, dir)
	if err != nil {
		return false, err
	}
	defer os.Remove(archive)

	dest := filepath.Join(dir, tool.Name)
	size, err := extractMember(archive, tool.ArchiveMember(), dest)
	if err != nil {
		return false, fmt.Errorf("failed to extract %s: %w", tool.ArchiveMember(), err)
	}
	if size == 0 {
		os.Remove(dest)
		return false, fmt.Errorf("extracted %s is empty", tool.Name)
	}

	return true, nil
}

// download fetches url into a temporary file inside dir, retrying
// transient failures. The temp file path is returned; the caller removes it.
func (f *Fetcher) download(ctx context.Context, url, dir string) (string, error) {
	var path string

	err := retryWithBackoff(ctx, f.clk, f.attempts, f.backoff, func(attempt int) (bool, error) {
		p, retryable, err := f.downloadOnce(ctx, url, dir)
		if err != nil {
			return retryable, fmt.Errorf("download attempt %d: %w", attempt+1, err)
		}
		path = p
		return false, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrDownloadFailed, url, err)
	}
	return path, nil
}

// downloadOnce performs a single bounded download attempt. The second
// return value reports whether the failure is worth retrying.
func (f *Fetcher) downloadOnce(ctx context.Context, url, dir string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// Network-level failures are transient by assumption.
		return "", true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500:
		return "", true, fmt.Errorf("server returned %s", resp.Status)
	default:
		return "", false, fmt.Errorf("server returned %s", resp.Status)
	}

	tmp, err := os.CreateTemp(dir, "pybundle-download-*.zip")
	if err != nil {
		return "", false, fmt.Errorf("failed to create temp file: %w", err)
	}

	written, err := io.Copy(tmp, io.LimitReader(resp.Body, maxArchiveBytes+1))
	closeErr := tmp.Close()
	switch {
	case err != nil:
		os.Remove(tmp.Name())
		return "", true, fmt.Errorf("failed to read response: %w", err)
	case closeErr != nil:
		os.Remove(tmp.Name())
		return "", false, closeErr
	case written > maxArchiveBytes:
		os.Remove(tmp.Name())
		return "", false, ErrArchiveTooLarge
	case written == 0:
		os.Remove(tmp.Name())
		return "", true, errors.New("empty response body")
	}

	return tmp.Name(), false, nil
}
