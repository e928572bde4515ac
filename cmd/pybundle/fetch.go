// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pybundle-cli/internal/fetch"
	"pybundle-cli/internal/issue"

	"github.com/spf13/cobra"
)

var (
	fetchForce bool

	// fetchCmd downloads the external tool binary
	fetchCmd = &cobra.Command{
		Use:   "fetch",
		Short: "Download the external tool binary",
		Long: `Download and extract the tool binary declared in the bundlefile.
Re-running with the binary already in place is a no-op unless --force
is given.`,
		RunE: runFetch,
	}
)

func init() {
	fetchCmd.Flags().BoolVarP(&fetchForce, "force", "f", false, "re-download even if the tool is present")
}

func runFetch(cmd *cobra.Command, _ []string) error {
	bf, err := loadBundlefile()
	if err != nil {
		return reportIssue(err)
	}
	if bf.Tool == nil {
		fmt.Println(SubtitleStyle.Render("No tool declared in the bundlefile; nothing to fetch."))
		return nil
	}

	dir := filepath.Dir(bf.FilePath)
	if fetchForce {
		if err := os.Remove(filepath.Join(dir, bf.Tool.Name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing tool: %w", err)
		}
	}

	timeout := time.Duration(appConfig.Download.TimeoutSeconds) * time.Second
	fetcher := fetch.New(timeout, fetch.WithAttempts(appConfig.Download.Attempts))

	fetched, err := fetcher.Fetch(cmd.Context(), bf.Tool, dir)
	if err != nil {
		return reportIssue(issue.NewErrorContext().
			WithOperation("fetch tool").
			WithResource(bf.Tool.URL).
			WithSuggestion("Check your network connection and retry").
			WithSuggestion("Download the archive manually and place the binary next to the bundlefile").
			Wrap(err).
			BuildError())
	}

	if fetched {
		fmt.Printf("%s Downloaded %s\n", SuccessStyle.Render("✓"), PathStyle.Render(filepath.Join(dir, bf.Tool.Name)))
	} else {
		fmt.Printf("%s %s already present\n", SuccessStyle.Render("✓"), bf.Tool.Name)
	}
	return nil
}
