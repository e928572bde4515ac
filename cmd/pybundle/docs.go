// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"pybundle-cli/docs"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// docsCmd renders the embedded guide
var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Read the beginner guide in your terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rendered, err := glamour.Render(docs.Guide, "dark")
		if err != nil {
			// Fall back to the raw Markdown rather than failing.
			fmt.Fprint(cmd.OutOrStdout(), docs.Guide)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}
