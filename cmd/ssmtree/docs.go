// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed usage.md
var usageMarkdown string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the usage guide",
	Long:  "Render the ssmtree usage guide in the terminal.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := glamour.Render(usageMarkdown, "auto")
		if err != nil {
			// Fall back to plain markdown rather than failing the command.
			fmt.Print(usageMarkdown)
			return nil
		}
		fmt.Print(out)
		return nil
	},
}
