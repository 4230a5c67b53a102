// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Specter099/ssmtree/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ssmtree configuration",
	Long: `Manage ssmtree configuration.

Configuration is stored in:
  - Linux: ~/.config/ssmtree/config.toml
  - macOS: ~/Library/Application Support/ssmtree/config.toml
  - Windows: %APPDATA%\ssmtree\config.toml

Every value can also be set via SSMTREE_* environment variables, e.g.
SSMTREE_REGION=eu-west-1.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault()
			if err != nil {
				return err
			}
			fmt.Println(SuccessStyle.Render("Created ") + path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(config.FilePath())
			return nil
		},
	})
}

func showConfig() error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	path := config.FilePath()
	if _, statErr := os.Stat(path); statErr == nil {
		fmt.Printf("%s: %s\n", KeyStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", KeyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	printEntry := func(key, value string) {
		if value == "" {
			value = SubtitleStyle.Render("(unset)")
		} else {
			value = SuccessStyle.Render(value)
		}
		fmt.Printf("%s: %s\n", KeyStyle.Render(key), value)
	}
	printEntry("profile", loaded.Profile)
	printEntry("region", loaded.Region)
	printEntry("output", loaded.Output)
	printEntry("show_values", fmt.Sprintf("%t", loaded.ShowValues))
	printEntry("max_retries", fmt.Sprintf("%d", loaded.MaxRetries))
	return nil
}
