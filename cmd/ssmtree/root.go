// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for ssmtree.
//
// This package implements the Cobra command hierarchy: the root command
// renders a parameter namespace as a tree, with subcommands for diffing and
// copying namespaces and managing configuration.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Specter099/ssmtree/internal/config"
	"github.com/Specter099/ssmtree/internal/param"
	"github.com/Specter099/ssmtree/internal/render"
	"github.com/Specter099/ssmtree/internal/store"
	"github.com/Specter099/ssmtree/internal/tree"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Global flags
	verbose        bool
	profile        string
	region         string
	decrypt        bool
	outputFormat   string
	showValues     bool
	includeSecrets bool

	// Root-only flags
	filterPattern string

	cfg = config.DefaultConfig()

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "ssmtree",
	})

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "ssmtree [PATH]",
		Short: "Browse SSM Parameter Store namespaces as trees",
		Long: TitleStyle.Render("ssmtree") + SubtitleStyle.Render(" - Browse SSM Parameter Store namespaces as trees") + `

ssmtree fetches every parameter under a Parameter Store path and renders
the namespace as a tree, the way the slash-separated names imply. It can
also diff two namespaces and copy one namespace into another.

` + SubtitleStyle.Render("Examples:") + `
  ssmtree /prod/app                 Render the /prod/app subtree
  ssmtree /prod -f '*/db/*'         Only parameters matching a glob
  ssmtree /prod --show-values -d    Include decrypted values
  ssmtree diff /prod /staging       Compare two namespaces
  ssmtree copy /prod /staging       Copy a namespace`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRoot,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "AWS profile to use")
	rootCmd.PersistentFlags().StringVar(&region, "region", "", "AWS region to use")
	rootCmd.PersistentFlags().BoolVarP(&decrypt, "decrypt", "d", false, "decrypt SecureString values")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "tree", "output format (tree or json)")
	rootCmd.PersistentFlags().BoolVar(&showValues, "show-values", false, "show parameter values")
	rootCmd.PersistentFlags().BoolVar(&includeSecrets, "include-secrets", false, "include SecureString values in JSON output")

	rootCmd.Flags().StringVarP(&filterPattern, "filter", "f", "", "glob pattern applied to parameter paths")

	// Add subcommands
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(docsCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig loads the config file and applies it as defaults for any
// flag the user did not set explicitly.
func initRootConfig() {
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
	} else {
		cfg = loaded
	}

	flags := rootCmd.PersistentFlags()
	if !flags.Changed("profile") && cfg.Profile != "" {
		profile = cfg.Profile
	}
	if !flags.Changed("region") && cfg.Region != "" {
		region = cfg.Region
	}
	if !flags.Changed("output") && cfg.Output != "" {
		outputFormat = cfg.Output
	}
	if !flags.Changed("show-values") && cfg.ShowValues {
		showValues = cfg.ShowValues
	}

	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

// newStore builds an SSM-backed store from the effective flag values. It is
// a variable so tests can substitute a fake.
var newStore = func(ctx context.Context) (store.Interface, error) {
	return store.New(ctx, store.Options{
		Profile:     profile,
		Region:      region,
		MaxAttempts: cfg.MaxRetries,
		Logger:      logger,
	})
}

func validateOutputFormat() error {
	switch outputFormat {
	case "tree", "json":
		return nil
	default:
		return fmt.Errorf("invalid output format %q (expected tree or json)", outputFormat)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	path := "/"
	if len(args) == 1 {
		path = args[0]
	}
	if err := param.ValidatePath(path); err != nil {
		return err
	}
	if err := validateOutputFormat(); err != nil {
		return err
	}

	ctx := cmd.Context()
	st, err := newStore(ctx)
	if err != nil {
		return err
	}

	logger.Debug("fetching parameters", "path", path, "decrypt", decrypt)
	params, err := st.ListUnder(ctx, path, decrypt)
	if err != nil {
		return err
	}
	if len(params) == 0 {
		fmt.Println(SubtitleStyle.Render("No parameters found under " + path))
		return nil
	}

	root := tree.Build(params, path)
	if filterPattern != "" {
		root, err = tree.Filter(root, filterPattern)
		if err != nil {
			return err
		}
		if len(root.Children) == 0 && root.Record == nil {
			fmt.Println(SubtitleStyle.Render("No parameters match filter " + filterPattern))
			return nil
		}
	}

	if outputFormat == "json" {
		if includeSecrets {
			logger.Warn("JSON output includes SecureString values in plaintext")
		}
		data, err := render.RecordsJSON(root.Flatten(), includeSecrets)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(render.Tree(root, render.TreeOptions{
		ShowValues: showValues,
		Decrypted:  decrypt,
	}))
	return nil
}
