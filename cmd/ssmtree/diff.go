// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Specter099/ssmtree/internal/diff"
	"github.com/Specter099/ssmtree/internal/param"
	"github.com/Specter099/ssmtree/internal/render"
)

var diffCmd = &cobra.Command{
	Use:   "diff <PATH_A> <PATH_B>",
	Short: "Compare two parameter namespaces",
	Long: `Compare two parameter namespaces by their paths relative to each prefix.

Parameters present only under PATH_A are reported as removed, parameters
present only under PATH_B as added, and parameters present under both with
different values as changed.

Examples:
  ssmtree diff /prod/app /staging/app
  ssmtree diff /prod /staging --show-values -d
  ssmtree diff /prod /staging -o json`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	prefixA, prefixB := args[0], args[1]
	for _, p := range []string{prefixA, prefixB} {
		if err := param.ValidatePath(p); err != nil {
			return err
		}
	}
	format, err := diffOutputFormat(outputFormat, cmd.Flags().Changed("output"))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, err := newStore(ctx)
	if err != nil {
		return err
	}

	paramsA, err := st.ListUnder(ctx, prefixA, decrypt)
	if err != nil {
		return err
	}
	paramsB, err := st.ListUnder(ctx, prefixB, decrypt)
	if err != nil {
		return err
	}
	logger.Debug("diffing namespaces",
		"prefixA", prefixA, "countA", len(paramsA),
		"prefixB", prefixB, "countB", len(paramsB))

	delta := diff.Namespaces(paramsA, prefixA, paramsB, prefixB)

	if format == "json" {
		if includeSecrets {
			logger.Warn("JSON output includes SecureString values in plaintext")
		}
		data, err := render.DiffJSON(delta, includeSecrets)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if delta.Empty() {
		fmt.Println(SuccessStyle.Render("Namespaces are identical."))
		return nil
	}
	fmt.Println(render.DiffTable(delta, prefixA, prefixB, render.DiffTableOptions{
		ShowValues: showValues,
		Decrypted:  decrypt,
	}))
	return nil
}

// diffOutputFormat resolves the shared --output flag for diff, whose table
// view is named "table". The persistent default "tree" maps to "table" only
// when the user did not set the flag; an explicit -o tree is an error here.
func diffOutputFormat(format string, explicit bool) (string, error) {
	if format == "tree" && !explicit {
		return "table", nil
	}
	switch format {
	case "table", "json":
		return format, nil
	default:
		return "", fmt.Errorf("invalid output format %q for diff (expected table or json)", format)
	}
}
