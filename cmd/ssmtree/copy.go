// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Specter099/ssmtree/internal/copier"
	"github.com/Specter099/ssmtree/internal/param"
	"github.com/Specter099/ssmtree/internal/render"
)

var (
	copyDryRun    bool
	copyOverwrite bool
	copyKMSKeyID  string
	copyYes       bool

	// progressOut receives the per-write progress counter. Stderr so that
	// piped stdout stays clean.
	progressOut io.Writer = os.Stderr

	copyCmd = &cobra.Command{
		Use:   "copy <SOURCE_PATH> <DEST_PATH>",
		Short: "Copy a parameter namespace to another prefix",
		Long: `Copy every parameter under SOURCE_PATH to the same relative path under
DEST_PATH. Pass --decrypt to fetch SecureString values in plaintext so they
are re-encrypted on write, optionally under a different KMS key; without it
the values are copied as fetched.

The copy is not transactional: each parameter is written independently and
failures are reported per path at the end.

Examples:
  ssmtree copy /prod/app /staging/app --dry-run
  ssmtree copy /prod/app /staging/app --decrypt --overwrite
  ssmtree copy /prod/app /staging/app --decrypt --kms-key-id alias/staging`,
		Args: cobra.ExactArgs(2),
		RunE: runCopy,
	}
)

func init() {
	copyCmd.Flags().BoolVar(&copyDryRun, "dry-run", false, "show the copy plan without writing anything")
	copyCmd.Flags().BoolVar(&copyOverwrite, "overwrite", false, "overwrite existing destination parameters")
	copyCmd.Flags().StringVar(&copyKMSKeyID, "kms-key-id", "", "KMS key for re-encrypting SecureString parameters")
	copyCmd.Flags().BoolVarP(&copyYes, "yes", "y", false, "skip the confirmation prompt")
}

func runCopy(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]
	for _, p := range []string{src, dst} {
		if err := param.ValidatePath(p); err != nil {
			return err
		}
	}
	if src == dst {
		return fmt.Errorf("source and destination are the same path %q", src)
	}

	ctx := cmd.Context()
	st, err := newStore(ctx)
	if err != nil {
		return err
	}

	params, err := st.ListUnder(ctx, src, decrypt)
	if err != nil {
		return err
	}
	if len(params) == 0 {
		fmt.Println(SubtitleStyle.Render("No parameters found under " + src))
		return nil
	}

	fmt.Println(render.CopyPlanTable(params, src, dst))
	if copyDryRun {
		return nil
	}

	if copyOverwrite {
		fmt.Println(WarningStyle.Render("Existing destination parameters will be overwritten."))
	}
	if !copyYes && !confirm(fmt.Sprintf("Copy %d parameter(s) to %s?", len(params), dst)) {
		fmt.Println(SubtitleStyle.Render("Aborted."))
		return nil
	}

	res := copier.Execute(ctx, params, src, dst, st, copier.Options{
		Overwrite: copyOverwrite,
		KMSKeyID:  copyKMSKeyID,
		Progress:  reportProgress,
	})

	fmt.Println(SuccessStyle.Render(fmt.Sprintf("Copied %d parameter(s).", len(res.Written))))
	if len(res.Failed) > 0 {
		for _, f := range res.Failed {
			fmt.Println(ErrorStyle.Render("failed: ") + f.Path + SubtitleStyle.Render(" ("+f.Reason+")"))
		}
		return &ExitError{
			Code: 1,
			Err:  fmt.Errorf("%d of %d writes failed", len(res.Failed), len(params)),
		}
	}
	return nil
}

// reportProgress redraws a single counter line after every write.
func reportProgress(done, total int) {
	fmt.Fprintf(progressOut, "\r%s", SubtitleStyle.Render(fmt.Sprintf("Copying %d/%d", done, total)))
	if done == total {
		fmt.Fprintln(progressOut)
	}
}

// newConfirmForm builds the yes/no form; the bound value defaults to no.
func newConfirmForm(prompt string) (*huh.Form, *bool) {
	confirmed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(prompt).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed),
	))
	return form, &confirmed
}

// confirm asks a yes/no question, defaulting to no. A cancelled or failed
// prompt counts as no.
func confirm(prompt string) bool {
	form, confirmed := newConfirmForm(prompt)
	if err := form.Run(); err != nil {
		return false
	}
	return *confirmed
}
