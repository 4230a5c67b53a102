// SPDX-License-Identifier: MPL-2.0

package render

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/Specter099/ssmtree/internal/copier"
	"github.com/Specter099/ssmtree/internal/diff"
	"github.com/Specter099/ssmtree/internal/param"
)

// DiffTableOptions controls diff rendering.
type DiffTableOptions struct {
	// ShowValues adds per-namespace value columns.
	ShowValues bool
	// Decrypted allows SecureString values to be displayed.
	Decrypted bool
}

// DiffTable renders a namespace delta as a table. Rows are grouped by status
// (removed, added, changed) and ordered by path within each group.
func DiffTable(d diff.Delta, prefixA, prefixB string, opts DiffTableOptions) string {
	headers := []string{"Status", "Relative Path"}
	if opts.ShowValues {
		headers = append(headers, prefixA, prefixB)
	}

	t := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(branchStyle).
		Headers(headers...)

	styles := map[int]lipgloss.Style{}
	row := 0
	addRow := func(style lipgloss.Style, cells ...string) {
		t.Row(cells...)
		styles[row] = style
		row++
	}

	for _, p := range sortedParams(d.Removed) {
		rel := param.Relative(p.Path, prefixA)
		if opts.ShowValues {
			addRow(removedStyle, "removed", rel, displayValue(p, opts.Decrypted), "")
		} else {
			addRow(removedStyle, "removed", rel)
		}
	}
	for _, p := range sortedParams(d.Added) {
		rel := param.Relative(p.Path, prefixB)
		if opts.ShowValues {
			addRow(addedStyle, "added", rel, "", displayValue(p, opts.Decrypted))
		} else {
			addRow(addedStyle, "added", rel)
		}
	}
	changed := make([]diff.Change, len(d.Changed))
	copy(changed, d.Changed)
	sort.Slice(changed, func(i, j int) bool { return changed[i].Old.Path < changed[j].Old.Path })
	for _, c := range changed {
		rel := param.Relative(c.Old.Path, prefixA)
		if opts.ShowValues {
			addRow(changedStyle, "changed", rel,
				displayValue(c.Old, opts.Decrypted), displayValue(c.New, opts.Decrypted))
		} else {
			addRow(changedStyle, "changed", rel)
		}
	}

	t.StyleFunc(func(r, _ int) lipgloss.Style {
		if r == lgtable.HeaderRow {
			return headerStyle
		}
		if s, ok := styles[r]; ok {
			return s
		}
		return lipgloss.NewStyle()
	})

	title := headerStyle.Render(fmt.Sprintf("Diff: %s -> %s", prefixA, prefixB))
	return title + "\n" + t.String()
}

// CopyPlanTable renders the source-to-destination mapping a copy would
// perform, in ascending source-path order.
func CopyPlanTable(params []param.Parameter, sourcePrefix, destPrefix string) string {
	t := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(branchStyle).
		Headers("Source Path", "Dest Path", "Type").
		StyleFunc(func(r, c int) lipgloss.Style {
			if r == lgtable.HeaderRow {
				return headerStyle
			}
			if c == 2 {
				return kindTagStyle
			}
			return lipgloss.NewStyle()
		})

	for _, p := range sortedParams(params) {
		t.Row(p.Path, copier.Rewrite(p.Path, sourcePrefix, destPrefix), string(p.Kind))
	}

	title := headerStyle.Render(fmt.Sprintf("Copy plan: %s -> %s", sourcePrefix, destPrefix))
	return title + "\n" + t.String()
}

func sortedParams(params []param.Parameter) []param.Parameter {
	out := make([]param.Parameter, len(params))
	copy(out, params)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
