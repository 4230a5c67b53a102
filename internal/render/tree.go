// SPDX-License-Identifier: MPL-2.0

package render

import (
	lgtree "github.com/charmbracelet/lipgloss/tree"

	"github.com/Specter099/ssmtree/internal/param"
	"github.com/Specter099/ssmtree/internal/tree"
)

// maxValueLen bounds displayed values so one long parameter cannot wreck the
// tree layout.
const maxValueLen = 60

const redactedLabel = "[redacted]"

// TreeOptions controls tree rendering.
type TreeOptions struct {
	// ShowValues includes parameter values next to their names.
	ShowValues bool
	// Decrypted indicates SecureString values were fetched in plaintext and
	// may be displayed; otherwise they render as a redaction placeholder.
	Decrypted bool
}

// Tree renders the parameter tree as styled, branch-drawn terminal output.
func Tree(root *tree.Node, opts TreeOptions) string {
	t := lgtree.Root(rootStyle.Render(root.Path)).
		Enumerator(lgtree.RoundedEnumerator).
		EnumeratorStyle(branchStyle)

	if root.Record != nil {
		t.Child(leafLabel(*root.Record, opts))
	}
	addChildren(t, root, opts)
	return t.String()
}

func addChildren(t *lgtree.Tree, node *tree.Node, opts TreeOptions) {
	for _, child := range node.SortedChildren() {
		if child.IsNamespace() {
			branch := lgtree.Root(namespaceLabel(child, opts))
			addChildren(branch, child, opts)
			t.Child(branch)
			continue
		}
		if child.Record != nil {
			t.Child(leafLabel(*child.Record, opts))
			continue
		}
		// A leaf without a record cannot come out of the builder, but the
		// filter may legitimately produce one at the root of an empty match.
		t.Child(kindTagStyle.Render(child.Name))
	}
}

// namespaceLabel renders a directory-style node, appending its own value
// when the namespace also carries a record.
func namespaceLabel(node *tree.Node, opts TreeOptions) string {
	label := namespaceStyle.Render(node.Name)
	if node.Record != nil && opts.ShowValues {
		display := displayValue(*node.Record, opts.Decrypted)
		style := valueStyle
		if display == redactedLabel {
			style = redactedStyle
		}
		label += "  " + style.Render("("+display+")")
	}
	return label
}

func leafLabel(p param.Parameter, opts TreeOptions) string {
	nameStyle := stringStyle
	switch {
	case p.IsSecure():
		nameStyle = secureStyle
	case p.IsStringList():
		nameStyle = listStyle
	}

	label := nameStyle.Render(p.Name) + " " + kindTagStyle.Render("["+string(p.Kind)+"]")
	if opts.ShowValues {
		display := displayValue(p, opts.Decrypted)
		style := valueStyle
		if display == redactedLabel {
			style = redactedStyle
		}
		label += "  " + style.Render(display)
	}
	return label
}

// displayValue redacts undecrypted SecureStrings and truncates long values.
func displayValue(p param.Parameter, decrypted bool) string {
	if p.IsSecure() && !decrypted {
		return redactedLabel
	}
	return truncate(p.Value)
}

// truncate shortens value to maxValueLen runes, never splitting a rune.
func truncate(value string) string {
	runes := []rune(value)
	if len(runes) <= maxValueLen {
		return value
	}
	return string(runes[:maxValueLen]) + "…"
}
