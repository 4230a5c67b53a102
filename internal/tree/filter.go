// SPDX-License-Identifier: MPL-2.0

package tree

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Filter returns a new tree containing only nodes whose full path matches
// pattern, plus the namespace nodes needed to reach them.
//
// Pattern uses shell-glob syntax where '*' matches any run of characters
// including '/' (e.g. "*db*", "/app/*/db*"). A node whose own record matches
// keeps that record; a namespace kept only because a descendant matched has
// its record cleared. The root is always kept and the input tree is never
// modified.
func Filter(root *Node, pattern string) (*Node, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
	}

	filtered := &Node{
		Name:     root.Name,
		Path:     root.Path,
		Children: map[string]*Node{},
		Record:   root.Record,
	}
	for name, child := range root.Children {
		if kept := filterNode(child, g); kept != nil {
			filtered.Children[name] = kept
		}
	}
	return filtered, nil
}

// filterNode returns a filtered copy of node, or nil when neither the node
// nor any descendant matches.
func filterNode(node *Node, g glob.Glob) *Node {
	selfMatches := node.Record != nil && g.Match(node.Path)

	kept := map[string]*Node{}
	for name, child := range node.Children {
		if result := filterNode(child, g); result != nil {
			kept[name] = result
		}
	}

	if !selfMatches && len(kept) == 0 {
		return nil
	}

	out := &Node{Name: node.Name, Path: node.Path, Children: kept}
	if selfMatches {
		out.Record = node.Record
	}
	return out
}
