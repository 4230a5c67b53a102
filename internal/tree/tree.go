// SPDX-License-Identifier: MPL-2.0

// Package tree builds a hierarchical view of a flat parameter list, keyed by
// slash-separated path segments, and filters it with glob patterns.
package tree

import (
	"sort"
	"strings"

	"github.com/Specter099/ssmtree/internal/param"
)

// Node is a single segment in the parameter path tree.
//
// A node with children acts as a namespace; a node without children is a
// leaf. A node may be both a namespace and carry a record when a parameter
// exists at a path that is also a prefix of other parameters.
type Node struct {
	// Name is the display label, i.e. the path segment this node represents.
	Name string
	// Path is the full path up to and including this segment.
	Path string
	// Children maps segment name to child node. Iteration order is not
	// defined; use SortedChildren for deterministic traversal.
	Children map[string]*Node
	// Record is set when a parameter exists at exactly this path.
	Record *param.Parameter
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// IsNamespace reports whether the node has at least one child.
func (n *Node) IsNamespace() bool { return len(n.Children) > 0 }

// SortedChildren returns the children ordered by name ascending.
func (n *Node) SortedChildren() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Flatten returns every record carried by the subtree rooted at n, ordered
// by path ascending.
func (n *Node) Flatten() []param.Parameter {
	var out []param.Parameter
	n.walk(func(node *Node) {
		if node.Record != nil {
			out = append(out, *node.Record)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}

// Build converts a flat parameter list into a tree rooted at rootPath.
//
// Every intermediate path segment becomes a Node; a node's Record is set
// when a parameter exists at that exact path. Parameters outside the
// rootPath subtree are silently skipped. Insertion order does not affect the
// resulting shape.
func Build(params []param.Parameter, rootPath string) *Node {
	rootPath = normalizeRoot(rootPath)
	root := &Node{Name: rootPath, Path: rootPath, Children: map[string]*Node{}}

	// Index by path so intermediate nodes pick up their record even when it
	// has not been inserted yet.
	byPath := make(map[string]*param.Parameter, len(params))
	for i := range params {
		byPath[params[i].Path] = &params[i]
	}

	for i := range params {
		insert(root, &params[i], rootPath, byPath)
	}
	return root
}

func normalizeRoot(rootPath string) string {
	rootPath = strings.TrimRight(rootPath, "/")
	if rootPath == "" {
		return "/"
	}
	return rootPath
}

func insert(root *Node, p *param.Parameter, rootPath string, byPath map[string]*param.Parameter) {
	var relative string
	if rootPath == "/" {
		relative = strings.TrimLeft(p.Path, "/")
	} else {
		switch {
		case strings.HasPrefix(p.Path, rootPath+"/"):
			relative = p.Path[len(rootPath)+1:]
		case p.Path == rootPath:
			root.Record = p
			return
		default:
			return // outside the root subtree
		}
	}

	if relative == "" {
		root.Record = p
		return
	}

	current := root
	accumulated := strings.TrimRight(rootPath, "/")
	for _, segment := range strings.Split(relative, "/") {
		accumulated += "/" + segment
		child, ok := current.Children[segment]
		if !ok {
			child = &Node{
				Name:     segment,
				Path:     accumulated,
				Children: map[string]*Node{},
				Record:   byPath[accumulated],
			}
			current.Children[segment] = child
		}
		current = child
	}
}
