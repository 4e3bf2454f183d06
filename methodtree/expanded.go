package methodtree

import "github.com/erraggy/rpcdoc/internal/maputil"

// Expanded is the set of folder paths the user has opened. It is kept
// separate from the tree so toggling never rebuilds the structure.
type Expanded map[string]struct{}

// NewExpanded returns a set holding paths.
func NewExpanded(paths ...string) Expanded {
	e := make(Expanded, len(paths))
	for _, p := range paths {
		e[p] = struct{}{}
	}
	return e
}

// Has reports whether path is open.
func (e Expanded) Has(path string) bool {
	_, ok := e[path]
	return ok
}

// Paths returns the open paths in sorted order.
func (e Expanded) Paths() []string {
	return maputil.SortedKeys(e)
}

// ToggleFolder returns a new set with path added if it was absent from
// expanded, or removed if it was present. expanded is not modified.
func ToggleFolder(path string, expanded Expanded) Expanded {
	next := make(Expanded, len(expanded)+1)
	for p := range expanded {
		next[p] = struct{}{}
	}
	if _, open := expanded[path]; open {
		delete(next, path)
	} else {
		next[path] = struct{}{}
	}
	return next
}

// Materialize returns a copy of tree with every node's IsOpen stamped from
// membership of its FullPath in expanded. tree itself is left untouched;
// attached methods are shared with the copy.
func Materialize(tree *Node, expanded Expanded) *Node {
	if tree == nil {
		return nil
	}
	out := newNode(tree.Name, tree.FullPath)
	out.Method = tree.Method
	out.IsOpen = expanded.Has(tree.FullPath)
	for _, c := range tree.Children() {
		out.children.Set(c.Name, Materialize(c, expanded))
	}
	return out
}

// ExpandAll returns a set opening every folder in tree.
func ExpandAll(tree *Node) Expanded {
	e := Expanded{}
	tree.Walk(func(n *Node, _ int) bool {
		if n.IsFolder() {
			e[n.FullPath] = struct{}{}
		}
		return true
	})
	return e
}
