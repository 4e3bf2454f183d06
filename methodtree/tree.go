package methodtree

import (
	"encoding/json"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/erraggy/rpcdoc/openrpc"
)

// Separator splits method names into namespace segments.
const Separator = "/"

// Node is one segment of the method namespace.
//
// A node with a Method is a leaf; a node with children is a folder. A node
// may be both when one method's name is a prefix of another's
// ("eth" and "eth/call"). The root has an empty Name and FullPath.
type Node struct {
	// Name is the last path segment.
	Name string
	// FullPath is the slash-joined path from the root.
	FullPath string
	// Method is the method whose name ends at this node, if any.
	Method *openrpc.Method
	// IsOpen is only meaningful on trees returned by Materialize.
	IsOpen bool

	children *orderedmap.OrderedMap[string, *Node]
}

func newNode(name, fullPath string) *Node {
	return &Node{
		Name:     name,
		FullPath: fullPath,
		children: orderedmap.New[string, *Node](),
	}
}

// Build constructs the namespace tree for methods.
//
// Each name is split on "/" and intermediate nodes are created on first
// sight, so children are ordered by the first method that introduced them.
// The method is attached to the node of its final segment; when two methods
// share a name the first one is kept. Nil methods are skipped.
func Build(methods []*openrpc.Method) *Node {
	root := newNode("", "")
	for _, m := range methods {
		if m == nil {
			continue
		}
		segments := strings.Split(m.Name, Separator)
		current := root
		for i, seg := range segments {
			child, ok := current.children.Get(seg)
			if !ok {
				child = newNode(seg, strings.Join(segments[:i+1], Separator))
				current.children.Set(seg, child)
			}
			current = child
		}
		if current.Method == nil {
			current.Method = m
		}
	}
	return root
}

// Child returns the direct child named segment, or nil.
func (n *Node) Child(segment string) *Node {
	if n == nil || n.children == nil {
		return nil
	}
	c, _ := n.children.Get(segment)
	return c
}

// Children returns the direct children in first-seen order.
func (n *Node) Children() []*Node {
	if n == nil || n.children == nil {
		return nil
	}
	out := make([]*Node, 0, n.children.Len())
	for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	if n == nil || n.children == nil {
		return 0
	}
	return n.children.Len()
}

// IsLeaf reports whether a method is attached to n.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Method != nil
}

// IsFolder reports whether n has children.
func (n *Node) IsFolder() bool {
	return n.Len() > 0
}

// Find returns the node at the slash-joined path, or nil. The empty path is
// the root itself.
func (n *Node) Find(path string) *Node {
	if path == "" {
		return n
	}
	current := n
	for _, seg := range strings.Split(path, Separator) {
		current = current.Child(seg)
		if current == nil {
			return nil
		}
	}
	return current
}

// Walk visits n and its descendants depth-first in child order. depth is 0
// for n. Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children() {
		c.walk(fn, depth+1)
	}
}

type nodeJSON struct {
	Name     string  `json:"name"`
	FullPath string  `json:"fullPath"`
	Method   string  `json:"method,omitempty"`
	Summary  string  `json:"summary,omitempty"`
	IsOpen   bool    `json:"isOpen"`
	Children []*Node `json:"children,omitempty"`
}

// MarshalJSON renders the node with its children as an ordered array.
// Attached methods are rendered by name and summary only.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{
		Name:     n.Name,
		FullPath: n.FullPath,
		IsOpen:   n.IsOpen,
		Children: n.Children(),
	}
	if n.Method != nil {
		out.Method = n.Method.Name
		out.Summary = n.Method.Summary
	}
	return json.Marshal(out)
}
