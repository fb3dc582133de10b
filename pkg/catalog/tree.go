package catalog

import (
	"strconv"
	"strings"
)

// Format identifies the source syntax a tree was built from
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Position represents a location in the source document
type Position struct {
	Offset int `json:"offset"` // byte offset, 0-based
	Line   int `json:"line"`   // 1-based
	Column int `json:"column"` // 1-based
}

// Span covers [Start, End) of a source region
type Span struct {
	Start Position
	End   Position
}

// Contains reports whether offset falls inside the span
func (s Span) Contains(offset int) bool {
	return s.Start.Offset <= offset && offset < s.End.Offset
}

// Shift translates a span relative to an embedded document into the
// coordinates of the enclosing file whose content starts at base.
func (s Span) Shift(base Position) Span {
	return Span{Start: shift(s.Start, base), End: shift(s.End, base)}
}

func shift(p, base Position) Position {
	out := Position{
		Offset: base.Offset + p.Offset,
		Line:   base.Line + p.Line - 1,
		Column: p.Column,
	}
	if p.Line == 1 {
		out.Column = base.Column + p.Column - 1
	}
	return out
}

// Key is either a string property name or a list index
type Key struct {
	name    string
	index   int
	isIndex bool
}

// StringKey creates a property key
func StringKey(name string) Key { return Key{name: name} }

// IndexKey creates a list index key
func IndexKey(i int) Key { return Key{index: i, isIndex: true} }

// IsIndex reports whether the key is a list index
func (k Key) IsIndex() bool { return k.isIndex }

// Index returns the list index of an index key
func (k Key) Index() (int, bool) { return k.index, k.isIndex }

func (k Key) String() string {
	if k.isIndex {
		return strconv.Itoa(k.index)
	}
	return k.name
}

// Matches reports whether a lookup path segment addresses this key
func (k Key) Matches(segment string) bool {
	if k.isIndex {
		return segment == strconv.Itoa(k.index)
	}
	return k.name == segment
}

// MessageNode is one keyed entry of a catalog
type MessageNode struct {
	Key            Key
	Span           Span
	IsArrayElement bool
	Children       []*MessageNode

	// Value holds the scalar text of leaves
	Value    string
	HasValue bool
}

// IsLeaf reports whether the node has no children
func (n *MessageNode) IsLeaf() bool { return len(n.Children) == 0 }

// Child returns the child addressed by segment, or nil
func (n *MessageNode) Child(segment string) *MessageNode {
	for _, c := range n.Children {
		if c.Key.Matches(segment) {
			return c
		}
	}
	return nil
}

// add appends a child; a string key already present is replaced.
func (n *MessageNode) add(child *MessageNode) {
	if !child.Key.IsIndex() {
		for i, c := range n.Children {
			if !c.Key.IsIndex() && c.Key.name == child.Key.name {
				n.Children = append(n.Children[:i], n.Children[i+1:]...)
				break
			}
		}
	}
	n.Children = append(n.Children, child)
}

// Tree is a parsed catalog document
type Tree struct {
	Root   *MessageNode
	Source string
	Format Format
}

// NewTree returns an empty tree for source
func NewTree(source string, format Format) *Tree {
	return &Tree{Root: &MessageNode{}, Source: source, Format: format}
}

// Lookup walks segments from the root. It returns the deepest node reached
// and the number of segments matched.
func (t *Tree) Lookup(segments []string) (*MessageNode, int) {
	node := t.Root
	for i, seg := range segments {
		next := node.Child(seg)
		if next == nil {
			return node, i
		}
		node = next
	}
	return node, len(segments)
}

// Paths lists the dotted path of every node in document order
func (t *Tree) Paths() []string {
	var paths []string
	var walk func(n *MessageNode, prefix []string)
	walk = func(n *MessageNode, prefix []string) {
		for _, c := range n.Children {
			p := append(prefix[:len(prefix):len(prefix)], c.Key.String())
			paths = append(paths, JoinPath(p))
			walk(c, p)
		}
	}
	walk(t.Root, nil)
	return paths
}

// Leaves returns path/value pairs for every scalar leaf
func (t *Tree) Leaves() map[string]string {
	out := make(map[string]string)
	var walk func(n *MessageNode, prefix []string)
	walk = func(n *MessageNode, prefix []string) {
		for _, c := range n.Children {
			p := append(prefix[:len(prefix):len(prefix)], c.Key.String())
			if c.HasValue {
				out[JoinPath(p)] = c.Value
			}
			walk(c, p)
		}
	}
	walk(t.Root, nil)
	return out
}

// JoinPath renders segments as a dotted path
func JoinPath(segments []string) string {
	return strings.Join(segments, ".")
}
