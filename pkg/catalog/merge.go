package catalog

// Clone deep-copies a node
func Clone(n *MessageNode) *MessageNode {
	if n == nil {
		return nil
	}
	out := *n
	out.Children = nil
	if len(n.Children) > 0 {
		out.Children = make([]*MessageNode, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = Clone(c)
		}
	}
	return &out
}

// MergeInto copies the children of src into dst. Entries already present in
// dst win; when both sides hold a container their children are merged.
func MergeInto(dst, src *MessageNode) {
	for _, c := range src.Children {
		existing := dst.Child(c.Key.String())
		switch {
		case existing == nil:
			dst.Children = append(dst.Children, Clone(c))
		case !existing.IsLeaf() && !c.IsLeaf():
			MergeInto(existing, c)
		}
	}
}
