package catalog

// keyFrame is one level of an in-progress traversal
type keyFrame struct {
	node     *MessageNode
	inLocale bool
	// detached frames have no key of their own
	detached bool
	upper    *keyFrame
}

// KeyStack tracks the nesting of the node being built and whether that level
// is already inside a locale's message root. It lives only for the duration
// of one Builder traversal.
type KeyStack struct {
	top   *keyFrame
	depth int
}

// Push adds a frame for node
func (s *KeyStack) Push(node *MessageNode, inLocale bool) {
	s.top = &keyFrame{node: node, inLocale: inLocale, upper: s.top}
	s.depth++
}

// PushDetached adds a keyless frame for node. It does not appear in Path.
func (s *KeyStack) PushDetached(node *MessageNode, inLocale bool) {
	s.Push(node, inLocale)
	s.top.detached = true
}

// Pop removes the top frame
func (s *KeyStack) Pop() {
	if s.top == nil {
		return
	}
	s.top = s.top.upper
	s.depth--
}

// Node returns the node of the top frame
func (s *KeyStack) Node() *MessageNode {
	if s.top == nil {
		return nil
	}
	return s.top.node
}

// InLocale reports whether the top frame is inside a locale root
func (s *KeyStack) InLocale() bool {
	return s.top != nil && s.top.inLocale
}

// Depth returns the number of frames, including the root
func (s *KeyStack) Depth() int { return s.depth }

// Path returns the keys from below the root frame to the top frame
func (s *KeyStack) Path() []string {
	var rev []string
	for f := s.top; f != nil && f.upper != nil; f = f.upper {
		if f.detached {
			continue
		}
		rev = append(rev, f.node.Key.String())
	}
	out := make([]string, len(rev))
	for i, k := range rev {
		out[len(rev)-1-i] = k
	}
	return out
}
