package catalog

import (
	"fmt"

	"github.com/platinummonkey/i18nlint/pkg/casing"
)

// Options control key validation while a tree is built
type Options struct {
	CaseOption casing.CaseOption
	AllowArray bool
	// InLocale marks the document root as a locale's message root. When
	// false, first-level keys are locale codes and are not validated.
	InLocale bool
	// CheckKeys enables casing and array findings
	CheckKeys bool
}

// Builder assembles a Tree from the depth-first callbacks of a format
// walker. A Builder is single use.
type Builder struct {
	opts     Options
	tree     *Tree
	stack    KeyStack
	keySpans []Span
	findings []Finding
	locales  []string
}

// NewBuilder creates a builder for one source document
func NewBuilder(source string, format Format, opts Options) *Builder {
	if opts.CaseOption == "" {
		opts.CaseOption = casing.Default
	}
	b := &Builder{
		opts: opts,
		tree: NewTree(source, format),
	}
	b.stack.Push(b.tree.Root, opts.InLocale)
	return b
}

// WithinKey reports whether offset lies inside a key node that was already
// consumed.
func (b *Builder) WithinKey(offset int) bool {
	for _, s := range b.keySpans {
		if s.Contains(offset) {
			return true
		}
	}
	return false
}

// RecordKeySpan marks a key region as consumed without creating a node
func (b *Builder) RecordKeySpan(span Span) {
	b.keySpans = append(b.keySpans, span)
}

// EnterKey opens a property node. It returns false, and opens nothing, when
// the key lies inside an already consumed key node.
func (b *Builder) EnterKey(key string, span Span) bool {
	if b.WithinKey(span.Start.Offset) {
		return false
	}
	b.keySpans = append(b.keySpans, span)

	node := &MessageNode{Key: StringKey(key), Span: span}
	if b.stack.InLocale() {
		b.checkKey(node)
	} else if b.stack.Depth() == 1 {
		b.locales = append(b.locales, key)
	}
	b.stack.Node().add(node)
	b.stack.Push(node, true)
	return true
}

// EnterIndex opens a list element node
func (b *Builder) EnterIndex(i int, span Span) bool {
	if b.WithinKey(span.Start.Offset) {
		return false
	}
	node := &MessageNode{Key: IndexKey(i), Span: span, IsArrayElement: true}
	if b.stack.InLocale() && b.opts.CheckKeys && !b.opts.AllowArray {
		b.report(KindUnexpectedArrayElement, node.Key.String(), span)
	}
	b.stack.Node().add(node)
	b.stack.Push(node, true)
	return true
}

// EnterDetached opens a node that is validated but not indexed. Used for the
// values of entries without a usable key.
func (b *Builder) EnterDetached(span Span) {
	b.stack.PushDetached(&MessageNode{Span: span}, true)
}

// Leave closes the node opened last
func (b *Builder) Leave() {
	if b.stack.Depth() > 1 {
		b.stack.Pop()
	}
}

// SetValue records the scalar text of the current node
func (b *Builder) SetValue(text string) {
	n := b.stack.Node()
	n.Value = text
	n.HasValue = true
}

// Current returns the node being built
func (b *Builder) Current() *MessageNode { return b.stack.Node() }

// InvalidKey reports an entry whose key cannot be used as a message key
func (b *Builder) InvalidKey(span Span) {
	if !b.opts.CheckKeys {
		return
	}
	b.findings = append(b.findings, Finding{
		Kind:    KindUnexpectedObjectKey,
		Message: "Unexpected object key. Use string key",
		Path:    JoinPath(b.stack.Path()),
		Span:    span,
	})
}

// ExtraDocument reports a document that follows the first one of a
// multi-document stream. Its content is not indexed.
func (b *Builder) ExtraDocument(span Span) {
	if !b.opts.CheckKeys {
		return
	}
	b.findings = append(b.findings, Finding{
		Kind:    KindUnexpectedDocument,
		Message: "Unexpected document. Only the first document is read",
		Span:    span,
	})
}

// Graft copies the children of src into the current node without validating
// them again. Grafting a node into itself or a descendant is ignored.
func (b *Builder) Graft(src *MessageNode) {
	if src == nil {
		return
	}
	for f := b.stack.top; f != nil; f = f.upper {
		if f.node == src {
			return
		}
	}
	dst := b.stack.Node()
	for _, c := range src.Children {
		dst.add(Clone(c))
	}
	if src.HasValue && len(src.Children) == 0 {
		dst.Value, dst.HasValue = src.Value, true
	}
}

// Finish returns the built tree and the findings collected on the way
func (b *Builder) Finish() (*Tree, []Finding) {
	return b.tree, b.findings
}

// Locales returns the first-level keys seen when the root was not already
// a locale root.
func (b *Builder) Locales() []string { return b.locales }

func (b *Builder) checkKey(node *MessageNode) {
	if !b.opts.CheckKeys {
		return
	}
	key := node.Key.String()
	if casing.IsNumeric(key) {
		if !b.opts.AllowArray {
			b.report(KindUnexpectedArrayElement, key, node.Span)
		}
		return
	}
	if !casing.Validate(key, b.opts.CaseOption) {
		b.findings = append(b.findings, Finding{
			Kind:    KindCasing,
			Message: fmt.Sprintf("%q is not %s", key, b.opts.CaseOption),
			Key:     key,
			Path:    JoinPath(append(b.stack.Path(), key)),
			Span:    node.Span,
		})
	}
}

func (b *Builder) report(kind FindingKind, key string, span Span) {
	path := JoinPath(append(b.stack.Path(), key))
	b.findings = append(b.findings, Finding{
		Kind:    kind,
		Message: fmt.Sprintf("Unexpected array element in %q", path),
		Key:     key,
		Path:    path,
		Span:    span,
	})
}
