package walker

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/i18nlint/pkg/catalog"
)

// YAML walks YAML documents parsed by gopkg.in/yaml.v3
type YAML struct{}

// Format implements Walker
func (YAML) Format() catalog.Format { return catalog.FormatYAML }

// Walk implements Walker
func (YAML) Walk(src []byte, b *catalog.Builder) error {
	return WalkYAML(src, b)
}

// WalkYAML feeds the nodes of a YAML document to b. Only the first document
// of a stream is indexed; each later one is reported.
func WalkYAML(src []byte, b *catalog.Builder) error {
	dec := yaml.NewDecoder(bytes.NewReader(src))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse yaml: %w", err)
	}

	w := &yamlWalker{
		b:       b,
		src:     src,
		lines:   lineStarts(src),
		anchors: make(map[*yaml.Node]*catalog.MessageNode),
	}
	w.value(&doc)

	for {
		var extra yaml.Node
		err := dec.Decode(&extra)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
		if len(extra.Content) == 0 || extra.Content[0].Tag == "!!null" {
			continue
		}
		w.b.ExtraDocument(w.span(extra.Content[0]))
	}
}

type yamlWalker struct {
	b       *catalog.Builder
	src     []byte
	lines   []int
	anchors map[*yaml.Node]*catalog.MessageNode
}

func (w *yamlWalker) value(n *yaml.Node) {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			w.value(c)
		}
	case yaml.MappingNode:
		w.anchor(n)
		w.mapping(n)
	case yaml.SequenceNode:
		w.anchor(n)
		for i, c := range n.Content {
			if !w.b.EnterIndex(i, w.span(c)) {
				continue
			}
			w.value(c)
			w.b.Leave()
		}
	case yaml.ScalarNode:
		w.anchor(n)
		if n.Tag != "!!null" {
			w.b.SetValue(n.Value)
		}
	case yaml.AliasNode:
		// the anchored subtree was validated where it was defined; only
		// its shape is copied here
		w.b.Graft(w.anchors[n.Alias])
	}
}

func (w *yamlWalker) anchor(n *yaml.Node) {
	if n.Anchor != "" {
		w.anchors[n] = w.b.Current()
	}
}

func (w *yamlWalker) mapping(n *yaml.Node) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		keySpan := w.span(k)

		key, ok := scalarKey(k)
		if !ok {
			if w.b.WithinKey(keySpan.Start.Offset) {
				continue
			}
			w.b.InvalidKey(catalog.Span{Start: keySpan.Start, End: w.span(v).End})
			w.b.RecordKeySpan(keySpan)

			// visit the key's own content the way a generic node visitor
			// would; everything in it is refused by the consumed-key guard
			w.b.EnterDetached(keySpan)
			w.value(k)
			w.b.Leave()

			w.b.EnterDetached(w.span(v))
			w.value(v)
			w.b.Leave()
			continue
		}

		if !w.b.EnterKey(key, keySpan) {
			continue
		}
		w.value(v)
		w.b.Leave()
	}
}

// scalarKey returns the text of a usable mapping key. Numbers and booleans
// are kept as written.
func scalarKey(k *yaml.Node) (string, bool) {
	if k.Kind != yaml.ScalarNode {
		return "", false
	}
	switch k.Tag {
	case "!!merge", "!!null":
		return "", false
	}
	return k.Value, true
}

func (w *yamlWalker) span(n *yaml.Node) catalog.Span {
	start := w.position(n.Line, n.Column)
	return catalog.Span{Start: start, End: w.end(n, start)}
}

// end estimates where a node ends. yaml.v3 only records start marks, so
// scalars use their source length and collections the end of their last
// child.
func (w *yamlWalker) end(n *yaml.Node, start catalog.Position) catalog.Position {
	switch n.Kind {
	case yaml.ScalarNode:
		length := len(n.Value)
		if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
			length += 2
		}
		return w.advance(start, length)
	case yaml.AliasNode:
		return w.advance(start, len(n.Value)+1)
	case yaml.MappingNode, yaml.SequenceNode:
		if len(n.Content) == 0 {
			if n.Style&yaml.FlowStyle != 0 {
				return w.advance(start, 2)
			}
			return start
		}
		last := n.Content[len(n.Content)-1]
		end := w.end(last, w.position(last.Line, last.Column))
		if n.Style&yaml.FlowStyle != 0 {
			end = w.advance(end, 1)
		}
		return end
	}
	return start
}

// advance moves a position forward by n bytes on the same line
func (w *yamlWalker) advance(p catalog.Position, n int) catalog.Position {
	end := p.Offset + n
	if end > len(w.src) {
		end = len(w.src)
	}
	if end < p.Offset {
		end = p.Offset
	}
	p.Column += utf8.RuneCount(w.src[p.Offset:end])
	p.Offset = end
	return p
}

// position converts a yaml.v3 line/column (1-based, columns in runes) to a
// catalog position with a byte offset.
func (w *yamlWalker) position(line, column int) catalog.Position {
	p := catalog.Position{Line: line, Column: column}
	if line < 1 || line > len(w.lines) {
		p.Offset = len(w.src)
		return p
	}
	off := w.lines[line-1]
	for c := 1; c < column && off < len(w.src) && w.src[off] != '\n'; c++ {
		_, size := utf8.DecodeRune(w.src[off:])
		off += size
	}
	p.Offset = off
	return p
}

func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, c := range src {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
