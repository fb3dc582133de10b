// Package sfc extracts <i18n> custom blocks from single-file components.
package sfc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/platinummonkey/i18nlint/pkg/catalog"
	"github.com/platinummonkey/i18nlint/pkg/locale"
	"github.com/platinummonkey/i18nlint/pkg/walker"
)

// BlockTag is the element name of message blocks
const BlockTag = "i18n"

// Block is one top-level <i18n> element
type Block struct {
	Descriptor locale.BlockDescriptor
	Lang       string
	// Format is empty when Lang has no walker
	Format  catalog.Format
	Content []byte
	Start   catalog.Position
}

// Supported reports whether the block content can be walked
func (b Block) Supported() bool { return b.Format != "" }

// Source converts the block into index input
func (b Block) Source() locale.Source {
	desc := b.Descriptor
	return locale.Source{
		Path:    desc.File,
		Format:  b.Format,
		Content: b.Content,
		Block:   &desc,
		Base:    b.Start,
	}
}

// ParseBlocks returns the top-level <i18n> blocks of a component file.
// <i18n> elements inside <template> are component usages, not blocks.
// Block bodies are raw text and are never tokenized as markup.
func ParseBlocks(path string, src []byte) ([]Block, error) {
	z := html.NewTokenizer(bytes.NewReader(src))

	var (
		blocks        []Block
		offset        int
		templateDepth int
	)
	for {
		tt := z.Next()
		offset += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return blocks, nil
			}
			return nil, fmt.Errorf("%s: %w", path, z.Err())

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "template":
				templateDepth++
			case BlockTag:
				if templateDepth > 0 {
					continue
				}
				b := newBlock(path, src, offset)
				b.readAttrs(z, hasAttr)

				closeStart, closeEnd, ok := closeTag(src, offset)
				if !ok {
					return nil, fmt.Errorf("%s: unclosed <%s> block", path, BlockTag)
				}
				b.Content = src[offset:closeStart]
				blocks = append(blocks, b)

				offset = closeEnd
				z = html.NewTokenizer(bytes.NewReader(src[offset:]))
			}

		case html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != BlockTag || templateDepth > 0 {
				continue
			}
			b := newBlock(path, src, offset)
			b.readAttrs(z, hasAttr)
			blocks = append(blocks, b)

		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "template" && templateDepth > 0 {
				templateDepth--
			}
		}
	}
}

// closeTag finds the first </i18n> at or after from, matching the name
// case-insensitively. It returns the offsets of '<' and just past '>'.
func closeTag(src []byte, from int) (start, end int, ok bool) {
	tag := []byte("</" + BlockTag)
	for i := from; i+len(tag) <= len(src); i++ {
		j := bytes.IndexByte(src[i:], '<')
		if j < 0 {
			break
		}
		i += j
		if i+len(tag) > len(src) || !bytes.EqualFold(src[i:i+len(tag)], tag) {
			continue
		}
		rest := i + len(tag)
		if rest < len(src) && !isTagEnd(src[rest]) {
			continue
		}
		gt := bytes.IndexByte(src[rest:], '>')
		if gt < 0 {
			break
		}
		return i, rest + gt + 1, true
	}
	return 0, 0, false
}

func isTagEnd(c byte) bool {
	switch c {
	case '>', '/', ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func newBlock(path string, src []byte, contentOffset int) Block {
	return Block{
		Descriptor: locale.BlockDescriptor{File: path, Offset: contentOffset},
		Start:      positionAt(src, contentOffset),
	}
}

func (b *Block) readAttrs(z *html.Tokenizer, more bool) {
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		b.setAttr(string(key), string(val))
	}
	b.Format, _ = walker.FormatFromLang(b.Lang)
}

func (b *Block) setAttr(key, val string) {
	switch key {
	case "locale":
		b.Descriptor.DeclaredLocale = val
	case "lang":
		b.Lang = val
	case "src":
		b.Descriptor.HasExternalSource = true
	}
}

// positionAt converts a byte offset into a line/column position
func positionAt(src []byte, offset int) catalog.Position {
	p := catalog.Position{Offset: offset, Line: 1, Column: 1}
	prefix := src[:offset]
	if i := bytes.LastIndexByte(prefix, '\n'); i >= 0 {
		p.Line += bytes.Count(prefix, []byte{'\n'})
		prefix = prefix[i+1:]
	}
	p.Column += utf8.RuneCount(prefix)
	return p
}
