package locale

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/platinummonkey/i18nlint/pkg/catalog"
	"github.com/platinummonkey/i18nlint/pkg/walker"
)

// MissingPathPolicy selects how FindMissingPath combines locales
type MissingPathPolicy string

const (
	// PolicyFirst reports the first locale, in sorted order, missing the key
	PolicyFirst MissingPathPolicy = "first"
	// PolicyLongest reports the longest missing path over all locales
	PolicyLongest MissingPathPolicy = "longest"
)

// ParsePolicy converts a configuration value. Empty means PolicyFirst.
func ParsePolicy(s string) (MissingPathPolicy, error) {
	switch MissingPathPolicy(s) {
	case "", PolicyFirst:
		return PolicyFirst, nil
	case PolicyLongest:
		return PolicyLongest, nil
	}
	return "", fmt.Errorf("unknown missing path policy %q", s)
}

// BlockDescriptor identifies a custom <i18n> block of a component file
type BlockDescriptor struct {
	File              string
	Offset            int // offset of the block content in File
	DeclaredLocale    string
	HasExternalSource bool
}

type blockKey struct {
	file   string
	offset int
}

func (d BlockDescriptor) key() blockKey {
	return blockKey{file: filepath.Clean(d.File), offset: d.Offset}
}

// LocaleMessage is one registered catalog source
type LocaleMessage struct {
	Path string
	Tree *catalog.Tree
	// Locale is set when the whole source belongs to one locale
	Locale string
	// Locales lists the locale buckets the source contributes to
	Locales  []string
	Block    *BlockDescriptor
	Findings []catalog.Finding
}

// IsResolved reports whether the source root is a single locale's root
func (m *LocaleMessage) IsResolved() bool { return m.Locale != "" }

// MessagesFor returns the message root of locale within this source
func (m *LocaleMessage) MessagesFor(locale string) *catalog.MessageNode {
	if m.IsResolved() {
		if m.Locale == locale {
			return m.Tree.Root
		}
		return nil
	}
	return m.Tree.Root.Child(locale)
}

// Source is the raw input for one LocaleMessage
type Source struct {
	Path    string
	Format  catalog.Format
	Content []byte
	// Block is set for custom blocks; Base is where the block content
	// starts in Path.
	Block *BlockDescriptor
	Base  catalog.Position
}

// Load builds the LocaleMessage for a source. The locale comes from the
// block's locale attribute or, for standalone files, from the file name when
// byFileName is set.
func Load(src Source, r *Resolver, byFileName bool, opts catalog.Options) (*LocaleMessage, error) {
	m := &LocaleMessage{Path: src.Path, Block: src.Block}
	switch {
	case src.Block != nil:
		m.Locale = src.Block.DeclaredLocale
	case byFileName:
		m.Locale, _ = r.LocaleFromFileName(src.Path)
	}

	opts.InLocale = m.IsResolved()
	tree, findings, locales, err := walker.Build(src.Path, src.Format, src.Content, opts)
	if err != nil {
		return nil, err
	}
	if src.Block != nil {
		findings = catalog.ShiftFindings(findings, src.Base)
	}
	m.Tree = tree
	m.Findings = findings
	if m.IsResolved() {
		m.Locales = []string{m.Locale}
	} else {
		m.Locales = locales
	}
	return m, nil
}

// Index maps locale codes to merged catalog trees. It is built once per
// analysis pass and not modified afterwards.
type Index struct {
	resolver *Resolver
	policy   MissingPathPolicy
	messages []*LocaleMessage
	trees    map[string]*catalog.Tree
	locales  []string
	byFile   map[string]*LocaleMessage
	byBlock  map[blockKey]*LocaleMessage
}

// IndexOptions configure an Index
type IndexOptions struct {
	Resolver *Resolver
	Policy   MissingPathPolicy
}

// NewIndex builds an index over messages. When several sources define the
// same entry for a locale, the earlier source wins.
func NewIndex(messages []*LocaleMessage, opts IndexOptions) *Index {
	if opts.Policy == "" {
		opts.Policy = PolicyFirst
	}
	idx := &Index{
		resolver: opts.Resolver,
		policy:   opts.Policy,
		messages: messages,
		trees:    make(map[string]*catalog.Tree),
		byFile:   make(map[string]*LocaleMessage),
		byBlock:  make(map[blockKey]*LocaleMessage),
	}

	for _, m := range messages {
		if m.Block != nil {
			idx.byBlock[m.Block.key()] = m
		} else if _, seen := idx.byFile[filepath.Clean(m.Path)]; !seen {
			idx.byFile[filepath.Clean(m.Path)] = m
		}

		for _, loc := range m.Locales {
			root := m.MessagesFor(loc)
			if root == nil {
				continue
			}
			tree, ok := idx.trees[loc]
			if !ok {
				tree = catalog.NewTree(loc, m.Tree.Format)
				idx.trees[loc] = tree
				idx.locales = append(idx.locales, loc)
			}
			catalog.MergeInto(tree.Root, root)
		}
	}
	sort.Strings(idx.locales)
	return idx
}

// IsEmpty reports whether no catalog sources were registered
func (idx *Index) IsEmpty() bool { return len(idx.messages) == 0 }

// IsResolvedLocaleByFileName reports whether file's base name is a locale
// code
func (idx *Index) IsResolvedLocaleByFileName(file string) bool {
	_, ok := idx.resolver.LocaleFromFileName(file)
	return ok
}

// FindBlockLocaleMessage returns the message registered for a custom block.
// Blocks with an external source, and blocks declaring a locale that has no
// messages anywhere, yield nil.
func (idx *Index) FindBlockLocaleMessage(block BlockDescriptor) *LocaleMessage {
	if block.HasExternalSource {
		return nil
	}
	if block.DeclaredLocale != "" {
		if _, ok := idx.trees[block.DeclaredLocale]; !ok {
			return nil
		}
	}
	return idx.byBlock[block.key()]
}

// FindExistLocaleMessage returns the message registered for a standalone
// catalog file
func (idx *Index) FindExistLocaleMessage(file string) *LocaleMessage {
	return idx.byFile[filepath.Clean(file)]
}

// FindMissingPath checks key against every locale. It returns ok=true when
// the key resolves everywhere (or is empty or malformed); otherwise the
// missing sub-path chosen by the index policy.
func (idx *Index) FindMissingPath(key string) (missing string, ok bool) {
	segments, valid := ParsePath(key)
	if !valid || len(segments) == 0 {
		return "", true
	}

	var longest string
	for _, loc := range idx.locales {
		missing, ok := Resolve(idx.trees[loc], segments)
		if ok {
			continue
		}
		if idx.policy == PolicyFirst {
			return missing, false
		}
		// candidates are prefixes of the same key
		if len(missing) > len(longest) {
			longest = missing
		}
	}
	if longest == "" {
		return "", true
	}
	return longest, false
}

// Locales returns the known locale codes, sorted
func (idx *Index) Locales() []string { return idx.locales }

// Tree returns the merged tree of a locale
func (idx *Index) Tree(locale string) *catalog.Tree { return idx.trees[locale] }

// Messages returns the registered sources in registration order
func (idx *Index) Messages() []*LocaleMessage { return idx.messages }
