// Package walker converts concrete JSON and YAML parse trees into catalog
// trees.
package walker

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/platinummonkey/i18nlint/pkg/catalog"
)

// ErrUnsupportedFormat is returned for files or block languages that have no
// walker
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// Walker drives a catalog.Builder over one source document
type Walker interface {
	Format() catalog.Format
	Walk(src []byte, b *catalog.Builder) error
}

// ForFormat returns the walker for a format
func ForFormat(f catalog.Format) (Walker, error) {
	switch f {
	case catalog.FormatJSON:
		return JSON{}, nil
	case catalog.FormatYAML:
		return YAML{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

// FormatFromPath infers the format from a file extension
func FormatFromPath(path string) (catalog.Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	return FormatFromLang(ext)
}

// FormatFromLang maps a block lang attribute or extension to a format.
// An empty lang means JSON.
func FormatFromLang(lang string) (catalog.Format, bool) {
	switch strings.ToLower(lang) {
	case "", "json", "json5":
		return catalog.FormatJSON, true
	case "yaml", "yml":
		return catalog.FormatYAML, true
	}
	return "", false
}

// Build parses src with the walker for format and returns the tree and the
// findings collected while building it.
func Build(source string, format catalog.Format, src []byte, opts catalog.Options) (*catalog.Tree, []catalog.Finding, []string, error) {
	w, err := ForFormat(format)
	if err != nil {
		return nil, nil, nil, err
	}
	b := catalog.NewBuilder(source, format, opts)
	if err := w.Walk(src, b); err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", source, err)
	}
	tree, findings := b.Finish()
	for i, f := range findings {
		if start, end := f.Span.Start.Offset, f.Span.End.Offset; start <= end && end <= len(src) {
			findings[i].Raw = string(src[start:end])
		}
	}
	return tree, findings, b.Locales(), nil
}
