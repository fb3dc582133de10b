// Package usage finds localization key references in script and template
// source.
package usage

import (
	"bytes"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/platinummonkey/i18nlint/pkg/catalog"
)

// Kind tells how a key was referenced
type Kind string

const (
	KindCall      Kind = "call"      // t('key'), $tc('key'), i18n.t('key')
	KindDirective Kind = "directive" // v-t="'key'"
	KindAttribute Kind = "attribute" // <i18n path="key">
)

// Site is one literal key reference
type Site struct {
	Key  string
	Kind Kind
	Span catalog.Span
}

const (
	singleQuoted = `'((?:[^'\\\n]|\\.)*)'`
	doubleQuoted = `"((?:[^"\\\n]|\\.)*)"`
	backQuoted   = "`((?:[^`\\\\$]|\\\\.)*)`"
)

var (
	callRe = regexp.MustCompile(`(?:^|[^\w$])\$?tc?\s*\(\s*(?:` + singleQuoted + `|` + doubleQuoted + `|` + backQuoted + `)`)

	directiveRe = regexp.MustCompile(`v-t\s*=\s*"\s*(?:\{[^"]*?\bpath\s*:\s*)?'((?:[^'\\"]|\\.)*)'`)

	attributeRe = regexp.MustCompile(`<(?:i18n|i18n-t)\b[^>]*?\s(?:path|keypath)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// Scan returns the literal key references in src, ordered by position.
// Keys built at runtime (variables, concatenation, interpolated template
// strings) and empty keys are skipped.
func Scan(src []byte) []Site {
	lines := newLineIndex(src)
	var sites []Site

	collect := func(re *regexp.Regexp, kind Kind, unquote bool) {
		for _, m := range re.FindAllSubmatchIndex(src, -1) {
			start, end := firstGroup(m)
			if start < 0 {
				continue
			}
			key := string(src[start:end])
			if unquote {
				key = unescape(key)
			}
			if key == "" {
				continue
			}
			sites = append(sites, Site{
				Key:  key,
				Kind: kind,
				Span: catalog.Span{Start: lines.position(start - 1), End: lines.position(end + 1)},
			})
		}
	}
	collect(callRe, KindCall, true)
	collect(directiveRe, KindDirective, true)
	collect(attributeRe, KindAttribute, false)

	sort.SliceStable(sites, func(i, j int) bool {
		return sites[i].Span.Start.Offset < sites[j].Span.Start.Offset
	})
	return sites
}

// firstGroup returns the bounds of the first matched capture group
func firstGroup(m []int) (int, int) {
	for g := 1; 2*g+1 < len(m); g++ {
		if m[2*g] >= 0 {
			return m[2*g], m[2*g+1]
		}
	}
	return -1, -1
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

type lineIndex struct {
	src    []byte
	starts []int
}

func newLineIndex(src []byte) *lineIndex {
	starts := []int{0}
	for i, c := range src {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{src: src, starts: starts}
}

// position converts a byte offset; the quote character is included in the
// reported span
func (l *lineIndex) position(offset int) catalog.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(l.src) {
		offset = len(l.src)
	}
	line := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset }) - 1
	col := utf8.RuneCount(l.src[l.starts[line]:offset]) + 1
	return catalog.Position{Offset: offset, Line: line + 1, Column: col}
}

// IsSourceFile reports whether a file may contain key references
func IsSourceFile(path string) bool {
	for _, ext := range []string{".vue", ".js", ".ts", ".jsx", ".tsx", ".mjs", ".cjs"} {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// HasReferences is a cheap pre-check before Scan. It never reports false
// for a source Scan would find keys in.
func HasReferences(src []byte) bool {
	if bytes.Contains(src, []byte("v-t")) || bytes.Contains(src, []byte("<i18n")) {
		return true
	}
	for i := bytes.IndexByte(src, '('); i >= 0; {
		j := i - 1
		for j >= 0 && isSpace(src[j]) {
			j--
		}
		if (j >= 0 && src[j] == 't') || (j >= 1 && src[j] == 'c' && src[j-1] == 't') {
			return true
		}
		next := bytes.IndexByte(src[i+1:], '(')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
