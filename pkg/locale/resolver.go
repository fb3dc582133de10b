package locale

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// Resolver extracts locale codes from catalog file names
type Resolver struct {
	pattern *regexp.Regexp
}

// NewResolver creates a resolver. pattern is optional; when set it must
// contain a named group "locale" matched against the file base name.
func NewResolver(pattern string) (*Resolver, error) {
	r := &Resolver{}
	if pattern == "" {
		return r, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid file locale pattern: %w", err)
	}
	if re.SubexpIndex("locale") < 0 {
		return nil, fmt.Errorf("file locale pattern %q has no (?P<locale>...) group", pattern)
	}
	r.pattern = re
	return r, nil
}

// Pattern returns the configured file name pattern, or ""
func (r *Resolver) Pattern() string {
	if r == nil || r.pattern == nil {
		return ""
	}
	return r.pattern.String()
}

// LocaleFromFileName returns the locale code named by a file, e.g. "en"
// for "locales/en.json" or "ja-JP" for "ja-JP.yaml".
//
// Without a pattern, a bare three-letter name such as "app" or "nav" is
// not taken for a locale even though ISO 639-3 registers it; three-letter
// languages need a subtag ("yue-HK") or a pattern that extracts them.
func (r *Resolver) LocaleFromFileName(file string) (string, bool) {
	base := filepath.Base(file)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	if r != nil && r.pattern != nil {
		m := r.pattern.FindStringSubmatch(base)
		if m == nil {
			return "", false
		}
		name = m[r.pattern.SubexpIndex("locale")]
	} else if !plainLocaleName(name) {
		return "", false
	}
	if !IsLocaleCode(name) {
		return "", false
	}
	return name, true
}

// plainLocaleName reports whether a file name is unambiguous as a locale:
// a two-letter language, or a three-letter one followed by a subtag
func plainLocaleName(name string) bool {
	lang, rest, hasSubtag := strings.Cut(strings.ReplaceAll(name, "_", "-"), "-")
	switch len(lang) {
	case 2:
		return true
	case 3:
		return hasSubtag && rest != ""
	}
	return false
}

// IsLocaleCode reports whether s parses as a BCP 47 tag
func IsLocaleCode(s string) bool {
	if s == "" || !isLetter(s[0]) {
		return false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return false
	}
	return tag != language.Und
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
