package casing

import (
	"strings"
	"unicode"
)

// Convert rewrites s in the given convention. ok is false when no
// conforming spelling exists, e.g. for keys without letters.
func Convert(s string, opt CaseOption) (string, bool) {
	words := Words(s)
	if len(words) == 0 {
		return "", false
	}

	var out string
	switch opt {
	case CamelCase:
		var sb strings.Builder
		for i, w := range words {
			if i == 0 {
				sb.WriteString(strings.ToLower(w))
				continue
			}
			sb.WriteString(title(w))
		}
		out = sb.String()
	case KebabCase:
		out = strings.ToLower(strings.Join(words, "-"))
	case SnakeCase:
		out = strings.ToLower(strings.Join(words, "_"))
	case ScreamingSnakeCase:
		out = strings.ToUpper(strings.Join(words, "_"))
	default:
		return "", false
	}
	return out, Validate(out, opt)
}

// Words splits a key into its words. Any rune that is neither a letter nor a
// digit separates words, as does a lower to upper case transition. A run of
// capitals followed by a lower case letter ends before the last capital, so
// "HTMLParser" yields "HTML" and "Parser".
func Words(s string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func title(w string) string {
	runes := []rune(strings.ToLower(w))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
