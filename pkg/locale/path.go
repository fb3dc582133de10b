package locale

import (
	"strings"

	"github.com/platinummonkey/i18nlint/pkg/catalog"
)

// ParsePath splits a lookup key into segments. Segments are separated by
// '.', and a bracket suffix addresses an index or a quoted property:
// "items[0]", "labels['a.b']". ok is false for malformed keys.
func ParsePath(key string) (segments []string, ok bool) {
	var cur strings.Builder
	flush := func() bool {
		if cur.Len() == 0 {
			return false
		}
		segments = append(segments, cur.String())
		cur.Reset()
		return true
	}

	for i := 0; i < len(key); i++ {
		switch c := key[i]; c {
		case '.':
			if !flush() {
				return nil, false
			}
		case '[':
			// a bracket may follow a segment or another bracket
			if cur.Len() > 0 {
				flush()
			} else if i == 0 || key[i-1] != ']' {
				return nil, false
			}
			seg, next, good := bracket(key, i)
			if !good {
				return nil, false
			}
			segments = append(segments, seg)
			i = next
			if i+1 < len(key) && key[i+1] != '.' && key[i+1] != '[' {
				return nil, false
			}
			if i+1 < len(key) && key[i+1] == '.' {
				i++
				if i+1 >= len(key) {
					return nil, false
				}
			}
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		flush()
	} else if len(key) > 0 && key[len(key)-1] == '.' {
		return nil, false
	}
	return segments, true
}

// bracket parses "[...]" starting at key[i]. It returns the segment and the
// index of the closing bracket. A quoted segment may contain '.' or ']'.
func bracket(key string, i int) (string, int, bool) {
	rest := key[i+1:]
	if rest != "" && (rest[0] == '\'' || rest[0] == '"') {
		closing := strings.IndexByte(rest[1:], rest[0])
		if closing < 0 {
			return "", 0, false
		}
		closing++
		if closing+1 >= len(rest) || rest[closing+1] != ']' {
			return "", 0, false
		}
		return rest[1:closing], i + 1 + closing + 1, true
	}
	end := strings.IndexByte(rest, ']')
	if end <= 0 {
		return "", 0, false
	}
	return rest[:end], i + 1 + end, true
}

// Resolve walks segments from the root of tree. It returns the path up to
// and including the first segment without a matching node, or ok=true when
// every segment resolved. Internal nodes are valid targets.
func Resolve(tree *catalog.Tree, segments []string) (missing string, ok bool) {
	if len(segments) == 0 {
		return "", true
	}
	if tree == nil {
		return segments[0], false
	}
	_, matched := tree.Lookup(segments)
	if matched == len(segments) {
		return "", true
	}
	return catalog.JoinPath(segments[:matched+1]), false
}
