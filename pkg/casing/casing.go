// Package casing classifies message keys against the supported naming
// conventions.
package casing

import (
	"errors"
	"fmt"
	"unicode"
)

// CaseOption names a key casing convention
type CaseOption string

const (
	CamelCase          CaseOption = "camelCase"
	KebabCase          CaseOption = "kebab-case"
	SnakeCase          CaseOption = "snake_case"
	ScreamingSnakeCase CaseOption = "SCREAMING_SNAKE_CASE"
)

// Default is used when no option is configured
const Default = CamelCase

// ErrUnknownCaseOption is returned by Parse for unsupported names
var ErrUnknownCaseOption = errors.New("unknown case option")

// Options lists every supported convention
func Options() []CaseOption {
	return []CaseOption{CamelCase, KebabCase, SnakeCase, ScreamingSnakeCase}
}

// Parse converts a configuration value into a CaseOption.
// An empty string yields Default.
func Parse(s string) (CaseOption, error) {
	if s == "" {
		return Default, nil
	}
	for _, opt := range Options() {
		if string(opt) == s {
			return opt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCaseOption, s)
}

func (c CaseOption) String() string { return string(c) }

// Validate reports whether s conforms to the convention
func Validate(s string, opt CaseOption) bool {
	switch opt {
	case CamelCase:
		return isCamelCase(s)
	case KebabCase:
		return isSeparated(s, '-', unicode.IsLower)
	case SnakeCase:
		return isSeparated(s, '_', unicode.IsLower)
	case ScreamingSnakeCase:
		return isSeparated(s, '_', unicode.IsUpper)
	}
	return false
}

// IsNumeric reports whether s consists of decimal digits only. Such keys are
// exempt from casing checks.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// caseless reports letters that have no upper/lower distinction (CJK etc.)
func caseless(r rune) bool {
	return unicode.IsLetter(r) && !unicode.IsUpper(r) && !unicode.IsLower(r)
}

func isCamelCase(s string) bool {
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLower(r) && !caseless(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// isSeparated checks words of cased letters and digits joined by single sep
// runes, without leading or trailing separators.
func isSeparated(s string, sep rune, cased func(rune) bool) bool {
	if s == "" {
		return false
	}
	prevSep := true
	for _, r := range s {
		switch {
		case r == sep:
			if prevSep {
				return false
			}
			prevSep = true
		case cased(r), caseless(r), unicode.IsDigit(r):
			prevSep = false
		default:
			return false
		}
	}
	return !prevSep
}
