package rules

import (
	"github.com/platinummonkey/i18nlint/pkg/casing"
	"github.com/platinummonkey/i18nlint/pkg/catalog"
	"github.com/platinummonkey/i18nlint/pkg/linter"
	"github.com/platinummonkey/i18nlint/pkg/locale"
)

// KeyFormatStyleRule reports catalog keys that break the configured casing
// convention, array elements where arrays are not allowed, and entries
// without a usable key. The findings are collected while the index is
// built; this rule selects the ones that belong to the linted file.
type KeyFormatStyleRule struct {
	BaseRule
}

// NewKeyFormatStyleRule creates a new key format rule
func NewKeyFormatStyleRule() *KeyFormatStyleRule {
	return &KeyFormatStyleRule{
		BaseRule: BaseRule{
			RuleName:        linter.RuleKeyFormatStyle,
			RuleCategory:    linter.CategoryNaming,
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "Localization message keys must follow the configured casing",
			AutoFixable:     true,
		},
	}
}

// Check reports the findings of the file's catalog or component blocks
func (r *KeyFormatStyleRule) Check(ctx *linter.LintContext) []linter.Violation {
	if ctx.Index == nil || ctx.Index.IsEmpty() {
		return nil
	}

	var messages []*locale.LocaleMessage
	switch ctx.Kind {
	case linter.FileCatalog:
		if m := ctx.Index.FindExistLocaleMessage(ctx.FilePath); m != nil {
			messages = append(messages, m)
		}
	case linter.FileComponent:
		for _, b := range ctx.Blocks {
			if m := ctx.Index.FindBlockLocaleMessage(b.Descriptor); m != nil {
				messages = append(messages, m)
			}
		}
	}

	opt := casing.Default
	if ctx.Config != nil {
		if opts, err := ctx.Config.CatalogOptions(); err == nil {
			opt = opts.CaseOption
		}
	}

	violations := make([]linter.Violation, 0)
	for _, m := range messages {
		for _, f := range m.Findings {
			violations = append(violations, r.toViolation(ctx.FilePath, f, opt))
		}
	}
	return violations
}

func (r *KeyFormatStyleRule) toViolation(file string, f catalog.Finding, opt casing.CaseOption) linter.Violation {
	category := linter.CategoryStructure
	if f.Kind == catalog.KindCasing {
		category = linter.CategoryNaming
	}
	v := r.violation(category, f.Message)
	v.Position = f.Span.Start
	v.EndPosition = f.Span.End

	if f.Kind == catalog.KindCasing {
		if name, ok := casing.Convert(f.Key, opt); ok {
			old := f.Raw
			if old == "" {
				old = f.Key
			}
			v.SuggestedFix = &linter.Fix{
				Description: "Rename key to " + string(opt),
				Changes: []linter.Change{
					{
						FilePath: file,
						StartPos: f.Span.Start,
						EndPos:   f.Span.End,
						OldText:  old,
						NewText:  requote(old, name),
					},
				},
			}
		}
	}
	return v
}

// requote wraps name in the quotes old is written with
func requote(old, name string) string {
	if n := len(old); n >= 2 && (old[0] == '"' || old[0] == '\'') && old[n-1] == old[0] {
		return old[:1] + name + old[:1]
	}
	return name
}
