package rules

import (
	"fmt"

	"github.com/platinummonkey/i18nlint/pkg/linter"
)

// NoMissingKeysRule reports literal key references that do not resolve in
// every locale
type NoMissingKeysRule struct {
	BaseRule
}

// NewNoMissingKeysRule creates a new missing key rule
func NewNoMissingKeysRule() *NoMissingKeysRule {
	return &NoMissingKeysRule{
		BaseRule: BaseRule{
			RuleName:        linter.RuleNoMissingKeys,
			RuleCategory:    linter.CategoryReferences,
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Referenced localization keys must exist in the message catalogs",
		},
	}
}

// Check validates the usage sites of a script or component file
func (r *NoMissingKeysRule) Check(ctx *linter.LintContext) []linter.Violation {
	if ctx.Index == nil || ctx.Index.IsEmpty() {
		return nil
	}

	violations := make([]linter.Violation, 0)
	for _, site := range ctx.Sites {
		missing, ok := ctx.Index.FindMissingPath(site.Key)
		if ok {
			continue
		}
		v := r.violation(r.Category(), fmt.Sprintf("'%s' does not exist in localization message resources", missing))
		v.Position = site.Span.Start
		v.EndPosition = site.Span.End
		violations = append(violations, v)
	}
	return violations
}
