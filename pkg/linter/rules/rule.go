package rules

import (
	"github.com/platinummonkey/i18nlint/pkg/linter"
)

// BaseRule provides common functionality for rules
type BaseRule struct {
	RuleName        string
	RuleCategory    linter.Category
	RuleSeverity    linter.Severity
	RuleDescription string
	AutoFixable     bool
}

func (r *BaseRule) Name() string              { return r.RuleName }
func (r *BaseRule) Category() linter.Category { return r.RuleCategory }
func (r *BaseRule) Severity() linter.Severity { return r.RuleSeverity }
func (r *BaseRule) Description() string       { return r.RuleDescription }
func (r *BaseRule) CanAutoFix() bool          { return r.AutoFixable }

// AutoFix returns the fix suggested with the violation, if any
func (r *BaseRule) AutoFix(violation linter.Violation) (*linter.Fix, error) {
	return violation.SuggestedFix, nil
}

// violation fills the rule fields of a new violation
func (r *BaseRule) violation(category linter.Category, message string) linter.Violation {
	return linter.Violation{
		Rule:     r.RuleName,
		Severity: r.RuleSeverity,
		Category: category,
		Message:  message,
	}
}
