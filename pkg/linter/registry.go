package linter

import "sort"

// Rule interface that all lint rules must implement
type Rule interface {
	Name() string
	Category() Category
	Severity() Severity
	Description() string
	Check(ctx *LintContext) []Violation
	CanAutoFix() bool
	AutoFix(violation Violation) (*Fix, error)
}

// RuleRegistry manages available lint rules
type RuleRegistry struct {
	rules map[string]Rule
}

// NewRuleRegistry creates an empty rule registry. Built-in rules live in
// pkg/linter/rules and are added with rules.RegisterDefaultRules.
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{
		rules: make(map[string]Rule),
	}
}

// Register adds a rule to the registry
func (r *RuleRegistry) Register(rule Rule) {
	r.rules[rule.Name()] = rule
}

// GetRule retrieves a rule by name
func (r *RuleRegistry) GetRule(name string) (Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// GetAllRules returns all registered rules sorted by name
func (r *RuleRegistry) GetAllRules() []Rule {
	rules := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Name() < rules[j].Name() })
	return rules
}

// GetEnabledRules returns rules enabled by config
func (r *RuleRegistry) GetEnabledRules(config *Config) []Rule {
	all := r.GetAllRules()
	if config == nil {
		return all
	}
	enabled := make([]Rule, 0, len(all))
	for _, rule := range all {
		if config.RuleEnabled(rule.Name()) {
			enabled = append(enabled, rule)
		}
	}
	return enabled
}

// GetRulesByCategory returns rules in a specific category
func (r *RuleRegistry) GetRulesByCategory(category Category) []Rule {
	rules := make([]Rule, 0)
	for _, rule := range r.GetAllRules() {
		if rule.Category() == category {
			rules = append(rules, rule)
		}
	}
	return rules
}
