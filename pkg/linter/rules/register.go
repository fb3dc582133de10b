package rules

import "github.com/platinummonkey/i18nlint/pkg/linter"

// Registry interface for registering rules
type Registry interface {
	Register(rule linter.Rule)
}

// DefaultRules returns new instances of all built-in rules
func DefaultRules() []linter.Rule {
	return []linter.Rule{
		NewKeyFormatStyleRule(),
		NewNoMissingKeysRule(),
	}
}

// RegisterDefaultRules registers all built-in lint rules
func RegisterDefaultRules(registry Registry) {
	for _, rule := range DefaultRules() {
		registry.Register(rule)
	}
}
