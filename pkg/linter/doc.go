// Package linter runs localization lint rules over message catalogs and the
// components that reference them.
//
// # Overview
//
// A LintEngine holds a registry of rules and a Config. Each file of a load
// pass is linted once: catalog files and <i18n> blocks get the key format
// checks, while scripts and components get their key references checked
// against the locale index.
//
// # Rules
//
// key-format-style: catalog keys must follow the configured case option;
// array elements are reported unless allowArray is set.
// no-missing-keys: every literal key passed to t/$t/tc/$tc, v-t or an
// <i18n> component path must resolve in every locale.
//
// # Configuration
//
// The engine reads i18nlint.yaml (see ConfigFileNames):
//
//	settings:
//	  localeDir: locales/*.{json,yaml,yml}
//	  localeKey: file
//	rules:
//	  key-format-style:
//	    caseOption: camelCase
//	    severity: warning
//	  no-missing-keys:
//	    missingPathPolicy: first
//
// # Usage Example
//
//	config, err := linter.LoadConfigFromDir(".")
//	if err != nil {
//		return err
//	}
//	engine := linter.NewLintEngine(config, log)
//	rules.RegisterDefaultRules(engine.Registry())
//
//	results := engine.LintFiles(res, catalogs, components)
//	summary := engine.GenerateSummary(results)
//	fmt.Printf("%d errors, %d warnings\n", summary.Errors, summary.Warnings)
//
// # Related Packages
//
//   - pkg/linter/rules: Built-in rules
//   - pkg/loader: Catalog discovery and index construction
//   - pkg/locale: Locale index and key paths
package linter
