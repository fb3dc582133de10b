// Package cli provides the i18nlint command-line interface.
//
// # Overview
//
// This package implements the `i18nlint` tool: it lints message catalogs and
// the script, template and component files that reference them, and lets
// developers inspect the merged catalog keys from the terminal.
//
// # Commands
//
// lint: Lint catalogs and key usages
//
//	i18nlint lint --dir . src/
//
// Annotations for GitHub Actions, rerunning on change:
//
//	i18nlint lint --format github
//	i18nlint lint --watch
//
// keys: List merged keys, or look keys up in every locale
//
//	i18nlint keys --locale en --values
//	i18nlint keys menu.file common.ok
//
// version: Print the build version
//
//	i18nlint version
//
// # Configuration
//
// Lint settings come from i18nlint.yaml in --dir, or --config. Process
// settings come from the environment and an optional .env file:
//
//	I18NLINT_LOG_LEVEL=debug
//	I18NLINT_WORKERS=8
//	I18NLINT_CACHE_ENABLED=true
//	I18NLINT_METRICS_FILE=/var/lib/node_exporter/i18nlint.prom
//
// # Exit Status
//
// lint fails when a rule reports an error or a file cannot be loaded, unless
// --fail-on-error=false. --fail-on-warning also fails on warnings.
//
// # Related Packages
//
//   - pkg/linter: Lint engine and configuration
//   - pkg/loader: Catalog discovery and index construction
package cli
