package linter

import (
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/i18nlint/pkg/async"
	"github.com/platinummonkey/i18nlint/pkg/catalog"
	"github.com/platinummonkey/i18nlint/pkg/loader"
	"github.com/platinummonkey/i18nlint/pkg/locale"
	"github.com/platinummonkey/i18nlint/pkg/observability"
	"github.com/platinummonkey/i18nlint/pkg/sfc"
	"github.com/platinummonkey/i18nlint/pkg/usage"
)

// LintEngine orchestrates the linting process
type LintEngine struct {
	config   *Config
	registry *RuleRegistry
	metrics  *observability.Metrics
	log      *logrus.Logger
}

// NewLintEngine creates a new lint engine
func NewLintEngine(config *Config, log *logrus.Logger) *LintEngine {
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = logrus.New()
	}

	return &LintEngine{
		config:   config,
		registry: NewRuleRegistry(),
		log:      log,
	}
}

// Registry returns the engine's rule registry
func (e *LintEngine) Registry() *RuleRegistry { return e.registry }

// Config returns the engine configuration
func (e *LintEngine) Config() *Config { return e.config }

// SetMetrics enables violation counting
func (e *LintEngine) SetMetrics(m *observability.Metrics) { e.metrics = m }

// Lint runs all enabled rules against one file
func (e *LintEngine) Lint(ctx *LintContext) LintResult {
	result := LintResult{
		FilePath:   ctx.FilePath,
		Violations: make([]Violation, 0),
	}
	if ctx.Config == nil {
		ctx.Config = e.config
	}

	// Run each rule
	for _, rule := range e.registry.GetEnabledRules(e.config) {
		severity := e.config.RuleSeverity(rule.Name(), rule.Severity())

		var violations []Violation
		err := async.Run(rule.Name(), func() error {
			violations = rule.Check(ctx)
			return nil
		})
		if err != nil {
			e.log.WithField("file", ctx.FilePath).Errorf("Rule %s aborted: %v", rule.Name(), err)
			continue
		}

		for _, v := range violations {
			v.Severity = severity
			if v.FilePath == "" {
				v.FilePath = ctx.FilePath
			}
			result.Violations = append(result.Violations, v)
			e.metrics.RecordViolation(v.Rule, string(v.Severity))
		}
	}

	sort.SliceStable(result.Violations, func(i, j int) bool {
		a, b := result.Violations[i], result.Violations[j]
		if a.Position.Offset != b.Position.Offset {
			return a.Position.Offset < b.Position.Offset
		}
		return a.Rule < b.Rule
	})

	e.log.WithFields(logrus.Fields{
		"file":       ctx.FilePath,
		"violations": len(result.Violations),
	}).Debug("Linted file")

	return result
}

// LintFiles lints the catalogs and components of one load pass, catalogs
// first, each group in the given order
func (e *LintEngine) LintFiles(res *loader.Result, catalogs, components []string) []LintResult {
	results := make([]LintResult, 0, len(catalogs)+len(components))
	for _, path := range catalogs {
		results = append(results, e.Lint(&LintContext{
			FilePath: path,
			Kind:     FileCatalog,
			Index:    res.Index,
		}))
	}
	for _, path := range components {
		c, ok := res.Components[filepath.Clean(path)]
		if !ok {
			// unreadable; reported through res.Errors
			continue
		}
		results = append(results, e.Lint(NewComponentContext(c, res.Index)))
	}
	return results
}

// NewComponentContext prepares the context of a script or component file.
// Key references inside <i18n> blocks are message text, not usages, and are
// dropped.
func NewComponentContext(c *loader.Component, idx *locale.Index) *LintContext {
	kind := FileSource
	if len(c.Blocks) > 0 || filepath.Ext(c.Path) == ".vue" {
		kind = FileComponent
	}

	var sites []usage.Site
	if usage.HasReferences(c.Source) {
		for _, s := range usage.Scan(c.Source) {
			if !inBlock(c.Blocks, s.Span.Start.Offset) {
				sites = append(sites, s)
			}
		}
	}

	return &LintContext{
		FilePath: c.Path,
		Kind:     kind,
		Index:    idx,
		Blocks:   c.Blocks,
		Sites:    sites,
	}
}

func inBlock(blocks []sfc.Block, offset int) bool {
	for _, b := range blocks {
		start := b.Descriptor.Offset
		if offset >= start && offset < start+len(b.Content) {
			return true
		}
	}
	return false
}

// GenerateSummary creates a summary of lint results
func (e *LintEngine) GenerateSummary(results []LintResult) Summary {
	summary := Summary{
		TotalFiles: len(results),
	}

	for _, result := range results {
		summary.TotalViolations += len(result.Violations)
		for _, v := range result.Violations {
			switch v.Severity {
			case SeverityError:
				summary.Errors++
			case SeverityWarning:
				summary.Warnings++
			case SeverityInfo:
				summary.Infos++
			}
		}
	}

	return summary
}

// LintResult contains the result of linting a single file
type LintResult struct {
	FilePath   string      `json:"filePath"`
	Violations []Violation `json:"violations"`
}

// Violation represents a linting violation
type Violation struct {
	Rule         string           `json:"rule"`
	Severity     Severity         `json:"severity"`
	Category     Category         `json:"category"`
	Message      string           `json:"message"`
	FilePath     string           `json:"filePath"`
	Position     catalog.Position `json:"position"`
	EndPosition  catalog.Position `json:"endPosition"`
	SuggestedFix *Fix             `json:"suggestedFix,omitempty"`
}

// Severity indicates how serious a violation is
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Category groups related rules
type Category string

const (
	CategoryNaming     Category = "naming"
	CategoryStructure  Category = "structure"
	CategoryReferences Category = "references"
)

// Fix is a suggested replacement. Fixes are reported, never applied.
type Fix struct {
	Description string   `json:"description"`
	Changes     []Change `json:"changes"`
}

// Change represents a single text change
type Change struct {
	FilePath string           `json:"filePath"`
	StartPos catalog.Position `json:"start"`
	EndPos   catalog.Position `json:"end"`
	OldText  string           `json:"oldText"`
	NewText  string           `json:"newText"`
}

// Summary provides an overview of all lint results
type Summary struct {
	TotalFiles      int `json:"totalFiles"`
	TotalViolations int `json:"totalViolations"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
}

// FileKind tells rules what a linted file is
type FileKind string

const (
	FileCatalog   FileKind = "catalog"
	FileComponent FileKind = "component"
	FileSource    FileKind = "source"
)

// LintContext provides context during rule checking
type LintContext struct {
	FilePath string
	Kind     FileKind
	Index    *locale.Index
	// Blocks and Sites are set for components and sources
	Blocks []sfc.Block
	Sites  []usage.Site
	Config *Config
}
