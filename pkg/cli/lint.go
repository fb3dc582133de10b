package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	jsoniter "github.com/json-iterator/go"

	"github.com/platinummonkey/i18nlint/pkg/config"
	"github.com/platinummonkey/i18nlint/pkg/linter"
	"github.com/platinummonkey/i18nlint/pkg/linter/rules"
	"github.com/platinummonkey/i18nlint/pkg/loader"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// lintOptions carries the lint command flags
type lintOptions struct {
	projectOptions
	format        string
	failOnError   bool
	failOnWarning bool
	verbose       bool
	rulesOnly     bool
	watch         bool
	metricsFile   string
	targets       []string
}

// newLintCommand creates a new lint command
func newLintCommand() *Command {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)

	var (
		dir           = fs.String("dir", ".", "Project root; catalogs are matched relative to it")
		configFile    = fs.String("config", "", "Path to lint config file (i18nlint.yaml)")
		envFile       = fs.String("env-file", config.DefaultEnvFile, "Environment file with I18NLINT_* settings")
		format        = fs.String("format", "text", "Output format: text, json, github")
		failOnError   = fs.Bool("fail-on-error", true, "Exit with error code on lint errors")
		failOnWarning = fs.Bool("fail-on-warning", false, "Exit with error code on lint warnings")
		verbose       = fs.Bool("verbose", false, "Verbose output")
		rulesOnly     = fs.Bool("rules", false, "List available rules and exit")
		watch         = fs.Bool("watch", false, "Re-run when catalogs or sources change")
		metricsFile   = fs.String("metrics-file", "", "Write Prometheus metrics to this file")
	)

	return &Command{
		Name:        "lint",
		Description: "Lint message catalogs and their key usages",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			targets := fs.Args()
			if len(targets) == 0 {
				targets = []string{*dir}
			}
			return runLint(lintOptions{
				projectOptions: projectOptions{dir: *dir, configFile: *configFile, envFile: *envFile},
				format:         *format,
				failOnError:    *failOnError,
				failOnWarning:  *failOnWarning,
				verbose:        *verbose,
				rulesOnly:      *rulesOnly,
				watch:          *watch,
				metricsFile:    *metricsFile,
				targets:        targets,
			})
		},
	}
}

func runLint(opts lintOptions) error {
	switch opts.format {
	case "text", "json", "github":
	default:
		return fmt.Errorf("unknown output format: %s", opts.format)
	}

	p, err := openProject(opts.projectOptions)
	if err != nil {
		return err
	}

	// Create linter engine
	engine := linter.NewLintEngine(p.config, p.log)
	engine.SetMetrics(p.metrics)
	rules.RegisterDefaultRules(engine.Registry())

	// List rules if requested
	if opts.rulesOnly {
		return lintListRules(engine)
	}

	if opts.watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchAndLint(ctx, p, engine, opts)
	}

	result, err := p.lint(context.Background(), engine, opts.targets)
	if err != nil {
		return err
	}
	p.writeMetrics(opts.metricsFile)

	if opts.verbose {
		fmt.Fprintf(stdout, "Linted %d files\n", result.summary.TotalFiles)
	}
	return lintReport(result, opts)
}

// lintReport prints a pass and decides the exit status
func lintReport(result *pass, opts lintOptions) error {
	var err error
	switch opts.format {
	case "json":
		err = lintOutputJSON(result)
	case "github":
		err = lintOutputGitHub(result)
	default:
		err = lintOutputText(result, opts.verbose)
	}
	if err != nil {
		return err
	}

	summary := result.summary
	if opts.failOnError && (summary.Errors > 0 || len(result.errors) > 0) {
		return fmt.Errorf("lint failed with %d errors", summary.Errors+len(result.errors))
	}
	if opts.failOnWarning && summary.Warnings > 0 {
		return fmt.Errorf("lint failed with %d warnings", summary.Warnings)
	}
	return nil
}

func lintListRules(engine *linter.LintEngine) error {
	allRules := engine.Registry().GetAllRules()

	fmt.Fprintf(stdout, "Available lint rules (%d):\n\n", len(allRules))

	for _, cat := range []linter.Category{
		linter.CategoryNaming,
		linter.CategoryStructure,
		linter.CategoryReferences,
	} {
		rules := engine.Registry().GetRulesByCategory(cat)
		if len(rules) == 0 {
			continue
		}

		// Capitalize category name
		catName := string(cat)
		if len(catName) > 0 {
			catName = strings.ToUpper(string(catName[0])) + catName[1:]
		}

		fmt.Fprintf(stdout, "%s Rules:\n", catName)
		for _, rule := range rules {
			autofix := ""
			if rule.CanAutoFix() {
				autofix = " [auto-fix]"
			}
			fmt.Fprintf(stdout, "  - %-25s [%s]%s\n    %s\n",
				rule.Name(),
				engine.Config().RuleSeverity(rule.Name(), rule.Severity()),
				autofix,
				rule.Description(),
			)
		}
		fmt.Fprintln(stdout)
	}

	return nil
}

func lintOutputText(result *pass, verbose bool) error {
	hasViolations := false

	for _, e := range result.errors {
		fmt.Fprintf(stdout, "%s: [error] %v\n", e.Path, e.Err)
	}

	for _, r := range result.results {
		if len(r.Violations) == 0 {
			continue
		}

		hasViolations = true
		fmt.Fprintf(stdout, "\n%s:\n", r.FilePath)

		for _, v := range r.Violations {
			fmt.Fprintf(stdout, "  %s:%d:%d: [%s] %s (%s)\n",
				r.FilePath,
				v.Position.Line,
				v.Position.Column,
				v.Severity,
				v.Message,
				v.Rule,
			)

			if v.SuggestedFix != nil && verbose {
				fmt.Fprintf(stdout, "    Fix: %s\n", v.SuggestedFix.Description)
			}
		}
	}

	// Print summary
	summary := result.summary
	fmt.Fprintf(stdout, "\n")
	fmt.Fprintf(stdout, "Summary:\n")
	fmt.Fprintf(stdout, "  Files:      %d\n", summary.TotalFiles)
	fmt.Fprintf(stdout, "  Violations: %d\n", summary.TotalViolations)
	fmt.Fprintf(stdout, "  Errors:     %d\n", summary.Errors)
	fmt.Fprintf(stdout, "  Warnings:   %d\n", summary.Warnings)
	fmt.Fprintf(stdout, "  Infos:      %d\n", summary.Infos)
	if len(result.errors) > 0 {
		fmt.Fprintf(stdout, "  Unreadable: %d\n", len(result.errors))
	}

	if !hasViolations && len(result.errors) == 0 {
		fmt.Fprintln(stdout, "\n✓ All files passed linting")
	}

	return nil
}

// fileErrorOutput is the JSON form of a loader.FileError
type fileErrorOutput struct {
	FilePath string `json:"filePath"`
	Message  string `json:"message"`
}

func lintOutputJSON(result *pass) error {
	output := struct {
		Results []linter.LintResult `json:"results"`
		Errors  []fileErrorOutput   `json:"errors"`
		Summary linter.Summary      `json:"summary"`
	}{
		Results: result.results,
		Errors:  fileErrors(result.errors),
		Summary: result.summary,
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func fileErrors(errs []loader.FileError) []fileErrorOutput {
	out := make([]fileErrorOutput, 0, len(errs))
	for _, e := range errs {
		out = append(out, fileErrorOutput{FilePath: e.Path, Message: e.Err.Error()})
	}
	return out
}

func lintOutputGitHub(result *pass) error {
	// GitHub Actions annotation format
	// ::error file={name},line={line},col={col}::{message}
	for _, e := range result.errors {
		fmt.Fprintf(stdout, "::error file=%s::%v\n", e.Path, e.Err)
	}

	for _, r := range result.results {
		for _, v := range r.Violations {
			level := "error"
			if v.Severity == linter.SeverityWarning {
				level = "warning"
			} else if v.Severity == linter.SeverityInfo {
				level = "notice"
			}

			fmt.Fprintf(stdout, "::%s file=%s,line=%d,col=%d::[%s] %s\n",
				level,
				r.FilePath,
				v.Position.Line,
				v.Position.Column,
				v.Rule,
				v.Message,
			)
		}
	}

	return nil
}
