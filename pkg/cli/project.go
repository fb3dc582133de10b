package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/i18nlint/pkg/config"
	"github.com/platinummonkey/i18nlint/pkg/linter"
	"github.com/platinummonkey/i18nlint/pkg/loader"
	"github.com/platinummonkey/i18nlint/pkg/observability"
)

// projectOptions locate a project and its settings
type projectOptions struct {
	dir        string
	configFile string
	envFile    string
}

// project is a configured workspace ready for load passes
type project struct {
	dir     string
	env     *config.Config
	config  *linter.Config
	log     *logrus.Logger
	metrics *observability.Metrics
	loader  *loader.Loader
}

func openProject(opts projectOptions) (*project, error) {
	env, err := config.Load(opts.envFile)
	if err != nil {
		return nil, err
	}
	log := env.NewLogger()

	var lintConfig *linter.Config
	if opts.configFile != "" {
		lintConfig, err = linter.LoadConfig(opts.configFile)
	} else {
		lintConfig, err = linter.LoadConfigFromDir(opts.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	catalogOpts, err := lintConfig.CatalogOptions()
	if err != nil {
		return nil, err
	}
	policy, err := lintConfig.MissingPathPolicy()
	if err != nil {
		return nil, err
	}
	resolver, err := lintConfig.Resolver()
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics(nil)
	var cache *loader.Cache
	if env.CacheEnabled {
		cache = loader.NewCache(env.CacheSize, env.CacheTTL, metrics)
	}

	l, err := loader.New(loader.Options{
		Root:       opts.dir,
		LocaleDir:  lintConfig.Settings.LocaleDir,
		Ignore:     lintConfig.Ignore,
		ByFileName: lintConfig.ByFileName(),
		Resolver:   resolver,
		Catalog:    catalogOpts,
		Policy:     policy,
		Workers:    env.Workers,
		Cache:      cache,
		Metrics:    metrics,
	}, log)
	if err != nil {
		return nil, err
	}

	return &project{
		dir:     opts.dir,
		env:     env,
		config:  lintConfig,
		log:     log,
		metrics: metrics,
		loader:  l,
	}, nil
}

// pass is the outcome of one lint pass
type pass struct {
	results []linter.LintResult
	errors  []loader.FileError
	summary linter.Summary
}

// lint discovers, loads and lints the project. targets select the sources
// whose key usages are checked.
func (p *project) lint(ctx context.Context, engine *linter.LintEngine, targets []string) (*pass, error) {
	catalogs, err := p.loader.DiscoverCatalogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find catalogs: %w", err)
	}
	components, err := p.loader.DiscoverSources(ctx, targets)
	if err != nil {
		return nil, fmt.Errorf("failed to find sources: %w", err)
	}

	res, err := p.loader.Load(ctx, catalogs, components)
	if err != nil {
		return nil, err
	}

	results := engine.LintFiles(res, catalogs, components)
	return &pass{
		results: results,
		errors:  res.Errors,
		summary: engine.GenerateSummary(results),
	}, nil
}

// writeMetrics flushes metrics when a textfile is configured
func (p *project) writeMetrics(path string) {
	if path == "" {
		path = p.env.MetricsFile
	}
	if path == "" {
		return
	}
	if err := p.metrics.WriteTextfile(path); err != nil {
		p.log.Warnf("Failed to write metrics to %s: %v", path, err)
	}
}
