package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/i18nlint/pkg/async"
	"github.com/platinummonkey/i18nlint/pkg/catalog"
	"github.com/platinummonkey/i18nlint/pkg/locale"
	"github.com/platinummonkey/i18nlint/pkg/observability"
	"github.com/platinummonkey/i18nlint/pkg/sfc"
	"github.com/platinummonkey/i18nlint/pkg/usage"
	"github.com/platinummonkey/i18nlint/pkg/walker"
)

// DefaultWorkers bounds parallel parsing when Options.Workers is unset
const DefaultWorkers = 4

// Options configure a Loader
type Options struct {
	// Root is the directory catalog globs are relative to
	Root string
	// LocaleDir globs select catalog files
	LocaleDir []string
	Ignore    []string
	// ByFileName resolves a standalone catalog's locale from its file name.
	// When false, first-level keys of every catalog are locale codes.
	ByFileName bool
	Resolver   *locale.Resolver
	Catalog    catalog.Options
	Policy     locale.MissingPathPolicy
	Workers    int
	Cache      *Cache
	Metrics    *observability.Metrics
}

// Component is a script, template or component file read for linting
type Component struct {
	Path   string
	Source []byte
	// Blocks holds the <i18n> blocks of .vue files
	Blocks []sfc.Block
}

// FileError is a file that could not be read or parsed. Such files are
// left out of the index; they do not abort the run.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

func (e FileError) Unwrap() error { return e.Err }

// Result is the outcome of one load pass
type Result struct {
	Index      *locale.Index
	Components map[string]*Component
	Errors     []FileError
}

// Loader discovers catalog files and builds the locale index
type Loader struct {
	opts        Options
	catalogs    *Patterns
	sources     *Patterns
	fingerprint string
	log         *logrus.Logger
}

// New creates a loader. A nil log gets a default logger.
func New(opts Options, log *logrus.Logger) (*Loader, error) {
	if log == nil {
		log = logrus.New()
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}

	catalogs, err := CompilePatterns(opts.LocaleDir, opts.Ignore)
	if err != nil {
		return nil, err
	}
	sources, err := CompilePatterns(nil, opts.Ignore)
	if err != nil {
		return nil, err
	}

	return &Loader{
		opts:     opts,
		catalogs: catalogs,
		sources:  sources,
		fingerprint: fmt.Sprintf("%t|%s|%s|%t|%t",
			opts.ByFileName, opts.Resolver.Pattern(), opts.Catalog.CaseOption, opts.Catalog.AllowArray, opts.Catalog.CheckKeys),
		log: log,
	}, nil
}

// DiscoverCatalogs returns the catalog files selected by LocaleDir
func (l *Loader) DiscoverCatalogs(ctx context.Context) ([]string, error) {
	files, err := Walk(ctx, l.opts.Root, l.catalogs, func(path string) bool {
		_, ok := walker.FormatFromPath(path)
		return ok
	})
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		l.log.Debugf("Discovered catalog: %s", f)
	}
	if len(files) == 0 {
		l.log.Warnf("No catalog files matched %v under %s", l.opts.LocaleDir, l.opts.Root)
	}
	return files, nil
}

// DiscoverSources returns the script, template and component files under
// targets. Each target may be a file or a directory.
func (l *Loader) DiscoverSources(ctx context.Context, targets []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, target := range targets {
		found, err := Walk(ctx, target, l.sources, usage.IsSourceFile)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if clean := filepath.Clean(f); !seen[clean] {
				seen[clean] = true
				files = append(files, clean)
			}
		}
	}
	return files, nil
}

// fileResult is the per-file output of a parse worker
type fileResult struct {
	component *Component
	messages  []*locale.LocaleMessage
	errs      []FileError
}

// Load parses catalogs and components concurrently and builds the index.
// Index registration follows the argument order, catalogs first, so the
// earliest definition of an entry always wins.
func (l *Loader) Load(ctx context.Context, catalogs, components []string) (*Result, error) {
	start := time.Now()
	results := make([]fileResult, len(catalogs)+len(components))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Workers)

	for i, path := range catalogs {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = l.guard(path, l.loadCatalog)
			return nil
		})
	}
	for i, path := range components {
		path := path
		slot := len(catalogs) + i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[slot] = l.guard(path, l.loadComponent)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Components: make(map[string]*Component, len(components))}
	var messages []*locale.LocaleMessage
	for _, r := range results {
		messages = append(messages, r.messages...)
		res.Errors = append(res.Errors, r.errs...)
		if r.component != nil {
			res.Components[r.component.Path] = r.component
		}
	}

	res.Index = locale.NewIndex(messages, locale.IndexOptions{
		Resolver: l.opts.Resolver,
		Policy:   l.opts.Policy,
	})
	l.opts.Metrics.RecordIndexBuild(start, len(res.Index.Locales()))
	l.log.WithFields(logrus.Fields{
		"sources":  len(messages),
		"locales":  strings.Join(res.Index.Locales(), ","),
		"errors":   len(res.Errors),
		"duration": time.Since(start),
	}).Debug("Built locale index")

	return res, nil
}

// guard runs load for one file, turning a panic into a FileError
func (l *Loader) guard(path string, load func(string) fileResult) fileResult {
	var res fileResult
	err := async.Run(path, func() error {
		res = load(path)
		return nil
	})
	var perr *async.PanicError
	if errors.As(err, &perr) {
		l.log.WithField("file", path).Errorf("%v\n%s", perr, perr.Stack)
		return fileResult{errs: []FileError{{Path: path, Err: err}}}
	}
	return res
}

func (l *Loader) loadCatalog(path string) fileResult {
	l.opts.Metrics.RecordFile("catalog")

	format, ok := walker.FormatFromPath(path)
	if !ok {
		return fileResult{errs: []FileError{{Path: path, Err: walker.ErrUnsupportedFormat}}}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		l.log.Warnf("Failed to read catalog %s: %v", path, err)
		return fileResult{errs: []FileError{{Path: path, Err: err}}}
	}

	m, err := l.parse(locale.Source{Path: filepath.Clean(path), Format: format, Content: content})
	if err != nil {
		return fileResult{errs: []FileError{{Path: path, Err: err}}}
	}
	return fileResult{messages: []*locale.LocaleMessage{m}}
}

func (l *Loader) loadComponent(path string) fileResult {
	path = filepath.Clean(path)
	content, err := os.ReadFile(path)
	if err != nil {
		l.log.Warnf("Failed to read %s: %v", path, err)
		return fileResult{errs: []FileError{{Path: path, Err: err}}}
	}

	res := fileResult{component: &Component{Path: path, Source: content}}
	if filepath.Ext(path) != ".vue" {
		l.opts.Metrics.RecordFile("source")
		return res
	}
	l.opts.Metrics.RecordFile("component")

	blocks, err := sfc.ParseBlocks(path, content)
	if err != nil {
		l.log.Warnf("Failed to extract <%s> blocks: %v", sfc.BlockTag, err)
		res.errs = append(res.errs, FileError{Path: path, Err: err})
		return res
	}
	res.component.Blocks = blocks

	for _, b := range blocks {
		if b.Descriptor.HasExternalSource {
			continue
		}
		if !b.Supported() {
			l.log.Debugf("Skipping <%s lang=%q> block in %s", sfc.BlockTag, b.Lang, path)
			continue
		}
		m, err := l.parse(b.Source())
		if err != nil {
			res.errs = append(res.errs, FileError{Path: path, Err: err})
			continue
		}
		res.messages = append(res.messages, m)
	}
	return res
}

// parse builds one source, consulting the cache first
func (l *Loader) parse(src locale.Source) (*locale.LocaleMessage, error) {
	key := cacheKey(src, l.fingerprint)
	if m, ok := l.opts.Cache.Get(key); ok {
		return m, nil
	}

	m, err := locale.Load(src, l.opts.Resolver, l.opts.ByFileName, l.opts.Catalog)
	if err != nil {
		l.opts.Metrics.RecordParseError(string(src.Format))
		l.log.Warnf("Failed to parse %s: %v", src.Path, err)
		return nil, err
	}
	l.opts.Cache.Add(key, m)
	return m, nil
}
