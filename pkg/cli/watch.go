package cli

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/platinummonkey/i18nlint/pkg/linter"
	"github.com/platinummonkey/i18nlint/pkg/loader"
	"github.com/platinummonkey/i18nlint/pkg/usage"
	"github.com/platinummonkey/i18nlint/pkg/walker"
)

// watchDelay coalesces bursts of file events into one pass
const watchDelay = 300 * time.Millisecond

// watchAndLint runs a pass, then another after every relevant change under
// the project root, until ctx is done. Failing passes are reported and do
// not stop the watch.
func watchAndLint(ctx context.Context, p *project, engine *linter.LintEngine, opts lintOptions) error {
	ignore, err := loader.CompilePatterns(nil, p.config.Ignore)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs, err := watchDirs(p.dir, ignore)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	run := func() {
		result, err := p.lint(ctx, engine, opts.targets)
		if err != nil {
			p.log.Errorf("Lint pass failed: %v", err)
			return
		}
		p.writeMetrics(opts.metricsFile)
		if err := lintReport(result, opts); err != nil {
			p.log.Warn(err)
		}
	}

	run()
	p.log.Infof("Watching %d directories under %s", len(dirs), p.dir)

	timer := time.NewTimer(watchDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Also watch new directories
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if rel, ok := relPath(p.dir, event.Name); ok && !ignore.Ignores(rel+"/") {
						if err := watcher.Add(event.Name); err != nil {
							p.log.Warnf("Error watching new directory: %v", err)
						}
					}
					continue
				}
			}

			if !watchRelevant(p.dir, event.Name, ignore) {
				continue
			}
			p.log.Debugf("Changed: %s (%s)", event.Name, event.Op)
			timer.Reset(watchDelay)
		case <-timer.C:
			run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.log.Warnf("Watcher error: %v", err)
		}
	}
}

// watchDirs lists root and every directory below it that is not ignored
func watchDirs(root string, ignore *loader.Patterns) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, ok := relPath(root, path)
		if !ok {
			return nil
		}
		if rel != "." && (d.Name() == ".git" || ignore.Ignores(rel+"/")) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}

// watchRelevant reports whether a change to name can alter lint results
func watchRelevant(root, name string, ignore *loader.Patterns) bool {
	rel, ok := relPath(root, name)
	if !ok || ignore.Ignores(rel) {
		return false
	}
	if _, ok := walker.FormatFromPath(name); ok {
		return true
	}
	return usage.IsSourceFile(name)
}

func relPath(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
