package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Patterns is a compiled set of include and ignore globs. Globs are matched
// against slash separated paths relative to the walk root; '*' stops at '/',
// '**' does not, and "{a,b}" alternates.
type Patterns struct {
	include []glob.Glob
	ignore  []glob.Glob
}

// CompilePatterns compiles include and ignore globs. An empty include list
// accepts every path.
func CompilePatterns(include, ignore []string) (*Patterns, error) {
	p := &Patterns{}
	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		p.include = append(p.include, g)
	}
	for _, pattern := range ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		p.ignore = append(p.ignore, g)
	}
	return p, nil
}

// Includes reports whether rel matches an include glob
func (p *Patterns) Includes(rel string) bool {
	if len(p.include) == 0 {
		return true
	}
	for _, g := range p.include {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Ignores reports whether rel matches an ignore glob
func (p *Patterns) Ignores(rel string) bool {
	for _, g := range p.ignore {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Walk returns the files under root that the patterns include and accept
// allows, in lexical order. A directory is skipped when "dir/" is ignored,
// so "node_modules/**" prunes the whole tree. root may be a single file.
func Walk(ctx context.Context, root string, p *Patterns, accept func(path string) bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		rel := filepath.ToSlash(filepath.Base(root))
		if p.Ignores(rel) || !accept(root) {
			return nil, nil
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && (d.Name() == ".git" || p.Ignores(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if p.Ignores(rel) || !p.Includes(rel) || !accept(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}
