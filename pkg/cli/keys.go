package cli

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"github.com/platinummonkey/i18nlint/pkg/config"
	"github.com/platinummonkey/i18nlint/pkg/locale"
)

// keysOptions carries the keys command flags
type keysOptions struct {
	projectOptions
	locale string
	values bool
	keys   []string
}

// newKeysCommand creates the keys command. Without arguments it lists the
// merged catalog paths; with keys it looks each one up in every locale.
func newKeysCommand() *Command {
	fs := flag.NewFlagSet("keys", flag.ExitOnError)

	var (
		dir        = fs.String("dir", ".", "Project root; catalogs are matched relative to it")
		configFile = fs.String("config", "", "Path to lint config file (i18nlint.yaml)")
		envFile    = fs.String("env-file", config.DefaultEnvFile, "Environment file with I18NLINT_* settings")
		localeCode = fs.String("locale", "", "Only show this locale")
		values     = fs.Bool("values", false, "List leaf values instead of every path")
	)

	return &Command{
		Name:        "keys",
		Description: "List or look up message keys",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			return runKeys(keysOptions{
				projectOptions: projectOptions{dir: *dir, configFile: *configFile, envFile: *envFile},
				locale:         *localeCode,
				values:         *values,
				keys:           fs.Args(),
			})
		},
	}
}

func runKeys(opts keysOptions) error {
	p, err := openProject(opts.projectOptions)
	if err != nil {
		return err
	}

	ctx := context.Background()
	catalogs, err := p.loader.DiscoverCatalogs(ctx)
	if err != nil {
		return fmt.Errorf("failed to find catalogs: %w", err)
	}
	res, err := p.loader.Load(ctx, catalogs, nil)
	if err != nil {
		return err
	}
	for _, e := range res.Errors {
		p.log.Warn(e.Error())
	}

	locales := res.Index.Locales()
	if opts.locale != "" {
		if res.Index.Tree(opts.locale) == nil {
			return fmt.Errorf("unknown locale: %s", opts.locale)
		}
		locales = []string{opts.locale}
	}

	if len(opts.keys) == 0 {
		keysList(res.Index, locales, opts.values)
		return nil
	}
	return keysLookup(res.Index, locales, opts.keys)
}

func keysList(idx *locale.Index, locales []string, values bool) {
	for _, loc := range locales {
		fmt.Fprintf(stdout, "%s:\n", loc)
		tree := idx.Tree(loc)
		if !values {
			for _, path := range tree.Paths() {
				fmt.Fprintf(stdout, "  %s\n", path)
			}
			continue
		}

		leaves := tree.Leaves()
		paths := make([]string, 0, len(leaves))
		for path := range leaves {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			fmt.Fprintf(stdout, "  %s = %q\n", path, leaves[path])
		}
	}
}

// keysLookup prints where each key resolves. It fails when a key is
// malformed or missing from a locale.
func keysLookup(idx *locale.Index, locales []string, keys []string) error {
	failed := 0
	for _, key := range keys {
		fmt.Fprintf(stdout, "%s:\n", key)
		segments, ok := locale.ParsePath(key)
		if !ok {
			fmt.Fprintf(stdout, "  invalid key path\n")
			failed++
			continue
		}

		for _, loc := range locales {
			tree := idx.Tree(loc)
			if missing, ok := locale.Resolve(tree, segments); !ok {
				fmt.Fprintf(stdout, "  %-8s missing '%s'\n", loc, missing)
				failed++
				continue
			}
			node, _ := tree.Lookup(segments)
			if node.HasValue {
				fmt.Fprintf(stdout, "  %-8s %q\n", loc, node.Value)
			} else {
				fmt.Fprintf(stdout, "  %-8s (%d entries)\n", loc, len(node.Children))
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d key lookups failed", failed)
	}
	return nil
}
