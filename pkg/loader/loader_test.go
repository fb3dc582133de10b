package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/i18nlint/pkg/casing"
	"github.com/platinummonkey/i18nlint/pkg/catalog"
	"github.com/platinummonkey/i18nlint/pkg/observability"
)

func writeFiles(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newLoader(t testing.TB, root string, opts Options) *Loader {
	t.Helper()
	opts.Root = root
	if opts.LocaleDir == nil {
		opts.LocaleDir = []string{"locales/*.{json,yaml,yml}"}
	}
	opts.ByFileName = true
	opts.Catalog = catalog.Options{CaseOption: casing.CamelCase, CheckKeys: true}
	l, err := New(opts, quietLogger())
	require.NoError(t, err)
	return l
}

func TestPatterns(t *testing.T) {
	p, err := CompilePatterns([]string{"locales/*.{json,yaml}", "src/**/i18n/*.json"}, []string{"node_modules/**", "**/*.bak.json"})
	require.NoError(t, err)

	tests := []struct {
		rel      string
		includes bool
		ignores  bool
	}{
		{"locales/en.json", true, false},
		{"locales/ja.yaml", true, false},
		{"locales/nested/en.json", false, false},
		{"src/app/i18n/en.json", true, false},
		{"node_modules/", false, true},
		{"node_modules/pkg/en.json", false, true},
		{"locales/en.bak.json", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.includes, p.Includes(tt.rel))
			assert.Equal(t, tt.ignores, p.Ignores(tt.rel))
		})
	}

	_, err = CompilePatterns([]string{"[unclosed"}, nil)
	assert.Error(t, err)
}

func TestLoader_Discover(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"locales/en.json":                 `{}`,
		"locales/ja.yaml":                 `{}`,
		"locales/README.md":               `docs`,
		"src/App.vue":                     `<template></template>`,
		"src/main.ts":                     `t('x')`,
		"src/style.css":                   `p {}`,
		"node_modules/lib/index.js":       `t('y')`,
		"node_modules/lib/locales/x.json": `{}`,
	})

	l := newLoader(t, root, Options{Ignore: []string{"node_modules/**"}})

	catalogs, err := l.DiscoverCatalogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "locales", "en.json"),
		filepath.Join(root, "locales", "ja.yaml"),
	}, catalogs)

	sources, err := l.DiscoverSources(context.Background(), []string{root, filepath.Join(root, "src", "main.ts")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "src", "App.vue"),
		filepath.Join(root, "src", "main.ts"),
	}, sources)

	_, err = l.DiscoverSources(context.Background(), []string{filepath.Join(root, "absent")})
	assert.Error(t, err)
}

func TestLoader_Load(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"locales/en.json":    `{"hello": "Hello", "menu": {"fileOpen": "Open"}}`,
		"locales/ja.yaml":    "hello: こんにちは\nmenu:\n  file-open: 開く\n",
		"locales/broken.json": `{"a": `,
		"src/App.vue": `<template><p>{{ $t('hello') }}</p></template>
<i18n locale="en">{"local": "Local"}</i18n>
<i18n>{"ja": {"local": "ローカル"}}</i18n>
<i18n lang="toml">x = 1</i18n>
<i18n src="./external.json"></i18n>
`,
		"src/main.ts": `t('menu.fileOpen')`,
	})

	metrics := observability.NewMetrics(nil)
	l := newLoader(t, root, Options{LocaleDir: []string{"locales/*.{json,yaml}"}, Metrics: metrics})

	catalogs, err := l.DiscoverCatalogs(context.Background())
	require.NoError(t, err)
	require.Len(t, catalogs, 3)

	components := []string{filepath.Join(root, "src", "App.vue"), filepath.Join(root, "src", "main.ts")}
	res, err := l.Load(context.Background(), catalogs, components)
	require.NoError(t, err)

	// broken.json is reported, not fatal
	require.Len(t, res.Errors, 1)
	assert.Equal(t, filepath.Join(root, "locales", "broken.json"), res.Errors[0].Path)

	idx := res.Index
	assert.Equal(t, []string{"en", "ja"}, idx.Locales())
	assert.Len(t, idx.Messages(), 4)

	_, ok := idx.FindMissingPath("hello")
	assert.True(t, ok)
	_, ok = idx.FindMissingPath("local")
	assert.True(t, ok)
	missing, ok := idx.FindMissingPath("menu.fileOpen")
	assert.False(t, ok)
	assert.Equal(t, "menu.fileOpen", missing)

	ja := idx.FindExistLocaleMessage(filepath.Join(root, "locales", "ja.yaml"))
	require.NotNil(t, ja)
	require.Len(t, ja.Findings, 1)
	assert.Equal(t, `"file-open" is not camelCase`, ja.Findings[0].Message)

	app := res.Components[filepath.Join(root, "src", "App.vue")]
	require.NotNil(t, app)
	assert.Len(t, app.Blocks, 4)
	for _, b := range app.Blocks[:2] {
		assert.NotNil(t, idx.FindBlockLocaleMessage(b.Descriptor))
	}
	assert.Nil(t, idx.FindBlockLocaleMessage(app.Blocks[3].Descriptor))

	script := res.Components[filepath.Join(root, "src", "main.ts")]
	require.NotNil(t, script)
	assert.Empty(t, script.Blocks)

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.FilesLintedTotal.WithLabelValues("catalog")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FilesLintedTotal.WithLabelValues("component")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ParseErrorsTotal.WithLabelValues("json")))
}

func TestLoader_FirstDefinitionWinsInOrder(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a/en.json": `{"title": "A", "shared": {"one": "1"}}`,
		"b/en.json": `{"title": "B", "shared": {"two": "2"}}`,
	})

	l := newLoader(t, root, Options{LocaleDir: []string{"*/en.json"}, Workers: 2})
	for i := 0; i < 5; i++ {
		catalogs, err := l.DiscoverCatalogs(context.Background())
		require.NoError(t, err)
		res, err := l.Load(context.Background(), catalogs, nil)
		require.NoError(t, err)

		en := res.Index.Tree("en")
		require.NotNil(t, en)
		assert.Equal(t, "A", en.Leaves()["title"])
		assert.Equal(t, []string{"title", "shared", "shared.one", "shared.two"}, en.Paths())
	}
}

func TestLoader_Cache(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"locales/en.json": `{"hello": "Hello"}`,
	})

	metrics := observability.NewMetrics(nil)
	cache := NewCache(16, time.Minute, metrics)
	l := newLoader(t, root, Options{Cache: cache, Metrics: metrics})

	catalogs, err := l.DiscoverCatalogs(context.Background())
	require.NoError(t, err)

	first, err := l.Load(context.Background(), catalogs, nil)
	require.NoError(t, err)
	second, err := l.Load(context.Background(), catalogs, nil)
	require.NoError(t, err)

	assert.Same(t, first.Index.Messages()[0], second.Index.Messages()[0])
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheHitsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheMissesTotal))

	// edited content is a new entry
	writeFiles(t, root, map[string]string{"locales/en.json": `{"hello": "Hi"}`})
	third, err := l.Load(context.Background(), catalogs, nil)
	require.NoError(t, err)
	assert.NotSame(t, first.Index.Messages()[0], third.Index.Messages()[0])
	assert.Equal(t, 2, cache.Len())

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

func TestLoader_KeyLocales(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"locales/messages.json": `{"en": {"hello": "Hello"}, "de": {"hello": "Hallo"}}`,
	})

	l, err := New(Options{
		Root:      root,
		LocaleDir: []string{"locales/*.json"},
		Catalog:   catalog.Options{CaseOption: casing.CamelCase, CheckKeys: true},
	}, nil)
	require.NoError(t, err)

	catalogs, err := l.DiscoverCatalogs(context.Background())
	require.NoError(t, err)
	res, err := l.Load(context.Background(), catalogs, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "en"}, res.Index.Locales())
}

func TestLoader_CanceledContext(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"locales/en.json": `{}`})
	l := newLoader(t, root, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Load(ctx, []string{filepath.Join(root, "locales", "en.json")}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileError(t *testing.T) {
	err := FileError{Path: "en.json", Err: os.ErrNotExist}
	assert.Equal(t, "en.json: file does not exist", err.Error())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
