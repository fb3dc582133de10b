package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/i18nlint/pkg/casing"
	"github.com/platinummonkey/i18nlint/pkg/catalog"
)

func load(t *testing.T, path, content string) *LocaleMessage {
	t.Helper()
	m, err := Load(Source{Path: path, Format: catalog.FormatJSON, Content: []byte(content)}, nil, true,
		catalog.Options{CaseOption: casing.CamelCase, CheckKeys: true})
	require.NoError(t, err)
	return m
}

func TestLoad_ResolvedByFileName(t *testing.T) {
	m := load(t, "locales/en.json", `{"userName": "x", "user-name": "y"}`)

	assert.True(t, m.IsResolved())
	assert.Equal(t, "en", m.Locale)
	assert.Equal(t, []string{"en"}, m.Locales)
	require.Len(t, m.Findings, 1)
	assert.Equal(t, `"user-name" is not camelCase`, m.Findings[0].Message)
}

func TestLoad_UnresolvedFile(t *testing.T) {
	m := load(t, "locales/messages.json", `{"en": {"hello": "Hi"}, "ja": {"hello": "やあ"}}`)

	assert.False(t, m.IsResolved())
	assert.Equal(t, []string{"en", "ja"}, m.Locales)
	assert.NotNil(t, m.MessagesFor("ja"))
	assert.Nil(t, m.MessagesFor("fr"))
	assert.Empty(t, m.Findings)
}

func TestLoad_BlockShiftsFindings(t *testing.T) {
	block := &BlockDescriptor{File: "App.vue", Offset: 120, DeclaredLocale: "en"}
	m, err := Load(Source{
		Path:    "App.vue",
		Format:  catalog.FormatJSON,
		Content: []byte(`{"Bad": "x"}`),
		Block:   block,
		Base:    catalog.Position{Offset: 120, Line: 10, Column: 15},
	}, nil, true, catalog.Options{CaseOption: casing.CamelCase, CheckKeys: true})
	require.NoError(t, err)

	require.Len(t, m.Findings, 1)
	assert.Equal(t, catalog.Position{Offset: 121, Line: 10, Column: 16}, m.Findings[0].Span.Start)
	assert.Equal(t, "en", m.Locale)
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(Source{Path: "en.json", Format: catalog.FormatJSON, Content: []byte(`{`)}, nil, true, catalog.Options{})
	assert.Error(t, err)
}

func TestIndex_FindMissingPath_Scenarios(t *testing.T) {
	idx := NewIndex([]*LocaleMessage{load(t, "en.json", `{"a": {"b": {}}}`)}, IndexOptions{})

	missing, ok := idx.FindMissingPath("a.b.c")
	assert.False(t, ok)
	assert.Equal(t, "a.b.c", missing)

	_, ok = idx.FindMissingPath("a.b")
	assert.True(t, ok)

	_, ok = idx.FindMissingPath("")
	assert.True(t, ok)

	_, ok = idx.FindMissingPath("a..b")
	assert.True(t, ok)
}

func TestIndex_FindMissingPath_Policies(t *testing.T) {
	messages := []*LocaleMessage{
		load(t, "en.json", `{"menu": {"file": {"open": "Open"}}}`),
		load(t, "fr.json", `{"menu": {"file": {}}}`),
		load(t, "de.json", `{"other": "x"}`),
	}

	first := NewIndex(messages, IndexOptions{Policy: PolicyFirst})
	missing, ok := first.FindMissingPath("menu.file.open")
	assert.False(t, ok)
	// locales are checked in sorted order: de, en, fr
	assert.Equal(t, "menu", missing)

	longest := NewIndex(messages, IndexOptions{Policy: PolicyLongest})
	missing, ok = longest.FindMissingPath("menu.file.open")
	assert.False(t, ok)
	assert.Equal(t, "menu.file.open", missing)

	_, ok = longest.FindMissingPath("nothing.here")
	assert.False(t, ok)
}

func TestIndex_MissingInOneLocaleIsReported(t *testing.T) {
	idx := NewIndex([]*LocaleMessage{
		load(t, "en.json", `{"hello": "Hello", "bye": "Bye"}`),
		load(t, "ja.json", `{"hello": "こんにちは"}`),
	}, IndexOptions{})

	_, ok := idx.FindMissingPath("hello")
	assert.True(t, ok)

	missing, ok := idx.FindMissingPath("bye")
	assert.False(t, ok)
	assert.Equal(t, "bye", missing)
}

func TestIndex_MergeFirstDefinitionWins(t *testing.T) {
	idx := NewIndex([]*LocaleMessage{
		load(t, "a/en.json", `{"common": {"ok": "OK"}, "title": "A"}`),
		load(t, "b/en.json", `{"common": {"cancel": "Cancel"}, "title": "B"}`),
		load(t, "messages.json", `{"en": {"extra": "E"}, "ja": {"title": "J"}}`),
	}, IndexOptions{})

	assert.Equal(t, []string{"en", "ja"}, idx.Locales())
	en := idx.Tree("en")
	require.NotNil(t, en)
	assert.Equal(t, "A", en.Leaves()["title"])
	assert.Equal(t, []string{"common", "common.ok", "common.cancel", "title", "extra"}, en.Paths())

	// ja only defines title
	for key, want := range map[string]string{
		"common.ok":     "common",
		"common.cancel": "common",
		"extra":         "extra",
	} {
		missing, ok := idx.FindMissingPath(key)
		assert.False(t, ok, key)
		assert.Equal(t, want, missing, key)
	}
	_, ok := idx.FindMissingPath("title")
	assert.True(t, ok)
}

func TestIndex_FindExistLocaleMessage(t *testing.T) {
	m := load(t, "locales/en.json", `{}`)
	idx := NewIndex([]*LocaleMessage{m}, IndexOptions{})

	assert.False(t, idx.IsEmpty())
	assert.Same(t, m, idx.FindExistLocaleMessage("./locales/en.json"))
	assert.Nil(t, idx.FindExistLocaleMessage("locales/fr.json"))
	assert.Len(t, idx.Messages(), 1)
}

func TestIndex_FindBlockLocaleMessage(t *testing.T) {
	withLocale := &BlockDescriptor{File: "App.vue", Offset: 10, DeclaredLocale: "en"}
	noLocale := &BlockDescriptor{File: "App.vue", Offset: 200}

	blockEN, err := Load(Source{Path: "App.vue", Format: catalog.FormatJSON, Content: []byte(`{"hi": "Hi"}`), Block: withLocale},
		nil, true, catalog.Options{})
	require.NoError(t, err)
	blockAll, err := Load(Source{Path: "App.vue", Format: catalog.FormatJSON, Content: []byte(`{"ja": {"hi": "やあ"}}`), Block: noLocale},
		nil, true, catalog.Options{})
	require.NoError(t, err)

	idx := NewIndex([]*LocaleMessage{blockEN, blockAll}, IndexOptions{})

	assert.Same(t, blockEN, idx.FindBlockLocaleMessage(*withLocale))
	assert.Same(t, blockAll, idx.FindBlockLocaleMessage(*noLocale))

	// declared locale with no messages anywhere is out of scope
	assert.Nil(t, idx.FindBlockLocaleMessage(BlockDescriptor{File: "App.vue", Offset: 10, DeclaredLocale: "fr"}))
	// external sources are resolved elsewhere
	assert.Nil(t, idx.FindBlockLocaleMessage(BlockDescriptor{File: "App.vue", Offset: 10, DeclaredLocale: "en", HasExternalSource: true}))
	// unknown block
	assert.Nil(t, idx.FindBlockLocaleMessage(BlockDescriptor{File: "Other.vue", Offset: 10}))
}

func TestIndex_Empty(t *testing.T) {
	idx := NewIndex(nil, IndexOptions{})
	assert.True(t, idx.IsEmpty())
	_, ok := idx.FindMissingPath("anything")
	assert.True(t, ok)
	assert.Empty(t, idx.Locales())
}

func TestIndex_FindMissingPath_RoundTrip(t *testing.T) {
	for _, policy := range []MissingPathPolicy{PolicyFirst, PolicyLongest} {
		t.Run(string(policy), func(t *testing.T) {
			idx := NewIndex([]*LocaleMessage{
				load(t, "locales/en.json", `{"common": {"ok": "OK", "cancel": "Cancel"}, "nav": {"home": "Home"}}`),
				load(t, "locales/ja.json", `{"common": {"ok": "OK", "cancel": "キャンセル"}, "nav": {"home": "ホーム"}}`),
			}, IndexOptions{Policy: policy})

			for _, p := range idx.Tree("en").Paths() {
				missing, ok := idx.FindMissingPath(p)
				assert.True(t, ok, p)
				assert.Empty(t, missing)
			}
			for p := range idx.Tree("ja").Leaves() {
				missing, ok := idx.FindMissingPath(p + ".extra")
				assert.False(t, ok, p)
				assert.Equal(t, p+".extra", missing)
			}
		})
	}
}

func TestIndex_IsResolvedLocaleByFileName(t *testing.T) {
	idx := NewIndex(nil, IndexOptions{})
	assert.True(t, idx.IsResolvedLocaleByFileName("locales/en.json"))
	assert.True(t, idx.IsResolvedLocaleByFileName("locales/en-US.yaml"))
	assert.False(t, idx.IsResolvedLocaleByFileName("locales/messages.json"))

	r, err := NewResolver(`^messages\.(?P<locale>[\w-]+)\.json$`)
	require.NoError(t, err)
	custom := NewIndex(nil, IndexOptions{Resolver: r})
	assert.True(t, custom.IsResolvedLocaleByFileName("i18n/messages.de.json"))
	assert.False(t, custom.IsResolvedLocaleByFileName("i18n/de.json"))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyFirst, p)

	p, err = ParsePolicy("longest")
	require.NoError(t, err)
	assert.Equal(t, PolicyLongest, p)

	_, err = ParsePolicy("all")
	assert.Error(t, err)
}
