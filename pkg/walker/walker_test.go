package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/i18nlint/pkg/casing"
	"github.com/platinummonkey/i18nlint/pkg/catalog"
)

func opts() catalog.Options {
	return catalog.Options{CaseOption: casing.CamelCase, InLocale: true, CheckKeys: true}
}

func kinds(findings []catalog.Finding) []catalog.FindingKind {
	out := make([]catalog.FindingKind, len(findings))
	for i, f := range findings {
		out[i] = f.Kind
	}
	return out
}

func TestWalkJSON(t *testing.T) {
	src := `{
  "user": {
    "firstName": "First",
    "age": 3,
    "active": true,
    "nick": null
  },
  "items": ["a", "b"]
}`
	tree, findings, _, err := Build("en.json", catalog.FormatJSON, []byte(src), opts())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"user", "user.firstName", "user.age", "user.active", "user.nick",
		"items", "items.0", "items.1",
	}, tree.Paths())
	assert.Equal(t, map[string]string{
		"user.firstName": "First",
		"user.age":       "3",
		"user.active":    "true",
		"items.0":        "a",
		"items.1":        "b",
	}, tree.Leaves())

	require.Len(t, findings, 2)
	assert.Equal(t, "items.0", findings[0].Path)
	assert.Equal(t, "items.1", findings[1].Path)
	assert.Equal(t, catalog.Position{Offset: 108, Line: 8, Column: 13}, findings[0].Span.Start)
	assert.Equal(t, catalog.Position{Offset: 111, Line: 8, Column: 16}, findings[0].Span.End)
}

func TestWalkJSON_KeyPositions(t *testing.T) {
	src := "{\n  \"user-name\": \"x\"\n}"
	_, findings, _, err := Build("en.json", catalog.FormatJSON, []byte(src), opts())
	require.NoError(t, err)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, catalog.KindCasing, f.Kind)
	assert.Equal(t, `"user-name" is not camelCase`, f.Message)
	assert.Equal(t, catalog.Position{Offset: 4, Line: 2, Column: 3}, f.Span.Start)
	assert.Equal(t, catalog.Position{Offset: 15, Line: 2, Column: 14}, f.Span.End)
}

func TestWalkJSON_Tolerant(t *testing.T) {
	src := `{
  // comment
  hello: 'Hi \'there\'',
  /* block */
  "emoji": "😀",
  "list": [1, 2,],
}`
	tree, _, _, err := Build("en.json5", catalog.FormatJSON, []byte(src), catalog.Options{InLocale: true})
	require.NoError(t, err)
	leaves := tree.Leaves()
	assert.Equal(t, "Hi 'there'", leaves["hello"])
	assert.Equal(t, "😀", leaves["emoji"])
	assert.Equal(t, "2", leaves["list.1"])
}

func TestWalkJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated object", `{"a": "b"`},
		{"missing colon", `{"a" "b"}`},
		{"bad literal", `{"a": nope}`},
		{"unterminated string", `{"a": "b}`},
		{"trailing data", `{} {}`},
		{"unterminated comment", `/* {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := Build("en.json", catalog.FormatJSON, []byte(tt.src), opts())
			require.Error(t, err)
			var syntaxErr *SyntaxError
			assert.ErrorAs(t, err, &syntaxErr)
		})
	}
}

func TestWalkJSON_Empty(t *testing.T) {
	tree, findings, _, err := Build("en.json", catalog.FormatJSON, []byte("  \n"), opts())
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Empty(t, tree.Paths())
}

func TestWalkYAML(t *testing.T) {
	src := `user:
  firstName: First
  last_name: Last
items:
  - a
  - b
`
	tree, findings, _, err := Build("en.yaml", catalog.FormatYAML, []byte(src), opts())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"user", "user.firstName", "user.last_name", "items", "items.0", "items.1",
	}, tree.Paths())
	assert.Equal(t, []catalog.FindingKind{
		catalog.KindCasing,
		catalog.KindUnexpectedArrayElement,
		catalog.KindUnexpectedArrayElement,
	}, kinds(findings))

	f := findings[0]
	assert.Equal(t, "user.last_name", f.Path)
	assert.Equal(t, catalog.Position{Offset: 27, Line: 3, Column: 3}, f.Span.Start)
	assert.Equal(t, catalog.Position{Offset: 36, Line: 3, Column: 12}, f.Span.End)
}

func TestWalkYAML_NumericAndBoolKeys(t *testing.T) {
	src := "codes:\n  404: Not found\n  true: yes\n"
	tree, findings, _, err := Build("en.yaml", catalog.FormatYAML, []byte(src), opts())
	require.NoError(t, err)

	assert.Equal(t, []string{"codes", "codes.404", "codes.true"}, tree.Paths())
	require.Len(t, findings, 1)
	assert.Equal(t, catalog.KindUnexpectedArrayElement, findings[0].Kind)
}

func TestWalkYAML_MergeKeyIsUnexpected(t *testing.T) {
	src := `base: &base
  hello: Hi
page:
  <<: *base
  title: Page
`
	tree, findings, _, err := Build("en.yaml", catalog.FormatYAML, []byte(src), opts())
	require.NoError(t, err)

	require.Len(t, findings, 1)
	assert.Equal(t, catalog.KindUnexpectedObjectKey, findings[0].Kind)
	assert.Equal(t, 4, findings[0].Span.Start.Line)
	assert.Equal(t, []string{"base", "base.hello", "page", "page.title"}, tree.Paths())
}

func TestWalkYAML_AliasIsIndexedOnce(t *testing.T) {
	src := `shared: &shared
  Bad-Key: x
copy: *shared
`
	tree, findings, _, err := Build("en.yaml", catalog.FormatYAML, []byte(src), opts())
	require.NoError(t, err)

	// the anchored key is reported where it is defined, not again via the alias
	require.Len(t, findings, 1)
	assert.Equal(t, "shared.Bad-Key", findings[0].Path)
	assert.Equal(t, []string{"shared", "shared.Bad-Key", "copy", "copy.Bad-Key"}, tree.Paths())
}

func TestWalkYAML_ComplexKeyGuard(t *testing.T) {
	src := `? {Bad-Key: x, other_key: y}
: value
fine: ok
`
	tree, findings, _, err := Build("en.yaml", catalog.FormatYAML, []byte(src), opts())
	require.NoError(t, err)

	// only the complex key itself is reported; the pairs inside it are not
	// validated or indexed
	assert.Equal(t, []catalog.FindingKind{catalog.KindUnexpectedObjectKey}, kinds(findings))
	assert.Equal(t, []string{"fine"}, tree.Paths())
}

func TestWalkYAML_ComplexKeyValuePaths(t *testing.T) {
	src := "menu:\n  ? {Bad-Key: 1}\n  : {also-bad: 2, items: [x]}\n"
	_, findings, _, err := Build("en.yaml", catalog.FormatYAML, []byte(src), opts())
	require.NoError(t, err)

	var paths []string
	for _, f := range findings {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []catalog.FindingKind{
		catalog.KindUnexpectedObjectKey,
		catalog.KindCasing,
		catalog.KindUnexpectedArrayElement,
	}, kinds(findings))
	assert.Equal(t, []string{"menu", "menu.also-bad", "menu.items.0"}, paths)
}

func TestWalkYAML_UnresolvedLocaleRoot(t *testing.T) {
	src := `en:
  hello: Hi
ja:
  hello_world: こんにちは
`
	o := opts()
	o.InLocale = false
	tree, findings, locales, err := Build("messages.yaml", catalog.FormatYAML, []byte(src), o)
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "ja"}, locales)
	require.Len(t, findings, 1)
	assert.Equal(t, "ja.hello_world", findings[0].Path)
	assert.Equal(t, "Hi", tree.Leaves()["en.hello"])
}

func TestWalkYAML_Errors(t *testing.T) {
	_, _, _, err := Build("en.yaml", catalog.FormatYAML, []byte("a: [b"), opts())
	assert.Error(t, err)
}

func TestWalkYAML_MultipleDocuments(t *testing.T) {
	src := "hello: Hi\n---\nbad-key: x\nbye: Bye\n---\n"
	tree, findings, _, err := Build("en.yaml", catalog.FormatYAML, []byte(src), opts())
	require.NoError(t, err)

	assert.Equal(t, []string{"hello"}, tree.Paths())
	require.Len(t, findings, 1)
	assert.Equal(t, catalog.KindUnexpectedDocument, findings[0].Kind)
	assert.Equal(t, catalog.Position{Offset: 14, Line: 3, Column: 1}, findings[0].Span.Start)

	_, _, _, err = Build("en.yaml", catalog.FormatYAML, []byte("a: 1\n---\nb: [c\n"), opts())
	assert.Error(t, err)
}

func TestWalkYAML_EmptyStream(t *testing.T) {
	for _, src := range []string{"", "# comment only\n", "---\n"} {
		tree, findings, _, err := Build("en.yaml", catalog.FormatYAML, []byte(src), opts())
		require.NoError(t, err, src)
		assert.Empty(t, tree.Paths(), src)
		assert.Empty(t, findings, src)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want catalog.Format
		ok   bool
	}{
		{"locales/en.json", catalog.FormatJSON, true},
		{"locales/en.json5", catalog.FormatJSON, true},
		{"locales/en.yaml", catalog.FormatYAML, true},
		{"locales/en.YML", catalog.FormatYAML, true},
		{"locales/en.toml", "", false},
		{"locales/en", "", false},
	}
	for _, tt := range tests {
		got, ok := FormatFromPath(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := ForFormat("toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestBuild_Idempotent(t *testing.T) {
	src := []byte(`{"a-b": {"c": [1, 2]}, "Bad": "x"}`)
	_, first, _, err := Build("en.json", catalog.FormatJSON, src, opts())
	require.NoError(t, err)
	_, second, _, err := Build("en.json", catalog.FormatJSON, src, opts())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 4)
}
