package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLocaleCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"en", true},
		{"ja", true},
		{"en-US", true},
		{"zh-Hans", true},
		{"pt_BR", true},
		{"", false},
		{"und", false},
		{"messages", false},
		{"123", false},
		{"-en", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLocaleCode(tt.code))
		})
	}
}

func TestResolver_LocaleFromFileName(t *testing.T) {
	var r *Resolver
	loc, ok := r.LocaleFromFileName("locales/ja.yaml")
	assert.True(t, ok)
	assert.Equal(t, "ja", loc)

	_, ok = r.LocaleFromFileName("locales/common.json")
	assert.False(t, ok)

	tests := []struct {
		file string
		want string
		ok   bool
	}{
		{"locales/en-US.json", "en-US", true},
		{"locales/pt_BR.yaml", "pt_BR", true},
		{"locales/yue-HK.json", "yue-HK", true},
		{"locales/app.json", "", false},
		{"locales/nav.yaml", "", false},
		{"locales/yue.json", "", false},
		{"locales/en-.json", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			loc, ok := r.LocaleFromFileName(tt.file)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, loc)
		})
	}
}

func TestResolver_PatternAcceptsThreeLetterLocales(t *testing.T) {
	r, err := NewResolver(`^(?P<locale>[a-z]{2,3})\.json$`)
	require.NoError(t, err)

	loc, ok := r.LocaleFromFileName("locales/yue.json")
	assert.True(t, ok)
	assert.Equal(t, "yue", loc)
}

func TestNewResolver(t *testing.T) {
	_, err := NewResolver("(")
	assert.Error(t, err)

	_, err = NewResolver(`^(\w+)\.json$`)
	assert.Error(t, err)

	r, err := NewResolver(`^app\.(?P<locale>[a-z]{2})\.ya?ml$`)
	require.NoError(t, err)
	loc, ok := r.LocaleFromFileName("/srv/app.fr.yml")
	assert.True(t, ok)
	assert.Equal(t, "fr", loc)
}
