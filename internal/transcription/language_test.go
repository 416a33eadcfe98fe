package transcription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
		wantName string
		wantErr  bool
	}{
		{name: "english name", input: "English", wantCode: "en", wantName: "English"},
		{name: "case insensitive name", input: "spanish", wantCode: "es", wantName: "Spanish"},
		{name: "padded name", input: "  French ", wantCode: "fr", wantName: "French"},
		{name: "tag", input: "de", wantCode: "de", wantName: "German"},
		{name: "regional tag", input: "pt-BR", wantCode: "pt"},
		{name: "empty", input: "", wantErr: true},
		{name: "gibberish", input: "not a language!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, err := ParseLanguage(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownLanguage)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, lang.Code())
			assert.NotEmpty(t, lang.Name)
			if tt.wantName != "" {
				assert.Equal(t, tt.wantName, lang.Name)
			}
		})
	}
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	require.NotEmpty(t, langs)

	assert.Equal(t, English, langs[0])

	seen := map[string]bool{}
	for _, l := range langs {
		assert.NotEmpty(t, l.Name)
		assert.NotEmpty(t, l.Native())
		assert.False(t, seen[l.Code()], "duplicate %s", l.Code())
		seen[l.Code()] = true

		parsed, err := ParseLanguage(l.Name)
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}
}
