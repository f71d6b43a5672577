package settings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/datastore/pkg/core"
)

func TestParseLanguage(t *testing.T) {
	tests := map[string]Language{
		"ENGLISH":  English,
		"german":   German,
		" Spanish": Spanish,
	}
	for in, want := range tests {
		got, err := ParseLanguage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseLanguage("KLINGON")
	require.ErrorIs(t, err, core.ErrValidation)
}

func TestLanguage_ZeroValueIsEnglish(t *testing.T) {
	var l Language
	assert.Equal(t, English, l)
	assert.Equal(t, English, Default().Language)
}

func TestLanguage_Text(t *testing.T) {
	for _, l := range Languages() {
		assert.True(t, l.Valid())

		text, err := l.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, l.String(), string(text))

		var back Language
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, l, back)
	}

	invalid := Language(7)
	assert.False(t, invalid.Valid())
	assert.Equal(t, "Language(7)", invalid.String())
	_, err := invalid.MarshalText()
	assert.Error(t, err)
}

func TestLanguage_JSONNullKeepsValue(t *testing.T) {
	doc := struct {
		Language Language `json:"language"`
	}{Language: Spanish}

	require.NoError(t, json.Unmarshal([]byte(`{"language":null}`), &doc))
	assert.Equal(t, Spanish, doc.Language)

	require.NoError(t, json.Unmarshal([]byte(`{"language":"german"}`), &doc))
	assert.Equal(t, German, doc.Language)
}
