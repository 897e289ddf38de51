package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExplodeIRI_Separators tests splitting at the last separator.
func TestExplodeIRI_Separators(t *testing.T) {
	tests := []struct {
		iri       string
		namespace string
		value     string
	}{
		{"http://www.w3.org/1999/02/22-rdf-syntax-ns#type", "http://www.w3.org/1999/02/22-rdf-syntax-ns#", "type"},
		{"https://ontology.example.org/core/Dataset", "https://ontology.example.org/core/", "Dataset"},
		{"urn:uuid:0ea1fc7a-dd97-4adc-a10e-169c6597bcde", "urn:uuid:", "0ea1fc7a-dd97-4adc-a10e-169c6597bcde"},
		{"http://example.org/a#b/c", "http://example.org/a#b/", "c"},
		{"http://example.org/", "http://example.org/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.iri, func(t *testing.T) {
			n, err := ExplodeIRI(tt.iri)
			require.NoError(t, err)
			assert.Equal(t, tt.namespace, n.Namespace)
			assert.Equal(t, tt.value, n.Value)
			assert.Equal(t, tt.iri, n.IRI())
		})
	}
}

// TestExplodeIRI_NoSeparator tests the error for IRIs without a namespace.
func TestExplodeIRI_NoSeparator(t *testing.T) {
	_, err := ExplodeIRI("nonamespace")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoNamespace)
}

// TestMustExplodeIRI_Panics tests the panicking variant.
func TestMustExplodeIRI_Panics(t *testing.T) {
	assert.Panics(t, func() { MustExplodeIRI("plain") })
	assert.NotPanics(t, func() { MustExplodeIRI("http://example.org/x") })
}

// TestNormalizeLang tests BCP 47 well-formedness checks and lowercasing.
func TestNormalizeLang(t *testing.T) {
	tests := map[string]string{
		"en":         "en",
		"fr":         "fr",
		"en-US":      "en-us",
		"EN-gb":      "en-gb",
		"de-CH-1996": "de-ch-1996",
		"zh-Hant-TW": "zh-hant-tw",
	}
	for tag, want := range tests {
		got, err := NormalizeLang(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, want, got, tag)
	}
	for _, tag := range []string{"", "en_US!", "toolonglanguagetag", "-en"} {
		_, err := NormalizeLang(tag)
		assert.ErrorIs(t, err, ErrMalformedLang, tag)
	}
}
