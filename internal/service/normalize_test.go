package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pawnest/pawsearch/internal/language"
)

func TestNormalize_LowercasesAndStrips(t *testing.T) {
	lex := language.Default()

	assert.Equal(t, "dog food", Normalize("  Dog   FOOD!! ", "en", lex))
	assert.Equal(t, "whats wrong", Normalize("What's wrong?", "en", lex))
	assert.Equal(t, "tick-borne disease", Normalize("Tick-borne disease", "en", lex))
}

func TestNormalize_EmptyAndWhitespaceOnly(t *testing.T) {
	lex := language.Default()

	assert.Equal(t, "", Normalize("", "en", lex))
	assert.Equal(t, "", Normalize("   \t  ", "en", lex))
	assert.Equal(t, "", Normalize("!?!", "en", lex))
}

func TestNormalize_HindiTransliterationExpansion(t *testing.T) {
	lex := language.Default()

	got := Normalize("कुत्ता बीमार", "hi", lex)
	assert.Contains(t, got, "कुत्ता")
	assert.Contains(t, got, "dog")
	assert.Contains(t, got, "kutta")
	assert.Contains(t, got, "sick")
	assert.Contains(t, got, "bimar")
}

func TestNormalize_TransliterationDeterministic(t *testing.T) {
	lex := language.Default()

	first := Normalize("कुत्ता बीमार खाना", "hi", lex)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Normalize("कुत्ता बीमार खाना", "hi", lex))
	}
}

func TestNormalize_NoTransliterationForEnglish(t *testing.T) {
	lex := language.Default()

	assert.Equal(t, "dog sick", Normalize("dog sick", "en", lex))
}

func TestExtractTerms_DropsShortTokens(t *testing.T) {
	lex := language.Default()

	terms := ExtractTerms("my is an cat", lex)
	assert.Equal(t, []string{"cat"}, terms)
}

func TestExtractTerms_ShortTokenLengthIsRunes(t *testing.T) {
	lex := &language.Lexicon{Synonyms: map[string][]string{}}

	// Three Devanagari runes survive even though the byte length is large.
	terms := ExtractTerms("टीका है", lex)
	assert.Equal(t, []string{"टीका"}, terms)
}

func TestExtractTerms_ExpandsSynonyms(t *testing.T) {
	lex := language.Default()

	terms := ExtractTerms("dog park", lex)
	assert.Equal(t, []string{"dog", "puppy", "canine", "pet", "park"}, terms)
}

func TestExtractTerms_Dedupes(t *testing.T) {
	lex := language.Default()

	// "puppy" is both a token and a synonym of "dog".
	terms := ExtractTerms("dog puppy", lex)
	assert.Equal(t, []string{"dog", "puppy", "canine", "pet", "pup"}, terms)
}

func TestExtractTerms_EmptyInput(t *testing.T) {
	lex := language.Default()

	assert.Empty(t, ExtractTerms("", lex))
}
