package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeExcerpt_ShortContentReturnedWhole(t *testing.T) {
	content := "Bruno skipped lunch today."
	assert.Equal(t, content, makeExcerpt(content, []string{"lunch"}, excerptMaxChars))
}

func TestMakeExcerpt_NoMatchTakesPrefix(t *testing.T) {
	content := strings.Repeat("z", 250)
	got := makeExcerpt(content, []string{"needle"}, excerptMaxChars)

	assert.Equal(t, 200, utf8.RuneCountInString(got))
	assert.NotContains(t, got, "...")
}

func TestMakeExcerpt_WindowAroundMatch(t *testing.T) {
	content := strings.Repeat("x", 100) + "needle" + strings.Repeat("y", 200)
	got := makeExcerpt(content, []string{"needle"}, excerptMaxChars)

	assert.True(t, strings.HasPrefix(got, "..."))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Contains(t, got, "needle")
	// lead-in of 50 runes before the match
	assert.Contains(t, got, strings.Repeat("x", 50)+"needle")
}

func TestMakeExcerpt_MatchNearStartNoLeadingEllipsis(t *testing.T) {
	content := "needle " + strings.Repeat("y", 300)
	got := makeExcerpt(content, []string{"needle"}, excerptMaxChars)

	assert.True(t, strings.HasPrefix(got, "needle"))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestMakeExcerpt_CaseInsensitiveMatch(t *testing.T) {
	content := strings.Repeat("a", 60) + "NEEDLE" + strings.Repeat("b", 200)
	got := makeExcerpt(content, []string{"needle"}, excerptMaxChars)

	assert.Contains(t, got, "NEEDLE")
	assert.True(t, strings.HasPrefix(got, "..."))
}

func TestMakeExcerpt_FirstTermInOrderWins(t *testing.T) {
	content := "beta comes before alpha here: " + strings.Repeat("p", 300) + " alpha"
	got := makeExcerpt(content, []string{"alpha", "beta"}, excerptMaxChars)

	// "alpha" is the first term, and its first occurrence is near the start.
	assert.Contains(t, got, "alpha")
	assert.False(t, strings.HasPrefix(got, "..."))
}

func TestMakeExcerpt_RuneSafeForDevanagari(t *testing.T) {
	content := strings.Repeat("क", 300)
	got := makeExcerpt(content, nil, excerptMaxChars)

	require.True(t, utf8.ValidString(got))
	assert.Equal(t, 200, utf8.RuneCountInString(got))
}

func TestMakeExcerpt_EmptyContent(t *testing.T) {
	assert.Equal(t, "", makeExcerpt("", []string{"dog"}, excerptMaxChars))
}

func TestBuildHighlights_CollectsCaseVariants(t *testing.T) {
	got := buildHighlights("Dog dog DOG cat", []string{"dog", "fish"})

	require.NotNil(t, got)
	assert.Equal(t, []string{"Dog", "dog", "DOG"}, got["dog"])
	_, hasFish := got["fish"]
	assert.False(t, hasFish)
}

func TestBuildHighlights_NilWhenNothingMatches(t *testing.T) {
	assert.Nil(t, buildHighlights("cat and mouse", []string{"dog"}))
}

func TestBuildHighlights_RegexMetacharactersAreLiteral(t *testing.T) {
	got := buildHighlights("price (low)", []string{"(low)"})

	require.NotNil(t, got)
	assert.Equal(t, []string{"(low)"}, got["(low)"])
}
