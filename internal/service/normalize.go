package service

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pawnest/pawsearch/internal/language"
)

// Keep letters, digits, underscore, whitespace and hyphens; everything else
// (punctuation, symbols) is stripped before tokenizing.
var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}_\s-]+`)

// normalizeText lowercases, strips punctuation and collapses whitespace,
// without any lexicon expansion.
func normalizeText(raw string) string {
	normalized := strings.ToLower(raw)
	normalized = nonWordRe.ReplaceAllString(normalized, "")
	return strings.Join(strings.Fields(normalized), " ")
}

// Normalize lowercases the raw query, strips punctuation and collapses
// whitespace. For languages with a transliteration table, any script term
// found in the query is expanded with its Latin forms so a single query
// surfaces both script and transliterated matches downstream.
func Normalize(raw, lang string, lex *language.Lexicon) string {
	normalized := normalizeText(raw)
	if normalized == "" {
		return ""
	}

	table, ok := lex.Transliterations[lang]
	if !ok {
		return normalized
	}

	scriptTerms := make([]string, 0, len(table))
	for term := range table {
		scriptTerms = append(scriptTerms, term)
	}
	sort.Strings(scriptTerms)

	expanded := normalized
	for _, term := range scriptTerms {
		if strings.Contains(normalized, term) {
			expanded += " " + strings.Join(table[term], " ")
		}
	}
	return expanded
}

// ExtractTerms tokenizes a normalized query into significant terms and
// expands them with the synonym table. Tokens of up to two runes are
// dropped. The returned order is stable: first-seen token order, with each
// token's synonyms following it.
func ExtractTerms(normalized string, lex *language.Lexicon) []string {
	seen := make(map[string]struct{})
	var terms []string

	add := func(term string) {
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	for _, token := range strings.Fields(normalized) {
		if utf8.RuneCountInString(token) <= 2 {
			continue
		}
		add(token)
		for _, synonym := range lex.Synonyms[token] {
			add(strings.ToLower(synonym))
		}
	}

	return terms
}
