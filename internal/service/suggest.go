package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	suggestionHistoryLimit = 5
	suggestionCap          = 8
	suggestionHistoryDays  = 30
	minSuggestionQueryLen  = 2
)

// Suggest builds query-completion suggestions for a (partial) query: prior
// successful queries from the analytics history merged with the predefined
// per-language suggestions, deduplicated and capped. Queries shorter than
// two characters get no suggestions. Failures degrade to an empty list.
func (s *SearchService) Suggest(ctx context.Context, query, lang string) []string {
	if lang == "" {
		lang = "en"
	}
	// Substring matching needs the query as typed, not the
	// transliteration-expanded form used for retrieval.
	normalized := normalizeText(query)
	if utf8.RuneCountInString(normalized) < minSuggestionQueryLen {
		return nil
	}

	var history []string
	if s.analytics != nil {
		var err error
		history, err = s.analytics.TopQueries(ctx, TopQueriesFilter{
			Contains: normalized,
			Language: lang,
			Since:    s.now().AddDate(0, 0, -suggestionHistoryDays),
			Limit:    suggestionHistoryLimit,
		})
		if err != nil {
			s.logger.Warn("suggestion history lookup failed", zap.Error(err))
			history = nil
		}
	}

	seen := make(map[string]struct{})
	suggestions := make([]string, 0, suggestionCap)
	add := func(candidate string) {
		if len(suggestions) >= suggestionCap {
			return
		}
		key := strings.ToLower(strings.TrimSpace(candidate))
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, candidate)
	}

	for _, q := range history {
		add(q)
	}
	for _, predefined := range s.lexicon.Suggestions[lang] {
		if strings.Contains(strings.ToLower(predefined), normalized) {
			add(predefined)
		}
	}

	return suggestions
}
