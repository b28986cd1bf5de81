package service

import (
	"regexp"
	"strings"
)

const (
	excerptMaxChars = 200
	excerptLeadIn   = 50
)

// makeExcerpt returns a window of content around the first occurrence of
// any term. The window starts excerptLeadIn runes before the match and runs
// for maxLen runes, with ellipses marking truncation on either side. When
// no term matches, the excerpt is simply the first maxLen runes.
func makeExcerpt(content string, terms []string, maxLen int) string {
	if content == "" {
		return ""
	}

	runes := []rune(content)
	// strings.ToLower maps rune for rune, so rune offsets in the lowered
	// text line up with the original.
	lowered := strings.ToLower(content)

	matchAt := -1
	for _, term := range terms {
		if idx := strings.Index(lowered, strings.ToLower(term)); idx >= 0 {
			matchAt = len([]rune(lowered[:idx]))
			break
		}
	}

	if matchAt < 0 {
		if len(runes) <= maxLen {
			return content
		}
		return string(runes[:maxLen])
	}

	start := matchAt - excerptLeadIn
	if start < 0 {
		start = 0
	}
	end := start + maxLen
	if end > len(runes) {
		end = len(runes)
	}

	excerpt := string(runes[start:end])
	if start > 0 {
		excerpt = "..." + excerpt
	}
	if end < len(runes) {
		excerpt += "..."
	}
	return excerpt
}

// buildHighlights maps each term to the literal substrings it matched in
// text, case-insensitively. Terms with no matches are omitted.
func buildHighlights(text string, terms []string) map[string][]string {
	highlights := make(map[string][]string)
	for _, term := range terms {
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(term))
		if err != nil {
			continue
		}
		if matches := re.FindAllString(text, -1); len(matches) > 0 {
			highlights[term] = matches
		}
	}
	if len(highlights) == 0 {
		return nil
	}
	return highlights
}
