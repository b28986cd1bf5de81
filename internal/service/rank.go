package service

import (
	"sort"
	"time"
)

// rankResults orders results in place. Relevance order is always
// established first; a non-relevance sort key is then applied as a second
// stable pass, so results tied on the secondary key keep their relevance
// order instead of being shuffled.
func rankResults(results []*SearchResult, key SortKey) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	switch key {
	case SortDate:
		sort.SliceStable(results, func(i, j int) bool {
			return resultDate(results[i]).After(resultDate(results[j]))
		})
	case SortPopularity:
		sort.SliceStable(results, func(i, j int) bool {
			return resultPopularity(results[i]) > resultPopularity(results[j])
		})
	case SortRating:
		sort.SliceStable(results, func(i, j int) bool {
			return resultRating(results[i]) > resultRating(results[j])
		})
	}
}

// paginate slices the page window out of the full ranked set. Out-of-range
// pages yield an empty slice, not an error.
func paginate(results []*SearchResult, page, limit int) []*SearchResult {
	start := (page - 1) * limit
	if start >= len(results) {
		return []*SearchResult{}
	}
	end := start + limit
	if end > len(results) {
		end = len(results)
	}
	return results[start:end]
}

func resultDate(r *SearchResult) time.Time {
	switch m := r.Metadata.(type) {
	case QuestionMetadata:
		return m.CreatedAt
	case PartnerMetadata:
		return m.CreatedAt
	case HealthMetadata:
		return m.Date
	}
	return time.Time{}
}

func resultPopularity(r *SearchResult) int {
	if m, ok := r.Metadata.(QuestionMetadata); ok {
		if m.Upvotes != 0 {
			return m.Upvotes
		}
		return m.Views
	}
	return 0
}

func resultRating(r *SearchResult) float64 {
	if m, ok := r.Metadata.(PartnerMetadata); ok {
		return m.Rating
	}
	return 0
}
