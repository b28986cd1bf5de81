package service

import "sort"

// buildAggregations computes facet buckets over the full ranked result set,
// not just the returned page: a "types" facet counting results per result
// type, and a "categories" facet counting question results per category.
func buildAggregations(results []*SearchResult) map[string][]FacetBucket {
	typeCounts := make(map[string]int)
	categoryCounts := make(map[string]int)

	for _, r := range results {
		typeCounts[string(r.Type)]++
		if m, ok := r.Metadata.(QuestionMetadata); ok && m.Category != "" {
			categoryCounts[m.Category]++
		}
	}

	return map[string][]FacetBucket{
		"types":      toBuckets(typeCounts),
		"categories": toBuckets(categoryCounts),
	}
}

// toBuckets orders buckets by count descending, then key ascending for a
// deterministic response.
func toBuckets(counts map[string]int) []FacetBucket {
	buckets := make([]FacetBucket, 0, len(counts))
	for key, count := range counts {
		buckets = append(buckets, FacetBucket{Key: key, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Key < buckets[j].Key
	})
	return buckets
}
