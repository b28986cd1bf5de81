package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankResults_RelevanceDescending(t *testing.T) {
	results := []*SearchResult{
		{ID: "low", Score: 1},
		{ID: "high", Score: 9},
		{ID: "mid", Score: 5},
	}

	rankResults(results, SortRelevance)

	assert.Equal(t, "high", results[0].ID)
	assert.Equal(t, "mid", results[1].ID)
	assert.Equal(t, "low", results[2].ID)
}

func TestRankResults_TiesKeepInsertionOrder(t *testing.T) {
	results := []*SearchResult{
		{ID: "first", Score: 5},
		{ID: "second", Score: 5},
		{ID: "third", Score: 5},
	}

	rankResults(results, SortRelevance)

	assert.Equal(t, "first", results[0].ID)
	assert.Equal(t, "second", results[1].ID)
	assert.Equal(t, "third", results[2].ID)
}

func TestRankResults_DateSortNewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	results := []*SearchResult{
		{ID: "old-high-score", Score: 9, Metadata: QuestionMetadata{CreatedAt: base}},
		{ID: "new-low-score", Score: 1, Metadata: QuestionMetadata{CreatedAt: base.AddDate(0, 0, 7)}},
	}

	rankResults(results, SortDate)

	assert.Equal(t, "new-low-score", results[0].ID)
	assert.Equal(t, "old-high-score", results[1].ID)
}

func TestRankResults_DateTiesFallBackToRelevance(t *testing.T) {
	when := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	results := []*SearchResult{
		{ID: "weak", Score: 1, Metadata: QuestionMetadata{CreatedAt: when}},
		{ID: "strong", Score: 9, Metadata: QuestionMetadata{CreatedAt: when}},
	}

	rankResults(results, SortDate)

	// Same date: the relevance pass already put "strong" first and the
	// stable date pass must not reorder the tie.
	assert.Equal(t, "strong", results[0].ID)
	assert.Equal(t, "weak", results[1].ID)
}

func TestRankResults_PopularityUsesUpvotesThenViews(t *testing.T) {
	results := []*SearchResult{
		{ID: "views-only", Score: 5, Metadata: QuestionMetadata{Views: 500}},
		{ID: "upvoted", Score: 1, Metadata: QuestionMetadata{Upvotes: 600}},
		{ID: "partner", Score: 9, Metadata: PartnerMetadata{Rating: 5}},
	}

	rankResults(results, SortPopularity)

	assert.Equal(t, "upvoted", results[0].ID)
	assert.Equal(t, "views-only", results[1].ID)
	assert.Equal(t, "partner", results[2].ID)
}

func TestRankResults_RatingSortPartnersFirst(t *testing.T) {
	results := []*SearchResult{
		{ID: "question", Score: 9, Metadata: QuestionMetadata{Upvotes: 100}},
		{ID: "good-partner", Score: 1, Metadata: PartnerMetadata{Rating: 4.8}},
		{ID: "ok-partner", Score: 1, Metadata: PartnerMetadata{Rating: 3.2}},
	}

	rankResults(results, SortRating)

	assert.Equal(t, "good-partner", results[0].ID)
	assert.Equal(t, "ok-partner", results[1].ID)
	assert.Equal(t, "question", results[2].ID)
}

func TestPaginate_CoverageNoGapsNoDuplicates(t *testing.T) {
	full := make([]*SearchResult, 25)
	for i := range full {
		full[i] = &SearchResult{ID: fmt.Sprintf("r%02d", i)}
	}

	limit := 10
	var reassembled []*SearchResult
	for page := 1; page <= 3; page++ {
		reassembled = append(reassembled, paginate(full, page, limit)...)
	}

	require.Len(t, reassembled, 25)
	for i, r := range reassembled {
		assert.Equal(t, full[i].ID, r.ID)
	}
}

func TestPaginate_PageBoundary(t *testing.T) {
	full := make([]*SearchResult, 25)
	for i := range full {
		full[i] = &SearchResult{ID: fmt.Sprintf("r%02d", i)}
	}

	lastPage := paginate(full, 3, 10)
	assert.Len(t, lastPage, 5)

	beyond := paginate(full, 4, 10)
	require.NotNil(t, beyond)
	assert.Empty(t, beyond)
}

func TestPaginate_EmptyInput(t *testing.T) {
	got := paginate(nil, 1, 10)
	require.NotNil(t, got)
	assert.Empty(t, got)
}
