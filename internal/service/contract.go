package service

import (
	"context"
	"time"

	"github.com/pawnest/pawsearch/internal/domain"
)

// Source result caps. Global sources are bounded to keep retrieval cheap;
// health logs are a personal corpus and get a much smaller cap.
const (
	GlobalSourceCap = 1000
	HealthSourceCap = 50
)

// QuestionFilter narrows a question source lookup.
type QuestionFilter struct {
	Language string
	Category string
	Urgent   *bool
	Limit    int
}

// PartnerFilter narrows a partner source lookup.
type PartnerFilter struct {
	Type      string
	Location  string
	Emergency *bool
	Online    *bool
	Limit     int
}

// QuestionStore retrieves active community questions matching any of the
// given terms. An empty term list degrades to filter-only matching.
type QuestionStore interface {
	SearchQuestions(ctx context.Context, terms []string, filter QuestionFilter) ([]*domain.Question, error)
}

// PartnerStore retrieves approved, verified partners matching any of the
// given terms.
type PartnerStore interface {
	SearchPartners(ctx context.Context, terms []string, filter PartnerFilter) ([]*domain.Partner, error)
}

// HealthLogStore retrieves health logs for dogs owned by ownerID whose
// notes match any of the given terms. Only logs with non-empty notes.
type HealthLogStore interface {
	SearchHealthLogs(ctx context.Context, ownerID string, terms []string, limit int) ([]*domain.HealthLog, error)
}

// TopQueriesFilter selects prior queries for suggestion generation.
type TopQueriesFilter struct {
	Contains string
	Language string
	Since    time.Time
	Limit    int
}

// AnalyticsStore is the append-only search event sink, plus the history
// read used for query suggestions.
type AnalyticsStore interface {
	AppendSearchEvent(ctx context.Context, event *domain.SearchEvent) error
	TopQueries(ctx context.Context, filter TopQueriesFilter) ([]string, error)
}

// ResponseCache memoizes complete search responses under a query-derived
// key. TTL policy belongs to the cache implementation.
type ResponseCache interface {
	Key(query SearchQuery) string
	Get(ctx context.Context, key string) (*SearchResponse, bool, error)
	Set(ctx context.Context, key string, response *SearchResponse) error
}
