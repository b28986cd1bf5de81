package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pawnest/pawsearch/internal/domain"
	"github.com/pawnest/pawsearch/internal/language"
	"github.com/pawnest/pawsearch/internal/metrics"
)

// SearchService runs the search pipeline: normalize, extract terms,
// retrieve from the record stores, score, rank, paginate, assemble facets
// and suggestions, memoize and log. All collaborators are passed in at
// construction; there is no hidden global state.
type SearchService struct {
	questions QuestionStore
	partners  PartnerStore
	health    HealthLogStore
	analytics AnalyticsStore
	cache     ResponseCache
	lexicon   *language.Lexicon
	logger    *zap.Logger
	metrics   *metrics.SearchMetrics
	now       func() time.Time
}

// SearchServiceDeps bundles the collaborators of a SearchService.
// Analytics, Cache and Metrics are optional; the service degrades
// gracefully without them.
type SearchServiceDeps struct {
	Questions QuestionStore
	Partners  PartnerStore
	Health    HealthLogStore
	Analytics AnalyticsStore
	Cache     ResponseCache
	Lexicon   *language.Lexicon
	Logger    *zap.Logger
	Metrics   *metrics.SearchMetrics
}

// NewSearchService creates a SearchService.
func NewSearchService(deps SearchServiceDeps) *SearchService {
	lex := deps.Lexicon
	if lex == nil {
		lex = language.Default()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{
		questions: deps.Questions,
		partners:  deps.Partners,
		health:    deps.Health,
		analytics: deps.Analytics,
		cache:     deps.Cache,
		lexicon:   lex,
		logger:    logger,
		metrics:   deps.Metrics,
		now:       time.Now,
	}
}

// Search is the sole public search entry point. It always returns a
// well-formed response, possibly with zero results; only unrecoverable
// conditions surface as errors.
func (s *SearchService) Search(ctx context.Context, query SearchQuery) (*SearchResponse, error) {
	query = normalizeQuery(query)
	start := time.Now()

	var cacheKey string
	if s.cache != nil {
		cacheKey = s.cache.Key(query)
		cached, ok, err := s.cache.Get(ctx, cacheKey)
		if err != nil {
			// A broken cache degrades to always-miss.
			s.logger.Warn("cache lookup failed", zap.Error(err))
		}
		if ok {
			s.metrics.IncCache("hit")
			// took reflects the wall time of this call, not the
			// original computation.
			cached.TookMs = msSince(start)
			return cached, nil
		}
		s.metrics.IncCache("miss")
	}

	normalized := Normalize(query.Query, query.Language, s.lexicon)
	terms := ExtractTerms(normalized, s.lexicon)

	var (
		wg              sync.WaitGroup
		questionResults []*SearchResult
		partnerResults  []*SearchResult
		healthResults   []*SearchResult
		suggestions     []string
	)

	if includesSource(query.Type, SearchTypeQuestions) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			questionResults = s.retrieveQuestions(ctx, terms, query)
		}()
	}
	if includesSource(query.Type, SearchTypePartners) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			partnerResults = s.retrievePartners(ctx, terms, query)
		}()
	}
	if includesSource(query.Type, SearchTypeHealth) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			healthResults = s.retrieveHealthLogs(ctx, terms, query)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		suggestions = s.Suggest(ctx, query.Query, query.Language)
	}()
	wg.Wait()

	// Fixed concatenation order keeps pre-rank ordering deterministic.
	combined := make([]*SearchResult, 0, len(questionResults)+len(partnerResults)+len(healthResults))
	combined = append(combined, questionResults...)
	combined = append(combined, partnerResults...)
	combined = append(combined, healthResults...)

	rankResults(combined, query.Sort)

	response := &SearchResponse{
		Results:      paginate(combined, query.Page, query.Limit),
		Total:        len(combined),
		Page:         query.Page,
		Limit:        query.Limit,
		TookMs:       msSince(start),
		Aggregations: buildAggregations(combined),
		Suggestions:  suggestions,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, response); err != nil {
			s.logger.Warn("cache write failed", zap.Error(err))
		}
	}
	s.appendAnalytics(query, response)
	s.metrics.ObserveSearch(string(query.Type), time.Since(start).Seconds(), response.Total == 0)

	return response, nil
}

// VoiceSearch is a declared but unimplemented modality. It fails fast.
func (s *SearchService) VoiceSearch(ctx context.Context, audio []byte, lang string) (*SearchResponse, error) {
	return nil, domain.ErrVoiceSearchNotImplemented
}

// VisualSearch is a declared but unimplemented modality. It fails fast.
func (s *SearchService) VisualSearch(ctx context.Context, image []byte) (*SearchResponse, error) {
	return nil, domain.ErrVisualSearchNotImplemented
}

func (s *SearchService) retrieveQuestions(ctx context.Context, terms []string, query SearchQuery) []*SearchResult {
	records, err := s.questions.SearchQuestions(ctx, terms, QuestionFilter{
		Language: query.Language,
		Category: query.Filters.Category,
		Urgent:   query.Filters.Urgent,
		Limit:    GlobalSourceCap,
	})
	if err != nil {
		s.degradeSource("questions", err)
		return nil
	}

	results := make([]*SearchResult, 0, len(records))
	for _, q := range records {
		results = append(results, &SearchResult{
			ID:      q.ID,
			Type:    ResultTypeQuestion,
			Title:   q.Title,
			Content: q.Content,
			Excerpt: makeExcerpt(q.Content, terms, excerptMaxChars),
			Score:   scoreQuestion(q, terms),
			Metadata: QuestionMetadata{
				Category:   q.Category,
				IsUrgent:   q.IsUrgent,
				Upvotes:    q.Upvotes,
				Views:      q.Views,
				Tags:       q.Tags,
				AuthorName: q.AuthorName,
				CreatedAt:  q.CreatedAt,
			},
			Highlight: buildHighlights(q.Title+" "+q.Content, terms),
		})
	}
	return results
}

func (s *SearchService) retrievePartners(ctx context.Context, terms []string, query SearchQuery) []*SearchResult {
	records, err := s.partners.SearchPartners(ctx, terms, PartnerFilter{
		Type:      query.Filters.PartnerType,
		Location:  query.Filters.Location,
		Emergency: query.Filters.Emergency,
		Online:    query.Filters.Online,
		Limit:     GlobalSourceCap,
	})
	if err != nil {
		s.degradeSource("partners", err)
		return nil
	}

	results := make([]*SearchResult, 0, len(records))
	for _, p := range records {
		title := p.BusinessName
		if title == "" {
			title = p.Name
		}
		results = append(results, &SearchResult{
			ID:      p.ID,
			Type:    ResultTypePartner,
			Title:   title,
			Content: p.Bio,
			Excerpt: makeExcerpt(p.Bio, terms, excerptMaxChars),
			Score:   scorePartner(p, terms),
			Metadata: PartnerMetadata{
				PartnerType:     string(p.Type),
				Location:        p.Location,
				Rating:          p.RatingAverage,
				ReviewCount:     p.ReviewCount,
				Specializations: p.Specializations,
				Verified:        p.Verified,
				Emergency:       p.Emergency,
				Online:          p.Online,
				CreatedAt:       p.CreatedAt,
			},
			Highlight: buildHighlights(title+" "+p.Bio, terms),
		})
	}
	return results
}

// retrieveHealthLogs returns nothing without a user id: health logs are the
// caller's private data and anonymous search has no health scope.
func (s *SearchService) retrieveHealthLogs(ctx context.Context, terms []string, query SearchQuery) []*SearchResult {
	if query.UserID == "" {
		return nil
	}

	records, err := s.health.SearchHealthLogs(ctx, query.UserID, terms, HealthSourceCap)
	if err != nil {
		s.degradeSource("health", err)
		return nil
	}

	now := s.now()
	results := make([]*SearchResult, 0, len(records))
	for _, h := range records {
		if h.Notes == "" {
			continue
		}
		results = append(results, &SearchResult{
			ID:      h.ID,
			Type:    ResultTypeHealth,
			Title:   "Health log " + h.Date.Format("Jan 2, 2006"),
			Content: h.Notes,
			Excerpt: makeExcerpt(h.Notes, terms, excerptMaxChars),
			Score:   scoreHealthLog(h, terms, now),
			Metadata: HealthMetadata{
				DogID:    h.DogID,
				Date:     h.Date,
				Activity: h.Activity,
				Appetite: h.Appetite,
				Mood:     h.Mood,
			},
			Highlight: buildHighlights(h.Notes, terms),
		})
	}
	return results
}

// degradeSource logs and counts a failing retrieval source. One broken
// source must never take down a combined search.
func (s *SearchService) degradeSource(source string, err error) {
	s.logger.Warn("search source failed, degrading to empty results",
		zap.String("source", source), zap.Error(err))
	s.metrics.IncSourceFailure(source)
}

// appendAnalytics records the search event as a non-critical side effect:
// the write runs detached and its failure is logged, never propagated.
func (s *SearchService) appendAnalytics(query SearchQuery, response *SearchResponse) {
	if s.analytics == nil {
		return
	}
	event := &domain.SearchEvent{
		Query:       query.Query,
		Type:        string(query.Type),
		Language:    query.Language,
		ResultCount: response.Total,
		DurationMs:  int(response.TookMs),
		ZeroResults: response.Total == 0,
		Filters:     filtersMap(query.Filters),
		UserID:      query.UserID,
		CreatedAt:   s.now().UTC(),
	}
	s.bestEffort("analytics append", func(ctx context.Context) error {
		return s.analytics.AppendSearchEvent(ctx, event)
	})
}

// bestEffort runs a non-critical side effect detached from the request,
// swallowing and logging its failure. The main search path must never fail
// because one of these did.
func (s *SearchService) bestEffort(name string, fn func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.logger.Warn("non-critical side effect failed",
				zap.String("op", name), zap.Error(err))
		}
	}()
}

// normalizeQuery applies defaults and clamps. Unknown enum values fall back
// to their defaults rather than erroring.
func normalizeQuery(query SearchQuery) SearchQuery {
	switch query.Type {
	case SearchTypeAll, SearchTypeQuestions, SearchTypePartners, SearchTypeHealth, SearchTypeContent:
	default:
		query.Type = SearchTypeAll
	}
	switch query.Sort {
	case SortRelevance, SortDate, SortPopularity, SortRating:
	default:
		query.Sort = SortRelevance
	}
	if query.Language == "" {
		query.Language = "en"
	} else {
		query.Language = strings.ToLower(query.Language)
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = DefaultLimit
	}
	if query.Limit > MaxLimit {
		query.Limit = MaxLimit
	}
	return query
}

// includesSource reports whether a search type covers the given source.
// The content type has no backing store yet and matches nothing.
func includesSource(searchType, source SearchType) bool {
	return searchType == SearchTypeAll || searchType == source
}

func filtersMap(filters SearchFilters) map[string]string {
	out := make(map[string]string)
	if filters.Category != "" {
		out["category"] = filters.Category
	}
	if filters.PartnerType != "" {
		out["partner_type"] = filters.PartnerType
	}
	if filters.Location != "" {
		out["location"] = filters.Location
	}
	if filters.Urgent != nil {
		out["urgent"] = strconv.FormatBool(*filters.Urgent)
	}
	if filters.Emergency != nil {
		out["emergency"] = strconv.FormatBool(*filters.Emergency)
	}
	if filters.Online != nil {
		out["online"] = strconv.FormatBool(*filters.Online)
	}
	return out
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
