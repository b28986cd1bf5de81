package service

import (
	"encoding/json"
	"fmt"
	"time"
)

// SearchType selects which record sources a search runs against.
type SearchType string

const (
	SearchTypeAll       SearchType = "all"
	SearchTypeQuestions SearchType = "questions"
	SearchTypePartners  SearchType = "partners"
	SearchTypeHealth    SearchType = "health"
	SearchTypeContent   SearchType = "content"
)

// SortKey selects the secondary ordering of search results.
type SortKey string

const (
	SortRelevance  SortKey = "relevance"
	SortDate       SortKey = "date"
	SortPopularity SortKey = "popularity"
	SortRating     SortKey = "rating"
)

const (
	// DefaultLimit is the page size used when the caller does not supply one.
	DefaultLimit = 20
	// MaxLimit caps the page size regardless of caller input.
	MaxLimit = 100
)

// SearchFilters narrows a search with domain-specific predicates.
type SearchFilters struct {
	Category    string `json:"category,omitempty"`
	PartnerType string `json:"partner_type,omitempty"`
	Location    string `json:"location,omitempty"`
	Urgent      *bool  `json:"urgent,omitempty"`
	Emergency   *bool  `json:"emergency,omitempty"`
	Online      *bool  `json:"online,omitempty"`
}

// SearchQuery is the sole input to Search.
type SearchQuery struct {
	Query    string        `json:"query"`
	Type     SearchType    `json:"type"`
	Language string        `json:"language"`
	Filters  SearchFilters `json:"filters"`
	Sort     SortKey       `json:"sort"`
	Page     int           `json:"page"`
	Limit    int           `json:"limit"`
	UserID   string        `json:"user_id,omitempty"`
}

// ResultType tags a SearchResult with its source.
type ResultType string

const (
	ResultTypeQuestion ResultType = "question"
	ResultTypePartner  ResultType = "partner"
	ResultTypeHealth   ResultType = "health_info"
	ResultTypeContent  ResultType = "content"
)

// Metadata is the per-source payload of a SearchResult. The concrete type
// is determined by the result's Type field.
type Metadata interface {
	resultMetadata()
}

// QuestionMetadata is the metadata payload for question results.
type QuestionMetadata struct {
	Category   string    `json:"category"`
	IsUrgent   bool      `json:"is_urgent"`
	Upvotes    int       `json:"upvotes"`
	Views      int       `json:"views"`
	Tags       []string  `json:"tags,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (QuestionMetadata) resultMetadata() {}

// PartnerMetadata is the metadata payload for partner results.
type PartnerMetadata struct {
	PartnerType     string    `json:"partner_type"`
	Location        string    `json:"location"`
	Rating          float64   `json:"rating"`
	ReviewCount     int       `json:"review_count"`
	Specializations []string  `json:"specializations,omitempty"`
	Verified        bool      `json:"verified"`
	Emergency       bool      `json:"emergency"`
	Online          bool      `json:"online"`
	CreatedAt       time.Time `json:"created_at"`
}

func (PartnerMetadata) resultMetadata() {}

// HealthMetadata is the metadata payload for health log results.
type HealthMetadata struct {
	DogID    string    `json:"dog_id"`
	Date     time.Time `json:"date"`
	Activity string    `json:"activity,omitempty"`
	Appetite string    `json:"appetite,omitempty"`
	Mood     string    `json:"mood,omitempty"`
}

func (HealthMetadata) resultMetadata() {}

// SearchResult is a single scored match. Results are built fresh per search
// call and never persisted.
type SearchResult struct {
	ID        string              `json:"id"`
	Type      ResultType          `json:"type"`
	Title     string              `json:"title"`
	Content   string              `json:"content,omitempty"`
	Excerpt   string              `json:"excerpt"`
	Score     float64             `json:"relevance_score"`
	Metadata  Metadata            `json:"metadata,omitempty"`
	Highlight map[string][]string `json:"highlight,omitempty"`
}

// searchResultAlias avoids recursion in UnmarshalJSON.
type searchResultAlias struct {
	ID        string              `json:"id"`
	Type      ResultType          `json:"type"`
	Title     string              `json:"title"`
	Content   string              `json:"content,omitempty"`
	Excerpt   string              `json:"excerpt"`
	Score     float64             `json:"relevance_score"`
	Metadata  json.RawMessage     `json:"metadata,omitempty"`
	Highlight map[string][]string `json:"highlight,omitempty"`
}

// UnmarshalJSON decodes the metadata payload into the concrete type named
// by the result's Type tag. Required for responses read back from the cache.
func (r *SearchResult) UnmarshalJSON(data []byte) error {
	var alias searchResultAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	r.ID = alias.ID
	r.Type = alias.Type
	r.Title = alias.Title
	r.Content = alias.Content
	r.Excerpt = alias.Excerpt
	r.Score = alias.Score
	r.Highlight = alias.Highlight
	r.Metadata = nil

	if len(alias.Metadata) == 0 {
		return nil
	}

	switch alias.Type {
	case ResultTypeQuestion:
		var m QuestionMetadata
		if err := json.Unmarshal(alias.Metadata, &m); err != nil {
			return err
		}
		r.Metadata = m
	case ResultTypePartner:
		var m PartnerMetadata
		if err := json.Unmarshal(alias.Metadata, &m); err != nil {
			return err
		}
		r.Metadata = m
	case ResultTypeHealth:
		var m HealthMetadata
		if err := json.Unmarshal(alias.Metadata, &m); err != nil {
			return err
		}
		r.Metadata = m
	case ResultTypeContent:
		// No content store is wired; nothing to decode.
	default:
		return fmt.Errorf("unknown result type %q", alias.Type)
	}

	return nil
}

// FacetBucket is one key/count pair of an aggregation.
type FacetBucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// SearchResponse is the complete output of one search call. It is the unit
// written to the cache and is immutable once built.
type SearchResponse struct {
	Results      []*SearchResult          `json:"results"`
	Total        int                      `json:"total"`
	Page         int                      `json:"page"`
	Limit        int                      `json:"limit"`
	TookMs       float64                  `json:"took"`
	Aggregations map[string][]FacetBucket `json:"aggregations"`
	Suggestions  []string                 `json:"suggestions"`
}
