package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pawnest/pawsearch/internal/domain"
	"github.com/pawnest/pawsearch/internal/service"
)

// AnalyticsRepository stores search events for reporting and suggestion
// generation. Rows are append-only.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// AppendSearchEvent inserts one analytics row for a search call.
func (r *AnalyticsRepository) AppendSearchEvent(ctx context.Context, event *domain.SearchEvent) error {
	id := event.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	filtersJSON, _ := json.Marshal(event.Filters)

	_, err := r.pool.Exec(ctx,
		`INSERT INTO search_events (id, query, type, language, result_count, duration_ms, zero_results, filters, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id,
		event.Query,
		event.Type,
		event.Language,
		event.ResultCount,
		event.DurationMs,
		event.ZeroResults,
		filtersJSON,
		nullableString(event.UserID),
		createdAt,
	)
	return err
}

// TopQueries returns distinct prior queries matching the filter substring,
// restricted to the window and language, that returned at least one result,
// ordered by their best historical result count.
func (r *AnalyticsRepository) TopQueries(ctx context.Context, filter service.TopQueriesFilter) ([]string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 5
	}

	rows, err := r.pool.Query(ctx,
		`SELECT query
		 FROM (
		     SELECT query, MAX(result_count) AS best_count
		     FROM search_events
		     WHERE created_at >= $1
		       AND language = $2
		       AND result_count > 0
		       AND query ILIKE $3
		     GROUP BY query
		 ) ranked
		 ORDER BY best_count DESC, query ASC
		 LIMIT $4`,
		filter.Since, filter.Language, likePattern(filter.Contains), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// DeleteEventsBefore removes analytics rows older than the cutoff. Used by
// the retention sweeper.
func (r *AnalyticsRepository) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM search_events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
