package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pawnest/pawsearch/internal/domain"
	"github.com/pawnest/pawsearch/internal/service"
)

// QuestionRepository reads community questions for the search pipeline.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// SearchQuestions returns active questions in the requested language
// matching any term in title, content or a tag. With no terms the lookup is
// filter-only. Ordering here is a retrieval-time pre-sort; final ranking
// happens in the service layer.
func (r *QuestionRepository) SearchQuestions(ctx context.Context, terms []string, filter service.QuestionFilter) ([]*domain.Question, error) {
	query := `
		SELECT id, title, content, category, language, status, is_urgent,
		       upvotes, views, tags, author_id, author_name, created_at
		FROM questions
		WHERE status = 'active' AND language = $1`
	args := []interface{}{filter.Language}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Urgent != nil {
		args = append(args, *filter.Urgent)
		query += fmt.Sprintf(" AND is_urgent = $%d", len(args))
	}

	if len(terms) > 0 {
		clauses := make([]string, 0, len(terms))
		for _, term := range terms {
			args = append(args, likePattern(term))
			n := len(args)
			clauses = append(clauses, fmt.Sprintf(
				"(title ILIKE $%d OR content ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $%d))",
				n, n, n))
		}
		query += " AND (" + strings.Join(clauses, " OR ") + ")"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = service.GlobalSourceCap
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY is_urgent DESC, upvotes DESC, created_at DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanQuestionRows(rows)
}

func scanQuestionRows(rows pgx.Rows) ([]*domain.Question, error) {
	var questions []*domain.Question
	for rows.Next() {
		var q domain.Question
		var authorName *string
		if err := rows.Scan(&q.ID, &q.Title, &q.Content, &q.Category, &q.Language, &q.Status,
			&q.IsUrgent, &q.Upvotes, &q.Views, &q.Tags, &q.AuthorID, &authorName, &q.CreatedAt); err != nil {
			return nil, err
		}
		if authorName != nil {
			q.AuthorName = *authorName
		}
		questions = append(questions, &q)
	}
	return questions, rows.Err()
}

// CreateQuestion inserts a question. Used by seeding and tests.
func (r *QuestionRepository) CreateQuestion(ctx context.Context, q *domain.Question) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO questions (id, title, content, category, language, status, is_urgent, upvotes, views, tags, author_id, author_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		q.ID, q.Title, q.Content, q.Category, q.Language, q.Status, q.IsUrgent,
		q.Upvotes, q.Views, q.Tags, q.AuthorID, nullableString(q.AuthorName), q.CreatedAt,
	)
	return err
}

// likePattern wraps a term for substring matching, escaping LIKE wildcards
// so user input cannot widen the match.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
