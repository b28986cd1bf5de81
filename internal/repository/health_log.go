package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pawnest/pawsearch/internal/domain"
	"github.com/pawnest/pawsearch/internal/service"
)

// HealthLogRepository reads per-dog health logs, scoped to one owner.
type HealthLogRepository struct {
	pool *pgxpool.Pool
}

func NewHealthLogRepository(pool *pgxpool.Pool) *HealthLogRepository {
	return &HealthLogRepository{pool: pool}
}

// SearchHealthLogs returns logs with non-empty notes belonging to dogs
// owned by ownerID, matching any term in the notes field.
func (r *HealthLogRepository) SearchHealthLogs(ctx context.Context, ownerID string, terms []string, limit int) ([]*domain.HealthLog, error) {
	query := `
		SELECT h.id, h.dog_id, h.date, h.notes, h.activity, h.appetite, h.mood
		FROM health_logs h
		JOIN dogs d ON d.id = h.dog_id
		WHERE d.owner_id = $1 AND h.notes <> ''`
	args := []interface{}{ownerID}

	if len(terms) > 0 {
		clauses := make([]string, 0, len(terms))
		for _, term := range terms {
			args = append(args, likePattern(term))
			clauses = append(clauses, fmt.Sprintf("h.notes ILIKE $%d", len(args)))
		}
		query += " AND (" + strings.Join(clauses, " OR ") + ")"
	}

	if limit <= 0 {
		limit = service.HealthSourceCap
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY h.date DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.HealthLog
	for rows.Next() {
		var h domain.HealthLog
		var activity, appetite, mood *string
		if err := rows.Scan(&h.ID, &h.DogID, &h.Date, &h.Notes, &activity, &appetite, &mood); err != nil {
			return nil, err
		}
		if activity != nil {
			h.Activity = *activity
		}
		if appetite != nil {
			h.Appetite = *appetite
		}
		if mood != nil {
			h.Mood = *mood
		}
		logs = append(logs, &h)
	}
	return logs, rows.Err()
}

// CreateDog inserts a dog profile. Used by seeding and tests.
func (r *HealthLogRepository) CreateDog(ctx context.Context, d *domain.Dog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO dogs (id, owner_id, name, breed) VALUES ($1, $2, $3, $4)`,
		d.ID, d.OwnerID, d.Name, nullableString(d.Breed),
	)
	return err
}

// CreateHealthLog inserts a health log entry. Used by seeding and tests.
func (r *HealthLogRepository) CreateHealthLog(ctx context.Context, h *domain.HealthLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO health_logs (id, dog_id, date, notes, activity, appetite, mood)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		h.ID, h.DogID, h.Date, h.Notes,
		nullableString(h.Activity), nullableString(h.Appetite), nullableString(h.Mood),
	)
	return err
}
