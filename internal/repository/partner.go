package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pawnest/pawsearch/internal/domain"
	"github.com/pawnest/pawsearch/internal/service"
)

// PartnerRepository reads the partner directory for the search pipeline.
type PartnerRepository struct {
	pool *pgxpool.Pool
}

func NewPartnerRepository(pool *pgxpool.Pool) *PartnerRepository {
	return &PartnerRepository{pool: pool}
}

// SearchPartners returns approved, verified partners matching any term in
// name, business name, bio, location or a specialization. Pre-sorted by
// rating and review count; final ranking happens in the service layer.
func (r *PartnerRepository) SearchPartners(ctx context.Context, terms []string, filter service.PartnerFilter) ([]*domain.Partner, error) {
	query := `
		SELECT id, name, business_name, bio, type, location, rating_average,
		       review_count, specializations, verified, emergency, online, status, created_at
		FROM partners
		WHERE status = 'approved' AND verified = TRUE`
	var args []interface{}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Location != "" {
		args = append(args, likePattern(filter.Location))
		query += fmt.Sprintf(" AND location ILIKE $%d", len(args))
	}
	if filter.Emergency != nil {
		args = append(args, *filter.Emergency)
		query += fmt.Sprintf(" AND emergency = $%d", len(args))
	}
	if filter.Online != nil {
		args = append(args, *filter.Online)
		query += fmt.Sprintf(" AND online = $%d", len(args))
	}

	if len(terms) > 0 {
		clauses := make([]string, 0, len(terms))
		for _, term := range terms {
			args = append(args, likePattern(term))
			n := len(args)
			clauses = append(clauses, fmt.Sprintf(
				"(name ILIKE $%d OR business_name ILIKE $%d OR bio ILIKE $%d OR location ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(specializations) AS spec WHERE spec ILIKE $%d))",
				n, n, n, n, n))
		}
		query += " AND (" + strings.Join(clauses, " OR ") + ")"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = service.GlobalSourceCap
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY rating_average DESC, review_count DESC, verified DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []*domain.Partner
	for rows.Next() {
		var p domain.Partner
		var businessName, bio, location *string
		if err := rows.Scan(&p.ID, &p.Name, &businessName, &bio, &p.Type, &location,
			&p.RatingAverage, &p.ReviewCount, &p.Specializations, &p.Verified,
			&p.Emergency, &p.Online, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		if businessName != nil {
			p.BusinessName = *businessName
		}
		if bio != nil {
			p.Bio = *bio
		}
		if location != nil {
			p.Location = *location
		}
		partners = append(partners, &p)
	}
	return partners, rows.Err()
}

// CreatePartner inserts a partner listing. Used by seeding and tests.
func (r *PartnerRepository) CreatePartner(ctx context.Context, p *domain.Partner) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO partners (id, name, business_name, bio, type, location, rating_average, review_count, specializations, verified, emergency, online, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.Name, nullableString(p.BusinessName), nullableString(p.Bio), p.Type,
		nullableString(p.Location), p.RatingAverage, p.ReviewCount, p.Specializations,
		p.Verified, p.Emergency, p.Online, p.Status, p.CreatedAt,
	)
	return err
}
