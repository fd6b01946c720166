package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/EcommerceGo/seeder/pkg/database"
)

// Resolver maps slugs back to surrogate keys.
type Resolver struct {
	pool database.DBTX
}

// NewResolver creates a new PostgreSQL-backed identifier resolver.
func NewResolver(pool database.DBTX) *Resolver {
	return &Resolver{pool: pool}
}

// ProductIDsBySlug resolves product slugs in one round trip.
func (r *Resolver) ProductIDsBySlug(ctx context.Context, slugs []string) (ids map[string]int64, err error) {
	ids = make(map[string]int64, len(slugs))
	if len(slugs) == 0 {
		return ids, nil
	}

	query := `SELECT slug, id FROM products WHERE slug = ANY($1)`

	ctx, end := database.TraceQuery(ctx, "ResolveProducts", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, slugs)
	if err != nil {
		return nil, fmt.Errorf("resolve product slugs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			slug string
			id   int64
		)
		if err = rows.Scan(&slug, &id); err != nil {
			return nil, fmt.Errorf("scan product slug: %w", err)
		}
		ids[slug] = id
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product slugs: %w", err)
	}
	return ids, nil
}
