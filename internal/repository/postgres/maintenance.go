package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/EcommerceGo/seeder/pkg/database"
)

// MaintenanceRepository performs destructive housekeeping.
type MaintenanceRepository struct {
	pool database.DBTX
}

// NewMaintenanceRepository creates a new PostgreSQL-backed maintenance repository.
func NewMaintenanceRepository(pool database.DBTX) *MaintenanceRepository {
	return &MaintenanceRepository{pool: pool}
}

// Truncate empties tables in a single statement and restarts their
// identity sequences.
func (r *MaintenanceRepository) Truncate(ctx context.Context, tables []string) (err error) {
	if len(tables) == 0 {
		return nil
	}

	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = pgx.Identifier{t}.Sanitize()
	}
	query := "TRUNCATE TABLE " + strings.Join(names, ", ") + " RESTART IDENTITY CASCADE"

	ctx, end := database.TraceQuery(ctx, "Truncate", query)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("truncate %s: %w", strings.Join(tables, ", "), err)
	}
	return nil
}
