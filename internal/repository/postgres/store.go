package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/EcommerceGo/seeder/internal/repository"
	"github.com/utafrali/EcommerceGo/seeder/pkg/database"
)

// Store implements repository.Store on a pgx pool.
type Store struct {
	pool database.TxBeginner
}

// NewStore creates a transactional store backed by pool.
func NewStore(pool database.TxBeginner) *Store {
	return &Store{pool: pool}
}

// InTx runs fn with repositories bound to a fresh transaction.
func (s *Store) InTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return database.InTx(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(NewRepositories(tx))
	})
}

// NewRepositories binds every repository to db.
func NewRepositories(db database.DBTX) repository.Repositories {
	return repository.Repositories{
		Catalog:     NewCatalogRepository(db),
		Resolver:    NewResolver(db),
		Customers:   NewCustomerRepository(db),
		Orders:      NewOrderRepository(db),
		Reviews:     NewReviewRepository(db),
		Promotions:  NewPromotionRepository(db),
		Maintenance: NewMaintenanceRepository(db),
	}
}
