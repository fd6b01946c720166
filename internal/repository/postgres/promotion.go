package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/pkg/database"
)

// PromotionRepository implements promotion persistence using PostgreSQL.
type PromotionRepository struct {
	pool database.DBTX
}

// NewPromotionRepository creates a new PostgreSQL-backed promotion repository.
func NewPromotionRepository(pool database.DBTX) *PromotionRepository {
	return &PromotionRepository{pool: pool}
}

// InsertPromotion stores a promotion and sets its ID.
func (r *PromotionRepository) InsertPromotion(ctx context.Context, p *domain.Promotion) (err error) {
	query := `
		INSERT INTO promotions (name, type, discount_type, discount_value, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "InsertPromotion", query)
	defer func() { end(err) }()

	err = r.pool.QueryRow(ctx, query,
		p.Name,
		p.Type,
		p.DiscountType,
		p.DiscountValue,
		p.StartDate,
		p.EndDate,
		p.Status,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert promotion %q: %w", p.Name, err)
	}
	return nil
}

// InsertPromotionProduct attaches a product to a promotion at a flash price.
func (r *PromotionRepository) InsertPromotionProduct(ctx context.Context, pp domain.PromotionProduct) (err error) {
	query := `
		INSERT INTO promotion_products (promotion_id, product_id, flash_sale_price)
		VALUES ($1, $2, $3)`

	ctx, end := database.TraceQuery(ctx, "InsertPromotionProduct", query)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, query, pp.PromotionID, pp.ProductID, pp.FlashSalePrice); err != nil {
		return fmt.Errorf("insert product %d into promotion %d: %w", pp.ProductID, pp.PromotionID, err)
	}
	return nil
}
