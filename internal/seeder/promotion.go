package seeder

import (
	"context"
	"log/slog"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/internal/repository"
	"github.com/utafrali/EcommerceGo/seeder/pkg/metrics"
)

// seedPromotions creates the fixed set of promotions and attaches a random
// selection of active products to each at its discounted price.
func (s *Seeder) seedPromotions(ctx context.Context, repos repository.Repositories, _ *runState) (int, error) {
	products, err := repos.Catalog.ListActiveProducts(ctx)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		s.logger.WarnContext(ctx, "no active products, promotions created without products")
	}

	promotions := domain.DefaultPromotions(s.now())
	attached := 0
	for i := range promotions {
		promo := &promotions[i]
		if err := repos.Promotions.InsertPromotion(ctx, promo); err != nil {
			return 0, err
		}
		for _, p := range Sample(s.rng, products, s.settings.PromotionProducts) {
			pp := domain.PromotionProduct{
				PromotionID:    promo.ID,
				ProductID:      p.ID,
				FlashSalePrice: domain.FlashPrice(p.SellingPrice, promo.DiscountValue),
			}
			if err := repos.Promotions.InsertPromotionProduct(ctx, pp); err != nil {
				return 0, err
			}
			attached++
		}
	}

	metrics.RowsInserted.WithLabelValues("promotion").Add(float64(len(promotions)))
	metrics.RowsInserted.WithLabelValues("promotion_product").Add(float64(attached))
	s.logger.InfoContext(ctx, "promotions seeded",
		slog.Int("promotions", len(promotions)),
		slog.Int("products", attached),
	)
	return len(promotions), nil
}
