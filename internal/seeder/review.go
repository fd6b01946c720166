package seeder

import (
	"context"
	"errors"
	"log/slog"

	"github.com/utafrali/EcommerceGo/seeder/internal/config"
	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/internal/repository"
	"github.com/utafrali/EcommerceGo/seeder/pkg/httpclient"
	"github.com/utafrali/EcommerceGo/seeder/pkg/metrics"
)

// seedReviews writes reviews for delivered purchases using the configured
// policy, then recomputes every product's rating aggregate.
func (s *Seeder) seedReviews(ctx context.Context, repos repository.Repositories, _ *runState) (int, error) {
	purchases, err := repos.Reviews.DeliveredPurchases(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	if len(purchases) == 0 {
		s.logger.WarnContext(ctx, "precondition not met, no reviews written",
			slog.String("reason", "no delivered orders"))
	} else {
		switch s.settings.ReviewPolicy {
		case config.ReviewPolicyProduct:
			created, err = s.reviewsPerProduct(ctx, repos, purchases)
		default:
			created, err = s.reviewsPerPurchase(ctx, repos, purchases)
		}
		if err != nil {
			return 0, err
		}
	}

	updated, err := repos.Reviews.RecomputeRatings(ctx)
	if err != nil {
		return 0, err
	}
	drift, err := repos.Reviews.RatingDrift(ctx)
	if err != nil {
		return 0, err
	}
	if drift > 0 {
		s.logger.WarnContext(ctx, "rating aggregates drifted after recompute", slog.Int("products", drift))
	}

	metrics.RowsInserted.WithLabelValues("review").Add(float64(created))
	s.logger.InfoContext(ctx, "reviews seeded",
		slog.String("policy", s.settings.ReviewPolicy),
		slog.Int("reviews", created),
		slog.Int64("products_recomputed", updated),
	)
	return created, nil
}

// reviewsPerPurchase walks delivered purchases in random order and reviews
// some of them, through the API when the buyer can sign in and directly
// otherwise, until the cap is reached.
func (s *Seeder) reviewsPerPurchase(ctx context.Context, repos repository.Repositories, purchases []domain.Purchase) (int, error) {
	s.rng.Shuffle(len(purchases), func(i, j int) { purchases[i], purchases[j] = purchases[j], purchases[i] })

	tokens := make(map[int64]string)
	created := 0
	for _, p := range purchases {
		if created >= s.settings.ReviewCap {
			break
		}
		if !s.rng.Chance(s.settings.ReviewProbability) {
			continue
		}
		rv := domain.ReviewFrom(p, Choice(s.rng, domain.ReviewTemplates))

		token := s.customerToken(ctx, p, tokens)
		if token == "" {
			ok, err := repos.Reviews.InsertReview(ctx, rv)
			if err != nil {
				return created, err
			}
			if ok {
				created++
			} else {
				metrics.ItemsSkipped.WithLabelValues("review", "duplicate").Inc()
			}
			continue
		}

		if err := s.postReview(ctx, token, rv); err == nil {
			created++
		}
		if err := s.sleep(ctx, s.settings.ReviewThrottle); err != nil {
			return created, err
		}
	}
	return created, nil
}

// reviewsPerProduct gives every active product a random number of reviews,
// each attributed to a real delivered purchase of that product. Products
// nobody received are skipped.
func (s *Seeder) reviewsPerProduct(ctx context.Context, repos repository.Repositories, purchases []domain.Purchase) (int, error) {
	byProduct := make(map[int64][]domain.Purchase)
	for _, p := range purchases {
		byProduct[p.ProductID] = append(byProduct[p.ProductID], p)
	}

	products, err := repos.Catalog.ListActiveProducts(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, prod := range products {
		bought := byProduct[prod.ID]
		if len(bought) == 0 {
			metrics.ItemsSkipped.WithLabelValues("review", "no_purchases").Inc()
			continue
		}
		n := s.rng.Between(s.settings.ReviewsPerProductMin, s.settings.ReviewsPerProductMax)
		for range n {
			rv := domain.ReviewFrom(Choice(s.rng, bought), Choice(s.rng, domain.ReviewTemplates))
			ok, err := repos.Reviews.InsertReview(ctx, rv)
			if err != nil {
				return created, err
			}
			if ok {
				created++
			} else {
				metrics.ItemsSkipped.WithLabelValues("review", "duplicate").Inc()
			}
		}
	}
	return created, nil
}

// customerToken signs the buyer in once per run. An empty token means the
// review is written directly.
func (s *Seeder) customerToken(ctx context.Context, p domain.Purchase, cache map[int64]string) string {
	if s.auth == nil || s.reviews == nil || p.CustomerEmail == "" {
		return ""
	}
	if token, ok := cache[p.CustomerID]; ok {
		return token
	}

	token, err := s.auth.CustomerLogin(ctx, p.CustomerEmail, s.settings.CustomerPassword)
	if err != nil {
		metrics.APICalls.WithLabelValues("customer_login", "error").Inc()
		s.logger.DebugContext(ctx, "customer login failed, writing review directly",
			slog.Int64("customer_id", p.CustomerID),
			slog.String("error", err.Error()),
		)
		token = ""
	} else {
		metrics.APICalls.WithLabelValues("customer_login", "ok").Inc()
	}
	cache[p.CustomerID] = token
	return token
}

func (s *Seeder) postReview(ctx context.Context, token string, rv domain.Review) error {
	err := s.reviews.Create(ctx, token, rv)
	switch {
	case err == nil:
		metrics.APICalls.WithLabelValues("reviews", "ok").Inc()
	case errors.Is(err, httpclient.ErrCircuitOpen):
		metrics.APICalls.WithLabelValues("reviews", "circuit_open").Inc()
		metrics.ItemsSkipped.WithLabelValues("review", "circuit_open").Inc()
	default:
		metrics.APICalls.WithLabelValues("reviews", "error").Inc()
		metrics.ItemsSkipped.WithLabelValues("review", "api_rejected").Inc()
		s.logger.DebugContext(ctx, "review rejected by API",
			slog.Int64("order_id", rv.OrderID),
			slog.Int64("variant_id", rv.VariantID),
			slog.String("error", err.Error()),
		)
	}
	return err
}
