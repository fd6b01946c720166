package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/pkg/database"
)

// ReviewRepository implements review persistence using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// DeliveredPurchases returns every item of every delivered order with the
// buyer's email and the variant's product.
func (r *ReviewRepository) DeliveredPurchases(ctx context.Context) (purchases []domain.Purchase, err error) {
	query := `
		SELECT o.id, o.customer_id, c.email, oi.variant_id, pv.product_id
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN customers c ON c.id = o.customer_id
		JOIN product_variants pv ON pv.id = oi.variant_id
		WHERE o.fulfillment_status = $1
		ORDER BY o.id, oi.variant_id`

	ctx, end := database.TraceQuery(ctx, "DeliveredPurchases", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, domain.FulfillmentDelivered)
	if err != nil {
		return nil, fmt.Errorf("list delivered purchases: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Purchase
		if err = rows.Scan(&p.OrderID, &p.CustomerID, &p.CustomerEmail, &p.VariantID, &p.ProductID); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchases: %w", err)
	}
	return purchases, nil
}

// InsertReview stores a review, ignoring rows that violate a uniqueness rule.
func (r *ReviewRepository) InsertReview(ctx context.Context, rv domain.Review) (inserted bool, err error) {
	query := `
		INSERT INTO product_reviews (variant_id, customer_id, order_id, rating, comment, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT DO NOTHING`

	ctx, end := database.TraceQuery(ctx, "InsertReview", query)
	defer func() { end(err) }()

	tag, err := r.pool.Exec(ctx, query, rv.VariantID, rv.CustomerID, rv.OrderID, rv.Rating, rv.Comment, rv.Status)
	if err != nil {
		return false, fmt.Errorf("insert review for order %d: %w", rv.OrderID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// RecomputeRatings rewrites every product's aggregate from approved reviews.
// Products without reviews get zero for both columns.
func (r *ReviewRepository) RecomputeRatings(ctx context.Context) (updated int64, err error) {
	query := `
		UPDATE products p SET
			average_rating = (
				SELECT COALESCE(AVG(pr.rating), 0)
				FROM product_reviews pr
				JOIN product_variants pv ON pr.variant_id = pv.id
				WHERE pv.product_id = p.id AND pr.status = $1
			),
			total_reviews = (
				SELECT COUNT(*)
				FROM product_reviews pr
				JOIN product_variants pv ON pr.variant_id = pv.id
				WHERE pv.product_id = p.id AND pr.status = $1
			)`

	ctx, end := database.TraceQuery(ctx, "RecomputeRatings", query)
	defer func() { end(err) }()

	tag, err := r.pool.Exec(ctx, query, domain.ReviewStatusApproved)
	if err != nil {
		return 0, fmt.Errorf("recompute ratings: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RatingDrift counts products whose stored aggregate disagrees with their
// approved reviews. Averages are compared at two decimal places.
func (r *ReviewRepository) RatingDrift(ctx context.Context) (n int, err error) {
	query := `
		SELECT COUNT(*)
		FROM products p
		LEFT JOIN (
			SELECT pv.product_id, AVG(pr.rating) AS avg_rating, COUNT(*) AS total
			FROM product_reviews pr
			JOIN product_variants pv ON pr.variant_id = pv.id
			WHERE pr.status = $1
			GROUP BY pv.product_id
		) agg ON agg.product_id = p.id
		WHERE p.total_reviews <> COALESCE(agg.total, 0)
		   OR ABS(p.average_rating - COALESCE(agg.avg_rating, 0)) >= 0.01`

	ctx, end := database.TraceQuery(ctx, "RatingDrift", query)
	defer func() { end(err) }()

	if err = r.pool.QueryRow(ctx, query, domain.ReviewStatusApproved).Scan(&n); err != nil {
		return 0, fmt.Errorf("check rating drift: %w", err)
	}
	return n, nil
}
