package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/pkg/database"
)

// OrderRepository implements order persistence using PostgreSQL.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// ListOrderableVariants returns up to limit active variants with unreserved stock.
func (r *OrderRepository) ListOrderableVariants(ctx context.Context, limit int) (refs []domain.VariantRef, err error) {
	query := `
		SELECT id, product_id
		FROM product_variants
		WHERE total_stock > reserved_stock AND status = $1
		ORDER BY id
		LIMIT $2`

	ctx, end := database.TraceQuery(ctx, "ListOrderableVariants", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, domain.StatusActive, limit)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.VariantRef
		if err = rows.Scan(&v.ID, &v.ProductID); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		refs = append(refs, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants: %w", err)
	}
	return refs, nil
}

// ProductPrice returns the selling price of a product.
func (r *OrderRepository) ProductPrice(ctx context.Context, productID int64) (price decimal.Decimal, err error) {
	query := `SELECT selling_price FROM products WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "ProductPrice", query)
	defer func() { end(err) }()

	if err = r.pool.QueryRow(ctx, query, productID).Scan(&price); err != nil {
		return decimal.Zero, fmt.Errorf("get price of product %d: %w", productID, err)
	}
	return price, nil
}

// InsertOrder stores an order header and sets its ID.
func (r *OrderRepository) InsertOrder(ctx context.Context, o *domain.Order) (err error) {
	query := `
		INSERT INTO orders (
			customer_id, shipping_address, shipping_phone, shipping_city,
			shipping_district, shipping_ward, fulfillment_status, payment_status,
			payment_method, shipping_fee, total_amount, created_at, order_number
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "InsertOrder", query)
	defer func() { end(err) }()

	err = r.pool.QueryRow(ctx, query,
		o.CustomerID,
		o.ShippingAddress,
		o.ShippingPhone,
		o.ShippingCity,
		o.ShippingDistrict,
		o.ShippingWard,
		o.FulfillmentStatus,
		o.PaymentStatus,
		o.PaymentMethod,
		o.ShippingFee,
		o.TotalAmount,
		o.CreatedAt,
		o.OrderNumber,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", o.OrderNumber, err)
	}
	return nil
}

// InsertOrderItem stores one order line.
func (r *OrderRepository) InsertOrderItem(ctx context.Context, item domain.OrderItem) (err error) {
	query := `
		INSERT INTO order_items (order_id, variant_id, quantity, price_at_purchase)
		VALUES ($1, $2, $3, $4)`

	ctx, end := database.TraceQuery(ctx, "InsertOrderItem", query)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, query, item.OrderID, item.VariantID, item.Quantity, item.PriceAtPurchase); err != nil {
		return fmt.Errorf("insert item of order %d: %w", item.OrderID, err)
	}
	return nil
}

// InsertPayment stores the payment record of an order.
func (r *OrderRepository) InsertPayment(ctx context.Context, p domain.Payment) (err error) {
	query := `
		INSERT INTO payments (order_id, amount, provider, payment_method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	ctx, end := database.TraceQuery(ctx, "InsertPayment", query)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, query, p.OrderID, p.Amount, p.Provider, p.PaymentMethod, p.Status, p.CreatedAt); err != nil {
		return fmt.Errorf("insert payment of order %d: %w", p.OrderID, err)
	}
	return nil
}
