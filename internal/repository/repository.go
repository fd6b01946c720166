package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
)

// SeededTables lists every table the pipeline writes, children first.
var SeededTables = []string{
	"promotion_products",
	"promotions",
	"product_reviews",
	"payments",
	"order_items",
	"orders",
	"customer_addresses",
	"product_images",
	"product_variants",
	"products",
	"categories",
	"sizes",
	"colors",
}

// CatalogRepository persists the catalog: sizes, categories, colors,
// products, variants and their images.
type CatalogRepository interface {
	// CountSizes returns the number of rows in the sizes table.
	CountSizes(ctx context.Context) (int, error)

	// InsertSize stores a size and sets its ID.
	InsertSize(ctx context.Context, size *domain.Size) error

	// ListSizeIDs returns size IDs ordered by sort order.
	ListSizeIDs(ctx context.Context) ([]int64, error)

	// InsertCategory stores a category unless its slug already exists.
	// It reports whether a row was written.
	InsertCategory(ctx context.Context, category *domain.Category) (bool, error)

	// UpsertColor stores a color under its source ID, overwriting the name
	// and hex code of an existing row.
	UpsertColor(ctx context.Context, color domain.Color) error

	// InsertProduct stores a product unless its slug already exists.
	// It reports whether a row was written and sets the ID when it was.
	InsertProduct(ctx context.Context, product *domain.Product) (bool, error)

	// InsertVariant stores a variant unless its SKU already exists.
	// It reports whether a row was written and sets the ID when it was.
	InsertVariant(ctx context.Context, variant *domain.Variant) (bool, error)

	// InsertImage stores a variant image.
	InsertImage(ctx context.Context, image domain.Image) error

	// ListActiveProducts returns every active product with its selling price.
	ListActiveProducts(ctx context.Context) ([]domain.PricedProduct, error)
}

// IdentifierResolver maps natural keys to surrogate keys after insert.
// Keys that have no row are absent from the returned map.
type IdentifierResolver interface {
	ProductIDsBySlug(ctx context.Context, slugs []string) (map[string]int64, error)
}

// CustomerRepository reads customers and stores their addresses.
type CustomerRepository interface {
	// ListCustomers returns every customer ordered by ID.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	// InsertAddress stores an address and sets its ID.
	InsertAddress(ctx context.Context, address *domain.Address) error

	// FirstAddresses returns one address per customer, preferring the default.
	FirstAddresses(ctx context.Context) (map[int64]domain.Address, error)
}

// OrderRepository persists orders, their items and payments.
type OrderRepository interface {
	// ListOrderableVariants returns up to limit active variants with stock
	// left to sell.
	ListOrderableVariants(ctx context.Context, limit int) ([]domain.VariantRef, error)

	// ProductPrice returns the current selling price of a product.
	ProductPrice(ctx context.Context, productID int64) (decimal.Decimal, error)

	// InsertOrder stores an order header and sets its ID.
	InsertOrder(ctx context.Context, order *domain.Order) error

	// InsertOrderItem stores one order line.
	InsertOrderItem(ctx context.Context, item domain.OrderItem) error

	// InsertPayment stores the payment record of an order.
	InsertPayment(ctx context.Context, payment domain.Payment) error
}

// ReviewRepository persists reviews and maintains product rating aggregates.
type ReviewRepository interface {
	// DeliveredPurchases returns one row per item of every delivered order.
	DeliveredPurchases(ctx context.Context) ([]domain.Purchase, error)

	// InsertReview stores a review. Duplicates are ignored and reported as
	// not written.
	InsertReview(ctx context.Context, review domain.Review) (bool, error)

	// RecomputeRatings rewrites average_rating and total_reviews of every
	// product from its approved reviews and returns the rows updated.
	RecomputeRatings(ctx context.Context) (int64, error)

	// RatingDrift counts products whose stored aggregate differs from the
	// one computed from approved reviews.
	RatingDrift(ctx context.Context) (int, error)
}

// PromotionRepository persists promotions and their product prices.
type PromotionRepository interface {
	// InsertPromotion stores a promotion and sets its ID.
	InsertPromotion(ctx context.Context, promotion *domain.Promotion) error

	// InsertPromotionProduct attaches a product to a promotion.
	InsertPromotionProduct(ctx context.Context, pp domain.PromotionProduct) error
}

// MaintenanceRepository performs destructive housekeeping.
type MaintenanceRepository interface {
	// Truncate empties the given tables and resets their identities.
	Truncate(ctx context.Context, tables []string) error
}

// Repositories groups the repositories bound to a single transaction.
type Repositories struct {
	Catalog     CatalogRepository
	Resolver    IdentifierResolver
	Customers   CustomerRepository
	Orders      OrderRepository
	Reviews     ReviewRepository
	Promotions  PromotionRepository
	Maintenance MaintenanceRepository
}

// Store runs units of work. Every repository handed to fn shares one
// transaction that commits when fn returns nil.
type Store interface {
	InTx(ctx context.Context, fn func(repos Repositories) error) error
}
