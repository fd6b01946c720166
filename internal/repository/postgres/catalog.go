package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/pkg/database"
)

// CatalogRepository implements catalog persistence using PostgreSQL.
type CatalogRepository struct {
	pool database.DBTX
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(pool database.DBTX) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// CountSizes returns the number of stored sizes.
func (r *CatalogRepository) CountSizes(ctx context.Context) (n int, err error) {
	query := `SELECT COUNT(*) FROM sizes`

	ctx, end := database.TraceQuery(ctx, "CountSizes", query)
	defer func() { end(err) }()

	if err = r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sizes: %w", err)
	}
	return n, nil
}

// InsertSize stores a size and sets its ID.
func (r *CatalogRepository) InsertSize(ctx context.Context, size *domain.Size) (err error) {
	query := `
		INSERT INTO sizes (name, sort_order)
		VALUES ($1, $2)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "InsertSize", query)
	defer func() { end(err) }()

	if err = r.pool.QueryRow(ctx, query, size.Name, size.SortOrder).Scan(&size.ID); err != nil {
		return fmt.Errorf("insert size %s: %w", size.Name, err)
	}
	return nil
}

// ListSizeIDs returns size IDs ordered by sort order.
func (r *CatalogRepository) ListSizeIDs(ctx context.Context) (ids []int64, err error) {
	query := `SELECT id FROM sizes ORDER BY sort_order`

	ctx, end := database.TraceQuery(ctx, "ListSizeIDs", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan size: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sizes: %w", err)
	}
	return ids, nil
}

// InsertCategory stores a category unless its slug is taken.
func (r *CatalogRepository) InsertCategory(ctx context.Context, category *domain.Category) (inserted bool, err error) {
	query := `
		INSERT INTO categories (name, slug, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO NOTHING`

	ctx, end := database.TraceQuery(ctx, "InsertCategory", query)
	defer func() { end(err) }()

	tag, err := r.pool.Exec(ctx, query, category.Name, category.Slug, category.Status)
	if err != nil {
		return false, fmt.Errorf("insert category %s: %w", category.Slug, err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpsertColor stores a color under its source-provided ID.
func (r *CatalogRepository) UpsertColor(ctx context.Context, color domain.Color) (err error) {
	query := `
		INSERT INTO colors (id, name, hex_code)
		OVERRIDING SYSTEM VALUE
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, hex_code = EXCLUDED.hex_code`

	ctx, end := database.TraceQuery(ctx, "UpsertColor", query)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, query, color.ID, color.Name, color.HexCode); err != nil {
		return fmt.Errorf("upsert color %d: %w", color.ID, err)
	}
	return nil
}

// InsertProduct stores a product unless its slug is taken. New products
// start with no rating and empty attributes.
func (r *CatalogRepository) InsertProduct(ctx context.Context, product *domain.Product) (inserted bool, err error) {
	query := `
		INSERT INTO products (
			category_id, name, slug, description, cost_price, selling_price,
			status, thumbnail_url, average_rating, total_reviews, attributes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, '{}'::jsonb)
		ON CONFLICT (slug) DO NOTHING
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "InsertProduct", query)
	defer func() { end(err) }()

	err = r.pool.QueryRow(ctx, query,
		product.CategoryID,
		product.Name,
		product.Slug,
		product.Description,
		product.CostPrice,
		product.SellingPrice,
		product.Status,
		product.ThumbnailURL,
	).Scan(&product.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert product %s: %w", product.Slug, err)
	}
	return true, nil
}

// InsertVariant stores a variant unless its SKU is taken.
func (r *CatalogRepository) InsertVariant(ctx context.Context, variant *domain.Variant) (inserted bool, err error) {
	query := `
		INSERT INTO product_variants (
			product_id, size_id, color_id, sku, total_stock, reserved_stock, reorder_point, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (sku) DO NOTHING
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "InsertVariant", query)
	defer func() { end(err) }()

	err = r.pool.QueryRow(ctx, query,
		variant.ProductID,
		variant.SizeID,
		variant.ColorID,
		variant.SKU,
		variant.TotalStock,
		variant.ReservedStock,
		variant.ReorderPoint,
		variant.Status,
	).Scan(&variant.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert variant %s: %w", variant.SKU, err)
	}
	return true, nil
}

// InsertImage stores a variant image.
func (r *CatalogRepository) InsertImage(ctx context.Context, image domain.Image) (err error) {
	query := `
		INSERT INTO product_images (variant_id, image_url, is_main)
		VALUES ($1, $2, $3)`

	ctx, end := database.TraceQuery(ctx, "InsertImage", query)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, query, image.VariantID, image.URL, image.IsMain); err != nil {
		return fmt.Errorf("insert image for variant %d: %w", image.VariantID, err)
	}
	return nil
}

// ListActiveProducts returns active products ordered by ID.
func (r *CatalogRepository) ListActiveProducts(ctx context.Context) (products []domain.PricedProduct, err error) {
	query := `
		SELECT id, selling_price
		FROM products
		WHERE status = $1
		ORDER BY id`

	ctx, end := database.TraceQuery(ctx, "ListActiveProducts", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, domain.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.PricedProduct
		if err = rows.Scan(&p.ID, &p.SellingPrice); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
