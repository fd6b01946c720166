package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/internal/repository"
	"github.com/utafrali/EcommerceGo/seeder/internal/source"
	apperrors "github.com/utafrali/EcommerceGo/seeder/pkg/errors"
	"github.com/utafrali/EcommerceGo/seeder/pkg/metrics"
	"github.com/utafrali/EcommerceGo/seeder/pkg/slug"
)

// seedSizes installs the default size ladder when no sizes exist yet.
func (s *Seeder) seedSizes(ctx context.Context, repos repository.Repositories, _ *runState) (int, error) {
	n, err := repos.Catalog.CountSizes(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "sizes already present, skipping", slog.Int("count", n))
		return 0, nil
	}

	for _, sz := range domain.DefaultSizes {
		size := sz
		if err := repos.Catalog.InsertSize(ctx, &size); err != nil {
			return 0, err
		}
	}
	metrics.RowsInserted.WithLabelValues("size").Add(float64(len(domain.DefaultSizes)))
	return len(domain.DefaultSizes), nil
}

// seedCategories inserts one category per distinct name. Products carry
// their category ID from the source rows, so nothing is resolved here.
func (s *Seeder) seedCategories(ctx context.Context, repos repository.Repositories, _ *runState) (int, error) {
	records, err := s.sheets.ReadSheet(ctx, source.SheetCategories)
	if err != nil {
		return 0, fmt.Errorf("read categories: %w", err)
	}
	rows := source.Dedupe(source.Categories(records), func(r source.CategoryRow) string { return r.Name })

	inserted := 0
	for _, r := range rows {
		c := domain.Category{Name: r.Name, Slug: slug.Generate(r.Name), Status: domain.StatusActive}
		ok, err := repos.Catalog.InsertCategory(ctx, &c)
		if err != nil {
			return 0, err
		}
		if ok {
			inserted++
		} else {
			metrics.ItemsSkipped.WithLabelValues("category", "slug_conflict").Inc()
		}
	}

	metrics.RowsInserted.WithLabelValues("category").Add(float64(inserted))
	s.logger.InfoContext(ctx, "categories seeded",
		slog.Int("distinct", len(rows)),
		slog.Int("inserted", inserted),
	)
	return inserted, nil
}

// seedColors upserts one color per distinct name under its source ID.
func (s *Seeder) seedColors(ctx context.Context, repos repository.Repositories, _ *runState) (int, error) {
	records, err := s.sheets.ReadSheet(ctx, source.SheetColors)
	if err != nil {
		return 0, fmt.Errorf("read colors: %w", err)
	}
	rows, err := source.Colors(records)
	if err != nil {
		return 0, err
	}
	rows = source.Dedupe(rows, func(r source.ColorRow) string { return r.Name })

	for _, r := range rows {
		if err := repos.Catalog.UpsertColor(ctx, domain.Color{ID: r.ID, Name: r.Name, HexCode: domain.HexFor(r.Name)}); err != nil {
			return 0, err
		}
	}
	metrics.RowsInserted.WithLabelValues("color").Add(float64(len(rows)))
	return len(rows), nil
}

// seedProducts inserts every source product. Rows whose slug already exists
// are left untouched. The slug to ID map of all source products is handed to
// the variants stage; only conflicting slugs cost a lookup.
func (s *Seeder) seedProducts(ctx context.Context, repos repository.Repositories, st *runState) (int, error) {
	rows, err := s.loadProducts(ctx, st)
	if err != nil {
		return 0, err
	}

	inserted := 0
	ids := make(map[string]int64, len(rows))
	var conflicts []string
	for _, r := range rows {
		p := domain.Product{
			CategoryID:   r.CategoryID,
			Name:         r.Name,
			Slug:         slug.Generate(r.Name),
			Description:  r.Description,
			CostPrice:    domain.CostPrice(r.SellingPrice),
			SellingPrice: r.SellingPrice,
			Status:       domain.StatusActive,
			ThumbnailURL: domain.Thumbnail(r.Images),
		}
		ok, err := repos.Catalog.InsertProduct(ctx, &p)
		if err != nil {
			return 0, err
		}
		if !ok {
			metrics.ItemsSkipped.WithLabelValues("product", "slug_conflict").Inc()
			if _, seen := ids[p.Slug]; !seen {
				conflicts = append(conflicts, p.Slug)
			}
			continue
		}
		ids[p.Slug] = p.ID
		inserted++
	}

	existing, err := repos.Resolver.ProductIDsBySlug(ctx, conflicts)
	if err != nil {
		return 0, err
	}
	maps.Copy(ids, existing)
	st.productIDs = ids

	metrics.RowsInserted.WithLabelValues("product").Add(float64(inserted))
	s.logger.InfoContext(ctx, "products seeded", slog.Int("rows", len(rows)), slog.Int("inserted", inserted))
	return inserted, nil
}

// seedVariants creates one variant per (product, color) in a fixed size and
// spreads the product's images across those variants.
func (s *Seeder) seedVariants(ctx context.Context, repos repository.Repositories, st *runState) (int, error) {
	sizeIDs, err := repos.Catalog.ListSizeIDs(ctx)
	if err != nil {
		return 0, err
	}
	sizeID, ok := domain.PickSize(sizeIDs)
	if !ok {
		return 0, apperrors.Precondition(StageVariants, "no sizes available")
	}

	rows, err := s.loadProducts(ctx, st)
	if err != nil {
		return 0, err
	}

	slugs := make([]string, len(rows))
	for i, r := range rows {
		slugs[i] = slug.Generate(r.Name)
	}
	productIDs := st.productIDs
	if productIDs == nil {
		productIDs, err = repos.Resolver.ProductIDsBySlug(ctx, slugs)
		if err != nil {
			return 0, err
		}
	}

	created, images := 0, 0
	for i, r := range rows {
		productID, ok := productIDs[slugs[i]]
		if !ok {
			metrics.ItemsSkipped.WithLabelValues("variant", "unresolved_product").Inc()
			s.logger.DebugContext(ctx, "product not found, variants skipped", slog.String("slug", slugs[i]))
			continue
		}

		parts := domain.PartitionImages(r.Images, len(r.ColorIDs))
		for idx, colorID := range r.ColorIDs {
			v := domain.Variant{
				ProductID:     productID,
				SizeID:        sizeID,
				ColorID:       colorID,
				SKU:           domain.BuildSKU(productID, sizeID, colorID, idx),
				TotalStock:    s.rng.Between(domain.MinTotalStock, domain.MaxTotalStock),
				ReservedStock: s.rng.Between(0, domain.MaxReservedStock),
				ReorderPoint:  domain.ReorderPoint,
				Status:        domain.StatusActive,
			}
			ok, err := repos.Catalog.InsertVariant(ctx, &v)
			if err != nil {
				return 0, err
			}
			if !ok {
				metrics.ItemsSkipped.WithLabelValues("variant", "sku_conflict").Inc()
				continue
			}
			created++

			for _, img := range domain.ImagesFor(v.ID, parts[idx]) {
				if err := repos.Catalog.InsertImage(ctx, img); err != nil {
					return 0, err
				}
				images++
			}
		}
	}

	metrics.RowsInserted.WithLabelValues("variant").Add(float64(created))
	metrics.RowsInserted.WithLabelValues("image").Add(float64(images))
	s.logger.InfoContext(ctx, "variants seeded", slog.Int("variants", created), slog.Int("images", images))
	return created, nil
}

// loadProducts reads and decodes the product sheets once per run.
func (s *Seeder) loadProducts(ctx context.Context, st *runState) ([]source.ProductRow, error) {
	if st.productRows != nil {
		return st.productRows, nil
	}
	records, err := s.sheets.ReadSheet(ctx, source.SheetProducts)
	if err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	rows, err := source.Products(records)
	if err != nil {
		return nil, err
	}
	st.productRows = rows
	return rows, nil
}
