package seeder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/internal/repository"
	"github.com/utafrali/EcommerceGo/seeder/internal/source"
)

// --- In-memory store ---

type reviewKey struct {
	variantID, customerID, orderID int64
}

// rating is a product's stored aggregate.
type rating struct {
	average float64
	total   int
}

// memDB is an in-memory stand-in for the storefront schema. It honours the
// same uniqueness rules as the real tables: category and product slugs,
// variant SKUs and one review per (variant, customer, order).
type memDB struct {
	nextID int64

	sizes       []domain.Size
	categories  map[string]domain.Category
	colors      map[int64]domain.Color
	products    []domain.Product
	variants    []domain.Variant
	images      []domain.Image
	customers   []domain.Customer
	addresses   []domain.Address
	orders      []domain.Order
	items       []domain.OrderItem
	payments    []domain.Payment
	reviews     []domain.Review
	reviewKeys  map[reviewKey]bool
	promotions  []domain.Promotion
	promoItems  []domain.PromotionProduct
	ratings     map[int64]rating
	truncated   []string
	recomputes  int
	resolves    int
	failInserts map[string]error

	// staleProduct is left out of RecomputeRatings, as if another writer
	// touched its aggregate after the update.
	staleProduct int64
}

func newMemDB() *memDB {
	return &memDB{
		categories:  make(map[string]domain.Category),
		colors:      make(map[int64]domain.Color),
		reviewKeys:  make(map[reviewKey]bool),
		ratings:     make(map[int64]rating),
		failInserts: make(map[string]error),
	}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

type memStore struct {
	db   *memDB
	txns int
}

func (s *memStore) InTx(_ context.Context, fn func(repository.Repositories) error) error {
	s.txns++
	return fn(repository.Repositories{
		Catalog:     s.db,
		Resolver:    s.db,
		Customers:   s.db,
		Orders:      s.db,
		Reviews:     s.db,
		Promotions:  s.db,
		Maintenance: s.db,
	})
}

func (m *memDB) CountSizes(context.Context) (int, error) { return len(m.sizes), nil }

func (m *memDB) InsertSize(_ context.Context, s *domain.Size) error {
	s.ID = m.id()
	m.sizes = append(m.sizes, *s)
	return nil
}

func (m *memDB) ListSizeIDs(context.Context) ([]int64, error) {
	sorted := append([]domain.Size(nil), m.sizes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SortOrder < sorted[j].SortOrder })
	ids := make([]int64, len(sorted))
	for i, s := range sorted {
		ids[i] = s.ID
	}
	return ids, nil
}

func (m *memDB) InsertCategory(_ context.Context, c *domain.Category) (bool, error) {
	if _, ok := m.categories[c.Slug]; ok {
		return false, nil
	}
	c.ID = m.id()
	m.categories[c.Slug] = *c
	return true, nil
}

func (m *memDB) UpsertColor(_ context.Context, c domain.Color) error {
	m.colors[c.ID] = c
	return nil
}

func (m *memDB) InsertProduct(_ context.Context, p *domain.Product) (bool, error) {
	if err := m.failInserts["product"]; err != nil {
		return false, err
	}
	for _, existing := range m.products {
		if existing.Slug == p.Slug {
			return false, nil
		}
	}
	p.ID = m.id()
	m.products = append(m.products, *p)
	return true, nil
}

func (m *memDB) InsertVariant(_ context.Context, v *domain.Variant) (bool, error) {
	for _, existing := range m.variants {
		if existing.SKU == v.SKU {
			return false, nil
		}
	}
	v.ID = m.id()
	m.variants = append(m.variants, *v)
	return true, nil
}

func (m *memDB) InsertImage(_ context.Context, img domain.Image) error {
	m.images = append(m.images, img)
	return nil
}

func (m *memDB) ListActiveProducts(context.Context) ([]domain.PricedProduct, error) {
	var out []domain.PricedProduct
	for _, p := range m.products {
		if p.Status == domain.StatusActive {
			out = append(out, domain.PricedProduct{ID: p.ID, SellingPrice: p.SellingPrice})
		}
	}
	return out, nil
}

func (m *memDB) ProductIDsBySlug(_ context.Context, slugs []string) (map[string]int64, error) {
	out := make(map[string]int64)
	if len(slugs) > 0 {
		m.resolves++
	}
	for _, s := range slugs {
		for _, p := range m.products {
			if p.Slug == s {
				out[s] = p.ID
			}
		}
	}
	return out, nil
}

func (m *memDB) ListCustomers(context.Context) ([]domain.Customer, error) {
	return append([]domain.Customer(nil), m.customers...), nil
}

func (m *memDB) InsertAddress(_ context.Context, a *domain.Address) error {
	a.ID = m.id()
	m.addresses = append(m.addresses, *a)
	return nil
}

func (m *memDB) FirstAddresses(context.Context) (map[int64]domain.Address, error) {
	out := make(map[int64]domain.Address)
	for _, a := range m.addresses {
		cur, ok := out[a.CustomerID]
		if !ok || (a.IsDefault && !cur.IsDefault) {
			out[a.CustomerID] = a
		}
	}
	return out, nil
}

func (m *memDB) ListOrderableVariants(_ context.Context, limit int) ([]domain.VariantRef, error) {
	var out []domain.VariantRef
	for _, v := range m.variants {
		if v.Status == domain.StatusActive && v.TotalStock > v.ReservedStock {
			out = append(out, domain.VariantRef{ID: v.ID, ProductID: v.ProductID})
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memDB) ProductPrice(_ context.Context, productID int64) (decimal.Decimal, error) {
	for _, p := range m.products {
		if p.ID == productID {
			return p.SellingPrice, nil
		}
	}
	return decimal.Zero, fmt.Errorf("product %d not found", productID)
}

func (m *memDB) InsertOrder(_ context.Context, o *domain.Order) error {
	o.ID = m.id()
	m.orders = append(m.orders, *o)
	return nil
}

func (m *memDB) InsertOrderItem(_ context.Context, it domain.OrderItem) error {
	m.items = append(m.items, it)
	return nil
}

func (m *memDB) InsertPayment(_ context.Context, p domain.Payment) error {
	m.payments = append(m.payments, p)
	return nil
}

func (m *memDB) DeliveredPurchases(context.Context) ([]domain.Purchase, error) {
	var out []domain.Purchase
	for _, o := range m.orders {
		if o.FulfillmentStatus != domain.FulfillmentDelivered {
			continue
		}
		for _, it := range m.items {
			if it.OrderID != o.ID {
				continue
			}
			p := domain.Purchase{OrderID: o.ID, CustomerID: o.CustomerID, VariantID: it.VariantID}
			for _, c := range m.customers {
				if c.ID == o.CustomerID {
					p.CustomerEmail = c.Email
				}
			}
			for _, v := range m.variants {
				if v.ID == it.VariantID {
					p.ProductID = v.ProductID
				}
			}
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memDB) InsertReview(_ context.Context, rv domain.Review) (bool, error) {
	k := reviewKey{rv.VariantID, rv.CustomerID, rv.OrderID}
	if m.reviewKeys[k] {
		return false, nil
	}
	m.reviewKeys[k] = true
	m.reviews = append(m.reviews, rv)
	return true, nil
}

// approvedRatings aggregates approved reviews per product through variants.
func (m *memDB) approvedRatings() map[int64]rating {
	productOf := make(map[int64]int64, len(m.variants))
	for _, v := range m.variants {
		productOf[v.ID] = v.ProductID
	}
	sums := make(map[int64]int)
	out := make(map[int64]rating)
	for _, rv := range m.reviews {
		if rv.Status != domain.ReviewStatusApproved {
			continue
		}
		pid, ok := productOf[rv.VariantID]
		if !ok {
			continue
		}
		sums[pid] += rv.Rating
		r := out[pid]
		r.total++
		out[pid] = r
	}
	for pid, r := range out {
		r.average = float64(sums[pid]) / float64(r.total)
		out[pid] = r
	}
	return out
}

func (m *memDB) RecomputeRatings(context.Context) (int64, error) {
	m.recomputes++
	agg := m.approvedRatings()
	var updated int64
	for _, p := range m.products {
		if p.ID == m.staleProduct {
			continue
		}
		m.ratings[p.ID] = agg[p.ID]
		updated++
	}
	return updated, nil
}

func (m *memDB) RatingDrift(context.Context) (int, error) {
	agg := m.approvedRatings()
	n := 0
	for _, p := range m.products {
		got, want := m.ratings[p.ID], agg[p.ID]
		if got.total != want.total || math.Abs(got.average-want.average) >= 0.01 {
			n++
		}
	}
	return n, nil
}

func (m *memDB) InsertPromotion(_ context.Context, p *domain.Promotion) error {
	p.ID = m.id()
	m.promotions = append(m.promotions, *p)
	return nil
}

func (m *memDB) InsertPromotionProduct(_ context.Context, pp domain.PromotionProduct) error {
	m.promoItems = append(m.promoItems, pp)
	return nil
}

func (m *memDB) Truncate(_ context.Context, tables []string) error {
	m.truncated = append(m.truncated, tables...)
	return nil
}

// --- Sheets ---

type memSheets map[string][]map[string]string

func (s memSheets) ReadSheet(_ context.Context, sheet string) ([]source.Record, error) {
	rows := s[sheet]
	if rows == nil {
		return nil, nil
	}
	out := make([]source.Record, len(rows))
	for i, values := range rows {
		out[i] = source.Record{Source: "memory", Row: i + 2, Values: values}
	}
	return out, nil
}

// --- testify mocks for API collaborators ---

type mockRegions struct {
	mock.Mock
}

func (m *mockRegions) Provinces(ctx context.Context) ([]domain.Region, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Region), args.Error(1)
}

func (m *mockRegions) Districts(ctx context.Context, code int64) ([]domain.Region, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Region), args.Error(1)
}

func (m *mockRegions) Wards(ctx context.Context, code int64) ([]domain.Region, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Region), args.Error(1)
}

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) CustomerLogin(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

type mockReviews struct {
	mock.Mock
}

func (m *mockReviews) Create(ctx context.Context, token string, rv domain.Review) error {
	args := m.Called(ctx, token, rv)
	return args.Error(0)
}

// --- Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testSettings() Settings {
	return Settings{
		OrderCount:           40,
		VariantPoolLimit:     200,
		ReviewCap:            100,
		ReviewProbability:    0.6,
		ReviewPolicy:         "order",
		ReviewsPerProductMin: 5,
		ReviewsPerProductMax: 20,
		ReviewThrottle:       100 * time.Millisecond,
		PromotionProducts:    10,
		ShippingFee:          decimal.NewFromInt(30000),
		CustomerPassword:     "password123",
	}
}

type testSeeder struct {
	*Seeder
	db     *memDB
	mem    *memStore
	sleeps []time.Duration
}

func newTestSeeder(sheets SheetReader, settings Settings) *testSeeder {
	db := newMemDB()
	store := &memStore{db: db}
	ts := &testSeeder{db: db, mem: store}
	ts.Seeder = New(Deps{
		Store:    store,
		Sheets:   sheets,
		Rand:     NewRand(42),
		Settings: settings,
		Logger:   newTestLogger(),
	})
	ts.now = func() time.Time { return fixedNow }
	ts.sleep = func(_ context.Context, d time.Duration) error {
		ts.sleeps = append(ts.sleeps, d)
		return nil
	}
	return ts
}

func catalogSheets() memSheets {
	return memSheets{
		source.SheetCategories: {
			{"name": "Áo Sơ Mi"},
			{"name": "Quần Jean"},
			{"name": "Áo Sơ Mi"},
			{"name": "  "},
		},
		source.SheetColors: {
			{"id": "1", "name": "Trắng"},
			{"id": "2", "name": "Đen"},
			{"id": "3", "name": "Tím Than"},
			{"id": "4", "name": "Đen"},
		},
		source.SheetProducts: {
			{
				"name": "Áo Sơ Mi Linen", "description": "Linen", "selling_price": "350000",
				"category_id": "1", "color_ids": "1, 2",
				"images": "https://cdn/1.jpg, https://cdn/2.jpg, https://cdn/3.jpg, https://cdn/4.jpg, https://cdn/5.jpg",
			},
			{
				"name": "Quần Jean Slim", "description": "Denim", "selling_price": "499000",
				"category_id": "2", "color_ids": "2", "images": "https://cdn/j.jpg",
			},
			{
				"name": "Áo Thun Basic", "description": "Cotton", "selling_price": "150000",
				"category_id": "1", "color_ids": "1,3", "images": "",
			},
			{
				"name": "Áo Sơ Mi Linen", "description": "Duplicate from a later batch", "selling_price": "1",
				"category_id": "1", "color_ids": "4", "images": "https://cdn/x.jpg",
			},
		},
	}
}

func seedCustomers(db *memDB, n int) {
	for i := 1; i <= n; i++ {
		db.customers = append(db.customers, domain.Customer{ID: int64(1000 + i), Email: fmt.Sprintf("c%d@example.com", i)})
	}
}
