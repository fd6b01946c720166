// Package seeder populates the storefront database with synthetic data in
// dependency order: catalog, customer addresses, orders, reviews and
// promotions.
package seeder

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/utafrali/EcommerceGo/seeder/internal/config"
	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/internal/repository"
	"github.com/utafrali/EcommerceGo/seeder/internal/source"
)

// SheetReader loads rows of a named sheet from the source workbooks.
type SheetReader interface {
	ReadSheet(ctx context.Context, sheet string) ([]source.Record, error)
}

// RegionDirectory lists administrative divisions.
type RegionDirectory interface {
	Provinces(ctx context.Context) ([]domain.Region, error)
	Districts(ctx context.Context, provinceCode int64) ([]domain.Region, error)
	Wards(ctx context.Context, provinceCode int64) ([]domain.Region, error)
}

// CustomerAuthenticator signs customers in to the storefront API.
type CustomerAuthenticator interface {
	CustomerLogin(ctx context.Context, email, password string) (string, error)
}

// ReviewPoster submits a review as the customer owning token.
type ReviewPoster interface {
	Create(ctx context.Context, token string, rv domain.Review) error
}

// Settings tune how much data is generated and how.
type Settings struct {
	OrderCount           int
	VariantPoolLimit     int
	ReviewCap            int
	ReviewProbability    float64
	ReviewPolicy         string
	ReviewsPerProductMin int
	ReviewsPerProductMax int
	ReviewThrottle       time.Duration
	PromotionProducts    int
	ShippingFee          decimal.Decimal
	CustomerPassword     string
	GeoRemoteDetail      bool
}

// SettingsFrom extracts the generation settings from the loaded config.
func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		OrderCount:           cfg.OrderCount,
		VariantPoolLimit:     cfg.VariantPoolLimit,
		ReviewCap:            cfg.ReviewCap,
		ReviewProbability:    cfg.ReviewProbability,
		ReviewPolicy:         cfg.ReviewPolicy,
		ReviewsPerProductMin: cfg.ReviewsPerProductMin,
		ReviewsPerProductMax: cfg.ReviewsPerProductMax,
		ReviewThrottle:       cfg.ReviewThrottle,
		PromotionProducts:    cfg.PromotionProducts,
		ShippingFee:          decimal.NewFromInt(cfg.ShippingFee),
		CustomerPassword:     cfg.CustomerPassword,
		GeoRemoteDetail:      cfg.GeoRemoteDetail,
	}
}

// Deps are the collaborators a Seeder needs.
type Deps struct {
	Store    repository.Store
	Sheets   SheetReader
	Regions  RegionDirectory
	Auth     CustomerAuthenticator
	Reviews  ReviewPoster
	Rand     *Rand
	Settings Settings
	Logger   *slog.Logger
}

// Seeder runs the seeding stages.
type Seeder struct {
	store    repository.Store
	sheets   SheetReader
	regions  RegionDirectory
	auth     CustomerAuthenticator
	reviews  ReviewPoster
	rng      *Rand
	settings Settings
	logger   *slog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Seeder.
func New(deps Deps) *Seeder {
	rng := deps.Rand
	if rng == nil {
		rng = NewRand(0)
	}
	return &Seeder{
		store:    deps.Store,
		sheets:   deps.Sheets,
		regions:  deps.Regions,
		auth:     deps.Auth,
		reviews:  deps.Reviews,
		rng:      rng,
		settings: deps.Settings,
		logger:   deps.Logger,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// runState carries results from one stage to the stages after it. A stage
// run without its predecessor in the same process finds the field nil and
// reads what it needs from the database instead.
type runState struct {
	// productIDs maps the slug of every source product, new or pre-existing,
	// to its ID once the products stage has run.
	productIDs  map[string]int64
	productRows []source.ProductRow

	// book is nil until the address stage has run in this process.
	book AddressBook
}
