package seeder

import (
	"context"
	"log/slog"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/pkg/metrics"
)

// geography resolves place names for generated addresses. Remote lookups
// degrade to the built-in tables on any failure.
type geography struct {
	dir    RegionDirectory
	remote bool
	logger *slog.Logger

	districts map[int64][]string
	wards     map[int64][]string
}

func newGeography(dir RegionDirectory, remoteDetail bool, logger *slog.Logger) *geography {
	return &geography{
		dir:       dir,
		remote:    remoteDetail,
		logger:    logger,
		districts: make(map[int64][]string),
		wards:     make(map[int64][]string),
	}
}

// provinces returns named provinces from the address service, or the
// fallback table when the service is unreachable or returns none.
func (g *geography) provinces(ctx context.Context) []domain.Region {
	if g.dir != nil {
		regions, err := g.dir.Provinces(ctx)
		if err != nil {
			metrics.APICalls.WithLabelValues("provinces", "error").Inc()
			g.logger.WarnContext(ctx, "province lookup failed, using fallback", slog.String("error", err.Error()))
		} else {
			metrics.APICalls.WithLabelValues("provinces", "ok").Inc()
			named := regions[:0:0]
			for _, r := range regions {
				if r.Name != "" {
					named = append(named, r)
				}
			}
			if len(named) > 0 {
				g.logger.InfoContext(ctx, "provinces loaded from address service", slog.Int("count", len(named)))
				return named
			}
			g.logger.WarnContext(ctx, "address service returned no provinces, using fallback")
		}
	}
	return domain.FallbackProvinces
}

// districtNames returns the district names to draw from for a province.
func (g *geography) districtNames(ctx context.Context, province domain.Region) []string {
	return g.detail(ctx, province, g.districts, "districts", g.dirDistricts, domain.Districts)
}

// wardNames returns the ward names to draw from for a province.
func (g *geography) wardNames(ctx context.Context, province domain.Region) []string {
	return g.detail(ctx, province, g.wards, "wards", g.dirWards, domain.Wards)
}

func (g *geography) dirDistricts(ctx context.Context, code int64) ([]domain.Region, error) {
	return g.dir.Districts(ctx, code)
}

func (g *geography) dirWards(ctx context.Context, code int64) ([]domain.Region, error) {
	return g.dir.Wards(ctx, code)
}

func (g *geography) detail(
	ctx context.Context,
	province domain.Region,
	cache map[int64][]string,
	endpoint string,
	fetch func(context.Context, int64) ([]domain.Region, error),
	fallback []string,
) []string {
	if !g.remote || g.dir == nil || province.Code == 0 {
		return fallback
	}
	if names, ok := cache[province.Code]; ok {
		return names
	}

	names := fallback
	regions, err := fetch(ctx, province.Code)
	switch {
	case err != nil:
		metrics.APICalls.WithLabelValues(endpoint, "error").Inc()
		g.logger.DebugContext(ctx, "region lookup failed, using fallback",
			slog.String("endpoint", endpoint),
			slog.Int64("province_code", province.Code),
			slog.String("error", err.Error()),
		)
	default:
		metrics.APICalls.WithLabelValues(endpoint, "ok").Inc()
		remote := make([]string, 0, len(regions))
		for _, r := range regions {
			if r.Name != "" {
				remote = append(remote, r.Name)
			}
		}
		if len(remote) > 0 {
			names = remote
		}
	}
	cache[province.Code] = names
	return names
}
