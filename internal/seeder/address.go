package seeder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/internal/repository"
	apperrors "github.com/utafrali/EcommerceGo/seeder/pkg/errors"
	"github.com/utafrali/EcommerceGo/seeder/pkg/metrics"
)

// AddressBook maps a customer ID to the address orders ship to.
type AddressBook map[int64]domain.Address

// seedAddresses gives every existing customer one or two addresses. The
// first address generated for a customer is the default.
func (s *Seeder) seedAddresses(ctx context.Context, repos repository.Repositories, st *runState) (int, error) {
	customers, err := repos.Customers.ListCustomers(ctx)
	if err != nil {
		return 0, err
	}
	if len(customers) == 0 {
		return 0, apperrors.Precondition(StageAddresses, "no customers")
	}

	geo := newGeography(s.regions, s.settings.GeoRemoteDetail, s.logger)
	provinces := geo.provinces(ctx)

	book := make(AddressBook, len(customers))
	created := 0
	for _, c := range customers {
		n := s.rng.Between(domain.MinAddressesPerCustomer, domain.MaxAddressesPerCustomer)
		for i := range n {
			province := Choice(s.rng, provinces)
			a := domain.Address{
				CustomerID:    c.ID,
				IsDefault:     i == 0,
				AddressType:   Choice(s.rng, domain.AddressTypes),
				StreetAddress: s.streetLine(),
				PhoneNumber:   fmt.Sprintf("0%d", s.rng.Between(domain.MinPhoneSuffix, domain.MaxPhoneSuffix)),
				Province:      province.Name,
				District:      Choice(s.rng, geo.districtNames(ctx, province)),
				Ward:          Choice(s.rng, geo.wardNames(ctx, province)),
			}
			if err := repos.Customers.InsertAddress(ctx, &a); err != nil {
				return 0, err
			}
			if i == 0 {
				book[c.ID] = a
			}
			created++
		}
	}
	st.book = book

	metrics.RowsInserted.WithLabelValues("address").Add(float64(created))
	s.logger.InfoContext(ctx, "addresses seeded",
		slog.Int("customers", len(customers)),
		slog.Int("addresses", created),
	)
	return created, nil
}

func (s *Seeder) streetLine() string {
	return fmt.Sprintf("%d %s %s",
		s.rng.Between(domain.MinHouseNumber, domain.MaxHouseNumber),
		Choice(s.rng, domain.StreetKinds),
		Choice(s.rng, domain.Streets),
	)
}
