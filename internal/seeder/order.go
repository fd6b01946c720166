package seeder

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/internal/repository"
	apperrors "github.com/utafrali/EcommerceGo/seeder/pkg/errors"
	"github.com/utafrali/EcommerceGo/seeder/pkg/metrics"
)

const day = 24 * time.Hour

// seedOrders generates orders for random customers from the orderable
// variant pool. Each order gets its items and one payment record.
func (s *Seeder) seedOrders(ctx context.Context, repos repository.Repositories, st *runState) (int, error) {
	customers, err := repos.Customers.ListCustomers(ctx)
	if err != nil {
		return 0, err
	}
	if len(customers) == 0 {
		return 0, apperrors.Precondition(StageOrders, "no customers")
	}

	pool, err := repos.Orders.ListOrderableVariants(ctx, s.settings.VariantPoolLimit)
	if err != nil {
		return 0, err
	}
	if len(pool) == 0 {
		return 0, apperrors.Precondition(StageOrders, "no orderable variants")
	}

	book := st.book
	if book == nil {
		book, err = repos.Customers.FirstAddresses(ctx)
		if err != nil {
			return 0, err
		}
	}

	prices := make(map[int64]decimal.Decimal)
	priceOf := func(productID int64) (decimal.Decimal, error) {
		if p, ok := prices[productID]; ok {
			return p, nil
		}
		p, err := repos.Orders.ProductPrice(ctx, productID)
		if err != nil {
			return decimal.Zero, err
		}
		prices[productID] = p
		return p, nil
	}

	created, items := 0, 0
	for range s.settings.OrderCount {
		customer := Choice(s.rng, customers)
		fulfillment := domain.FulfillmentStatuses.Pick(s.rng)
		method := domain.PaymentMethods.Pick(s.rng)

		addr, ok := book[customer.ID]
		if !ok {
			metrics.ItemsSkipped.WithLabelValues("order", "no_address").Inc()
			continue
		}

		lines := Sample(s.rng, pool, s.rng.Between(domain.MinOrderLines, domain.MaxOrderLines))
		orderItems := make([]domain.OrderItem, 0, len(lines))
		for _, v := range lines {
			price, err := priceOf(v.ProductID)
			if err != nil {
				return 0, err
			}
			orderItems = append(orderItems, domain.OrderItem{
				VariantID:       v.ID,
				Quantity:        s.rng.Between(domain.MinLineQuantity, domain.MaxLineQuantity),
				PriceAtPurchase: price,
			})
		}

		placed := s.now().Add(-time.Duration(s.rng.Between(1, domain.MaxOrderAgeDays)) * day)
		o := domain.Order{
			OrderNumber:       domain.OrderNumber(placed, s.rng.Between(1000, 9999)),
			CustomerID:        customer.ID,
			ShippingAddress:   addr.StreetAddress,
			ShippingPhone:     addr.PhoneNumber,
			ShippingCity:      addr.Province,
			ShippingDistrict:  addr.District,
			ShippingWard:      addr.Ward,
			FulfillmentStatus: fulfillment,
			PaymentStatus:     domain.PaymentStatusFor(method, fulfillment),
			PaymentMethod:     method,
			ShippingFee:       s.settings.ShippingFee,
			TotalAmount:       domain.OrderTotal(orderItems, s.settings.ShippingFee),
			CreatedAt:         placed,
			Items:             orderItems,
		}

		if err := repos.Orders.InsertOrder(ctx, &o); err != nil {
			return 0, err
		}
		for i := range o.Items {
			o.Items[i].OrderID = o.ID
			if err := repos.Orders.InsertOrderItem(ctx, o.Items[i]); err != nil {
				return 0, err
			}
		}
		if err := repos.Orders.InsertPayment(ctx, domain.PaymentFor(o)); err != nil {
			return 0, err
		}
		created++
		items += len(o.Items)
	}

	metrics.RowsInserted.WithLabelValues("order").Add(float64(created))
	metrics.RowsInserted.WithLabelValues("order_item").Add(float64(items))
	metrics.RowsInserted.WithLabelValues("payment").Add(float64(created))
	s.logger.InfoContext(ctx, "orders seeded",
		slog.Int("attempts", s.settings.OrderCount),
		slog.Int("orders", created),
		slog.Int("items", items),
	)
	return created, nil
}
