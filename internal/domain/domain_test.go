package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqIntner returns the queued values in order, modulo n.
type seqIntner struct {
	vals []int
	i    int
}

func (s *seqIntner) IntN(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ============================================================================
// Catalog
// ============================================================================

func TestPartitionImages_FiveImagesTwoColors(t *testing.T) {
	images := []string{"a", "b", "c", "d", "e"}

	parts := PartitionImages(images, 2)

	require.Len(t, parts, 2)
	assert.Equal(t, []string{"a", "b"}, parts[0])
	assert.Equal(t, []string{"c", "d"}, parts[1])

	rows := ImagesFor(7, parts[1])
	require.Len(t, rows, 2)
	assert.True(t, rows[0].IsMain)
	assert.False(t, rows[1].IsMain)
	assert.Equal(t, int64(7), rows[0].VariantID)
}

func TestPartitionImages_FewerImagesThanColors(t *testing.T) {
	parts := PartitionImages([]string{"a", "b"}, 3)

	require.Len(t, parts, 3)
	assert.Equal(t, []string{"a"}, parts[0])
	assert.Equal(t, []string{"b"}, parts[1])
	assert.Equal(t, []string{"a"}, parts[2], "empty share falls back to the first image")
}

func TestPartitionImages_NoImages(t *testing.T) {
	parts := PartitionImages(nil, 2)
	require.Len(t, parts, 2)
	assert.Empty(t, parts[0])
	assert.Empty(t, parts[1])
	assert.Nil(t, PartitionImages([]string{"a"}, 0))
}

func TestPartitionImages_EachPartHasExactlyOneMain(t *testing.T) {
	images := []string{"1", "2", "3", "4", "5", "6", "7"}
	for colors := 1; colors <= 8; colors++ {
		for ci, part := range PartitionImages(images, colors) {
			mains := 0
			for _, img := range ImagesFor(int64(ci), part) {
				if img.IsMain {
					mains++
				}
			}
			assert.Equal(t, 1, mains, "colors=%d part=%d", colors, ci)
		}
	}
}

func TestPickSize(t *testing.T) {
	_, ok := PickSize(nil)
	assert.False(t, ok)

	id, ok := PickSize([]int64{4})
	assert.True(t, ok)
	assert.Equal(t, int64(4), id)

	id, ok = PickSize([]int64{1, 2, 3})
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)
}

func TestBuildSKU(t *testing.T) {
	assert.Equal(t, "SW-12-S2-C5-1", BuildSKU(12, 2, 5, 1))
}

func TestCostPrice(t *testing.T) {
	assert.True(t, d("139300").Equal(CostPrice(d("199000"))))
	assert.True(t, d("0").Equal(CostPrice(decimal.Zero)))
}

func TestHexFor(t *testing.T) {
	assert.Equal(t, "#000000", HexFor("Đen"))
	assert.Equal(t, "#1E3A8A", HexFor("Navy"))
	assert.Equal(t, DefaultColorHex, HexFor("Tím Than"))
}

func TestThumbnail(t *testing.T) {
	assert.Nil(t, Thumbnail(nil))
	got := Thumbnail([]string{"x.jpg", "y.jpg"})
	require.NotNil(t, got)
	assert.Equal(t, "x.jpg", *got)
}

// ============================================================================
// Orders
// ============================================================================

func TestPaymentStatusFor(t *testing.T) {
	for _, status := range []string{FulfillmentPending, FulfillmentProcessing, FulfillmentShipping, FulfillmentDelivered, FulfillmentCancelled} {
		cod := PaymentStatusFor(PaymentMethodCOD, status)
		assert.Equal(t, status == FulfillmentDelivered, cod == PaymentStatusPaid, "cod/%s", status)

		assert.Equal(t, PaymentStatusPaid, PaymentStatusFor(PaymentMethodVNPay, status))
		assert.Equal(t, PaymentStatusPaid, PaymentStatusFor(PaymentMethodMoMo, status))
	}
}

func TestPaymentRecordStatus(t *testing.T) {
	assert.Equal(t, PaymentRecordCompleted, PaymentRecordStatus(PaymentStatusPaid))
	assert.Equal(t, PaymentRecordPending, PaymentRecordStatus(PaymentStatusUnpaid))
}

func TestOrderTotal(t *testing.T) {
	items := []OrderItem{
		{Quantity: 2, PriceAtPurchase: d("199000")},
		{Quantity: 1, PriceAtPurchase: d("349000.50")},
	}

	total := OrderTotal(items, d("30000"))

	assert.True(t, d("777000.50").Equal(total), "got %s", total)
}

func TestPaymentFor(t *testing.T) {
	placed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	o := Order{ID: 9, PaymentMethod: PaymentMethodMoMo, PaymentStatus: PaymentStatusPaid, TotalAmount: d("100"), CreatedAt: placed}

	p := PaymentFor(o)

	assert.Equal(t, int64(9), p.OrderID)
	assert.Equal(t, PaymentMethodMoMo, p.Provider)
	assert.Equal(t, PaymentMethodMoMo, p.PaymentMethod)
	assert.Equal(t, PaymentRecordCompleted, p.Status)
	assert.True(t, d("100").Equal(p.Amount))
	assert.Equal(t, placed, p.CreatedAt)
}

func TestOrderNumber(t *testing.T) {
	placed := time.Date(2026, 1, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "ORD202601054821", OrderNumber(placed, 4821))
}

func TestWeighted_Distribution(t *testing.T) {
	assert.Equal(t, 100, FulfillmentStatuses.Total())
	assert.Equal(t, 10, PaymentMethods.Total())

	counts := map[string]int{}
	seq := &seqIntner{}
	for i := 0; i < 100; i++ {
		seq.vals = append(seq.vals, i)
	}
	for i := 0; i < 100; i++ {
		counts[FulfillmentStatuses.Pick(seq)]++
	}
	assert.Equal(t, map[string]int{
		FulfillmentPending:    30,
		FulfillmentProcessing: 20,
		FulfillmentShipping:   15,
		FulfillmentDelivered:  30,
		FulfillmentCancelled:  5,
	}, counts)
}

func TestWeighted_IgnoresNonPositive(t *testing.T) {
	w := NewWeighted(Weight[string]{"a", 0}, Weight[string]{"b", 3})
	assert.Equal(t, 3, w.Total())
	assert.Equal(t, "b", w.Pick(&seqIntner{vals: []int{0}}))
}

// ============================================================================
// Reviews and promotions
// ============================================================================

func TestReviewTemplates(t *testing.T) {
	require.Len(t, ReviewTemplates, 20)
	for _, tpl := range ReviewTemplates {
		assert.GreaterOrEqual(t, tpl.Rating, 1)
		assert.LessOrEqual(t, tpl.Rating, 5)
		assert.NotEmpty(t, tpl.Comment)
	}
}

func TestReviewFrom(t *testing.T) {
	r := ReviewFrom(Purchase{OrderID: 1, CustomerID: 2, VariantID: 3}, ReviewTemplates[0])
	assert.Equal(t, Review{VariantID: 3, CustomerID: 2, OrderID: 1, Rating: 5, Comment: ReviewTemplates[0].Comment, Status: ReviewStatusApproved}, r)
}

func TestFlashPrice(t *testing.T) {
	assert.True(t, d("160000").Equal(FlashPrice(d("200000"), d("20"))))
	assert.True(t, d("85").Equal(FlashPrice(d("100"), d("15"))))
}

func TestDefaultPromotions(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	promos := DefaultPromotions(now)
	require.Len(t, promos, 3)

	flash := promos[0]
	assert.Equal(t, PromotionTypeFlashSale, flash.Type)
	assert.Equal(t, PromotionStatusActive, flash.Status)
	assert.True(t, flash.StartDate.Before(now) && flash.EndDate.After(now))

	summer := promos[1]
	assert.Equal(t, PromotionStatusScheduled, summer.Status)
	assert.True(t, summer.StartDate.After(now))

	tet := promos[2]
	assert.Equal(t, PromotionStatusExpired, tet.Status)
	assert.True(t, tet.EndDate.Before(now))
	assert.True(t, d("30").Equal(tet.DiscountValue))
}
