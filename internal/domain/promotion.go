package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion type and status constants.
const (
	PromotionTypeFlashSale = "flash_sale"
	PromotionTypeSeasonal  = "seasonal"

	DiscountTypePercentage = "percentage"

	PromotionStatusActive    = "active"
	PromotionStatusScheduled = "scheduled"
	PromotionStatusExpired   = "expired"
)

var hundred = decimal.NewFromInt(100)

// Promotion is a discount campaign. Status is stored as given and is not
// derived from the date window.
type Promotion struct {
	ID            int64
	Name          string
	Type          string
	DiscountType  string
	DiscountValue decimal.Decimal
	StartDate     time.Time
	EndDate       time.Time
	Status        string
}

// PromotionProduct attaches a product to a promotion at a flash price.
type PromotionProduct struct {
	PromotionID    int64
	ProductID      int64
	FlashSalePrice decimal.Decimal
}

// PricedProduct is a product id with its current selling price.
type PricedProduct struct {
	ID           int64
	SellingPrice decimal.Decimal
}

// FlashPrice returns selling × (1 − percent/100).
func FlashPrice(selling, percent decimal.Decimal) decimal.Decimal {
	return selling.Mul(decimal.NewFromInt(1).Sub(percent.Div(hundred)))
}

// DefaultPromotions returns the three campaigns seeded relative to now: a
// running flash sale, an upcoming seasonal sale and an expired one.
func DefaultPromotions(now time.Time) []Promotion {
	day := 24 * time.Hour
	return []Promotion{
		{
			Name:          "Flash Sale Cuối Tuần",
			Type:          PromotionTypeFlashSale,
			DiscountType:  DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(20),
			StartDate:     now.Add(-2 * day),
			EndDate:       now.Add(2 * day),
			Status:        PromotionStatusActive,
		},
		{
			Name:          "Giảm Giá Mùa Hè",
			Type:          PromotionTypeSeasonal,
			DiscountType:  DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(15),
			StartDate:     now.Add(7 * day),
			EndDate:       now.Add(30 * day),
			Status:        PromotionStatusScheduled,
		},
		{
			Name:          "Sale Tết 2025",
			Type:          PromotionTypeSeasonal,
			DiscountType:  DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(30),
			StartDate:     now.Add(-60 * day),
			EndDate:       now.Add(-30 * day),
			Status:        PromotionStatusExpired,
		},
	}
}
