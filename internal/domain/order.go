package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Fulfillment status constants.
const (
	FulfillmentPending    = "pending"
	FulfillmentProcessing = "processing"
	FulfillmentShipping   = "shipping"
	FulfillmentDelivered  = "delivered"
	FulfillmentCancelled  = "cancelled"
)

// Payment method constants.
const (
	PaymentMethodCOD   = "cod"
	PaymentMethodVNPay = "vnpay"
	PaymentMethodMoMo  = "momo"
)

// Payment status constants, on the order and on the payment record.
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"

	PaymentRecordCompleted = "completed"
	PaymentRecordPending   = "pending"
)

// Order generation bounds.
const (
	MinOrderLines   = 2
	MaxOrderLines   = 3
	MinLineQuantity = 1
	MaxLineQuantity = 2
	MaxOrderAgeDays = 90
)

// FulfillmentStatuses is the 30/20/15/30/5 status distribution of generated orders.
var FulfillmentStatuses = NewWeighted(
	Weight[string]{FulfillmentPending, 30},
	Weight[string]{FulfillmentProcessing, 20},
	Weight[string]{FulfillmentShipping, 15},
	Weight[string]{FulfillmentDelivered, 30},
	Weight[string]{FulfillmentCancelled, 5},
)

// PaymentMethods is the 70/20/10 payment method distribution.
var PaymentMethods = NewWeighted(
	Weight[string]{PaymentMethodCOD, 7},
	Weight[string]{PaymentMethodVNPay, 2},
	Weight[string]{PaymentMethodMoMo, 1},
)

// Order is a generated order with its shipping snapshot.
type Order struct {
	ID                int64
	OrderNumber       string
	CustomerID        int64
	ShippingAddress   string
	ShippingPhone     string
	ShippingCity      string
	ShippingDistrict  string
	ShippingWard      string
	FulfillmentStatus string
	PaymentStatus     string
	PaymentMethod     string
	ShippingFee       decimal.Decimal
	TotalAmount       decimal.Decimal
	CreatedAt         time.Time
	Items             []OrderItem
}

// OrderItem is one line of an order.
type OrderItem struct {
	OrderID         int64
	VariantID       int64
	Quantity        int
	PriceAtPurchase decimal.Decimal
}

// Payment is the payment record of an order.
type Payment struct {
	OrderID       int64
	Amount        decimal.Decimal
	Provider      string
	PaymentMethod string
	Status        string
	CreatedAt     time.Time
}

// VariantRef is an in-stock variant eligible for orders.
type VariantRef struct {
	ID        int64
	ProductID int64
}

// PaymentStatusFor derives the order payment status. Prepaid methods are
// always paid; cash on delivery is paid only once delivered.
func PaymentStatusFor(method, fulfillment string) string {
	if method != PaymentMethodCOD {
		return PaymentStatusPaid
	}
	if fulfillment == FulfillmentDelivered {
		return PaymentStatusPaid
	}
	return PaymentStatusUnpaid
}

// PaymentRecordStatus maps an order payment status to the payment row status.
func PaymentRecordStatus(paymentStatus string) string {
	if paymentStatus == PaymentStatusPaid {
		return PaymentRecordCompleted
	}
	return PaymentRecordPending
}

// LineTotal returns price × quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderTotal sums the line totals and adds the shipping fee.
func OrderTotal(items []OrderItem, shippingFee decimal.Decimal) decimal.Decimal {
	total := shippingFee
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// OrderNumber formats ORD{YYYYMMDD}{suffix}; suffix is expected in [1000, 9999].
// Uniqueness is not checked.
func OrderNumber(placed time.Time, suffix int) string {
	return fmt.Sprintf("ORD%s%d", placed.Format("20060102"), suffix)
}

// PaymentFor builds the payment record of o. o.TotalAmount must be final.
func PaymentFor(o Order) Payment {
	return Payment{
		OrderID:       o.ID,
		Amount:        o.TotalAmount,
		Provider:      o.PaymentMethod,
		PaymentMethod: o.PaymentMethod,
		Status:        PaymentRecordStatus(o.PaymentStatus),
		CreatedAt:     o.CreatedAt,
	}
}
