package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod labels how an order will be paid. It is attached to the
// order payload as-is; no gateway work happens client-side.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentSmartWallet    PaymentMethod = "SmartWallet"
)

// Enabled reports whether the method is currently selectable. Credit card
// and SmartWallet are presented but disabled until the gateways exist.
func (m PaymentMethod) Enabled() bool {
	return m == PaymentCashOnDelivery
}

// PaymentMethods returns all presented methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCashOnDelivery, PaymentCreditCard, PaymentSmartWallet}
}

// OrderItem is a cart line item reduced to the fields the order endpoint
// accepts.
type OrderItem struct {
	ProductID int64   `json:"productId"`
	VariantID *int64  `json:"variantId"`
	Size      *string `json:"size"`
	Quantity  int     `json:"quantity"`
}

// OrderPayload is the order-creation request body. Field names follow the
// createOrder endpoint contract.
type OrderPayload struct {
	FirstName      string        `json:"firstName"`
	LastName       string        `json:"lastName"`
	CustomerEmail  string        `json:"customerEmail"`
	MobileNumber   string        `json:"mobileNumber"`
	Address        string        `json:"address"`
	AnotherMobile  string        `json:"anotherMobile,omitempty"`
	AnotherAddress string        `json:"anotherAddress,omitempty"`
	CouponCode     *string       `json:"couponCode"`
	PaymentMethod  PaymentMethod `json:"paymentMethod"`
	Items          []OrderItem   `json:"items"`
}

// OrderConfirmation is the server's response to a successful order creation.
type OrderConfirmation struct {
	OrderID int64  `json:"orderId"`
	Message string `json:"message,omitempty"`
}

// Order is the admin-side view of a submitted order.
type Order struct {
	ID             int64           `json:"id"`
	Status         string          `json:"status"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	CustomerEmail  string          `json:"customerEmail"`
	MobileNumber   string          `json:"mobileNumber"`
	Address        string          `json:"address"`
	AnotherMobile  string          `json:"anotherMobile,omitempty"`
	AnotherAddress string          `json:"anotherAddress,omitempty"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	CouponCode     *string         `json:"couponCode,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Items          []OrderItem     `json:"items,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// AppliedCoupon is the server's authoritative result of applying a coupon
// code to the current cart. It is transient: the client recomputes or drops
// it instead of persisting it.
type AppliedCoupon struct {
	CouponCode           string           `json:"couponCode"`
	DiscountedItems      []DiscountedItem `json:"discountedItems"`
	CouponDiscountAmount decimal.Decimal  `json:"couponDiscountAmount"`
	TotalAfterDiscount   decimal.Decimal  `json:"totalAfterDiscount"`
}

// DiscountedItem is a per-line price after the coupon is applied.
type DiscountedItem struct {
	ProductID       int64           `json:"productId"`
	Quantity        int             `json:"quantity"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
}

// ShippingCity is a deliverable city with its shipping price.
type ShippingCity struct {
	City  string          `json:"city"`
	Price decimal.Decimal `json:"price"`
}
