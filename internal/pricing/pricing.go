// Package pricing derives the cart totals: subtotal, pre-coupon discounted
// subtotal, and the final total after a server-applied coupon. All arithmetic
// uses decimals; the only network call is the coupon application, whose
// result the server owns.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/ZeyadMohamed5/Morph/internal/domain"
)

// PricedItem is a cart line item joined with its product, ready for totals.
type PricedItem struct {
	Product  domain.Product
	Variant  *domain.Variant
	Size     *string
	Quantity int
}

// LineTotal returns the effective unit price times quantity.
func (i PricedItem) LineTotal() decimal.Decimal {
	return i.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Subtotal sums list price times quantity over all items, ignoring every
// discount.
func Subtotal(items []PricedItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// DiscountedSubtotal sums the effective unit price (discounted when an
// active discount exists, list price otherwise) times quantity. This is the
// pre-coupon total.
func DiscountedSubtotal(items []PricedItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Total returns the final amount: the discounted subtotal less the coupon
// discount when a coupon is applied, the discounted subtotal alone otherwise.
func Total(items []PricedItem, coupon *domain.AppliedCoupon) decimal.Decimal {
	subtotal := DiscountedSubtotal(items)
	if coupon == nil {
		return subtotal
	}
	return subtotal.Sub(coupon.CouponDiscountAmount)
}
