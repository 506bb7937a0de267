package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon is a percentage discount code with a validity window. Validity,
// usage caps and the minimum order rule are enforced server-side; the client
// only carries the fields for display.
type Coupon struct {
	ID             int64            `json:"id"`
	Code           string           `json:"code"`
	Description    string           `json:"description,omitempty"`
	Percentage     decimal.Decimal  `json:"percentage"`
	StartDate      time.Time        `json:"startDate"`
	EndDate        time.Time        `json:"endDate"`
	MaxUsage       *int             `json:"maxUsage,omitempty"`
	UsageCount     int              `json:"usageCount,omitempty"`
	MinOrderAmount *decimal.Decimal `json:"minOrderAmount,omitempty"`
	IsActive       bool             `json:"isActive"`
}

// DiscountTarget names the kind of entity a discount attaches to.
type DiscountTarget string

const (
	DiscountTargetProduct  DiscountTarget = "product"
	DiscountTargetCategory DiscountTarget = "category"
	DiscountTargetTag      DiscountTarget = "tag"
)

// Discount is a scheduled percentage discount attached to exactly one of
// product, category or tag by reference id.
type Discount struct {
	ID         int64           `json:"id"`
	Percentage decimal.Decimal `json:"percentage"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate"`
	ProductID  *int64          `json:"productId,omitempty"`
	CategoryID *int64          `json:"categoryId,omitempty"`
	TagID      *int64          `json:"tagId,omitempty"`
	IsActive   bool            `json:"isActive"`
}

// Target returns the kind of entity the discount is attached to, along with
// its id. The server guarantees exactly one reference is set; when none is,
// the second return is false.
func (d Discount) Target() (DiscountTarget, int64, bool) {
	switch {
	case d.ProductID != nil:
		return DiscountTargetProduct, *d.ProductID, true
	case d.CategoryID != nil:
		return DiscountTargetCategory, *d.CategoryID, true
	case d.TagID != nil:
		return DiscountTargetTag, *d.TagID, true
	default:
		return "", 0, false
	}
}
