package domain

import (
	"github.com/shopspring/decimal"
)

// Product represents a catalog product. Products are owned by the remote
// system; the client holds read-through cached copies only.
type Product struct {
	ID            int64            `json:"id"`
	Slug          string           `json:"slug"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	PreviousPrice *decimal.Decimal `json:"previousPrice,omitempty"`
	ImageURL      string           `json:"imageUrl"`
	Images        []string         `json:"images,omitempty"`
	Variants      []Variant        `json:"variants,omitempty"`
	Discount      *ProductDiscount `json:"discount,omitempty"`
	Tags          []Tag            `json:"tags,omitempty"`
	IsActive      bool             `json:"isActive"`
}

// ProductDiscount is the active discount attached to a product, as computed
// by the server. DiscountedPrice is authoritative; the client never derives
// it from the percentage.
type ProductDiscount struct {
	Percentage      decimal.Decimal `json:"percentage"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
}

// EffectivePrice returns the unit price a customer pays: the discounted
// price when a discount is active, the list price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.Discount != nil {
		return p.Discount.DiscountedPrice
	}
	return p.Price
}

// Variant is a product variant (e.g. a colorway) with per-size stock.
type Variant struct {
	ID    int64       `json:"id"`
	Color string      `json:"color"`
	SKU   string      `json:"sku"`
	Sizes []SizeStock `json:"sizes,omitempty"`
}

// SizeStock holds the remaining stock for one size of a variant.
type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// SelectableSizes returns the sizes with stock remaining. A size with zero
// stock is not selectable.
func (v Variant) SelectableSizes() []SizeStock {
	out := make([]SizeStock, 0, len(v.Sizes))
	for _, s := range v.Sizes {
		if s.Stock > 0 {
			out = append(out, s)
		}
	}
	return out
}

// FindVariant returns the variant with the given id, or false when absent.
func (p Product) FindVariant(variantID int64) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v, true
		}
	}
	return Variant{}, false
}
