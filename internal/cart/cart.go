package cart

import "context"

// LineItem is a single cart row. Its identity key is
// (ProductID, VariantID, Size) with nil compared as a value: an item without
// a variant only matches another item without a variant.
type LineItem struct {
	ProductID int64   `json:"productId"`
	VariantID *int64  `json:"variantId"`
	Size      *string `json:"size"`
	Quantity  int     `json:"quantity"`
}

// Key is the identity key of a line item.
type Key struct {
	ProductID int64
	VariantID *int64
	Size      *string
}

// Key returns the item's identity key.
func (i LineItem) Key() Key {
	return Key{ProductID: i.ProductID, VariantID: i.VariantID, Size: i.Size}
}

// Matches reports whether two keys are equal under null-inclusive equality.
func (k Key) Matches(o Key) bool {
	return k.ProductID == o.ProductID &&
		eqInt64Ptr(k.VariantID, o.VariantID) &&
		eqStrPtr(k.Size, o.Size)
}

func eqInt64Ptr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func eqStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Snapshot persists the full line-item collection under a single key.
// Implementations live in the snapshot subpackage.
type Snapshot interface {
	// Load returns the persisted collection, or ErrNoSnapshot when nothing
	// has been saved yet.
	Load(ctx context.Context) ([]LineItem, error)

	// Save overwrites the persisted collection. Last write wins; there is no
	// schema versioning of the stored form.
	Save(ctx context.Context, items []LineItem) error
}
