package pricing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ZeyadMohamed5/Morph/internal/cart"
	"github.com/ZeyadMohamed5/Morph/internal/domain"
)

// ProductFetcher loads a single product. Satisfied by the API client and by
// cache-backed wrappers.
type ProductFetcher interface {
	GetProduct(ctx context.Context, ident domain.Identifier) (*domain.Product, error)
}

// CartView is the cart joined with product data, ready for display and
// totals. Dropped counts line items whose product could not be fetched; a
// non-zero value is a warning for the user, never a hard failure.
type CartView struct {
	Items   []PricedItem
	Dropped int
}

// Warning returns the user-facing notice for dropped items, empty when the
// view is complete.
func (v CartView) Warning() string {
	if v.Dropped == 0 {
		return ""
	}
	return fmt.Sprintf("%d item(s) in your cart are no longer available and were removed", v.Dropped)
}

// BuildPricedCart fetches the product for every cart line item and joins
// them into priced items. A line item whose product fetch fails (deleted
// server-side, transient error) is dropped from the view and counted; the
// aggregation never aborts on a single failure.
func BuildPricedCart(ctx context.Context, fetcher ProductFetcher, items []cart.LineItem, logger *slog.Logger) CartView {
	view := CartView{Items: make([]PricedItem, 0, len(items))}

	for _, item := range items {
		product, err := fetcher.GetProduct(ctx, domain.ByID(item.ProductID))
		if err != nil {
			view.Dropped++
			logger.WarnContext(ctx, "cart item dropped, product unavailable",
				slog.Int64("product_id", item.ProductID),
				slog.String("error", err.Error()),
			)
			continue
		}

		priced := PricedItem{Product: *product, Size: item.Size, Quantity: item.Quantity}
		if item.VariantID != nil {
			if variant, ok := product.FindVariant(*item.VariantID); ok {
				priced.Variant = &variant
			}
		}
		view.Items = append(view.Items, priced)
	}
	return view
}

// OrderItems reduces cart line items to the shape the order and coupon
// endpoints accept.
func OrderItems(items []cart.LineItem) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.OrderItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}
	return out
}
