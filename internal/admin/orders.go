package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ZeyadMohamed5/Morph/internal/api"
	"github.com/ZeyadMohamed5/Morph/internal/domain"
	"github.com/ZeyadMohamed5/Morph/internal/query"
	"github.com/ZeyadMohamed5/Morph/pkg/pagination"
)

// OrdersAPI is the slice of the remote client the order console and the
// analytics dashboard read from.
type OrdersAPI interface {
	ListOrders(ctx context.Context, p api.OrderListParams) (*api.OrderPage, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error

	GetDashboardSummary(ctx context.Context, r api.DateRange) (*api.DashboardSummary, error)
	GetMonthlySales(ctx context.Context) ([]api.MonthlySalesPoint, error)
	GetBestTimeToSell(ctx context.Context, r api.DateRange) ([]api.HourlySalesPoint, error)
	GetSalesByProduct(ctx context.Context, r api.DateRange) ([]api.ProductSales, error)
	GetSalesByCategory(ctx context.Context, r api.DateRange) ([]api.CategorySales, error)
	GetTopProducts(ctx context.Context, r api.DateRange, limit int) ([]api.ProductSales, error)
	GetCouponUsage(ctx context.Context, r api.DateRange) ([]api.CouponUsage, error)
	GetLowStockProducts(ctx context.Context, threshold int) ([]api.LowStockProduct, error)
	GetSalesByVariant(ctx context.Context, r api.DateRange) ([]api.VariantSales, error)
}

// Reports serves the order console and the analytics dashboard. Orders go
// stale quickly; the chart panels share the dashboard policy.
type Reports struct {
	api    OrdersAPI
	cache  *query.Cache
	logger *slog.Logger
}

// NewReports creates the order/analytics read service.
func NewReports(apiClient OrdersAPI, cache *query.Cache, logger *slog.Logger) *Reports {
	return &Reports{api: apiClient, cache: cache, logger: logger}
}

// Orders returns a page of orders through the cache, with pagination clamped
// before the key is built.
func (r *Reports) Orders(ctx context.Context, params api.OrderListParams) (*api.OrderPage, error) {
	clamped := pagination.Params{Page: params.Page, Limit: params.Limit}.Clamp()
	params.Page = clamped.Page
	params.Limit = clamped.Limit

	key := query.NewKey(query.ResourceOrders, "list", orderKeyParams(params))
	return query.GetTyped(ctx, r.cache, key, func(ctx context.Context) (*api.OrderPage, error) {
		return r.api.ListOrders(ctx, params)
	})
}

type orderKey struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	Status    string `json:"status,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

func orderKeyParams(p api.OrderListParams) orderKey {
	k := orderKey{Page: p.Page, Limit: p.Limit, Status: p.Status}
	if p.StartDate != nil {
		k.StartDate = p.StartDate.Format("2006-01-02")
	}
	if p.EndDate != nil {
		k.EndDate = p.EndDate.Format("2006-01-02")
	}
	return k
}

// Order returns one order detail through the cache.
func (r *Reports) Order(ctx context.Context, orderID int64) (*domain.Order, error) {
	key := query.NewKey(query.ResourceOrders, "get", orderID)
	return query.GetTyped(ctx, r.cache, key, func(ctx context.Context) (*domain.Order, error) {
		return r.api.GetOrder(ctx, orderID)
	})
}

// UpdateOrderStatus moves an order to a new status and invalidates the order
// and dashboard families; the next read re-fetches ground truth.
func (r *Reports) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	if err := r.api.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return err
	}
	r.cache.Invalidate(query.ResourceOrders, query.ResourceDashboard)
	return nil
}

// Summary returns the dashboard headline numbers for the range.
func (r *Reports) Summary(ctx context.Context, dr api.DateRange) (*api.DashboardSummary, error) {
	key := query.NewKey(query.ResourceDashboard, "summary", rangeKey(dr))
	return query.GetTyped(ctx, r.cache, key, func(ctx context.Context) (*api.DashboardSummary, error) {
		return r.api.GetDashboardSummary(ctx, dr)
	})
}

// MonthlySales returns the revenue history.
func (r *Reports) MonthlySales(ctx context.Context) ([]api.MonthlySalesPoint, error) {
	key := query.NewKey(query.ResourceDashboard, "monthly_sales", nil)
	return query.GetTyped(ctx, r.cache, key, func(ctx context.Context) ([]api.MonthlySalesPoint, error) {
		return r.api.GetMonthlySales(ctx)
	})
}

// BestTimeToSell returns order volume by hour of day.
func (r *Reports) BestTimeToSell(ctx context.Context, dr api.DateRange) ([]api.HourlySalesPoint, error) {
	key := query.NewKey(query.ResourceDashboard, "best_time", rangeKey(dr))
	return query.GetTyped(ctx, r.cache, key, func(ctx context.Context) ([]api.HourlySalesPoint, error) {
		return r.api.GetBestTimeToSell(ctx, dr)
	})
}

// SalesByProduct returns per-product sales aggregates.
func (r *Reports) SalesByProduct(ctx context.Context, dr api.DateRange) ([]api.ProductSales, error) {
	key := query.NewKey(query.ResourceDashboard, "sales_by_product", rangeKey(dr))
	return query.GetTyped(ctx, r.cache, key, func(ctx context.Context) ([]api.ProductSales, error) {
		return r.api.GetSalesByProduct(ctx, dr)
	})
}

// SalesByCategory returns per-category sales aggregates.
func (r *Reports) SalesByCategory(ctx context.Context, dr api.DateRange) ([]api.CategorySales, error) {
	key := query.NewKey(query.ResourceDashboard, "sales_by_category", rangeKey(dr))
	return query.GetTyped(ctx, r.cache, key, func(ctx context.Context) ([]api.CategorySales, error) {
		return r.api.GetSalesByCategory(ctx, dr)
	})
}

// TopProducts returns the best sellers.
func (r *Reports) TopProducts(ctx context.Context, dr api.DateRange, limit int) ([]api.ProductSales, error) {
	key := query.NewKey(query.ResourceDashboard, "top_products", fmt.Sprintf("%s/%d", rangeKey(dr), limit))
	return query.GetTyped(ctx, r.cache, key, func(ctx context.Context) ([]api.ProductSales, error) {
		return r.api.GetTopProducts(ctx, dr, limit)
	})
}

// CouponUsage returns per-coupon redemption aggregates.
func (r *Reports) CouponUsage(ctx context.Context, dr api.DateRange) ([]api.CouponUsage, error) {
	key := query.NewKey(query.ResourceDashboard, "coupon_usage", rangeKey(dr))
	return query.GetTyped(ctx, r.cache, key, func(ctx context.Context) ([]api.CouponUsage, error) {
		return r.api.GetCouponUsage(ctx, dr)
	})
}

// LowStock returns variant sizes running out.
func (r *Reports) LowStock(ctx context.Context, threshold int) ([]api.LowStockProduct, error) {
	key := query.NewKey(query.ResourceDashboard, "low_stock", threshold)
	return query.GetTyped(ctx, r.cache, key, func(ctx context.Context) ([]api.LowStockProduct, error) {
		return r.api.GetLowStockProducts(ctx, threshold)
	})
}

// SalesByVariant returns per-variant sales aggregates.
func (r *Reports) SalesByVariant(ctx context.Context, dr api.DateRange) ([]api.VariantSales, error) {
	key := query.NewKey(query.ResourceDashboard, "sales_by_variant", rangeKey(dr))
	return query.GetTyped(ctx, r.cache, key, func(ctx context.Context) ([]api.VariantSales, error) {
		return r.api.GetSalesByVariant(ctx, dr)
	})
}

func rangeKey(dr api.DateRange) string {
	start, end := "", ""
	if dr.Start != nil {
		start = dr.Start.Format("2006-01-02")
	}
	if dr.End != nil {
		end = dr.End.Format("2006-01-02")
	}
	return start + ".." + end
}
