package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DateRange bounds an analytics query. Nil ends are omitted from the
// request, meaning "all time" on that side.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func (r DateRange) query() url.Values {
	q := url.Values{}
	if r.Start != nil {
		q.Set("startDate", r.Start.Format("2006-01-02"))
	}
	if r.End != nil {
		q.Set("endDate", r.End.Format("2006-01-02"))
	}
	return q
}

// DashboardSummary is the headline numbers panel.
type DashboardSummary struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalOrders   int64           `json:"totalOrders"`
	TotalProducts int64           `json:"totalProducts"`
	TotalCoupons  int64           `json:"totalCoupons"`
}

// MonthlySalesPoint is one month of revenue history.
type MonthlySalesPoint struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

// HourlySalesPoint is one hour-of-day bucket of order volume.
type HourlySalesPoint struct {
	Hour   int   `json:"hour"`
	Orders int64 `json:"orders"`
}

// ProductSales is aggregated sales for one product.
type ProductSales struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	UnitsSold   int64           `json:"unitsSold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// CategorySales is aggregated sales for one category.
type CategorySales struct {
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	UnitsSold    int64           `json:"unitsSold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// CouponUsage is aggregated redemptions for one coupon.
type CouponUsage struct {
	CouponCode     string          `json:"couponCode"`
	TimesUsed      int64           `json:"timesUsed"`
	TotalDiscount  decimal.Decimal `json:"totalDiscount"`
	RevenueWithUse decimal.Decimal `json:"revenueWithUse"`
}

// LowStockProduct flags a variant size running out.
type LowStockProduct struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	VariantID   *int64 `json:"variantId,omitempty"`
	Size        string `json:"size,omitempty"`
	Stock       int    `json:"stock"`
}

// VariantSales is aggregated sales for one variant.
type VariantSales struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	VariantID   int64           `json:"variantId"`
	Color       string          `json:"color"`
	UnitsSold   int64           `json:"unitsSold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// GetDashboardSummary fetches the headline numbers for the date range.
func (c *Client) GetDashboardSummary(ctx context.Context, r DateRange) (*DashboardSummary, error) {
	var summary DashboardSummary
	if err := c.getJSON(ctx, "dashboard summary", "/api/admin/dashboard/summary", r.query(), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetMonthlySales fetches the revenue history. This endpoint takes no date
// filter; it always returns the trailing months the server keeps.
func (c *Client) GetMonthlySales(ctx context.Context) ([]MonthlySalesPoint, error) {
	var points []MonthlySalesPoint
	if err := c.getJSON(ctx, "monthly sales", "/api/admin/dashboard/monthlySales", nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// GetBestTimeToSell fetches order volume bucketed by hour of day.
func (c *Client) GetBestTimeToSell(ctx context.Context, r DateRange) ([]HourlySalesPoint, error) {
	var points []HourlySalesPoint
	if err := c.getJSON(ctx, "best time to sell", "/api/admin/dashboard/bestTimeToSell", r.query(), &points); err != nil {
		return nil, err
	}
	return points, nil
}

// GetSalesByProduct fetches per-product sales aggregates.
func (c *Client) GetSalesByProduct(ctx context.Context, r DateRange) ([]ProductSales, error) {
	var sales []ProductSales
	if err := c.getJSON(ctx, "sales by product", "/api/admin/dashboard/salesByProduct", r.query(), &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// GetSalesByCategory fetches per-category sales aggregates.
func (c *Client) GetSalesByCategory(ctx context.Context, r DateRange) ([]CategorySales, error) {
	var sales []CategorySales
	if err := c.getJSON(ctx, "sales by category", "/api/admin/dashboard/salesByCategory", r.query(), &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// GetTopProducts fetches the best sellers, at most limit rows.
func (c *Client) GetTopProducts(ctx context.Context, r DateRange, limit int) ([]ProductSales, error) {
	query := r.query()
	query.Set("limit", strconv.Itoa(limit))

	var sales []ProductSales
	if err := c.getJSON(ctx, "top products", "/api/admin/dashboard/topProducts", query, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// GetCouponUsage fetches per-coupon redemption aggregates.
func (c *Client) GetCouponUsage(ctx context.Context, r DateRange) ([]CouponUsage, error) {
	var usage []CouponUsage
	if err := c.getJSON(ctx, "coupon usage", "/api/admin/dashboard/couponUsage", r.query(), &usage); err != nil {
		return nil, err
	}
	return usage, nil
}

// GetLowStockProducts fetches variant sizes with stock at or below threshold.
func (c *Client) GetLowStockProducts(ctx context.Context, threshold int) ([]LowStockProduct, error) {
	query := url.Values{"threshold": {strconv.Itoa(threshold)}}

	var products []LowStockProduct
	if err := c.getJSON(ctx, "low stock products", "/api/admin/dashboard/lowStockProducts", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetSalesByVariant fetches per-variant sales aggregates.
func (c *Client) GetSalesByVariant(ctx context.Context, r DateRange) ([]VariantSales, error) {
	var sales []VariantSales
	if err := c.getJSON(ctx, "sales by variant", "/api/admin/dashboard/salesByVariant", r.query(), &sales); err != nil {
		return nil, err
	}
	return sales, nil
}
