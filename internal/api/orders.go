package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ZeyadMohamed5/Morph/internal/domain"
)

// --- Admin orders ---

// OrderListParams filters the admin order listing.
type OrderListParams struct {
	Page      int
	Limit     int
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

// OrderPage is a paginated order listing response.
type OrderPage struct {
	Orders     []domain.Order `json:"orders"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}

// ListOrders fetches a page of orders for the admin console.
func (c *Client) ListOrders(ctx context.Context, p OrderListParams) (*OrderPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(p.Page))
	query.Set("limit", strconv.Itoa(p.Limit))
	if p.Status != "" {
		query.Set("status", p.Status)
	}
	if p.StartDate != nil {
		query.Set("startDate", p.StartDate.Format("2006-01-02"))
	}
	if p.EndDate != nil {
		query.Set("endDate", p.EndDate.Format("2006-01-02"))
	}

	var page OrderPage
	if err := c.getJSON(ctx, "list orders", "/api/admin/orders", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetOrder fetches a single order by id.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/api/admin/orders/%d", orderID)
	if err := c.getJSON(ctx, "get order", path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus moves an order to a new status.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	path := fmt.Sprintf("/api/admin/orders/%d", orderID)
	body := map[string]string{"status": status}
	return c.sendJSON(ctx, "update order status", http.MethodPut, path, body, nil)
}

// --- Coupons ---

// CouponInput carries the fields for creating a coupon. The server owns
// uniqueness of the code.
type CouponInput struct {
	Code           string           `json:"code"`
	Description    string           `json:"description"`
	Percentage     decimal.Decimal  `json:"percentage"`
	StartDate      time.Time        `json:"startDate"`
	EndDate        time.Time        `json:"endDate"`
	MaxUsage       *int             `json:"maxUsage"`
	MinOrderAmount *decimal.Decimal `json:"minOrderAmount"`
}

// CreateCoupon registers a new coupon code.
func (c *Client) CreateCoupon(ctx context.Context, input CouponInput) (*domain.Coupon, error) {
	var coupon domain.Coupon
	if err := c.sendJSON(ctx, "create coupon", http.MethodPost, "/api/admin/addCoupon", input, &coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}

// ListCoupons fetches all coupons for the admin console.
func (c *Client) ListCoupons(ctx context.Context) ([]domain.Coupon, error) {
	var coupons []domain.Coupon
	if err := c.getJSON(ctx, "list coupons", "/api/admin/coupons", nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

// ToggleCouponStatus sets a coupon's active flag to the given value.
func (c *Client) ToggleCouponStatus(ctx context.Context, id int64, isActive bool) error {
	path := fmt.Sprintf("/api/admin/coupons/%d/status", id)
	body := map[string]bool{"isActive": isActive}
	return c.sendJSON(ctx, "toggle coupon status", http.MethodPut, path, body, nil)
}

// DeleteCoupon removes a coupon.
func (c *Client) DeleteCoupon(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/coupons/%d", id)
	return c.sendJSON(ctx, "delete coupon", http.MethodDelete, path, nil, nil)
}

// --- Discounts ---

// DiscountInput carries the fields for creating a discount. Exactly one of
// the three target references must be set.
type DiscountInput struct {
	Percentage decimal.Decimal `json:"percentage"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate"`
	ProductID  *int64          `json:"productId,omitempty"`
	CategoryID *int64          `json:"categoryId,omitempty"`
	TagID      *int64          `json:"tagId,omitempty"`
}

// CreateDiscount registers a new scheduled discount.
func (c *Client) CreateDiscount(ctx context.Context, input DiscountInput) (*domain.Discount, error) {
	var discount domain.Discount
	if err := c.sendJSON(ctx, "create discount", http.MethodPost, "/api/admin/addDiscount", input, &discount); err != nil {
		return nil, err
	}
	return &discount, nil
}

// ListDiscounts fetches all discounts for the admin console.
func (c *Client) ListDiscounts(ctx context.Context) ([]domain.Discount, error) {
	var discounts []domain.Discount
	if err := c.getJSON(ctx, "list discounts", "/api/admin/discounts", nil, &discounts); err != nil {
		return nil, err
	}
	return discounts, nil
}

// ToggleDiscountStatus sets a discount's active flag to the given value.
func (c *Client) ToggleDiscountStatus(ctx context.Context, id int64, isActive bool) error {
	path := fmt.Sprintf("/api/admin/discounts/%d", id)
	body := map[string]bool{"isActive": isActive}
	return c.sendJSON(ctx, "toggle discount status", http.MethodPatch, path, body, nil)
}

// DeleteDiscount removes a discount.
func (c *Client) DeleteDiscount(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/discounts/%d", id)
	return c.sendJSON(ctx, "delete discount", http.MethodDelete, path, nil, nil)
}

// --- Customer ---

// couponApplyItem is the reduced line-item shape the coupon endpoint accepts.
type couponApplyItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// ApplyCoupon submits the coupon code with the current cart contents and
// returns the server's authoritative discount computation. Validity windows,
// usage caps and the minimum order rule are all checked server-side; a
// rejection arrives as an error carrying the server's message verbatim.
func (c *Client) ApplyCoupon(ctx context.Context, code string, items []domain.OrderItem) (*domain.AppliedCoupon, error) {
	payload := struct {
		CouponCode string            `json:"couponCode"`
		Items      []couponApplyItem `json:"items"`
	}{CouponCode: code, Items: make([]couponApplyItem, 0, len(items))}
	for _, item := range items {
		payload.Items = append(payload.Items, couponApplyItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	var applied domain.AppliedCoupon
	if err := c.sendJSON(ctx, "apply coupon", http.MethodPost, "/api/customer/couponsApply", payload, &applied); err != nil {
		return nil, err
	}
	return &applied, nil
}

// CreateOrder submits the assembled order payload. Exactly one request per
// call; there is no idempotency key, so a resubmission after an ambiguous
// failure is a brand-new order.
func (c *Client) CreateOrder(ctx context.Context, payload domain.OrderPayload) (*domain.OrderConfirmation, error) {
	var confirmation domain.OrderConfirmation
	if err := c.sendJSON(ctx, "create order", http.MethodPost, "/api/customer/createOrder", payload, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

// --- Shipping ---

// ListShippingCities fetches the deliverable cities with their prices.
func (c *Client) ListShippingCities(ctx context.Context) ([]domain.ShippingCity, error) {
	var cities []domain.ShippingCity
	if err := c.getJSON(ctx, "list shipping cities", "/api/shipping/cities", nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// GetShippingPrice fetches the shipping price for one city.
func (c *Client) GetShippingPrice(ctx context.Context, city string) (*domain.ShippingCity, error) {
	var out domain.ShippingCity
	path := "/api/shipping/price/" + url.PathEscape(city)
	if err := c.getJSON(ctx, "get shipping price", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
