package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZeyadMohamed5/Morph/internal/domain"
	apperrors "github.com/ZeyadMohamed5/Morph/pkg/errors"
	"github.com/ZeyadMohamed5/Morph/pkg/httpclient"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	doer := httpclient.New(httpclient.Config{
		Timeout:      5 * time.Second,
		MaxRetries:   0,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: time.Millisecond,
	})
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(server.URL, doer, log)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ============================================================================
// Product Listing Dispatch
// ============================================================================

func TestListProducts_DefaultEndpoint(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		assert.Equal(t, "new-arrival", r.URL.Query().Get("tag"))
		writeJSON(t, w, ProductPage{Total: 0})
	})

	_, err := client.ListProducts(context.Background(), ProductListParams{
		Page: 1, Limit: 12, Tag: "new-arrival",
	})
	require.NoError(t, err)
}

func TestListProducts_SearchDispatch(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/search", r.URL.Path)
		assert.Equal(t, "leather jacket", r.URL.Query().Get("q"))
		writeJSON(t, w, ProductPage{})
	})

	_, err := client.ListProducts(context.Background(), ProductListParams{
		Page: 1, Limit: 12, Query: "leather jacket",
	})
	require.NoError(t, err)
}

func TestListProducts_CollectionDispatchDropsForeignFilters(t *testing.T) {
	categoryID := int64(3)
	minPrice := decimal.NewFromInt(50)
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/collections/jackets", r.URL.Path)
		// The collection endpoint takes pagination, price bounds and the
		// active flag only.
		assert.Equal(t, "50", r.URL.Query().Get("minPrice"))
		assert.Empty(t, r.URL.Query().Get("tag"))
		assert.Empty(t, r.URL.Query().Get("categoryId"))
		writeJSON(t, w, ProductPage{})
	})

	_, err := client.ListProducts(context.Background(), ProductListParams{
		Page:         1,
		Limit:        12,
		CategorySlug: "jackets",
		CategoryID:   &categoryID,
		Tag:          "sale",
		MinPrice:     &minPrice,
	})
	require.NoError(t, err)
}

func TestListProducts_QueryBeatsCategorySlug(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/search", r.URL.Path)
		writeJSON(t, w, ProductPage{})
	})

	_, err := client.ListProducts(context.Background(), ProductListParams{
		Page: 1, Limit: 12, Query: "boots", CategorySlug: "jackets",
	})
	require.NoError(t, err)
}

func TestListProducts_OmitsNilOptionals(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		_, hasMin := q["minPrice"]
		_, hasActive := q["active"]
		assert.False(t, hasMin)
		assert.False(t, hasActive)
		writeJSON(t, w, ProductPage{})
	})

	_, err := client.ListProducts(context.Background(), ProductListParams{Page: 1, Limit: 12})
	require.NoError(t, err)
}

// ============================================================================
// Single Product Fetch
// ============================================================================

func TestGetProduct_ByID(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/id/42", r.URL.Path)
		writeJSON(t, w, domain.Product{ID: 42, Name: "Boots"})
	})

	product, err := client.GetProduct(context.Background(), domain.ByID(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), product.ID)
}

func TestGetProduct_BySlug(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/leather-boots", r.URL.Path)
		writeJSON(t, w, domain.Product{ID: 42, Slug: "leather-boots"})
	})

	product, err := client.GetProduct(context.Background(), domain.BySlug("leather-boots"))
	require.NoError(t, err)
	assert.Equal(t, "leather-boots", product.Slug)
}

func TestGetProduct_NotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetProduct(context.Background(), domain.ByID(99))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestUpdateProduct_ResolvesSlugToID(t *testing.T) {
	var paths []string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/api/products/leather-boots":
			writeJSON(t, w, domain.Product{ID: 42})
		default:
			writeJSON(t, w, domain.Product{ID: 42})
		}
	})

	form := &Form{}
	form.AddField("name", "Leather Boots v2")
	_, err := client.UpdateProduct(context.Background(), domain.BySlug("leather-boots"), form)
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.Equal(t, "GET /api/products/leather-boots", paths[0])
	assert.Equal(t, "PUT /api/admin/product/42", paths[1])
}

func TestToggleProductStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/admin/product/leather-boots/toggle-status", r.URL.Path)

		var body map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.False(t, body["isActive"])
		writeJSON(t, w, map[string]string{"message": "updated"})
	})

	err := client.ToggleProductStatus(context.Background(), "leather-boots", false)
	require.NoError(t, err)
}

func TestCreateProduct_Multipart(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Boots", r.FormValue("name"))

		file, header, err := r.FormFile("images")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "front.jpg", header.Filename)
		writeJSON(t, w, domain.Product{ID: 1})
	})

	form := &Form{}
	form.AddField("name", "Boots")
	form.AddFile("images", "front.jpg", strings.NewReader("fake-image"))

	product, err := client.CreateProduct(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
}

// ============================================================================
// Catalog Entries
// ============================================================================

func TestDeleteCatalogEntry_TypeInPath(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/admin/tag/7", r.URL.Path)
		writeJSON(t, w, map[string]string{"message": "deleted"})
	})

	err := client.DeleteCatalogEntry(context.Background(), domain.EntryTag, 7)
	require.NoError(t, err)
}

func TestToggleCatalogEntryStatus_SendsTypeInBody(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/admin/category/3", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "category", body["type"])
		assert.Equal(t, false, body["isActive"])
		writeJSON(t, w, map[string]string{"message": "updated"})
	})

	err := client.ToggleCatalogEntryStatus(context.Background(), domain.EntryCategory, 3, false)
	require.NoError(t, err)
}

func TestListCategories_ActiveFlag(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("active"))
		writeJSON(t, w, []domain.Category{{ID: 1, Name: "Jackets"}})
	})

	categories, err := client.ListCategories(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, categories, 1)
}

// ============================================================================
// Customer Operations
// ============================================================================

func TestApplyCoupon_ReducedItemShape(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/customer/couponsApply", r.URL.Path)

		var body struct {
			CouponCode string           `json:"couponCode"`
			Items      []map[string]any `json:"items"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "SAVE10", body.CouponCode)
		require.Len(t, body.Items, 1)
		// Variant and size are not part of the coupon-apply contract.
		_, hasVariant := body.Items[0]["variantId"]
		assert.False(t, hasVariant)

		writeJSON(t, w, domain.AppliedCoupon{
			CouponCode:           "SAVE10",
			CouponDiscountAmount: decimal.NewFromInt(20),
			TotalAfterDiscount:   decimal.NewFromInt(180),
		})
	})

	variantID := int64(5)
	size := "M"
	applied, err := client.ApplyCoupon(context.Background(), "SAVE10", []domain.OrderItem{
		{ProductID: 1, VariantID: &variantID, Size: &size, Quantity: 2},
	})
	require.NoError(t, err)
	assert.True(t, applied.TotalAfterDiscount.Equal(decimal.NewFromInt(180)))
}

func TestApplyCoupon_ServerRejectionMessageVerbatim(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Coupon has expired"}`))
	})

	_, err := client.ApplyCoupon(context.Background(), "OLD", nil)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Coupon has expired", appErr.Message)
}

func TestCreateOrder(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/customer/createOrder", r.URL.Path)

		var payload domain.OrderPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Nadia", payload.FirstName)
		assert.Equal(t, domain.PaymentCashOnDelivery, payload.PaymentMethod)
		writeJSON(t, w, domain.OrderConfirmation{OrderID: 1001})
	})

	confirmation, err := client.CreateOrder(context.Background(), domain.OrderPayload{
		FirstName:     "Nadia",
		LastName:      "Hassan",
		CustomerEmail: "nadia@example.com",
		MobileNumber:  "01000000000",
		Address:       "12 Nile St",
		PaymentMethod: domain.PaymentCashOnDelivery,
		Items:         []domain.OrderItem{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1001), confirmation.OrderID)
}

func TestGetShippingPrice_EscapesCity(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shipping/price/New%20Cairo", r.URL.EscapedPath())
		writeJSON(t, w, domain.ShippingCity{City: "New Cairo", Price: decimal.NewFromInt(60)})
	})

	city, err := client.GetShippingPrice(context.Background(), "New Cairo")
	require.NoError(t, err)
	assert.True(t, city.Price.Equal(decimal.NewFromInt(60)))
}

// ============================================================================
// Dashboard
// ============================================================================

func TestGetDashboardSummary_DateRange(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/dashboard/summary", r.URL.Path)
		assert.Equal(t, "2026-01-01", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2026-01-31", r.URL.Query().Get("endDate"))
		writeJSON(t, w, DashboardSummary{TotalOrders: 7})
	})

	summary, err := client.GetDashboardSummary(context.Background(), DateRange{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Equal(t, int64(7), summary.TotalOrders)
}

func TestGetTopProducts_Limit(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		writeJSON(t, w, []ProductSales{})
	})

	_, err := client.GetTopProducts(context.Background(), DateRange{}, 5)
	require.NoError(t, err)
}

// ============================================================================
// Auth
// ============================================================================

func TestLogin_SendsCredentials(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/login", r.URL.Path)

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "admin", creds.Username)

		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
		writeJSON(t, w, map[string]string{"message": "ok"})
	})

	err := client.Login(context.Background(), Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	})

	err := client.Login(context.Background(), Credentials{Username: "admin", Password: "wrong"})
	require.Error(t, err)
	assert.False(t, apperrors.IsRetryable(err))
}
