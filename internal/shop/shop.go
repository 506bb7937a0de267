// Package shop is the storefront-facing read path: product browsing, catalog
// lists and shipping data, all served through the query cache with the
// per-resource staleness and retry policies.
package shop

import (
	"context"
	"log/slog"

	"github.com/ZeyadMohamed5/Morph/internal/api"
	"github.com/ZeyadMohamed5/Morph/internal/domain"
	"github.com/ZeyadMohamed5/Morph/internal/query"
	"github.com/ZeyadMohamed5/Morph/pkg/pagination"
)

// API is the slice of the remote client the shop reads from.
type API interface {
	ListProducts(ctx context.Context, p api.ProductListParams) (*api.ProductPage, error)
	GetProduct(ctx context.Context, ident domain.Identifier) (*domain.Product, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	ListTags(ctx context.Context, activeOnly bool) ([]domain.Tag, error)
	ListShippingCities(ctx context.Context) ([]domain.ShippingCity, error)
	GetShippingPrice(ctx context.Context, city string) (*domain.ShippingCity, error)
}

// Service serves the public storefront reads.
type Service struct {
	api    API
	cache  *query.Cache
	logger *slog.Logger
}

// NewService creates the storefront read service.
func NewService(apiClient API, cache *query.Cache, logger *slog.Logger) *Service {
	return &Service{api: apiClient, cache: cache, logger: logger}
}

// ListProducts returns a product page. Pagination is clamped before the
// cache key is built, so out-of-range inputs collapse onto the nearest valid
// key instead of producing distinct uncached entries.
func (s *Service) ListProducts(ctx context.Context, params api.ProductListParams) (*api.ProductPage, error) {
	clamped := pagination.Params{Page: params.Page, Limit: params.Limit}.Clamp()
	params.Page = clamped.Page
	params.Limit = clamped.Limit

	key := query.NewKey(query.ResourceProducts, "list", newListKeyParams(params))
	return query.GetTyped(ctx, s.cache, key, func(ctx context.Context) (*api.ProductPage, error) {
		return s.api.ListProducts(ctx, params)
	})
}

// listKeyParams is the normalized parameter shape hashed into the cache key.
type listKeyParams struct {
	Page         int     `json:"page"`
	Limit        int     `json:"limit"`
	MinPrice     *string `json:"minPrice,omitempty"`
	MaxPrice     *string `json:"maxPrice,omitempty"`
	CategoryID   *int64  `json:"categoryId,omitempty"`
	CategorySlug string  `json:"categorySlug,omitempty"`
	Query        string  `json:"q,omitempty"`
	Tag          string  `json:"tag,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

func newListKeyParams(p api.ProductListParams) listKeyParams {
	k := listKeyParams{
		Page:         p.Page,
		Limit:        p.Limit,
		CategoryID:   p.CategoryID,
		CategorySlug: p.CategorySlug,
		Query:        p.Query,
		Tag:          p.Tag,
		Active:       p.Active,
	}
	if p.MinPrice != nil {
		v := p.MinPrice.String()
		k.MinPrice = &v
	}
	if p.MaxPrice != nil {
		v := p.MaxPrice.String()
		k.MaxPrice = &v
	}
	return k
}

// GetProduct returns one product by id or slug.
func (s *Service) GetProduct(ctx context.Context, ident domain.Identifier) (*domain.Product, error) {
	key := query.NewKey(query.ResourceProducts, "get", ident.String())
	return query.GetTyped(ctx, s.cache, key, func(ctx context.Context) (*domain.Product, error) {
		return s.api.GetProduct(ctx, ident)
	})
}

// Categories returns the active categories. The entry effectively never goes
// stale; only an explicit invalidation refetches it.
func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	key := query.NewKey(query.ResourceCategories, "list", map[string]bool{"active": true})
	return query.GetTyped(ctx, s.cache, key, func(ctx context.Context) ([]domain.Category, error) {
		return s.api.ListCategories(ctx, true)
	})
}

// Tags returns the active tags.
func (s *Service) Tags(ctx context.Context) ([]domain.Tag, error) {
	key := query.NewKey(query.ResourceTags, "list", map[string]bool{"active": true})
	return query.GetTyped(ctx, s.cache, key, func(ctx context.Context) ([]domain.Tag, error) {
		return s.api.ListTags(ctx, true)
	})
}

// ShippingCities returns the deliverable cities.
func (s *Service) ShippingCities(ctx context.Context) ([]domain.ShippingCity, error) {
	key := query.NewKey(query.ResourceShippingCities, "list", nil)
	return query.GetTyped(ctx, s.cache, key, func(ctx context.Context) ([]domain.ShippingCity, error) {
		return s.api.ListShippingCities(ctx)
	})
}

// ShippingPrice returns the shipping price for one city.
func (s *Service) ShippingPrice(ctx context.Context, city string) (*domain.ShippingCity, error) {
	key := query.NewKey(query.ResourceShippingPrice, "get", city)
	return query.GetTyped(ctx, s.cache, key, func(ctx context.Context) (*domain.ShippingCity, error) {
		return s.api.GetShippingPrice(ctx, city)
	})
}
