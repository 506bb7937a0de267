// Package admin orchestrates the console's mutation flows. Creates re-fetch
// the full list on success (the server owns ids and derived fields like
// slugs); deletes and status toggles patch the cached list optimistically
// and roll back verbatim when the network call fails. Every mutation targets
// exactly one entity.
package admin

import (
	"context"
	"log/slog"

	"github.com/ZeyadMohamed5/Morph/internal/api"
	"github.com/ZeyadMohamed5/Morph/internal/domain"
	"github.com/ZeyadMohamed5/Morph/internal/query"
	"github.com/ZeyadMohamed5/Morph/pkg/pagination"
)

// API is the slice of the remote client the admin console uses.
type API interface {
	ListAdminProducts(ctx context.Context, page, limit int) (*api.ProductPage, error)
	CreateProduct(ctx context.Context, form *api.Form) (*domain.Product, error)
	UpdateProduct(ctx context.Context, ident domain.Identifier, form *api.Form) (*domain.Product, error)
	ToggleProductStatus(ctx context.Context, slug string, isActive bool) error
	DeleteProduct(ctx context.Context, ident domain.Identifier) error
	AddVariants(ctx context.Context, form *api.Form) error

	ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	ListTags(ctx context.Context, activeOnly bool) ([]domain.Tag, error)
	CreateCatalogEntry(ctx context.Context, form *api.Form) error
	UpdateCatalogEntry(ctx context.Context, entryType domain.CatalogEntryType, id int64, update api.CatalogEntryUpdate) error
	ToggleCatalogEntryStatus(ctx context.Context, entryType domain.CatalogEntryType, id int64, isActive bool) error
	DeleteCatalogEntry(ctx context.Context, entryType domain.CatalogEntryType, id int64) error

	ListCoupons(ctx context.Context) ([]domain.Coupon, error)
	CreateCoupon(ctx context.Context, input api.CouponInput) (*domain.Coupon, error)
	ToggleCouponStatus(ctx context.Context, id int64, isActive bool) error
	DeleteCoupon(ctx context.Context, id int64) error

	ListDiscounts(ctx context.Context) ([]domain.Discount, error)
	CreateDiscount(ctx context.Context, input api.DiscountInput) (*domain.Discount, error)
	ToggleDiscountStatus(ctx context.Context, id int64, isActive bool) error
	DeleteDiscount(ctx context.Context, id int64) error
}

// Service runs the admin console flows against the query cache.
type Service struct {
	api    API
	cache  *query.Cache
	logger *slog.Logger
}

// NewService creates the admin service.
func NewService(apiClient API, cache *query.Cache, logger *slog.Logger) *Service {
	return &Service{api: apiClient, cache: cache, logger: logger}
}

// --- Coupons ---

func couponsKey() query.Key {
	return query.NewKey(query.ResourceCoupons, "list", nil)
}

// Coupons returns the coupon list through the cache.
func (s *Service) Coupons(ctx context.Context) ([]domain.Coupon, error) {
	return query.GetTyped(ctx, s.cache, couponsKey(), func(ctx context.Context) ([]domain.Coupon, error) {
		return s.api.ListCoupons(ctx)
	})
}

// CreateCoupon registers a coupon and invalidates the list so the next read
// picks up the server-assigned row.
func (s *Service) CreateCoupon(ctx context.Context, input api.CouponInput) (*domain.Coupon, error) {
	coupon, err := s.api.CreateCoupon(ctx, input)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(query.ResourceCoupons)
	return coupon, nil
}

// ToggleCoupon flips a coupon's active flag optimistically.
func (s *Service) ToggleCoupon(ctx context.Context, id int64, isActive bool) error {
	return s.cache.Mutate(ctx, couponsKey(),
		func(current any) any {
			coupons := current.([]domain.Coupon)
			next := make([]domain.Coupon, len(coupons))
			copy(next, coupons)
			for i := range next {
				if next[i].ID == id {
					next[i].IsActive = isActive
				}
			}
			return next
		},
		func(ctx context.Context) error {
			return s.api.ToggleCouponStatus(ctx, id, isActive)
		},
		query.ResourceCoupons,
	)
}

// DeleteCoupon removes a coupon optimistically.
func (s *Service) DeleteCoupon(ctx context.Context, id int64) error {
	return s.cache.Mutate(ctx, couponsKey(),
		func(current any) any {
			coupons := current.([]domain.Coupon)
			next := make([]domain.Coupon, 0, len(coupons))
			for _, c := range coupons {
				if c.ID != id {
					next = append(next, c)
				}
			}
			return next
		},
		func(ctx context.Context) error {
			return s.api.DeleteCoupon(ctx, id)
		},
		query.ResourceCoupons,
	)
}

// --- Discounts ---

func discountsKey() query.Key {
	return query.NewKey(query.ResourceDiscounts, "list", nil)
}

// Discounts returns the discount list through the cache.
func (s *Service) Discounts(ctx context.Context) ([]domain.Discount, error) {
	return query.GetTyped(ctx, s.cache, discountsKey(), func(ctx context.Context) ([]domain.Discount, error) {
		return s.api.ListDiscounts(ctx)
	})
}

// CreateDiscount registers a discount and invalidates the list. Product
// listings are invalidated too: a new discount changes effective prices.
func (s *Service) CreateDiscount(ctx context.Context, input api.DiscountInput) (*domain.Discount, error) {
	discount, err := s.api.CreateDiscount(ctx, input)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(query.ResourceDiscounts, query.ResourceProducts, query.ResourceAdminProducts)
	return discount, nil
}

// ToggleDiscount flips a discount's active flag optimistically.
func (s *Service) ToggleDiscount(ctx context.Context, id int64, isActive bool) error {
	return s.cache.Mutate(ctx, discountsKey(),
		func(current any) any {
			discounts := current.([]domain.Discount)
			next := make([]domain.Discount, len(discounts))
			copy(next, discounts)
			for i := range next {
				if next[i].ID == id {
					next[i].IsActive = isActive
				}
			}
			return next
		},
		func(ctx context.Context) error {
			return s.api.ToggleDiscountStatus(ctx, id, isActive)
		},
		query.ResourceDiscounts, query.ResourceProducts, query.ResourceAdminProducts,
	)
}

// DeleteDiscount removes a discount optimistically.
func (s *Service) DeleteDiscount(ctx context.Context, id int64) error {
	return s.cache.Mutate(ctx, discountsKey(),
		func(current any) any {
			discounts := current.([]domain.Discount)
			next := make([]domain.Discount, 0, len(discounts))
			for _, d := range discounts {
				if d.ID != id {
					next = append(next, d)
				}
			}
			return next
		},
		func(ctx context.Context) error {
			return s.api.DeleteDiscount(ctx, id)
		},
		query.ResourceDiscounts, query.ResourceProducts, query.ResourceAdminProducts,
	)
}

// --- Products ---

func adminProductsKey(page, limit int) query.Key {
	return query.NewKey(query.ResourceAdminProducts, "list", map[string]int{"page": page, "limit": limit})
}

// Products returns the admin product page (including inactive products)
// through the cache, with pagination clamped before key construction.
func (s *Service) Products(ctx context.Context, page, limit int) (*api.ProductPage, error) {
	clamped := pagination.Params{Page: page, Limit: limit}.Clamp()
	key := adminProductsKey(clamped.Page, clamped.Limit)
	return query.GetTyped(ctx, s.cache, key, func(ctx context.Context) (*api.ProductPage, error) {
		return s.api.ListAdminProducts(ctx, clamped.Page, clamped.Limit)
	})
}

// CreateProduct submits a new product and invalidates the product families.
func (s *Service) CreateProduct(ctx context.Context, form *api.Form) (*domain.Product, error) {
	product, err := s.api.CreateProduct(ctx, form)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(query.ResourceAdminProducts, query.ResourceProducts)
	return product, nil
}

// UpdateProduct replaces a product's fields and invalidates the product
// families.
func (s *Service) UpdateProduct(ctx context.Context, ident domain.Identifier, form *api.Form) (*domain.Product, error) {
	product, err := s.api.UpdateProduct(ctx, ident, form)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(query.ResourceAdminProducts, query.ResourceProducts)
	return product, nil
}

// ToggleProduct flips a product's active flag optimistically in the given
// admin list page.
func (s *Service) ToggleProduct(ctx context.Context, page, limit int, slug string, isActive bool) error {
	clamped := pagination.Params{Page: page, Limit: limit}.Clamp()
	return s.cache.Mutate(ctx, adminProductsKey(clamped.Page, clamped.Limit),
		func(current any) any {
			list := current.(*api.ProductPage)
			next := *list
			next.Products = make([]domain.Product, len(list.Products))
			copy(next.Products, list.Products)
			for i := range next.Products {
				if next.Products[i].Slug == slug {
					next.Products[i].IsActive = isActive
				}
			}
			return &next
		},
		func(ctx context.Context) error {
			return s.api.ToggleProductStatus(ctx, slug, isActive)
		},
		query.ResourceAdminProducts, query.ResourceProducts,
	)
}

// DeleteProduct removes a product optimistically from the given admin list
// page.
func (s *Service) DeleteProduct(ctx context.Context, page, limit int, ident domain.Identifier) error {
	clamped := pagination.Params{Page: page, Limit: limit}.Clamp()
	return s.cache.Mutate(ctx, adminProductsKey(clamped.Page, clamped.Limit),
		func(current any) any {
			list := current.(*api.ProductPage)
			next := *list
			next.Products = make([]domain.Product, 0, len(list.Products))
			for _, p := range list.Products {
				if matchesIdentifier(p, ident) {
					continue
				}
				next.Products = append(next.Products, p)
			}
			return &next
		},
		func(ctx context.Context) error {
			return s.api.DeleteProduct(ctx, ident)
		},
		query.ResourceAdminProducts, query.ResourceProducts,
	)
}

func matchesIdentifier(p domain.Product, ident domain.Identifier) bool {
	if ident.IsID() {
		return p.ID == ident.ID()
	}
	return p.Slug == ident.Slug()
}

// AddVariants attaches variants to a product and invalidates the product
// families.
func (s *Service) AddVariants(ctx context.Context, form *api.Form) error {
	if err := s.api.AddVariants(ctx, form); err != nil {
		return err
	}
	s.cache.Invalidate(query.ResourceAdminProducts, query.ResourceProducts)
	return nil
}

// --- Categories and tags ---

func categoriesKey() query.Key {
	return query.NewKey(query.ResourceCategories, "admin_list", nil)
}

func tagsKey() query.Key {
	return query.NewKey(query.ResourceTags, "admin_list", nil)
}

// Categories returns all categories (active and inactive) through the cache.
func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return query.GetTyped(ctx, s.cache, categoriesKey(), func(ctx context.Context) ([]domain.Category, error) {
		return s.api.ListCategories(ctx, false)
	})
}

// Tags returns all tags through the cache.
func (s *Service) Tags(ctx context.Context) ([]domain.Tag, error) {
	return query.GetTyped(ctx, s.cache, tagsKey(), func(ctx context.Context) ([]domain.Tag, error) {
		return s.api.ListTags(ctx, false)
	})
}

// CreateCatalogEntry submits a new category or tag and invalidates both
// catalog families (a tag create can ride the category route).
func (s *Service) CreateCatalogEntry(ctx context.Context, form *api.Form) error {
	if err := s.api.CreateCatalogEntry(ctx, form); err != nil {
		return err
	}
	s.cache.Invalidate(query.ResourceCategories, query.ResourceTags)
	return nil
}

// UpdateCatalogEntry updates a category or tag and invalidates the catalog
// families.
func (s *Service) UpdateCatalogEntry(ctx context.Context, entryType domain.CatalogEntryType, id int64, update api.CatalogEntryUpdate) error {
	if err := s.api.UpdateCatalogEntry(ctx, entryType, id, update); err != nil {
		return err
	}
	s.cache.Invalidate(query.ResourceCategories, query.ResourceTags)
	return nil
}

// ToggleCatalogEntry flips a category's or tag's active flag optimistically.
func (s *Service) ToggleCatalogEntry(ctx context.Context, entryType domain.CatalogEntryType, id int64, isActive bool) error {
	key := categoriesKey()
	patch := func(current any) any {
		categories := current.([]domain.Category)
		next := make([]domain.Category, len(categories))
		copy(next, categories)
		for i := range next {
			if next[i].ID == id {
				next[i].IsActive = isActive
			}
		}
		return next
	}
	if entryType == domain.EntryTag {
		key = tagsKey()
		patch = func(current any) any {
			tags := current.([]domain.Tag)
			next := make([]domain.Tag, len(tags))
			copy(next, tags)
			for i := range next {
				if next[i].ID == id {
					next[i].IsActive = isActive
				}
			}
			return next
		}
	}

	return s.cache.Mutate(ctx, key, patch,
		func(ctx context.Context) error {
			return s.api.ToggleCatalogEntryStatus(ctx, entryType, id, isActive)
		},
		query.ResourceCategories, query.ResourceTags,
	)
}

// DeleteCatalogEntry removes a category or tag optimistically.
func (s *Service) DeleteCatalogEntry(ctx context.Context, entryType domain.CatalogEntryType, id int64) error {
	key := categoriesKey()
	patch := func(current any) any {
		categories := current.([]domain.Category)
		next := make([]domain.Category, 0, len(categories))
		for _, c := range categories {
			if c.ID != id {
				next = append(next, c)
			}
		}
		return next
	}
	if entryType == domain.EntryTag {
		key = tagsKey()
		patch = func(current any) any {
			tags := current.([]domain.Tag)
			next := make([]domain.Tag, 0, len(tags))
			for _, tg := range tags {
				if tg.ID != id {
					next = append(next, tg)
				}
			}
			return next
		}
	}

	return s.cache.Mutate(ctx, key, patch,
		func(ctx context.Context) error {
			return s.api.DeleteCatalogEntry(ctx, entryType, id)
		},
		query.ResourceCategories, query.ResourceTags,
	)
}
