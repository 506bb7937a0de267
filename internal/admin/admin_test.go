package admin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZeyadMohamed5/Morph/internal/api"
	"github.com/ZeyadMohamed5/Morph/internal/domain"
	"github.com/ZeyadMohamed5/Morph/internal/query"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAPI counts calls and fails on demand. List results are returned fresh
// per call so cache behavior is observable through call counts.
type fakeAPI struct {
	coupons    []domain.Coupon
	discounts  []domain.Discount
	categories []domain.Category
	tags       []domain.Tag
	products   []domain.Product

	listCalls   map[string]int
	mutationErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{listCalls: make(map[string]int)}
}

func (f *fakeAPI) ListCoupons(context.Context) ([]domain.Coupon, error) {
	f.listCalls["coupons"]++
	out := make([]domain.Coupon, len(f.coupons))
	copy(out, f.coupons)
	return out, nil
}

func (f *fakeAPI) CreateCoupon(_ context.Context, input api.CouponInput) (*domain.Coupon, error) {
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	coupon := domain.Coupon{ID: int64(len(f.coupons) + 1), Code: input.Code, IsActive: true}
	f.coupons = append(f.coupons, coupon)
	return &coupon, nil
}

func (f *fakeAPI) ToggleCouponStatus(_ context.Context, id int64, isActive bool) error {
	if f.mutationErr != nil {
		return f.mutationErr
	}
	for i := range f.coupons {
		if f.coupons[i].ID == id {
			f.coupons[i].IsActive = isActive
		}
	}
	return nil
}

func (f *fakeAPI) DeleteCoupon(_ context.Context, id int64) error {
	if f.mutationErr != nil {
		return f.mutationErr
	}
	next := f.coupons[:0]
	for _, c := range f.coupons {
		if c.ID != id {
			next = append(next, c)
		}
	}
	f.coupons = next
	return nil
}

func (f *fakeAPI) ListDiscounts(context.Context) ([]domain.Discount, error) {
	f.listCalls["discounts"]++
	out := make([]domain.Discount, len(f.discounts))
	copy(out, f.discounts)
	return out, nil
}

func (f *fakeAPI) CreateDiscount(_ context.Context, input api.DiscountInput) (*domain.Discount, error) {
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	discount := domain.Discount{ID: int64(len(f.discounts) + 1), Percentage: input.Percentage, IsActive: true}
	f.discounts = append(f.discounts, discount)
	return &discount, nil
}

func (f *fakeAPI) ToggleDiscountStatus(_ context.Context, id int64, isActive bool) error {
	return f.mutationErr
}

func (f *fakeAPI) DeleteDiscount(_ context.Context, id int64) error {
	return f.mutationErr
}

func (f *fakeAPI) ListAdminProducts(_ context.Context, page, limit int) (*api.ProductPage, error) {
	f.listCalls["admin_products"]++
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return &api.ProductPage{Products: out, Page: page}, nil
}

func (f *fakeAPI) CreateProduct(_ context.Context, form *api.Form) (*domain.Product, error) {
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	return &domain.Product{ID: 1}, nil
}

func (f *fakeAPI) UpdateProduct(_ context.Context, ident domain.Identifier, form *api.Form) (*domain.Product, error) {
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	return &domain.Product{ID: ident.ID()}, nil
}

func (f *fakeAPI) ToggleProductStatus(_ context.Context, slug string, isActive bool) error {
	return f.mutationErr
}

func (f *fakeAPI) DeleteProduct(_ context.Context, ident domain.Identifier) error {
	return f.mutationErr
}

func (f *fakeAPI) AddVariants(_ context.Context, form *api.Form) error {
	return f.mutationErr
}

func (f *fakeAPI) ListCategories(_ context.Context, activeOnly bool) ([]domain.Category, error) {
	f.listCalls["categories"]++
	out := make([]domain.Category, len(f.categories))
	copy(out, f.categories)
	return out, nil
}

func (f *fakeAPI) ListTags(_ context.Context, activeOnly bool) ([]domain.Tag, error) {
	f.listCalls["tags"]++
	out := make([]domain.Tag, len(f.tags))
	copy(out, f.tags)
	return out, nil
}

func (f *fakeAPI) CreateCatalogEntry(_ context.Context, form *api.Form) error {
	return f.mutationErr
}

func (f *fakeAPI) UpdateCatalogEntry(_ context.Context, entryType domain.CatalogEntryType, id int64, update api.CatalogEntryUpdate) error {
	return f.mutationErr
}

func (f *fakeAPI) ToggleCatalogEntryStatus(_ context.Context, entryType domain.CatalogEntryType, id int64, isActive bool) error {
	return f.mutationErr
}

func (f *fakeAPI) DeleteCatalogEntry(_ context.Context, entryType domain.CatalogEntryType, id int64) error {
	return f.mutationErr
}

func newService(t *testing.T) (*Service, *fakeAPI, *query.Cache) {
	t.Helper()
	fake := newFakeAPI()
	cache := query.NewCache(testLogger())
	return NewService(fake, cache, testLogger()), fake, cache
}

// ============================================================================
// Coupon Flows
// ============================================================================

func TestCoupons_ListIsCached(t *testing.T) {
	svc, fake, _ := newService(t)
	fake.coupons = []domain.Coupon{{ID: 1, Code: "SAVE10", IsActive: true}}
	ctx := context.Background()

	_, err := svc.Coupons(ctx)
	require.NoError(t, err)
	_, err = svc.Coupons(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, fake.listCalls["coupons"])
}

func TestCreateCoupon_RefetchesListOnNextRead(t *testing.T) {
	svc, fake, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Coupons(ctx)
	require.NoError(t, err)

	_, err = svc.CreateCoupon(ctx, api.CouponInput{Code: "NEW"})
	require.NoError(t, err)

	coupons, err := svc.Coupons(ctx)
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.Equal(t, "NEW", coupons[0].Code)
	assert.Equal(t, 2, fake.listCalls["coupons"])
}

func TestToggleCoupon_RollbackRestoresFlag(t *testing.T) {
	svc, fake, cache := newService(t)
	fake.coupons = []domain.Coupon{{ID: 1, Code: "SAVE10", IsActive: true}}
	ctx := context.Background()

	_, err := svc.Coupons(ctx)
	require.NoError(t, err)

	// The flip happens synchronously before the network call resolves; a
	// failed call must undo it.
	fake.mutationErr = errors.New("simulated 500")
	err = svc.ToggleCoupon(ctx, 1, false)
	require.Error(t, err)

	v, ok := cache.Peek(query.NewKey(query.ResourceCoupons, "list", nil))
	require.True(t, ok)
	coupons := v.([]domain.Coupon)
	assert.True(t, coupons[0].IsActive, "rollback must restore the original flag")
}

func TestToggleCoupon_FailureRestoresSnapshotDeepEqual(t *testing.T) {
	svc, fake, cache := newService(t)
	fake.coupons = []domain.Coupon{
		{ID: 1, Code: "SAVE10", IsActive: true},
		{ID: 2, Code: "SAVE20", IsActive: false},
	}
	ctx := context.Background()

	before, err := svc.Coupons(ctx)
	require.NoError(t, err)

	fake.mutationErr = errors.New("simulated 500")
	require.Error(t, svc.ToggleCoupon(ctx, 1, false))

	v, ok := cache.Peek(query.NewKey(query.ResourceCoupons, "list", nil))
	require.True(t, ok)
	assert.Equal(t, before, v.([]domain.Coupon))
}

func TestToggleCoupon_SuccessInvalidatesFamily(t *testing.T) {
	svc, fake, _ := newService(t)
	fake.coupons = []domain.Coupon{{ID: 1, Code: "SAVE10", IsActive: true}}
	ctx := context.Background()

	_, err := svc.Coupons(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.ToggleCoupon(ctx, 1, false))

	coupons, err := svc.Coupons(ctx)
	require.NoError(t, err)
	assert.False(t, coupons[0].IsActive)
	assert.Equal(t, 2, fake.listCalls["coupons"], "commit re-fetches ground truth")
}

func TestDeleteCoupon_FailureRestoresRow(t *testing.T) {
	svc, fake, cache := newService(t)
	fake.coupons = []domain.Coupon{{ID: 1, Code: "SAVE10", IsActive: true}}
	ctx := context.Background()

	before, err := svc.Coupons(ctx)
	require.NoError(t, err)

	fake.mutationErr = errors.New("simulated 500")
	require.Error(t, svc.DeleteCoupon(ctx, 1))

	v, ok := cache.Peek(query.NewKey(query.ResourceCoupons, "list", nil))
	require.True(t, ok)
	assert.Equal(t, before, v.([]domain.Coupon))
}

func TestDeleteCoupon_SuccessRemovesRow(t *testing.T) {
	svc, fake, _ := newService(t)
	fake.coupons = []domain.Coupon{{ID: 1, Code: "SAVE10"}, {ID: 2, Code: "SAVE20"}}
	ctx := context.Background()

	_, err := svc.Coupons(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCoupon(ctx, 1))

	coupons, err := svc.Coupons(ctx)
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.Equal(t, int64(2), coupons[0].ID)
}

// ============================================================================
// Product Flows
// ============================================================================

func TestProducts_PaginationClampedBeforeKey(t *testing.T) {
	svc, fake, _ := newService(t)
	ctx := context.Background()

	// page=0,limit=500 and page=1,limit=100 must share one cache entry.
	_, err := svc.Products(ctx, 0, 500)
	require.NoError(t, err)
	_, err = svc.Products(ctx, 1, 100)
	require.NoError(t, err)

	assert.Equal(t, 1, fake.listCalls["admin_products"])
}

func TestDeleteProduct_OptimisticRemovalAndRollback(t *testing.T) {
	svc, fake, cache := newService(t)
	fake.products = []domain.Product{{ID: 1, Slug: "boots"}, {ID: 2, Slug: "jacket"}}
	ctx := context.Background()

	before, err := svc.Products(ctx, 1, 12)
	require.NoError(t, err)
	require.Len(t, before.Products, 2)

	fake.mutationErr = errors.New("simulated 500")
	require.Error(t, svc.DeleteProduct(ctx, 1, 12, domain.ByID(1)))

	v, ok := cache.Peek(query.NewKey(query.ResourceAdminProducts, "list", map[string]int{"page": 1, "limit": 12}))
	require.True(t, ok)
	assert.Equal(t, before, v.(*api.ProductPage))
}

func TestCreateProduct_InvalidatesBothProductFamilies(t *testing.T) {
	svc, fake, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Products(ctx, 1, 12)
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, &api.Form{})
	require.NoError(t, err)

	_, err = svc.Products(ctx, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.listCalls["admin_products"])
}

// ============================================================================
// Catalog Flows
// ============================================================================

func TestToggleCatalogEntry_TagListPatched(t *testing.T) {
	svc, fake, cache := newService(t)
	fake.tags = []domain.Tag{{ID: 7, Name: "sale", IsActive: true}}
	ctx := context.Background()

	_, err := svc.Tags(ctx)
	require.NoError(t, err)

	fake.mutationErr = errors.New("simulated 500")
	require.Error(t, svc.ToggleCatalogEntry(ctx, domain.EntryTag, 7, false))

	v, ok := cache.Peek(query.NewKey(query.ResourceTags, "admin_list", nil))
	require.True(t, ok)
	assert.True(t, v.([]domain.Tag)[0].IsActive)
}

func TestDeleteCatalogEntry_CategorySuccess(t *testing.T) {
	svc, fake, _ := newService(t)
	fake.categories = []domain.Category{{ID: 3, Name: "Jackets", IsActive: true}}
	ctx := context.Background()

	_, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCatalogEntry(ctx, domain.EntryCategory, 3))

	// Families invalidated; next read hits the API again.
	_, err = svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.listCalls["categories"])
}
