package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ZeyadMohamed5/Morph/internal/domain"
)

// ProductListParams filters the public product listing. Nil optional fields
// are omitted from the request rather than sent as literal null.
type ProductListParams struct {
	Page         int
	Limit        int
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	CategoryID   *int64
	CategorySlug string
	Query        string
	Tag          string
	Active       *bool
}

// ProductPage is a paginated product listing response.
type ProductPage struct {
	Products   []domain.Product `json:"products"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// ListProducts fetches a page of products. The request routes to one of three
// endpoints depending on the filters: a free-text query goes to the search
// endpoint, a category slug (without a query) goes to the per-category
// collection endpoint, and the default hits the general listing. The
// collection endpoint accepts only pagination, price bounds and the active
// flag; category id and tag filters do not apply there.
func (c *Client) ListProducts(ctx context.Context, p ProductListParams) (*ProductPage, error) {
	endpoint := "/api/products"
	query := url.Values{}
	query.Set("page", strconv.Itoa(p.Page))
	query.Set("limit", strconv.Itoa(p.Limit))
	if p.MinPrice != nil {
		query.Set("minPrice", p.MinPrice.String())
	}
	if p.MaxPrice != nil {
		query.Set("maxPrice", p.MaxPrice.String())
	}
	if p.Active != nil {
		query.Set("active", strconv.FormatBool(*p.Active))
	}

	switch {
	case p.CategorySlug != "" && p.Query == "":
		endpoint = "/api/products/collections/" + url.PathEscape(p.CategorySlug)
	case p.Query != "":
		endpoint = "/api/products/search"
		query.Set("q", p.Query)
		c.addGeneralFilters(query, p)
	default:
		c.addGeneralFilters(query, p)
	}

	var page ProductPage
	if err := c.getJSON(ctx, "list products", endpoint, query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) addGeneralFilters(query url.Values, p ProductListParams) {
	if p.Tag != "" {
		query.Set("tag", p.Tag)
	}
	if p.CategoryID != nil {
		query.Set("categoryId", strconv.FormatInt(*p.CategoryID, 10))
	}
}

// GetSpecialProducts fetches a short tag-scoped listing (featured, new
// arrivals) and unwraps the product slice.
func (c *Client) GetSpecialProducts(ctx context.Context, tag string, limit int) ([]domain.Product, error) {
	page, err := c.ListProducts(ctx, ProductListParams{Page: 1, Limit: limit, Tag: tag})
	if err != nil {
		return nil, err
	}
	return page.Products, nil
}

// GetProduct fetches a single product by id or slug. The identifier carries
// which one it is; no shape-guessing happens here.
func (c *Client) GetProduct(ctx context.Context, ident domain.Identifier) (*domain.Product, error) {
	var path string
	if ident.IsID() {
		path = fmt.Sprintf("/api/products/id/%d", ident.ID())
	} else {
		path = "/api/products/" + url.PathEscape(ident.Slug())
	}

	var product domain.Product
	if err := c.getJSON(ctx, "get product", path, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListAdminProducts fetches the admin product listing, which includes
// inactive products.
func (c *Client) ListAdminProducts(ctx context.Context, page, limit int) (*ProductPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var out ProductPage
	if err := c.getJSON(ctx, "list admin products", "/api/admin/products", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct submits a new product as a multipart form (scalar fields plus
// image uploads). The server assigns the id and slug.
func (c *Client) CreateProduct(ctx context.Context, form *Form) (*domain.Product, error) {
	var product domain.Product
	if err := c.sendMultipart(ctx, "create product", http.MethodPost, "/api/admin/addProduct", form, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces a product's fields. The route wants a numeric id;
// when the caller holds a slug, the product is fetched first to resolve it.
func (c *Client) UpdateProduct(ctx context.Context, ident domain.Identifier, form *Form) (*domain.Product, error) {
	id, err := c.resolveProductID(ctx, ident)
	if err != nil {
		return nil, err
	}

	var product domain.Product
	path := fmt.Sprintf("/api/admin/product/%d", id)
	if err := c.sendMultipart(ctx, "update product", http.MethodPut, path, form, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ToggleProductStatus flips a product's active flag to the given value. The
// route is keyed by slug, unlike the other admin product routes.
func (c *Client) ToggleProductStatus(ctx context.Context, slug string, isActive bool) error {
	path := "/api/admin/product/" + url.PathEscape(slug) + "/toggle-status"
	body := map[string]bool{"isActive": isActive}
	return c.sendJSON(ctx, "toggle product status", http.MethodPatch, path, body, nil)
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, ident domain.Identifier) error {
	id, err := c.resolveProductID(ctx, ident)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/api/admin/product/%d", id)
	return c.sendJSON(ctx, "delete product", http.MethodDelete, path, nil, nil)
}

// AddVariants attaches new variants (with images) to an existing product.
func (c *Client) AddVariants(ctx context.Context, form *Form) error {
	return c.sendMultipart(ctx, "add variants", http.MethodPost, "/api/admin/addVariants", form, nil)
}

func (c *Client) resolveProductID(ctx context.Context, ident domain.Identifier) (int64, error) {
	if ident.IsID() {
		return ident.ID(), nil
	}
	product, err := c.GetProduct(ctx, ident)
	if err != nil {
		return 0, fmt.Errorf("resolve product id for slug %q: %w", ident.Slug(), err)
	}
	return product.ID, nil
}
