package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ZeyadMohamed5/Morph/internal/domain"
)

// ListCategories fetches categories. With activeOnly the server filters to
// active entries, which is what the public storefront shows; the admin
// console omits the flag to see everything.
func (c *Client) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	var query url.Values
	if activeOnly {
		query = url.Values{"active": {"true"}}
	}

	var categories []domain.Category
	if err := c.getJSON(ctx, "list categories", "/api/products/categories", query, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListTags fetches tags, optionally restricted to active ones.
func (c *Client) ListTags(ctx context.Context, activeOnly bool) ([]domain.Tag, error) {
	var query url.Values
	if activeOnly {
		query = url.Values{"active": {"true"}}
	}

	var tags []domain.Tag
	if err := c.getJSON(ctx, "list tags", "/api/products/tags", query, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateCatalogEntry submits a new category or tag as a multipart form (the
// category variant can carry an image). The form's "type" field tells the
// server which one it is.
func (c *Client) CreateCatalogEntry(ctx context.Context, form *Form) error {
	return c.sendMultipart(ctx, "create catalog entry", http.MethodPost, "/api/admin/addCategory", form, nil)
}

// CatalogEntryUpdate carries the mutable fields of a category or tag. Nil
// fields are left untouched server-side.
type CatalogEntryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// UpdateCatalogEntry updates a category or tag. The shared route
// discriminates by the type field in the body.
func (c *Client) UpdateCatalogEntry(ctx context.Context, entryType domain.CatalogEntryType, id int64, update CatalogEntryUpdate) error {
	body := struct {
		CatalogEntryUpdate
		Type domain.CatalogEntryType `json:"type"`
	}{CatalogEntryUpdate: update, Type: entryType}

	path := fmt.Sprintf("/api/admin/category/%d", id)
	return c.sendJSON(ctx, "update catalog entry", http.MethodPut, path, body, nil)
}

// ToggleCatalogEntryStatus sets a category's or tag's active flag.
func (c *Client) ToggleCatalogEntryStatus(ctx context.Context, entryType domain.CatalogEntryType, id int64, isActive bool) error {
	return c.UpdateCatalogEntry(ctx, entryType, id, CatalogEntryUpdate{IsActive: &isActive})
}

// DeleteCatalogEntry removes a category or tag. The route path discriminates
// the entry type.
func (c *Client) DeleteCatalogEntry(ctx context.Context, entryType domain.CatalogEntryType, id int64) error {
	path := fmt.Sprintf("/api/admin/%s/%d", entryType, id)
	return c.sendJSON(ctx, "delete catalog entry", http.MethodDelete, path, nil, nil)
}
