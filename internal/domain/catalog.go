package domain

// Category groups products and optionally carries its tags.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	IsActive    bool   `json:"isActive"`
	Tags        []Tag  `json:"tags,omitempty"`
}

// Tag is a free-form product label.
type Tag struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// CatalogEntryType discriminates categories from tags on the shared admin
// mutation routes (the delete route is /api/admin/{type}/{id}).
type CatalogEntryType string

const (
	EntryCategory CatalogEntryType = "category"
	EntryTag      CatalogEntryType = "tag"
)
