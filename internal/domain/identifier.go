package domain

import "strconv"

// Identifier selects a product either by numeric id or by slug. The choice
// is made once at the point of origin instead of re-inferred downstream from
// the shape of a string.
type Identifier struct {
	id   int64
	slug string
	byID bool
}

// ByID builds an identifier for a numeric product id.
func ByID(id int64) Identifier {
	return Identifier{id: id, byID: true}
}

// BySlug builds an identifier for a product slug.
func BySlug(slug string) Identifier {
	return Identifier{slug: slug}
}

// IsID reports whether the identifier carries a numeric id.
func (i Identifier) IsID() bool {
	return i.byID
}

// ID returns the numeric id. Only meaningful when IsID is true.
func (i Identifier) ID() int64 {
	return i.id
}

// Slug returns the slug. Only meaningful when IsID is false.
func (i Identifier) Slug() string {
	return i.slug
}

func (i Identifier) String() string {
	if i.byID {
		return strconv.FormatInt(i.id, 10)
	}
	return i.slug
}
