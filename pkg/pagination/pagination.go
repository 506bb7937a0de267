package pagination

// Bounds for list requests. Out-of-range values are clamped onto the nearest
// valid value so equivalent requests collapse onto the same cache key.
const (
	MinPage      = 1
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 12
)

// Params holds pagination parameters for a list request.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// DefaultParams returns the first page with the default page size.
func DefaultParams() Params {
	return Params{Page: MinPage, Limit: DefaultLimit}
}

// Clamp returns a copy of p with page and limit forced into their valid
// ranges: page >= 1, limit in [1, 100]. A zero limit takes the default.
func (p Params) Clamp() Params {
	if p.Page < MinPage {
		p.Page = MinPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit < MinLimit {
		p.Limit = MinLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// PageInfo mirrors the pagination metadata returned by list endpoints.
type PageInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// HasNext reports whether another page exists after the current one.
func (p PageInfo) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev reports whether a page exists before the current one.
func (p PageInfo) HasPrev() bool {
	return p.Page > 1
}
