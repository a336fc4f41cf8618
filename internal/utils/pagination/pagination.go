package pagination

// Defaults and bounds for page-number pagination. Out-of-range values are
// clamped rather than rejected; the clamp policy is fixed here and nowhere else.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params is a normalized page request.
type Params struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"pageSize" json:"pageSize"`
}

// Normalize clamps the parameters into their valid ranges:
// page < 1 becomes 1, pageSize < 1 becomes DefaultPageSize, and pageSize
// above MaxPageSize becomes MaxPageSize.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	} else if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Meta describes the page actually served.
type Meta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// NewMeta builds the response metadata for a normalized request and a total count.
func NewMeta(p Params, totalItems int64) Meta {
	totalPages := 0
	if totalItems > 0 {
		totalPages = int((totalItems + int64(p.PageSize) - 1) / int64(p.PageSize))
	}
	return Meta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
