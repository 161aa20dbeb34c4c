package pagination

const (
	DefaultPageSize = 20
	MaxPageSize     = 250
)

// Pagination is the offset-based page request shared by list endpoints.
type Pagination struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}

// PageInfo describes the page actually served.
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
}

// Normalize clamps out-of-range values instead of rejecting them.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p Pagination) Limit() int {
	return p.PageSize
}

// BuildPageInfo pairs the served page with the unfiltered total.
func BuildPageInfo(p Pagination, totalCount int64) PageInfo {
	return PageInfo{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: totalCount,
	}
}
