// Package pagination computes page slices and page metadata for list
// endpoints that use page-number/page-size addressing.
package pagination

// DefaultPageSize is used when a caller asks for a page without a size.
const DefaultPageSize = 10

// Request is the page a caller asked for. A nil *Request, or one with a zero
// PageNumber, means "no pagination": callers return the full ordered set.
type Request struct {
	PageNumber int `form:"pageNumber" json:"pageNumber"`
	PageSize   int `form:"pageSize" json:"pageSize"`
}

// Enabled reports whether r selects the paginated path.
func (r *Request) Enabled() bool {
	return r != nil && r.PageNumber != 0
}

// Control is the page metadata returned alongside a page of results.
type Control struct {
	TotalRecords int64 `json:"totalRecords"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	PageSize     int   `json:"pageSize"`
	HasNext      bool  `json:"hasNext"`
	HasPrevious  bool  `json:"hasPrevious"`
}

// Result is one page (or the whole set) of T. PaginationControl is nil on the
// non-paginated path.
type Result[T any] struct {
	Data              []T      `json:"data"`
	PaginationControl *Control `json:"paginationControl,omitempty"`
}

// Paginate turns a total count and a requested page into a query window and
// its metadata. Non-positive inputs are coerced: pageNumber to 1, pageSize to
// DefaultPageSize. Asking for a page past the end is not an error; the window
// simply selects nothing.
func Paginate(totalCount int64, pageNumber, pageSize int) (offset, limit int, ctl Control) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if totalCount < 0 {
		totalCount = 0
	}

	totalPages := 0
	if totalCount > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}

	ctl = Control{
		TotalRecords: totalCount,
		TotalPages:   totalPages,
		CurrentPage:  pageNumber,
		PageSize:     pageSize,
		HasNext:      pageNumber < totalPages,
		HasPrevious:  pageNumber > 1,
	}
	return (pageNumber - 1) * pageSize, pageSize, ctl
}
