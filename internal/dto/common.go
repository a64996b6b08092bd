package dto

// PaginationRequest carries the standard ?page=&page_size= query parameters.
type PaginationRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// GetPage returns the requested page, defaulting to 1.
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize returns the requested page size, defaulting to 20, capped at 100.
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	if p.PageSize > 100 {
		return 100
	}
	return p.PageSize
}

// Offset returns the row offset for the requested page.
func (p *PaginationRequest) Offset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
