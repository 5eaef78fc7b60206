package utils

// Pagination describes where a limit/offset window falls in a result set.
type Pagination struct {
	Page      int `json:"page"`
	PageCount int `json:"pageCount"`
}

// GetPaginationInfo computes the 1-based page for an offset and the total
// page count. A zero or negative limit is treated as 1 to avoid division by
// zero.
func GetPaginationInfo(total int64, limit int, offset int) Pagination {
	if limit <= 0 {
		limit = 1
	}

	page := (offset / limit) + 1
	pageCount := int((total + int64(limit) - 1) / int64(limit))

	return Pagination{
		Page:      page,
		PageCount: pageCount,
	}
}
