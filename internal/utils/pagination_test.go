package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPaginationInfo(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		limit     int
		offset    int
		page      int
		pageCount int
	}{
		{name: "third page", total: 25, limit: 10, offset: 20, page: 3, pageCount: 3},
		{name: "empty result set", total: 0, limit: 10, offset: 0, page: 1, pageCount: 0},
		{name: "first page", total: 25, limit: 10, offset: 0, page: 1, pageCount: 3},
		{name: "exact multiple", total: 20, limit: 10, offset: 10, page: 2, pageCount: 2},
		{name: "single item", total: 1, limit: 10, offset: 0, page: 1, pageCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GetPaginationInfo(tt.total, tt.limit, tt.offset)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.pageCount, p.PageCount)
		})
	}
}

func TestGetPaginationInfoZeroLimit(t *testing.T) {
	// zero limit must not divide by zero
	p := GetPaginationInfo(5, 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 5, p.PageCount)
}
