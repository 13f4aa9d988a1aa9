package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page, size int
		wantOffset int
		wantLimit  int
		want       Control
	}{
		{
			name: "first page", total: 25, page: 1, size: 10,
			wantOffset: 0, wantLimit: 10,
			want: Control{TotalRecords: 25, TotalPages: 3, CurrentPage: 1, PageSize: 10, HasNext: true},
		},
		{
			name: "last partial page", total: 25, page: 3, size: 10,
			wantOffset: 20, wantLimit: 10,
			want: Control{TotalRecords: 25, TotalPages: 3, CurrentPage: 3, PageSize: 10, HasPrevious: true},
		},
		{
			name: "exact multiple", total: 20, page: 2, size: 10,
			wantOffset: 10, wantLimit: 10,
			want: Control{TotalRecords: 20, TotalPages: 2, CurrentPage: 2, PageSize: 10, HasPrevious: true},
		},
		{
			name: "empty set", total: 0, page: 1, size: 10,
			wantOffset: 0, wantLimit: 10,
			want: Control{TotalRecords: 0, TotalPages: 0, CurrentPage: 1, PageSize: 10},
		},
		{
			name: "beyond last page", total: 5, page: 4, size: 2,
			wantOffset: 6, wantLimit: 2,
			want: Control{TotalRecords: 5, TotalPages: 3, CurrentPage: 4, PageSize: 2, HasPrevious: true},
		},
		{
			name: "coerces non-positive inputs", total: 12, page: 0, size: -3,
			wantOffset: 0, wantLimit: DefaultPageSize,
			want: Control{TotalRecords: 12, TotalPages: 2, CurrentPage: 1, PageSize: DefaultPageSize, HasNext: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit, ctl := Paginate(tt.total, tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.want, ctl)
		})
	}
}

func TestPaginateCoversEveryRecordOnce(t *testing.T) {
	const total = 23
	for size := 1; size <= 25; size++ {
		seen := make([]int, total)
		_, _, first := Paginate(total, 1, size)
		for page := 1; page <= first.TotalPages; page++ {
			offset, limit, _ := Paginate(total, page, size)
			for i := offset; i < offset+limit && i < total; i++ {
				seen[i]++
			}
		}
		for i, n := range seen {
			assert.Equal(t, 1, n, "size %d: record %d seen %d times", size, i, n)
		}
	}
}

func TestRequestEnabled(t *testing.T) {
	var nilReq *Request
	assert.False(t, nilReq.Enabled())
	assert.False(t, (&Request{PageSize: 10}).Enabled())
	assert.True(t, (&Request{PageNumber: 1}).Enabled())
}
