package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  Page
		total int
		want  Pagination
	}{
		{"first of three", Page{1, 10}, 25, Pagination{1, 3, 25, 10, true, false}},
		{"last page", Page{3, 10}, 25, Pagination{3, 3, 25, 10, false, true}},
		{"empty", Page{1, 10}, 0, Pagination{1, 0, 0, 10, false, false}},
		{"exact fit", Page{2, 5}, 10, Pagination{2, 2, 10, 5, false, true}},
		{"beyond last", Page{5, 10}, 25, Pagination{5, 3, 25, 10, false, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, tt.total))
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{1, 20}.Offset())
	assert.Equal(t, 40, Page{3, 20}.Offset())
}
