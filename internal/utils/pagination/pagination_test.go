package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClamps(t *testing.T) {
	tests := []struct {
		name         string
		in           Params
		wantPage     int
		wantPageSize int
	}{
		{"zero values get defaults", Params{}, 1, DefaultPageSize},
		{"negative page clamps to one", Params{Page: -3, PageSize: 10}, 1, 10},
		{"oversized pageSize clamps to max", Params{Page: 2, PageSize: 5000}, 2, MaxPageSize},
		{"in-range values pass through", Params{Page: 4, PageSize: 50}, 4, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, PageSize: 25}.Normalize()
	assert.Equal(t, 50, p.Offset())
}

func TestNewMeta(t *testing.T) {
	p := Params{Page: 1, PageSize: 20}.Normalize()

	m := NewMeta(p, 41)
	assert.Equal(t, 3, m.TotalPages)
	assert.Equal(t, int64(41), m.TotalItems)

	empty := NewMeta(p, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
