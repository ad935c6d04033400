package pricing_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"storebot/internal/pricing"
)

func TestPaginate(t *testing.T) {
	items := lo.Range(23)

	tests := []struct {
		name        string
		items       []int
		page        int
		wantCurrent int
		wantTotal   int
		wantItems   []int
	}{
		{name: "first page: ok", items: items, page: 0, wantCurrent: 0, wantTotal: 5, wantItems: []int{0, 1, 2, 3, 4}},
		{name: "last partial page: ok", items: items, page: 4, wantCurrent: 4, wantTotal: 5, wantItems: []int{20, 21, 22}},
		{name: "page past the end clamps: ok", items: items, page: 10, wantCurrent: 4, wantTotal: 5, wantItems: []int{20, 21, 22}},
		{name: "negative page clamps: ok", items: items, page: -3, wantCurrent: 0, wantTotal: 5, wantItems: []int{0, 1, 2, 3, 4}},
		{name: "empty list has one page: ok", items: nil, page: 2, wantCurrent: 0, wantTotal: 1, wantItems: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pricing.Paginate(tt.items, tt.page, 5)
			assert.Equal(t, tt.wantCurrent, p.Current)
			assert.Equal(t, tt.wantTotal, p.Total)
			assert.ElementsMatch(t, tt.wantItems, p.Items)
		})
	}
}

func TestPageNavigation(t *testing.T) {
	p := pricing.Paginate(lo.Range(12), 1, 5)
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())

	last := pricing.Paginate(lo.Range(12), 2, 5)
	assert.False(t, last.HasNext())
}
