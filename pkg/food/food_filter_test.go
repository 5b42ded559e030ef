package food

import (
	"testing"

	"foodloss-backend/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCondition(t *testing.T) {
	min := decimal.RequireFromString("5")
	max := decimal.RequireFromString("10.5")

	tests := []struct {
		name     string
		filter   domain.FoodFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "empty filter keeps active only",
			filter:   domain.FoodFilter{},
			wantSQL:  "(is_active = ?)",
			wantArgs: []any{true},
		},
		{
			name:     "store and status",
			filter:   domain.FoodFilter{StoreID: "s1", Status: "AVAILABLE"},
			wantSQL:  "(is_active = ? AND store_id = ? AND status = ?)",
			wantArgs: []any{true, "s1", "AVAILABLE"},
		},
		{
			name:     "price bounds are inclusive",
			filter:   domain.FoodFilter{MinPrice: &min, MaxPrice: &max},
			wantSQL:  "(is_active = ? AND current_price >= ? AND current_price <= ?)",
			wantArgs: []any{true, "5", "10.5"},
		},
		{
			name:     "tag uses the tag table",
			filter:   domain.FoodFilter{Tag: "vegan"},
			wantSQL:  "(is_active = ? AND " + tagSubquery + ")",
			wantArgs: []any{true, "vegan"},
		},
		{
			name:     "keyword matches name or description",
			filter:   domain.FoodFilter{Keyword: "  Bread "},
			wantSQL:  "(is_active = ? AND (" + nameLike + " OR " + descLike + "))",
			wantArgs: []any{true, "%bread%", "%bread%"},
		},
		{
			name:     "keyword wildcards are escaped",
			filter:   domain.FoodFilter{Keyword: "50%_off"},
			wantSQL:  "(is_active = ? AND (" + nameLike + " OR " + descLike + "))",
			wantArgs: []any{true, `%50\%\_off%`, `%50\%\_off%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := BuildCondition(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
