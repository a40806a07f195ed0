package databases_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driveline/vehicle-inspection-api/databases"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		page      int
		wantLimit int
		wantPage  int
	}{
		{"defaults", 0, 0, 10, 1},
		{"negative values", -5, -2, 10, 1},
		{"within bounds", 25, 3, 25, 3},
		{"limit ceiling", 5000, 1, 100, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			limit, page := databases.Clamp(tc.limit, tc.page)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantPage, page)
		})
	}
}

func TestPaginate(t *testing.T) {
	opts := databases.Paginate(10, 3)
	assert.Equal(t, int64(10), *opts.Limit)
	assert.Equal(t, int64(20), *opts.Skip)

	// Out-of-bounds input falls back to the first default-sized window.
	opts = databases.Paginate(0, 0)
	assert.Equal(t, int64(10), *opts.Limit)
	assert.Equal(t, int64(0), *opts.Skip)
}
