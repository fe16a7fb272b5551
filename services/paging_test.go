package services

import "testing"

func TestClampPaging(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults on zero values", 0, 0, 1, 10},
		{"negative page floors at 1", -5, 20, 1, 20},
		{"in-range values pass through", 3, 50, 3, 50},
		{"limit caps at 100", 1, 5000, 1, 100},
		{"boundary limit stays", 1, 100, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := clampPaging(tt.page, tt.limit)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("clampPaging(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.limit, page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}
