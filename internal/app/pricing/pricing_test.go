package pricing

import "testing"

func TestEstimateAmount(t *testing.T) {
	tests := []struct {
		name        string
		budget      string
		websiteType string
		want        int64
	}{
		{"budget range wins", "5000-10000", "ecommerce", 7500},
		{"budget under", "under-5000", "saas", 5000},
		{"budget top", "50000-plus", "blog", 75000},
		{"unknown budget falls back to type", "", "ecommerce", 50000},
		{"garbage budget falls back to type", "a-lot", "portfolio", 10000},
		{"type saas", "", "saas", 60000},
		{"type social", "", "social", 75000},
		{"both unknown", "", "other", DefaultAmount},
		{"landing has no table entry", "", "landing", DefaultAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateAmount(tt.budget, tt.websiteType)
			if got != tt.want {
				t.Errorf("EstimateAmount(%q, %q) = %d, want %d",
					tt.budget, tt.websiteType, got, tt.want)
			}
		})
	}
}
