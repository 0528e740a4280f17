package billing

import "testing"

func TestNormalizePlan(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "free", want: "free"},
		{in: "starter", want: "starter"},
		{in: "pro", want: "pro"},
		{in: "enterprise", want: "enterprise"},
		{in: "ENTERPRISE", want: "enterprise"},
		{in: "  pro  ", want: "pro"},
		{in: "invalid", want: "free"},
		{in: "", want: "free"},
	}

	for _, tt := range tests {
		if got := normalizePlan(tt.in); got != tt.want {
			t.Fatalf("normalizePlan(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlanRank(t *testing.T) {
	if planRank("free") >= planRank("starter") {
		t.Fatalf("expected starter to outrank free")
	}
	if planRank("starter") >= planRank("pro") {
		t.Fatalf("expected pro to outrank starter")
	}
	if planRank("pro") >= planRank("enterprise") {
		t.Fatalf("expected enterprise to outrank pro")
	}
}

func TestIsUpgrade(t *testing.T) {
	tests := []struct {
		oldPlan string
		newPlan string
		want    bool
	}{
		{"free", "starter", true},
		{"free", "enterprise", true},
		{"pro", "starter", false},
		{"pro", "pro", false},
		{"enterprise", "free", false},
	}

	for _, tt := range tests {
		if got := isUpgrade(tt.oldPlan, tt.newPlan); got != tt.want {
			t.Fatalf("isUpgrade(%q, %q) = %v, want %v", tt.oldPlan, tt.newPlan, got, tt.want)
		}
	}
}
