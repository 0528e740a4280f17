package billing

import (
	"github.com/qrplanet/qrplanet/internal/pkg/entitlements"
)

func normalizePlan(plan string) string {
	return string(entitlements.Normalize(plan))
}

func planRank(plan string) int {
	switch entitlements.Normalize(plan) {
	case entitlements.PlanEnterprise:
		return 3
	case entitlements.PlanPro:
		return 2
	case entitlements.PlanStarter:
		return 1
	default:
		return 0
	}
}

// isUpgrade reports whether moving from oldPlan to newPlan increases
// entitlements.
func isUpgrade(oldPlan, newPlan string) bool {
	return planRank(newPlan) > planRank(oldPlan)
}
