package entitlements

import "strings"

type Plan string

const (
	PlanFree       Plan = "free"
	PlanStarter    Plan = "starter"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// Unlimited marks plans without a QR code cap.
const Unlimited = -1

// PlanInfo is the public catalog entry served by GET /api/plans.
type PlanInfo struct {
	PlanName string   `json:"plan_name"`
	Price    float64  `json:"price"`
	QRLimit  int      `json:"qr_limit"`
	Features []string `json:"features"`
}

// Catalog returns the plan list in display order.
func Catalog() []PlanInfo {
	return []PlanInfo{
		{PlanName: string(PlanFree), Price: 0.0, QRLimit: 5, Features: []string{"5 Static QR codes", "PNG export only", "Watermark"}},
		{PlanName: string(PlanStarter), Price: 9.99, QRLimit: 50, Features: []string{"50 QR codes", "Dynamic QR", "Basic analytics", "All export formats"}},
		{PlanName: string(PlanPro), Price: 29.99, QRLimit: 500, Features: []string{"500 QR codes", "Dynamic QR", "Advanced analytics", "Logo upload", "Priority support"}},
		{PlanName: string(PlanEnterprise), Price: 99.99, QRLimit: Unlimited, Features: []string{"Unlimited QR codes", "All features", "API access", "White-label", "Dedicated support"}},
	}
}

// Normalize maps arbitrary plan strings to a known plan, defaulting to free.
func Normalize(plan string) Plan {
	switch Plan(strings.ToLower(strings.TrimSpace(plan))) {
	case PlanStarter:
		return PlanStarter
	case PlanPro:
		return PlanPro
	case PlanEnterprise:
		return PlanEnterprise
	default:
		return PlanFree
	}
}

// QRLimit returns the maximum number of QR codes a plan may own, or
// Unlimited.
func QRLimit(plan Plan) int {
	switch plan {
	case PlanStarter:
		return 50
	case PlanPro:
		return 500
	case PlanEnterprise:
		return Unlimited
	default:
		return 5
	}
}

// CanCreateDynamic reports whether the plan is entitled to dynamic QR
// codes. The server is the sole authority here; a client-supplied
// dynamic flag is never trusted.
func CanCreateDynamic(plan Plan) bool {
	return plan != PlanFree
}

// HasAnalytics reports whether scan analytics are available on the plan.
func HasAnalytics(plan Plan) bool {
	return plan != PlanFree
}

// Watermarked reports whether rendered images carry the watermark.
func Watermarked(plan Plan) bool {
	return plan == PlanFree
}
