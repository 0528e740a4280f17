package entitlements_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qrplanet/qrplanet/internal/pkg/entitlements"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, entitlements.PlanFree, entitlements.Normalize("free"))
	assert.Equal(t, entitlements.PlanStarter, entitlements.Normalize("Starter"))
	assert.Equal(t, entitlements.PlanPro, entitlements.Normalize(" pro "))
	assert.Equal(t, entitlements.PlanEnterprise, entitlements.Normalize("ENTERPRISE"))
	assert.Equal(t, entitlements.PlanFree, entitlements.Normalize("premium"))
	assert.Equal(t, entitlements.PlanFree, entitlements.Normalize(""))
}

func TestQRLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, entitlements.QRLimit(entitlements.PlanFree))
	assert.Equal(t, 50, entitlements.QRLimit(entitlements.PlanStarter))
	assert.Equal(t, 500, entitlements.QRLimit(entitlements.PlanPro))
	assert.Equal(t, entitlements.Unlimited, entitlements.QRLimit(entitlements.PlanEnterprise))
}

func TestPaidFeatureGates(t *testing.T) {
	t.Parallel()

	assert.False(t, entitlements.CanCreateDynamic(entitlements.PlanFree))
	assert.False(t, entitlements.HasAnalytics(entitlements.PlanFree))
	assert.True(t, entitlements.Watermarked(entitlements.PlanFree))

	for _, plan := range []entitlements.Plan{entitlements.PlanStarter, entitlements.PlanPro, entitlements.PlanEnterprise} {
		assert.True(t, entitlements.CanCreateDynamic(plan), plan)
		assert.True(t, entitlements.HasAnalytics(plan), plan)
		assert.False(t, entitlements.Watermarked(plan), plan)
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	catalog := entitlements.Catalog()
	assert.Len(t, catalog, 4)
	assert.Equal(t, "free", catalog[0].PlanName)
	assert.Equal(t, 0.0, catalog[0].Price)
	assert.Equal(t, entitlements.Unlimited, catalog[3].QRLimit)
}
