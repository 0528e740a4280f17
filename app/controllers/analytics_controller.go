package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/qrplanet/qrplanet/app/repository"
	"github.com/qrplanet/qrplanet/internal/pkg/entitlements"
	"github.com/qrplanet/qrplanet/internal/pkg/usercontext"
)

const (
	analyticsWindowDays  = 30
	analyticsRecentScans = 50
)

// HandleQRCodeAnalytics returns the scan analytics for a dynamic QR
// code owned by the current user. Analytics are a paid feature; static
// codes only carry the raw scan counter on the record itself.
func HandleQRCodeAnalytics(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	plan := entitlements.Normalize(userCtx.Plan)

	if !entitlements.HasAnalytics(plan) {
		return jsonError(c, fiber.StatusForbidden, "plan_required", "Analytics require a paid plan")
	}

	code, ok := ownedQRCode(c)
	if !ok {
		return nil
	}
	if !code.IsDynamic {
		return jsonError(c, fiber.StatusBadRequest, "not_dynamic", "Analytics are only available for dynamic QR codes")
	}

	repos := repository.GetGlobalRepositories()

	total, err := repos.ScanEvent.CountByQRCodeID(code.ID)
	if err != nil {
		log.Errorf("analytics: counting scans for %s: %v", code.UUID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to load analytics")
	}
	unique, err := repos.ScanEvent.CountUniqueIPsByQRCodeID(code.ID)
	if err != nil {
		log.Errorf("analytics: counting unique visitors for %s: %v", code.UUID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to load analytics")
	}
	devices, err := repos.ScanEvent.DeviceBreakdownByQRCodeID(code.ID)
	if err != nil {
		log.Errorf("analytics: device breakdown for %s: %v", code.UUID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to load analytics")
	}
	since := time.Now().AddDate(0, 0, -analyticsWindowDays)
	byDate, err := repos.ScanEvent.ScansByDate(code.ID, since)
	if err != nil {
		log.Errorf("analytics: scans by date for %s: %v", code.UUID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to load analytics")
	}
	recent, err := repos.ScanEvent.GetRecentByQRCodeID(code.ID, analyticsRecentScans)
	if err != nil {
		log.Errorf("analytics: recent scans for %s: %v", code.UUID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to load analytics")
	}

	return c.JSON(fiber.Map{
		"qr_id":            code.UUID,
		"total_scans":      total,
		"unique_visitors":  unique,
		"device_breakdown": devices,
		"scans_by_date":    byDate,
		"recent_scans":     recent,
	})
}
