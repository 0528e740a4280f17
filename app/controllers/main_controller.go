package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qrplanet/qrplanet/internal/pkg/statistics"
)

// HandleAPIRoot serves the service banner with cached aggregate counters.
func HandleAPIRoot(c *fiber.Ctx) error {
	stats := statistics.GetStatisticsData()
	return c.JSON(fiber.Map{
		"service":     "QRPlanet API",
		"status":      "ok",
		"total_codes": stats.TotalCodes,
		"today_scans": stats.TodayScans,
		"total_users": stats.TotalUsers,
	})
}

// HandleHealth is the unauthenticated liveness probe.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
