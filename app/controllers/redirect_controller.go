package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/qrplanet/qrplanet/app/models"
	"github.com/qrplanet/qrplanet/app/repository"
	"github.com/qrplanet/qrplanet/internal/pkg/livescan"
	"github.com/qrplanet/qrplanet/internal/pkg/payload"
	"github.com/qrplanet/qrplanet/internal/pkg/useragent"
)

// recordScan runs the analytics side of a resolved scan: atomic counter
// bump, append-only event row, live fan-out. Analytics failures are
// logged but never surface to the person scanning.
func recordScan(c *fiber.Ctx, code *models.QRCode) {
	repos := repository.GetGlobalRepositories()

	if err := repos.QRCode.IncrementScanCount(code.ID); err != nil {
		log.Errorf("scan: incrementing count for %s: %v", code.UUID, err)
	}

	ua := useragent.Classify(c.Get(fiber.HeaderUserAgent))
	event := models.ScanEvent{
		QRCodeID: code.ID,
		QRUUID:   code.UUID,
		UserID:   code.UserID,
		Device:   ua.Device,
		Browser:  ua.Browser,
		OS:       ua.OS,
		IP:       GetClientIP(c),
	}
	if err := repos.ScanEvent.Create(&event); err != nil {
		log.Errorf("scan: recording event for %s: %v", code.UUID, err)
		return
	}

	livescan.Default().Broadcast(livescan.Event{
		ScanUUID:   event.UUID,
		QRCodeUUID: code.UUID,
		OwnerID:    code.UserID,
		Device:     ua.Device,
		Browser:    ua.Browser,
		OS:         ua.OS,
		Timestamp:  time.Now(),
	})
}

// HandleRedirect resolves a dynamic QR code scan. Redirectable types
// send the scanner straight to the destination; display types get a
// landing page because there is nothing to navigate to.
func HandleRedirect(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	code, err := repos.QRCode.GetByRedirectToken(c.Params("token"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "QR code not found")
		}
		log.Errorf("redirect: loading token %s: %v", c.Params("token"), err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to resolve QR code")
	}

	recordScan(c, code)

	var content map[string]interface{}
	if len(code.Content) > 0 {
		if err := json.Unmarshal(code.Content, &content); err != nil {
			log.Errorf("redirect: decoding content for %s: %v", code.UUID, err)
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to resolve QR code")
		}
	}

	if payload.IsRedirectable(code.QRType) {
		dest, err := payload.Encode(code.QRType, content)
		if err != nil {
			log.Errorf("redirect: encoding destination for %s: %v", code.UUID, err)
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to resolve QR code")
		}
		return c.Redirect(dest, fiber.StatusFound)
	}

	return c.Render("scan_landing", fiber.Map{
		"Name":    code.Name,
		"QRType":  code.QRType,
		"Content": content,
	})
}

// HandleTrackScan records a scan for any QR code by public UUID without
// navigating anywhere. Static codes have no indirection hop, so clients
// that resolve them locally report the scan here.
func HandleTrackScan(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	code, err := repos.QRCode.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "QR code not found")
		}
		log.Errorf("track-scan: loading %s: %v", c.Params("uuid"), err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to track scan")
	}

	recordScan(c, code)

	return c.JSON(fiber.Map{"message": "Scan tracked"})
}
