package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/qrplanet/qrplanet/app/repository"
	"github.com/qrplanet/qrplanet/internal/pkg/billing"
	"github.com/qrplanet/qrplanet/internal/pkg/entitlements"
	"github.com/qrplanet/qrplanet/internal/pkg/env"
)

// HandleListPlans serves the public plan catalog.
func HandleListPlans(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"plans": entitlements.Catalog()})
}

// HandleBillingWebhook receives plan change notifications from the
// payment provider. The raw body is authenticated with an HMAC header
// before any of it is parsed.
func HandleBillingWebhook(c *fiber.Ctx) error {
	secret := env.GetEnv("BILLING_WEBHOOK_SECRET", "")
	if secret == "" {
		log.Error("billing webhook: BILLING_WEBHOOK_SECRET is not configured")
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Webhook not configured")
	}

	body := c.Body()
	signature := c.Get("X-Webhook-Signature")
	if !billing.VerifyWebhookSignature(body, signature, secret) {
		return jsonError(c, fiber.StatusUnauthorized, "invalid_signature", "Webhook signature verification failed")
	}

	var event billing.PlanChangeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid webhook payload")
	}

	svc := billing.NewServiceFromFactory(repository.GetGlobalFactory())
	converted, err := svc.ApplyPlanChange(event)
	if err != nil {
		log.Errorf("billing webhook: applying %s for user %d: %v", event.EventType, event.UserID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to apply plan change")
	}

	return c.JSON(fiber.Map{
		"message":         "Webhook processed",
		"converted_codes": converted,
	})
}
