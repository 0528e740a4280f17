package controllers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/qrplanet/qrplanet/app/models"
	"github.com/qrplanet/qrplanet/app/repository"
	"github.com/qrplanet/qrplanet/internal/pkg/entitlements"
	"github.com/qrplanet/qrplanet/internal/pkg/payload"
	"github.com/qrplanet/qrplanet/internal/pkg/renderer"
	"github.com/qrplanet/qrplanet/internal/pkg/security"
	"github.com/qrplanet/qrplanet/internal/pkg/symbol"
	"github.com/qrplanet/qrplanet/internal/pkg/usercontext"
)

// symbolPayload builds the string a record's symbol encodes. Dynamic
// records encode only the indirection URL; the stored content stays
// editable behind it.
func symbolPayload(code *models.QRCode) (string, error) {
	if code.IsDynamic {
		return code.RedirectURL(publicBaseURL()), nil
	}
	var content map[string]interface{}
	if len(code.Content) > 0 {
		if err := json.Unmarshal(code.Content, &content); err != nil {
			return "", err
		}
	}
	return payload.Encode(code.QRType, content)
}

// renderQRCode runs the full generate-and-composite pipeline for a
// record with the given style.
func renderQRCode(code *models.QRCode, style renderer.StyleSpec, watermark bool) ([]byte, error) {
	data, err := symbolPayload(code)
	if err != nil {
		return nil, err
	}
	matrix, err := symbol.Generate(data, style.ErrorCorrection)
	if err != nil {
		return nil, err
	}
	return renderer.Render(matrix, style, renderer.Options{Watermark: watermark})
}

// HandleQRCodeImage renders the stored symbol for the owner. Free plan
// renders carry the watermark.
func HandleQRCodeImage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	plan := entitlements.Normalize(userCtx.Plan)

	code, ok := ownedQRCode(c)
	if !ok {
		return nil
	}

	png, err := renderQRCode(code, code.Design, entitlements.Watermarked(plan))
	if err != nil {
		if errors.Is(err, symbol.ErrPayloadTooLarge) {
			return jsonError(c, fiber.StatusUnprocessableEntity, "payload_too_large", "Content does not fit in a QR code at this error correction level")
		}
		log.Errorf("image: rendering %s: %v", code.UUID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to render QR code")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// styleOverrides merges one-shot query parameters onto a stored style:
// colors, pattern, gradient, frame and logo preset. Nested specs are
// copied before mutation so the stored design is never touched.
func styleOverrides(style renderer.StyleSpec, query func(string, ...string) string) renderer.StyleSpec {
	if fg := query("foreground_color"); fg != "" {
		style.ForegroundColor = fg
	}
	if bg := query("background_color"); bg != "" {
		style.BackgroundColor = bg
	}
	if pattern := query("pattern"); pattern != "" {
		style.Pattern = pattern
	}

	start := query("gradient_start_color")
	end := query("gradient_end_color")
	direction := query("gradient_direction")
	if start != "" || end != "" || direction != "" {
		gradient := renderer.GradientSpec{}
		if style.Gradient != nil {
			gradient = *style.Gradient
		}
		gradient.Enabled = true
		if start != "" {
			gradient.StartColor = start
		}
		if end != "" {
			gradient.EndColor = end
		}
		if direction != "" {
			gradient.Direction = direction
		}
		style.Gradient = &gradient
	}

	shape := query("frame_shape")
	frameColor := query("frame_color")
	caption := query("frame_caption")
	if shape != "" || frameColor != "" || caption != "" {
		frame := renderer.FrameSpec{}
		if style.Frame != nil {
			frame = *style.Frame
		}
		frame.Enabled = true
		if shape != "" {
			frame.Shape = shape
		}
		if frameColor != "" {
			frame.Color = frameColor
		}
		if caption != "" {
			frame.Caption = caption
		}
		style.Frame = &frame
	}

	if preset := query("logo_preset"); preset != "" {
		style.Logo = &renderer.LogoSpec{Preset: preset}
	}

	return style
}

// HandlePublicQRCodeImage renders a symbol without a session, gated by
// the HMAC signature minted for the owner. Missing records and bad
// signatures produce the identical response so the endpoint leaks
// nothing about which UUIDs exist.
func HandlePublicQRCodeImage(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	code, err := repos.QRCode.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Invalid signature")
		}
		log.Errorf("public image: loading %s: %v", c.Params("uuid"), err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to render QR code")
	}

	sig := c.Query("sig")
	if !security.VerifyImageToken(sig, code.UUID, code.UserID, code.UpdatedAt, imageSignSecret()) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Invalid signature")
	}

	// Query-level style overrides apply to this render only and are
	// never written back to the record.
	style := styleOverrides(code.Design, c.Query)

	watermark := true
	if owner, err := repos.User.GetByID(code.UserID); err == nil {
		watermark = entitlements.Watermarked(entitlements.Normalize(owner.Plan))
	}

	png, err := renderQRCode(code, style, watermark)
	if err != nil {
		if errors.Is(err, symbol.ErrPayloadTooLarge) {
			return jsonError(c, fiber.StatusUnprocessableEntity, "payload_too_large", "Content does not fit in a QR code at this error correction level")
		}
		log.Errorf("public image: rendering %s: %v", code.UUID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to render QR code")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
