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
	"github.com/qrplanet/qrplanet/internal/pkg/shortener"
	"github.com/qrplanet/qrplanet/internal/pkg/usercontext"
)

type createQRCodeRequest struct {
	Name      string                 `json:"name"`
	QRType    string                 `json:"qr_type"`
	Content   map[string]interface{} `json:"content"`
	Design    json.RawMessage        `json:"design"`
	IsDynamic bool                   `json:"is_dynamic"`
}

type updateQRCodeRequest struct {
	Name    *string                `json:"name"`
	Content map[string]interface{} `json:"content"`
	Design  json.RawMessage        `json:"design"`
}

// qrCodeResponse wraps a record with fields only the API layer knows:
// the signed public image token and, for dynamic records, the short URL
// the printed symbol encodes.
func qrCodeResponse(code *models.QRCode) fiber.Map {
	resp := fiber.Map{
		"qr_code":   code,
		"image_sig": security.SignImageToken(code.UUID, code.UserID, code.UpdatedAt, imageSignSecret()),
	}
	if code.IsDynamic {
		resp["short_url"] = code.RedirectURL(publicBaseURL())
	}
	return resp
}

// HandleCreateQRCode creates a QR code record for the current user.
// The dynamic flag is granted server-side from the owner's plan, never
// taken from the request alone.
func HandleCreateQRCode(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	plan := entitlements.Normalize(userCtx.Plan)
	repos := repository.GetGlobalRepositories()

	var req createQRCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	if req.Name == "" {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Name is required")
	}
	if !payload.IsValidType(req.QRType) {
		return jsonError(c, fiber.StatusBadRequest, "invalid_type", "Unknown QR code type: "+req.QRType)
	}

	// Encode up front so content errors surface at creation time, not
	// at first render.
	if _, err := payload.Encode(req.QRType, req.Content); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_content", err.Error())
	}

	design, err := renderer.ParseStyleSpec(req.Design)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_design", err.Error())
	}

	if limit := entitlements.QRLimit(plan); limit != entitlements.Unlimited {
		count, err := repos.QRCode.CountByUserID(userCtx.UserID)
		if err != nil {
			log.Errorf("qrcode create: counting codes for user %d: %v", userCtx.UserID, err)
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to create QR code")
		}
		if count >= int64(limit) {
			return jsonError(c, fiber.StatusForbidden, "plan_limit_reached", "QR code limit reached for your plan. Upgrade to create more.")
		}
	}

	if req.IsDynamic && !entitlements.CanCreateDynamic(plan) {
		return jsonError(c, fiber.StatusForbidden, "plan_required", "Dynamic QR codes require a paid plan")
	}

	content, err := json.Marshal(req.Content)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_content", "Content is not valid JSON")
	}

	code := models.QRCode{
		UserID:  userCtx.UserID,
		Name:    req.Name,
		QRType:  req.QRType,
		Content: models.JSON(content),
		Design:  design,
	}
	if req.IsDynamic {
		token, err := shortener.NewRedirectToken()
		if err != nil {
			log.Errorf("qrcode create: allocating redirect token: %v", err)
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to create QR code")
		}
		if err := code.MakeDynamic(token); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to create QR code")
		}
	}

	if err := repos.QRCode.Create(&code); err != nil {
		log.Errorf("qrcode create: inserting record for user %d: %v", userCtx.UserID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to create QR code")
	}

	return c.Status(fiber.StatusCreated).JSON(qrCodeResponse(&code))
}

// HandleListQRCodes returns all QR codes owned by the current user,
// newest first, each with a fresh image signature.
func HandleListQRCodes(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	repos := repository.GetGlobalRepositories()

	codes, err := repos.QRCode.GetByUserID(userCtx.UserID)
	if err != nil {
		log.Errorf("qrcode list: loading codes for user %d: %v", userCtx.UserID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to load QR codes")
	}

	items := make([]fiber.Map, 0, len(codes))
	for i := range codes {
		items = append(items, qrCodeResponse(&codes[i]))
	}
	return c.JSON(fiber.Map{
		"qr_codes": items,
		"total":    len(items),
	})
}

// HandleGetQRCode returns a single QR code owned by the current user.
func HandleGetQRCode(c *fiber.Ctx) error {
	code, ok := ownedQRCode(c)
	if !ok {
		return nil
	}
	return c.JSON(qrCodeResponse(code))
}

// HandleUpdateQRCode updates name, content or design. The redirect
// token is never touched here: a printed dynamic symbol keeps working
// across edits, only the destination behind it changes.
func HandleUpdateQRCode(c *fiber.Ctx) error {
	code, ok := ownedQRCode(c)
	if !ok {
		return nil
	}
	repos := repository.GetGlobalRepositories()

	var req updateQRCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}

	if req.Name != nil {
		if *req.Name == "" {
			return jsonError(c, fiber.StatusBadRequest, "invalid_request", "Name cannot be empty")
		}
		code.Name = *req.Name
	}
	if req.Content != nil {
		if _, err := payload.Encode(code.QRType, req.Content); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid_content", err.Error())
		}
		content, err := json.Marshal(req.Content)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid_content", "Content is not valid JSON")
		}
		code.Content = models.JSON(content)
	}
	if req.Design != nil {
		design, err := renderer.ParseStyleSpec(req.Design)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid_design", err.Error())
		}
		code.Design = design
	}

	if err := repos.QRCode.Update(code); err != nil {
		log.Errorf("qrcode update: saving %s: %v", code.UUID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to update QR code")
	}

	return c.JSON(qrCodeResponse(code))
}

// HandleDeleteQRCode soft-deletes a QR code owned by the current user.
func HandleDeleteQRCode(c *fiber.Ctx) error {
	code, ok := ownedQRCode(c)
	if !ok {
		return nil
	}
	repos := repository.GetGlobalRepositories()

	if err := repos.QRCode.Delete(code.ID); err != nil {
		log.Errorf("qrcode delete: removing %s: %v", code.UUID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to delete QR code")
	}
	return c.JSON(fiber.Map{"message": "QR code deleted"})
}

// HandleMakeDynamic converts a static QR code to dynamic. The
// conversion is one-way and idempotent: a record that is already
// dynamic keeps its token. Types without a redirect URI (text, wifi,
// vcard) convert too; their scans resolve to the landing page.
func HandleMakeDynamic(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	plan := entitlements.Normalize(userCtx.Plan)

	code, ok := ownedQRCode(c)
	if !ok {
		return nil
	}
	if code.IsDynamic {
		return c.JSON(qrCodeResponse(code))
	}
	if !entitlements.CanCreateDynamic(plan) {
		return jsonError(c, fiber.StatusForbidden, "plan_required", "Dynamic QR codes require a paid plan")
	}

	repos := repository.GetGlobalRepositories()
	token, err := shortener.NewRedirectToken()
	if err != nil {
		log.Errorf("qrcode make-dynamic: allocating redirect token: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to convert QR code")
	}
	if err := repos.QRCode.ConvertStaticToDynamic(code, token); err != nil {
		log.Errorf("qrcode make-dynamic: converting %s: %v", code.UUID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to convert QR code")
	}

	return c.JSON(qrCodeResponse(code))
}

// ownedQRCode loads the :uuid route parameter scoped to the current
// user, writing the error response itself when the lookup fails.
// Records owned by someone else come back as the same 404 as records
// that do not exist.
func ownedQRCode(c *fiber.Ctx) (*models.QRCode, bool) {
	userCtx := usercontext.GetUserContext(c)
	repos := repository.GetGlobalRepositories()

	code, err := repos.QRCode.GetByUUIDAndUser(c.Params("uuid"), userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = jsonError(c, fiber.StatusNotFound, "not_found", "QR code not found")
		} else {
			log.Errorf("qrcode lookup: loading %s: %v", c.Params("uuid"), err)
			_ = jsonError(c, fiber.StatusInternalServerError, "internal_error", "Failed to load QR code")
		}
		return nil, false
	}
	return code, true
}
