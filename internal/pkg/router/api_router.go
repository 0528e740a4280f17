package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/qrplanet/qrplanet/app/controllers"
	"github.com/qrplanet/qrplanet/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", controllers.HandleAPIRoot)
	api.Get("/plans", controllers.HandleListPlans)
	api.Post("/billing/webhook", controllers.HandleBillingWebhook)

	// API v1 routes
	v1 := api.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/signup", controllers.HandleSignup)
	auth.Post("/login", controllers.HandleLogin)
	auth.Post("/logout", controllers.HandleLogout)
	auth.Get("/me", middleware.RequireAPISessionAuth, controllers.HandleMe)

	codes := v1.Group("/qr-codes", middleware.RequireAPISessionAuth)
	codes.Post("/", controllers.HandleCreateQRCode)
	codes.Get("/", controllers.HandleListQRCodes)
	codes.Get("/:uuid", controllers.HandleGetQRCode)
	codes.Put("/:uuid", controllers.HandleUpdateQRCode)
	codes.Delete("/:uuid", controllers.HandleDeleteQRCode)
	codes.Post("/:uuid/dynamic", controllers.HandleMakeDynamic)
	codes.Get("/:uuid/image", controllers.HandleQRCodeImage)
	codes.Get("/:uuid/analytics", controllers.HandleQRCodeAnalytics)

	v1.Get("/scans/live", middleware.RequireAPISessionAuth, controllers.HandleLiveScans)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
