package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qrplanet/qrplanet/app/controllers"
	"github.com/qrplanet/qrplanet/internal/pkg/middleware"
	"github.com/qrplanet/qrplanet/internal/pkg/session"
)

type PublicRouter struct {
}

// InstallRouter wires the routes a scanner hits without a session: the
// indirection hop, scan tracking and signed image renders.
func (h PublicRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	app.Get("/health", controllers.HandleHealth)

	// The scan path. Everything behind these routes must work for an
	// anonymous phone camera.
	app.Get("/r/:token", controllers.HandleRedirect)
	app.Post("/track-scan/:uuid", controllers.HandleTrackScan)
	app.Get("/public/qr/:uuid/image", controllers.HandlePublicQRCodeImage)
}

func NewPublicRouter() *PublicRouter {
	return &PublicRouter{}
}
