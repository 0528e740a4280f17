package router

import (
	"github.com/gofiber/fiber/v2"
)

// Router is a self-contained route group installer.
type Router interface {
	InstallRouter(app *fiber.App)
}

func InstallRouter(app *fiber.App) {
	// Install PublicRouter first to initialize the session store and
	// the global UserContext middleware. Then register API routes which
	// depend on that middleware.
	setup(app, NewPublicRouter(), NewApiRouter())
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
