package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/license-service/internal/api/http/handlers"
	"github.com/spec-kit/license-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Licenses       *handlers.LicensesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Users.Login)

	userGroup := app.Group("/user")
	userGroup.Post("/createUser", cfg.Users.CreateUser)
	userGroup.Get("/currentUser", cfg.AuthMiddleware.Handle, cfg.Users.CurrentUser)

	licenseGroup := app.Group("/drivingLicense", cfg.AuthMiddleware.Handle)
	licenseGroup.Post("/create", cfg.Licenses.Create)
	licenseGroup.Get("/getLicenseDetails", cfg.Licenses.GetDetails)
	licenseGroup.Post("/updateStatus", cfg.Licenses.UpdateStatus)
	licenseGroup.Post("/updateLicenseInfo", cfg.Licenses.UpdateInfo)
	licenseGroup.Post("/changeAddress", cfg.Licenses.ChangeAddress)
	licenseGroup.Post("/renewLicense", cfg.Licenses.Renew)
}
