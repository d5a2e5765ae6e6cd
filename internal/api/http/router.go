package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nextgenrdp/platform/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Plans  *handlers.PlansHandler
	Orders *handlers.OrdersHandler
	Admin  *handlers.AdminHandler
}

// RegisterRoutes wires HTTP routes. Access control is not expressed
// here: the gate middleware classifies every path before routing, and
// admin handlers re-verify on their own.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	api.Get("/plans", cfg.Plans.List)
	api.Post("/plans/promo-check", cfg.Plans.CheckPromo)
	api.Get("/plans/:slug", cfg.Plans.Get)

	account := api.Group("/account")
	account.Get("/profile", cfg.Auth.Profile)

	orders := api.Group("/orders")
	orders.Post("/", cfg.Orders.Place)
	orders.Get("/", cfg.Orders.List)
	orders.Get("/:id", cfg.Orders.Get)

	admin := api.Group("/admin")
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Get("/plans", cfg.Admin.ListPlans)
	admin.Post("/plans", cfg.Admin.CreatePlan)
	admin.Put("/plans/:id", cfg.Admin.UpdatePlan)
	admin.Get("/orders", cfg.Admin.ListOrders)
	admin.Patch("/orders/:id/status", cfg.Admin.UpdateOrderStatus)
	admin.Get("/customers", cfg.Admin.ListCustomers)
}
