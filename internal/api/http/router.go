package http

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/authz"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.Middleware
	StaticDir      string
}

// RegisterRoutes wires HTTP routes. Fixed segments (mis-tickets, agentes)
// are registered before their sibling :id routes so they never match as ids.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/api/health", cfg.Health.Live)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/registro", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Put("/actualizar-perfil", cfg.Auth.UpdateProfile)
	authProtected.Put("/cambiar-password", cfg.Auth.ChangePassword)

	tickets := app.Group("/api/tickets", cfg.AuthMiddleware.Handle)
	tickets.Get("/mis-tickets", cfg.Tickets.ListMine)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Put("/:id/asignar", RequirePermission(authz.ActionAssignTicket), cfg.Tickets.Assign)
	tickets.Put("/:id/estado", RequirePermission(authz.ActionChangeTicketState), cfg.Tickets.ChangeState)
	tickets.Post("/:id/comentarios", cfg.Tickets.Comment)
	tickets.Delete("/:id", RequirePermission(authz.ActionDeleteTicket), cfg.Tickets.Delete)

	users := app.Group("/api/users", cfg.AuthMiddleware.Handle)
	users.Get("/agentes", RequirePermission(authz.ActionListAgents), cfg.Users.ListAgents)
	users.Get("/", RequirePermission(authz.ActionManageUsers), cfg.Users.List)
	users.Post("/", RequirePermission(authz.ActionManageUsers), cfg.Users.Create)
	users.Get("/:id", RequirePermission(authz.ActionManageUsers), cfg.Users.Get)
	users.Put("/:id", RequirePermission(authz.ActionManageUsers), cfg.Users.Update)
	users.Delete("/:id", RequirePermission(authz.ActionManageUsers), cfg.Users.Delete)

	app.Use("/api", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Ruta no encontrada",
		})
	})

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
		// Client side routing: unknown paths fall back to the SPA shell.
		app.Get("*", func(c *fiber.Ctx) error {
			return c.SendFile(filepath.Join(cfg.StaticDir, "index.html"))
		})
	}
}
