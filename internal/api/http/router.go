package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/quality-service/internal/api/http/handlers"
	"github.com/spec-kit/quality-service/internal/auth"
	"github.com/spec-kit/quality-service/internal/domain"
	"github.com/spec-kit/quality-service/internal/events"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	QualitySheets  *handlers.QualitySheetsHandler
	TrackingSheets *handlers.TrackingSheetsHandler
	Projects       *handlers.ProjectsHandler
	Nomenclatures  *handlers.NomenclaturesHandler
	Users          *handlers.UsersHandler
	Notifications  *handlers.NotificationsHandler
	Dashboard      *handlers.DashboardHandler
	Import         *handlers.ImportHandler
	AuthMiddleware *auth.Middleware
	Dispatcher     events.Dispatcher
}

// RegisterRoutes wires HTTP routes. Role requirements mirror the navigation
// rules of the admin UI: quality sheets belong to pilots, projects to chefs
// de projet, reference data and accounts to admins, dashboards to everyone
// authenticated.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	landing := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": fiber.Map{"service": "quality-service"}})
	}
	app.Get("/", landing)
	app.Get("/home", landing)
	app.Get("/unauthorized", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": fiber.Map{
			"code":    "FORBIDDEN",
			"message": "access denied",
		}})
	})

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.AuthMiddleware.Handle)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/change", auth.RequireRole(cfg.Dispatcher), cfg.Auth.ChangePassword)
	authGroup.Get("/me", auth.RequireRole(cfg.Dispatcher), cfg.Auth.Me)

	api := app.Group("/api/v1")

	quality := api.Group("/fiches-qualite", auth.RequireRole(cfg.Dispatcher, domain.RoleAdmin, domain.RolePiloteQualite))
	quality.Post("/", cfg.QualitySheets.Create)
	quality.Get("/", cfg.QualitySheets.List)
	quality.Get("/:id", cfg.QualitySheets.Get)
	quality.Put("/:id", cfg.QualitySheets.Update)
	quality.Delete("/:id", cfg.QualitySheets.Delete)

	tracking := api.Group("/fiches-suivi", auth.RequireRole(cfg.Dispatcher, domain.RoleAdmin, domain.RolePiloteQualite))
	tracking.Post("/", cfg.TrackingSheets.Create)
	tracking.Get("/", cfg.TrackingSheets.List)
	tracking.Get("/:id", cfg.TrackingSheets.Get)
	tracking.Put("/:id", cfg.TrackingSheets.Update)
	tracking.Delete("/:id", cfg.TrackingSheets.Delete)

	projects := api.Group("/projets", auth.RequireRole(cfg.Dispatcher, domain.RoleAdmin, domain.RoleChefProjet))
	projects.Post("/", cfg.Projects.CreateProject)
	projects.Get("/", cfg.Projects.ListProjects)
	projects.Get("/:id", cfg.Projects.GetProject)
	projects.Put("/:id", cfg.Projects.UpdateProject)
	projects.Delete("/:id", cfg.Projects.DeleteProject)

	tasks := api.Group("/taches", auth.RequireRole(cfg.Dispatcher, domain.RoleAdmin, domain.RoleChefProjet))
	tasks.Post("/", cfg.Projects.CreateTask)
	tasks.Get("/", cfg.Projects.ListTasks)
	tasks.Put("/:id", cfg.Projects.UpdateTask)
	tasks.Delete("/:id", cfg.Projects.DeleteTask)

	nomenclatures := api.Group("/nomenclatures", auth.RequireRole(cfg.Dispatcher, domain.RoleAdmin))
	nomenclatures.Post("/", cfg.Nomenclatures.Create)
	nomenclatures.Get("/", cfg.Nomenclatures.List)
	nomenclatures.Put("/:id", cfg.Nomenclatures.Update)
	nomenclatures.Delete("/:id", cfg.Nomenclatures.Delete)

	api.Post("/import/legacy", auth.RequireRole(cfg.Dispatcher, domain.RoleAdmin), cfg.Import.Run)

	users := api.Group("/utilisateurs", auth.RequireRole(cfg.Dispatcher, domain.RoleAdmin))
	users.Post("/", cfg.Users.Create)
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	notifications := api.Group("/notifications", auth.RequireRole(cfg.Dispatcher))
	notifications.Get("/", cfg.Notifications.List)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)
	notifications.Delete("/:id", cfg.Notifications.Delete)

	dashboards := api.Group("", auth.RequireRole(cfg.Dispatcher, domain.RoleAdmin, domain.RoleChefProjet, domain.RolePiloteQualite))
	dashboards.Get("/kpi", cfg.Dashboard.KPI)
	dashboards.Get("/ai-dashboard", cfg.Dashboard.AIDashboard)
}
