package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/careerredefine/admissions-service/internal/api/http/handlers"
	"github.com/careerredefine/admissions-service/internal/auth"
	"github.com/careerredefine/admissions-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Registrations   *handlers.RegistrationsHandler
	Admin           *handlers.AdminRegistrationsHandler
	Calendar        *handlers.CalendarHandler
	Auth            *handlers.AuthHandler
	AuthMiddleware  *auth.AuthMiddleware
	SubmissionLimit fiber.Handler
	Metrics         http.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	api := app.Group("/api/v1")
	api.Get("/education-options", cfg.Registrations.EducationOptions)

	submit := []fiber.Handler{cfg.Registrations.Submit}
	if cfg.SubmissionLimit != nil {
		submit = append([]fiber.Handler{cfg.SubmissionLimit}, submit...)
	}
	api.Post("/registrations", submit...)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle,
		auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleReviewer))
	admin.Get("/registrations", cfg.Admin.List)
	admin.Get("/registrations/stats", cfg.Admin.Stats)
	admin.Get("/registrations/export", cfg.Admin.Export)
	admin.Get("/registrations/:id", cfg.Admin.Get)
	admin.Patch("/registrations/:id/status", cfg.Admin.UpdateStatus)
	admin.Post("/registrations/:id/interview", cfg.Admin.ScheduleInterview)
	admin.Post("/registrations/:id/reminder", cfg.Admin.SendReminder)
	admin.Put("/registrations/:id/notes", cfg.Admin.UpdateNotes)
	admin.Get("/calendar", cfg.Calendar.List)
}
