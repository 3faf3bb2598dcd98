package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pagecraft/pagecraft/internal/api/handlers"
	"github.com/pagecraft/pagecraft/internal/api/middleware"
	"github.com/pagecraft/pagecraft/internal/config"
	"github.com/pagecraft/pagecraft/internal/pkg/logger"
	"github.com/pagecraft/pagecraft/internal/pkg/metrics"
)

// Handlers bundles every HTTP handler wired by the router
type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Project      *handlers.ProjectHandler
	Template     *handlers.TemplateHandler
	Media        *handlers.MediaHandler
	AI           *handlers.AIHandler
	Subscription *handlers.SubscriptionHandler
	Admin        *handlers.AdminHandler
}

// New builds the HTTP routing tree
func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200
	r.Use(metrics.Middleware)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
		r.Get("/health", h.Health.Health)
		r.Get("/healthz", h.Health.Live)
		r.Get("/readyz", h.Health.Ready)
		r.Handle("/metrics", metrics.Handler())

		r.Post("/api/auth/register", h.Auth.Register)
		r.Post("/api/auth/login", h.Auth.Login)
		r.Post("/api/auth/logout", h.Auth.Logout)

		// Template catalog is browsable without an account
		r.Get("/api/templates", h.Template.List)
		r.Get("/api/templates/{id}", h.Template.Get)

		// Local-disk media is served directly; the s3 backend returns
		// bucket URLs instead and never hits this route
		if cfg.Storage.Backend == "local" {
			fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.LocalDir)))
			r.Get("/uploads/*", fs.ServeHTTP)
		}
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		r.Get("/api/auth/me", h.Auth.Me)

		r.Route("/api/projects", func(r chi.Router) {
			r.Get("/", h.Project.List)
			r.Post("/", h.Project.Create)
			r.Get("/{id}", h.Project.Get)
			r.Put("/{id}", h.Project.Update)
			r.Delete("/{id}", h.Project.Delete)
			r.Post("/{id}/publish", h.Project.Publish)
		})

		r.Route("/api/media", func(r chi.Router) {
			r.Get("/", h.Media.List)
			r.Post("/", h.Media.Upload)
			r.Delete("/{id}", h.Media.Delete)
		})

		r.Route("/api/ai", func(r chi.Router) {
			// Each request is an upstream provider call; keep these tight
			r.Use(middleware.UserRateLimit(1, 3))
			r.Post("/generate", h.AI.Generate)
			r.Post("/regenerate-section", h.AI.RegenerateSection)
			r.Get("/usage", h.AI.Usage)
		})

		r.Route("/api/subscription", func(r chi.Router) {
			r.Get("/", h.Subscription.Get)
			r.Put("/", h.Subscription.Update)
		})

		// Admin routes
		r.Route("/api/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin())
			r.Get("/users", h.Admin.ListUsers)
			r.Patch("/users/{id}/role", h.Admin.UpdateUserRole)
			r.Delete("/users/{id}", h.Admin.DeleteUser)
		})
	})

	return r
}
