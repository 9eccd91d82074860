package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/petchan-dev/petchan/internal/middleware"
	"github.com/petchan-dev/petchan/internal/middleware/metrics"
	"github.com/petchan-dev/petchan/internal/setup"
)

// New builds the chi router with all routes and middleware.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.Http.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// JSON API only, no scripts or styles needed
	backendCSP := "default-src 'none'; frame-ancestors 'none'"
	r.Use(middleware.SecurityHeadersWithCSP(deps.Config.Public.Http.SecureCookies, backendCSP))

	h := deps.Handler

	r.Route("/v1", func(r chi.Router) {
		r.Get("/threads", h.ListThreads)
		r.Post("/threads", h.CreateThread)
		r.Get("/threads/{thread}", h.GetThread)
		r.Post("/threads/{thread}/responses", h.CreateResponse)

		r.Get("/categories", h.GetCategories)
		r.Get("/categories/{category}/sub", h.GetSubCategories)
		r.Get("/categories/{category}/threads", h.ListCategoryThreads)

		r.Post("/uploads", h.UploadImages)
		r.Post("/log-error", h.LogError)

		r.Get("/announcements", h.GetAnnouncements)
		r.Get("/announcements/{id}", h.GetAnnouncement)
	})

	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
