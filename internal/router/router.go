package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/dkrasnov/backoffice/internal/middleware"
	"github.com/dkrasnov/backoffice/internal/middleware/metrics"
	"github.com/dkrasnov/backoffice/internal/setup"
)

// New creates and configures the chi router.
//
// The CORS layer runs before any route: the origin check consults the
// in-memory trusted-origin snapshot, so an untrusted cross-origin request is
// rejected at the transport level (no ACAO header echoed) without executing
// handlers. Callers must only build this router after the origin cache has
// completed its first load.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return deps.OriginCache.IsAllowed(origin)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Backend CSP: strict policy (JSON API only, no scripts/styles needed)
	backendCSP := "default-src 'none'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Production(), backendCSP))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	// Public routes
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)
	r.Get("/developer-profile", h.GetDeveloperProfile)

	// Session-holder routes
	r.Group(func(r chi.Router) {
		r.Use(authMw.NeedAuth())
		r.Get("/me", h.Me)
		r.Get("/allowed-hosts", h.GetAllowedHosts)
		r.Post("/create-allowed-host", h.CreateAllowedHost)
		r.Put("/update-allowed-host/{id}", h.UpdateAllowedHost)
		r.Delete("/allowed-hosts/{id}", h.DeleteAllowedHost)
	})

	// User management is admin-gated
	r.Group(func(r chi.Router) {
		r.Use(authMw.AdminOnly())
		r.Get("/users", h.GetUsers)
		r.Post("/add-user", h.AddUser)
		r.Put("/edit-user/{id}", h.EditUser)
		r.Post("/disable-user", h.DisableUser)
		r.Post("/delete-user", h.DeleteUser)
	})

	return r
}
