package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"givetrack/internal/http/handlers"
	"givetrack/internal/infra"
	"givetrack/internal/middleware"
)

// NewRouter wires every route of the service. The gate middleware guards
// only the unauthenticated entry routes; everything under the auth group
// requires a live (non-idle) session.
func NewRouter(app *handlers.App, cfg *infra.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.AllowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/", app.Root)

	// Entry routes: rate limited, and the login/register pair sits behind
	// the passphrase gate.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
		r.Post("/v1/gate/unlock", app.GateUnlock)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Gate(cfg.AccessPassphrase, []byte(cfg.JWTSecret)))
			r.Post("/v1/auth/register", app.Register)
			r.Post("/v1/auth/login", app.Login)
		})
	})

	// Authenticated surface.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth([]byte(cfg.JWTSecret), app.Sessions))

		r.Post("/v1/auth/logout", app.Logout)
		r.Get("/v1/me", app.Me)

		r.Route("/v1/donations", func(r chi.Router) {
			r.Get("/", app.DonationsList)
			r.Post("/", app.DonationsCreate)
			r.Delete("/{id}", app.DonationsDelete)
		})
	})

	return r
}
