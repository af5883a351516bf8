package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/rso-takle-mamo/booking-service/internal/config"
	"github.com/rso-takle-mamo/booking-service/internal/transport/http/handlers"
	authmw "github.com/rso-takle-mamo/booking-service/internal/transport/http/middleware"
)

func New(
	h *handlers.BookingsHandler,
	auth *authmw.AuthMiddleware,
	z *handlers.HealthHandler,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(authmw.RequestID)
	r.Use(authmw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authmw.AccessLog)

	if cfg.RLEnabled {
		r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
	}

	r.Get("/healthz", z.Healthz)
	r.Get("/readyz", z.Readyz)

	r.Route("/booking/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Require)
			r.Post("/bookings", h.Create)
			r.Get("/bookings", h.List)
			r.Get("/bookings/{booking_id}", h.Get)
			r.Put("/bookings/{booking_id}/cancel", h.Cancel)
		})
	})

	return r
}
