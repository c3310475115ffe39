// Package api exposes the catalog, the swipe matchmaker, the cart and the
// career tools over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	CORSOrigins []string
	RateLimit   int
}

func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(accessLog)
	r.Use(corsHandler(cfg.CORSOrigins))

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rateLimit(cfg.RateLimit))

		r.Get("/catalog/jobs", h.ListJobs)
		r.Get("/catalog/certifications", h.ListCertifications)

		r.Group(func(r chi.Router) {
			r.Use(identify(h.catalog))

			r.Route("/matchmaking/sessions", func(r chi.Router) {
				r.Post("/", h.CreateSession)
				r.Route("/{sessionID}", func(r chi.Router) {
					r.Get("/", h.GetSession)
					r.Delete("/", h.DeleteSession)
					r.Post("/decisions", h.Decide)
					r.Post("/drag", h.Drag)
					r.Post("/reset", h.ResetSession)
				})
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.GetCart)
				r.Delete("/", h.ClearCart)
				r.Post("/items", h.AddCartItem)
				r.Patch("/items/{certificationID}", h.UpdateCartItem)
				r.Delete("/items/{certificationID}", h.RemoveCartItem)
			})

			r.Post("/career/advice", h.CareerAdvice)
			r.Post("/talent/matches", h.TalentMatches)
		})
	})

	return r
}
