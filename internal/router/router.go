// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// studio API. Operational endpoints sit outside the session; the API group
// carries sessions, CSRF protection and, on the expensive routes, rate
// limiting.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"artboard/internal/handlers"
	"artboard/internal/middleware"
)

// Config holds what the router needs besides the handlers.
type Config struct {
	Sessions      middleware.SessionStore
	SecureCookies bool
	// Limiter throttles generation and render routes. nil disables it.
	Limiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(cfg Config, h *handlers.Handler) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Telemetry)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check and metrics: no session, no CSRF.
	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LoadSession(cfg.Sessions))
		r.Use(middleware.NewCSRF(cfg.SecureCookies))

		// Session credentials
		r.Post("/session", h.UpdateSession)
		r.Delete("/session", h.DeleteSession)

		r.Get("/studio", h.Studio)
		r.Get("/studio/handoff", h.Handoff)

		r.Post("/palettes/preview", h.PalettePreview)

		// Generation, rendering and image decoding are throttled.
		r.Group(func(r chi.Router) {
			if cfg.Limiter != nil {
				r.Use(cfg.Limiter.Middleware)
			}

			r.Post("/colors/extract", h.ExtractColors)

			r.Post("/designs", h.CreateDesign)
			r.Post("/assets/{id}/regenerate", h.RegenerateAsset)

			r.Route("/components", func(r chi.Router) {
				r.Post("/render", h.RenderComponent)
				r.Post("/render-batch", h.RenderBatch)
				r.Post("/sheet", h.ContactSheet)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
