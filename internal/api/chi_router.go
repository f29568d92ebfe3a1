// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/partymap/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to handle OPTIONS preflight
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Compression)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	// Health endpoints carry no rate limit so probes never get throttled
	r.Route("/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("api_v1"))
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/events", router.handler.Events)
		r.Get("/events/{eventID}", router.handler.Event)
		r.Post("/enrich", router.handler.Enrich)
		r.Post("/catalog/refresh", router.handler.RefreshCatalog)

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/personalized", router.handler.PersonalizedGet)
			r.Post("/personalized", router.handler.PersonalizedPost)
			r.Get("/trending", router.handler.Trending)
			r.Get("/nearby", router.handler.Nearby)
		})

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/preferences", router.handler.GetPreferences)
			r.Put("/preferences", router.handler.PutPreferences)
			r.Delete("/preferences", router.handler.DeletePreferences)
			r.Get("/interactions", router.handler.ListInteractions)
			r.Post("/interactions", router.handler.RecordInteraction)
			r.Delete("/interactions/{eventID}", router.handler.DeleteInteraction)
		})
	})

	return r
}
