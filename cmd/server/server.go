// cmd/server/server.go
package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/codr1/courtbook/internal/api"
	"github.com/codr1/courtbook/internal/api/apiutil"
	"github.com/codr1/courtbook/internal/api/availability"
	"github.com/codr1/courtbook/internal/api/blockeddays"
	"github.com/codr1/courtbook/internal/api/clients"
	"github.com/codr1/courtbook/internal/api/courts"
	"github.com/codr1/courtbook/internal/api/reservations"
	settingsapi "github.com/codr1/courtbook/internal/api/settings"
	statsapi "github.com/codr1/courtbook/internal/api/stats"
	"github.com/codr1/courtbook/internal/apperr"
	"github.com/codr1/courtbook/internal/config"
)

const healthCheckTimeout = 2 * time.Second

func newServer(cfg *config.Config, deps *services) *http.Server {
	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      newHandler(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func newHandler(cfg *config.Config, deps *services) http.Handler {
	router := http.NewServeMux()

	// Register routes
	initHandlers(deps)
	registerRoutes(router, cfg, deps)

	return withMiddleware(router)
}

// withMiddleware wraps h so recovery runs inside logging: a recovered panic
// is still logged and counted with its 500 status.
func withMiddleware(h http.Handler) http.Handler {
	return api.ChainMiddleware(
		h,
		api.WithRecovery,
		api.WithLogging,
		api.WithRequestID,
	)
}

func initHandlers(deps *services) {
	availability.InitHandlers(deps.db.Queries)
	reservations.InitHandlers(deps.lifecycle)
	blockeddays.InitHandlers(deps.registry)
	courts.InitHandlers(deps.courts, deps.reporter)
	clients.InitHandlers(deps.clients, deps.reporter)
	settingsapi.InitHandlers(deps.settings)
	statsapi.InitHandlers(deps.reporter)
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config, deps *services) {
	admin := api.WithAdminAuth(cfg.App.AdminTokenHash)
	limited := api.WithRateLimit(deps.limiter)

	handle := func(pattern string, h http.HandlerFunc, middleware ...api.Middleware) {
		mux.Handle(pattern, api.ChainMiddleware(h, middleware...))
	}

	// Health check
	mux.HandleFunc("GET /health", handleHealth(deps))

	if cfg.Features.EnableMetrics {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// Availability routes
	handle("GET /api/v1/availability", availability.HandleAvailability)
	handle("GET /api/v1/availability/check", availability.HandleAvailabilityCheck)

	// Reservation routes
	handle("POST /api/v1/reservations", reservations.HandleReservationCreate, limited)
	handle("GET /api/v1/reservations", reservations.HandleReservationsList, admin)
	handle("GET /api/v1/reservations/{id}", reservations.HandleReservationGet, admin)
	handle("PUT /api/v1/reservations/{id}/confirm", reservations.HandleReservationConfirm, admin)
	handle("PUT /api/v1/reservations/{id}/cancel", reservations.HandleReservationCancel, admin)
	handle("PUT /api/v1/reservations/{id}/complete", reservations.HandleReservationComplete, admin)
	handle("PUT /api/v1/reservations/{id}/no-show", reservations.HandleReservationNoShow, admin)
	handle("DELETE /api/v1/reservations/{id}", reservations.HandleReservationDelete, admin)

	// Blocked day routes
	handle("GET /api/v1/blocked-days", blockeddays.HandleBlockedDaysList)
	handle("GET /api/v1/blocked-days/upcoming", blockeddays.HandleBlockedDaysUpcoming)
	handle("GET /api/v1/blocked-days/check/{date}", blockeddays.HandleBlockedDayCheck)
	handle("GET /api/v1/blocked-days/{id}", blockeddays.HandleBlockedDayGet)
	handle("POST /api/v1/blocked-days", blockeddays.HandleBlockedDayCreate, admin)
	handle("PUT /api/v1/blocked-days/{id}", blockeddays.HandleBlockedDayUpdate, admin)
	handle("DELETE /api/v1/blocked-days/{id}", blockeddays.HandleBlockedDayDelete, admin)

	// Court routes
	handle("GET /api/v1/courts", courts.HandleCourtsList)
	handle("GET /api/v1/courts/{id}", courts.HandleCourtGet)
	handle("POST /api/v1/courts", courts.HandleCourtCreate, admin)
	handle("PUT /api/v1/courts/{id}", courts.HandleCourtUpdate, admin)
	handle("PUT /api/v1/courts/{id}/status", courts.HandleCourtStatus, admin)
	handle("DELETE /api/v1/courts/{id}", courts.HandleCourtDelete, admin)

	// Client routes
	handle("POST /api/v1/clients", clients.HandleClientCreate, limited)
	handle("GET /api/v1/clients/lookup", clients.HandleClientLookup)
	handle("GET /api/v1/clients", clients.HandleClientsList, admin)
	handle("GET /api/v1/clients/{id}", clients.HandleClientGet, admin)
	handle("GET /api/v1/clients/{id}/stats", clients.HandleClientStats, admin)
	handle("PUT /api/v1/clients/{id}", clients.HandleClientUpdate, admin)
	handle("PUT /api/v1/clients/{id}/status", clients.HandleClientStatus, admin)
	handle("GET /api/v1/client-tiers", clients.HandleClientTiers)

	// Settings and statistics
	handle("GET /api/v1/settings", settingsapi.HandleSettingsList, admin)
	handle("PUT /api/v1/settings/{key}", settingsapi.HandleSettingUpdate, admin)
	handle("GET /api/v1/stats", statsapi.HandleSystemStats, admin)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		apiutil.WriteError(w, r, apperr.NotFound("no route for %s %s", r.Method, r.URL.Path))
	})
}

func handleHealth(deps *services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		if err := deps.db.PingContext(ctx); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Health check failed")
			apiutil.WriteError(w, r, apiutil.HandlerError{
				Status:  http.StatusServiceUnavailable,
				Code:    "UNAVAILABLE",
				Message: "Database unavailable",
				Err:     err,
			})
			return
		}
		apiutil.WriteSuccess(w, r, http.StatusOK, map[string]string{
			"status":   "ok",
			"database": deps.db.Driver,
		}, "")
	}
}
