/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/paychecks/*      Paycheck processing + history
  /api/balances/*       Balance snapshot + manual override
  /api/envelopes/*      Envelope management
  /api/goals/*          Savings goal management
  /api/transactions     Ledger listing

SECURITY NOTE:
  No authentication middleware. Single-user deployment behind the
  user's own network.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Paycheck routes
		r.Route("/paychecks", func(r chi.Router) {
			r.Get("/", h.ListPaychecks)
			r.Post("/", h.ProcessPaycheck)
			r.Get("/{id}", h.GetPaycheck)
		})

		// Balance routes
		r.Route("/balances", func(r chi.Router) {
			r.Get("/", h.GetBalances)
			r.Put("/actual", h.SetActualBalance)
		})

		// Envelope routes
		r.Route("/envelopes", func(r chi.Router) {
			r.Get("/", h.ListEnvelopes)
			r.Post("/", h.CreateEnvelope)
			r.Get("/{id}", h.GetEnvelope)
		})

		// Savings goal routes
		r.Route("/goals", func(r chi.Router) {
			r.Get("/", h.ListGoals)
			r.Post("/", h.CreateGoal)
		})

		// Ledger routes
		r.Get("/transactions", h.ListTransactions)
	})

	return r
}
