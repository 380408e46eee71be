// Package http provides HTTP routing and middleware configuration
// for the AuthKeeper editing API.
package http

import (
	"net/http"

	"github.com/atinyakov/AuthKeeper/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the entry editing API.
//
// Parameters:
//
//	entriesHandler - handler for the draft/committed entry endpoints
//	logger         - structured logger for request logging middleware
//	requireCert    - enforce client certificates on every route
//
// Routes:
//
//	GET    /api/entries       → entriesHandler.List
//	POST   /api/entries       → entriesHandler.Append
//	PATCH  /api/entries/{id}  → entriesHandler.Patch
//	DELETE /api/entries/{id}  → entriesHandler.Drop
//	POST   /api/commit        → entriesHandler.Commit
//	POST   /api/discard       → entriesHandler.Discard
//	GET    /api/committed     → entriesHandler.Committed
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. WithRequestLogging(logger)         — logs incoming requests
//  3. CertAuth (when requireCert)        — enforces TLS client certificate auth
func NewRouter(
	entriesHandler *EntriesHandler,
	logger *zap.Logger,
	requireCert bool,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	if requireCert {
		r.Use(middleware.CertAuth)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", entriesHandler.List)
			r.Post("/", entriesHandler.Append)
			r.Patch("/{id}", entriesHandler.Patch)
			r.Delete("/{id}", entriesHandler.Drop)
		})
		r.Post("/commit", entriesHandler.Commit)
		r.Post("/discard", entriesHandler.Discard)
		r.Get("/committed", entriesHandler.Committed)
	})

	return r
}
