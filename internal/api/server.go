// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/inkwell-press/inkwell/internal/catalog/book"
	"github.com/inkwell-press/inkwell/internal/catalog/manuscript"
	"github.com/inkwell-press/inkwell/internal/commerce/order"
	"github.com/inkwell-press/inkwell/internal/platform/config"
	"github.com/inkwell-press/inkwell/internal/platform/constants"
	"github.com/inkwell-press/inkwell/internal/platform/middleware"
	"github.com/inkwell-press/inkwell/internal/social/review"
	"github.com/inkwell-press/inkwell/internal/support/contact"
	"github.com/inkwell-press/inkwell/internal/support/notification"
	"github.com/inkwell-press/inkwell/internal/users/account"
	"github.com/inkwell-press/inkwell/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (register, login, tokens, passwords).
	Auth *auth.Handler

	// Account handles profile management and the admin user console.
	Account *account.Handler

	// Book handles catalogue discovery and management.
	Book *book.Handler

	// Manuscript handles the editorial pipeline.
	Manuscript *manuscript.Handler

	// Order handles checkout and fulfilment.
	Order *order.Handler

	// Review handles reader reviews and rating moderation.
	Review *review.Handler

	// Contact handles the public contact form and support console.
	Contact *contact.Handler

	// Notification handles the per-user inbox and announcements.
	Notification *notification.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/books", h.Book.Routes(h.Review.BookRoutes()))
		api.Mount("/manuscripts", h.Manuscript.Routes())
		api.Mount("/orders", h.Order.Routes())
		api.Mount("/contact", h.Contact.Routes())
		api.Mount("/notifications", h.Notification.Routes())

		api.Route("/admin", func(admin chi.Router) {
			admin.Mount("/users", h.Account.AdminRoutes())
			admin.Mount("/books", h.Book.AdminRoutes())
			admin.Mount("/manuscripts", h.Manuscript.AdminRoutes())
			admin.Mount("/orders", h.Order.AdminRoutes())
			admin.Mount("/reviews", h.Review.AdminRoutes())
			admin.Mount("/contacts", h.Contact.AdminRoutes())
			admin.Mount("/notifications", h.Notification.AdminRoutes())
		})

		// Profile endpoints (/me, /users/{id}) live at the version root.
		api.Mount("/", h.Account.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
