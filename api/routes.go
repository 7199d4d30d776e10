package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// setupRoutes mounts the public auth/health routes and the
// token-protected resource routes.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", healthCheck())
		r.Post("/auth/register", handlers.authHandler.register())
		r.Post("/auth/login", handlers.authHandler.login())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		// Project Handler endpoints
		r.Post("/projects", handlers.projectHandler.createProject())
		r.Get("/projects", handlers.projectHandler.listProjects())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Post("/projects/{projectID}/members", handlers.projectHandler.addMember())

		// Ticket Handler endpoints
		r.Post("/projects/{projectID}/tickets", handlers.ticketHandler.createTicket())
		r.Get("/projects/{projectID}/tickets", handlers.ticketHandler.listTickets())
		r.Get("/tickets/{ticketID}", handlers.ticketHandler.getTicket())
		r.Put("/tickets/{ticketID}", handlers.ticketHandler.updateTicket())
		r.Delete("/tickets/{ticketID}", handlers.ticketHandler.deleteTicket())

		// Label Handler endpoints
		r.Post("/projects/{projectID}/labels", handlers.labelHandler.createLabel())
		r.Get("/projects/{projectID}/labels", handlers.labelHandler.listLabels())
		r.Post("/tickets/{ticketID}/labels/{labelID}", handlers.labelHandler.attachLabel())
		r.Delete("/tickets/{ticketID}/labels/{labelID}", handlers.labelHandler.detachLabel())

		// Comment Handler endpoints
		r.Post("/tickets/{ticketID}/comments", handlers.commentHandler.createComment())
		r.Get("/tickets/{ticketID}/comments", handlers.commentHandler.listComments())
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responder := NewResponder(log.Logger)
		responder.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	})
}

// healthCheck reports liveness; no auth, no store access.
func healthCheck() http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "healthCheck").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, http.StatusOK, map[string]any{
			"ok": true,
			"ts": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
