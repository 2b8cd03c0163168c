// Package http exposes the REST API over gorilla/mux.
package http

import (
	"net/http"

	"vibe-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter wires every endpoint. Registration, login, token refresh and
// invitation verification are public; everything else requires a bearer
// access token.
func NewRouter(
	tokens security.TokenManager,
	authHandler *AuthHandler,
	invitationHandler *InvitationHandler,
	networkHandler *NetworkHandler,
	userHandler *UserHandler,
) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", invitationHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/invitations/verify", invitationHandler.Verify).Methods(http.MethodPost)

	// Authenticated routes
	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(tokens))
	protected.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/session", authHandler.Session).Methods(http.MethodGet)
	protected.HandleFunc("/invitations", invitationHandler.Issue).Methods(http.MethodPost)
	protected.HandleFunc("/invitations", invitationHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/invitations/resend", invitationHandler.Resend).Methods(http.MethodPost)
	protected.HandleFunc("/invitations/stats", networkHandler.Stats).Methods(http.MethodGet)
	protected.HandleFunc("/users/location", userHandler.UpdateLocation).Methods(http.MethodPost)
	protected.HandleFunc("/users/nearby", userHandler.Nearby).Methods(http.MethodGet)

	return r
}
