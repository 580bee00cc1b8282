// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/chowdown/catalog"
	"github.com/danielhkuo/chowdown/cliparse"
	"github.com/danielhkuo/chowdown/handlers"
	"github.com/danielhkuo/chowdown/middleware"
	"github.com/danielhkuo/chowdown/session"
)

func NewRouter(mgr *session.Manager, cat catalog.Client, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(mgr, cfg)
	sessionHandler := handlers.NewSessionHandler(mgr, cat, cfg)
	votingHandler := handlers.NewVotingHandler(mgr, cfg)
	invitationHandler := handlers.NewInvitationHandler(mgr, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// User management
	mux.HandleFunc("POST /users", middleware.WithLogging(userHandler.Register))
	mux.HandleFunc("GET /users/me", middleware.WithLogging(userHandler.Me))
	mux.HandleFunc("PUT /users/me/blacklist", middleware.WithLogging(userHandler.UpdateBlacklist))

	// Voting sessions
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.Create))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.Get))
	mux.HandleFunc("POST /sessions/{id}/votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("POST /sessions/{id}/leave", middleware.WithLogging(sessionHandler.Leave))
	mux.HandleFunc("GET /sessions/{id}/events", sessionHandler.Events)

	// Invitations
	mux.HandleFunc("GET /invitations", middleware.WithLogging(invitationHandler.List))
	mux.HandleFunc("POST /invitations/{key}/respond", middleware.WithLogging(invitationHandler.Respond))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("chowdown API v1"))
	})

	return mux
}
