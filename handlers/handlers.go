// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/chowdown/middleware"
	"github.com/danielhkuo/chowdown/models"
	"github.com/danielhkuo/chowdown/session"
)

// currentUser resolves the X-User-Token header to a user record.
func currentUser(r *http.Request, mgr *session.Manager) (models.User, error) {
	return mgr.UserByToken(r.Context(), r.Header.Get("X-User-Token"))
}

// writeError maps core error kinds to HTTP responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNoUserFound):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or missing X-User-Token")
	case errors.Is(err, models.ErrNotAuthorized):
		middleware.ErrorResponse(w, http.StatusForbidden, "Not a participant in this session")
	case errors.Is(err, models.ErrDocumentNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	case errors.Is(err, models.ErrVotingComplete):
		middleware.ErrorResponse(w, http.StatusConflict, "All votes already cast")
	case errors.Is(err, models.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "Already voted for that restaurant")
	case errors.Is(err, models.ErrNotACandidate):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Restaurant is not a candidate in this session")
	case errors.Is(err, models.ErrNoRestaurantsMatch):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "No restaurants match the group's filters")
	case errors.Is(err, models.ErrNoLocationForAddress):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Address could not be located")
	default:
		slog.Error("request failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
