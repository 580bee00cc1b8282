// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/chowdown/cliparse"
	"github.com/danielhkuo/chowdown/middleware"
	"github.com/danielhkuo/chowdown/models"
	"github.com/danielhkuo/chowdown/session"
)

type VotingHandler struct {
	mgr *session.Manager
	cfg cliparse.Config
}

func NewVotingHandler(mgr *session.Manager, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{mgr: mgr, cfg: cfg}
}

// CastVote handles POST /sessions/{id}/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return
	}

	user, err := currentUser(r, h.mgr)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.RestaurantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "restaurant_id is required")
		return
	}

	result, err := h.mgr.CastVote(r.Context(), user, sessionID, req.RestaurantID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteValue:      result.Vote.VoteValue,
		VotesRemaining: result.VotesRemaining,
		Concluded:      result.Concluded,
		OutcomeID:      result.OutcomeID,
	})
}
