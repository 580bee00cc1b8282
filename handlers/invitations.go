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

type InvitationHandler struct {
	mgr *session.Manager
	cfg cliparse.Config
}

func NewInvitationHandler(mgr *session.Manager, cfg cliparse.Config) *InvitationHandler {
	return &InvitationHandler{mgr: mgr, cfg: cfg}
}

// List handles GET /invitations
func (h *InvitationHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.mgr)
	if err != nil {
		writeError(w, err)
		return
	}

	invitations, err := h.mgr.PendingInvitations(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.InvitationListResponse{
		Invitations: invitations,
	})
}

// Respond handles POST /invitations/{key}/respond
func (h *InvitationHandler) Respond(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invitation key is required")
		return
	}

	user, err := currentUser(r, h.mgr)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.RespondInvitationRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.mgr.Respond(r.Context(), user, key, req.Accept); err != nil {
		writeError(w, err)
		return
	}

	message := "Invitation declined"
	if req.Accept {
		message = "Invitation accepted"
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": message})
}
