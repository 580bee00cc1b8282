// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/chowdown/cliparse"
	"github.com/danielhkuo/chowdown/middleware"
	"github.com/danielhkuo/chowdown/models"
	"github.com/danielhkuo/chowdown/session"
)

type UserHandler struct {
	mgr *session.Manager
	cfg cliparse.Config
}

func NewUserHandler(mgr *session.Manager, cfg cliparse.Config) *UserHandler {
	return &UserHandler{mgr: mgr, cfg: cfg}
}

// Register handles POST /users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Name) < 2 || len(req.Name) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name must be 2-50 characters")
		return
	}

	user, err := h.mgr.RegisterUser(r.Context(), req.Name, req.BlacklistedRestaurants, req.DietaryTags)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "name", user.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterUserResponse{
		UserID:    user.ID,
		UserToken: user.Token,
	})
}

// Me handles GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.mgr)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, user)
}

// UpdateBlacklist handles PUT /users/me/blacklist
func (h *UserHandler) UpdateBlacklist(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.mgr)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.UpdateBlacklistRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err = h.mgr.UpdateBlacklist(r.Context(), user, req.BlacklistedRestaurants)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("blacklist updated", "user_id", user.ID, "count", len(req.BlacklistedRestaurants))
	middleware.JSONResponse(w, http.StatusOK, user)
}
