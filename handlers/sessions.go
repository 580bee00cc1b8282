// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/chowdown/catalog"
	"github.com/danielhkuo/chowdown/cliparse"
	"github.com/danielhkuo/chowdown/middleware"
	"github.com/danielhkuo/chowdown/models"
	"github.com/danielhkuo/chowdown/session"
)

type SessionHandler struct {
	mgr *session.Manager
	cat catalog.Client
	cfg cliparse.Config
}

func NewSessionHandler(mgr *session.Manager, cat catalog.Client, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{mgr: mgr, cat: cat, cfg: cfg}
}

// Create handles POST /sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.mgr)
	if err != nil {
		writeError(w, err)
		return
	}

	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lat, lng := req.Latitude, req.Longitude
	if lat == 0 && lng == 0 {
		if req.Address == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "latitude/longitude or address is required")
			return
		}
		// Geocoding is a catalog concern; the session core only ever sees
		// coordinates.
		lat, lng, err = h.cat.Geocode(r.Context(), req.Address)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	sess, err := h.mgr.CreateSession(r.Context(), user, req.InviteeIDs, lat, lng, req.DietaryFilter)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{Session: sess})
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	sess, err := h.mgr.GetSession(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !sess.HasParticipant(user.ID) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not a participant in this session")
		return
	}

	counts, err := h.mgr.VoteCounts(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionDetailResponse{
		Session:    sess,
		VoteCounts: counts,
	})
}

// Leave handles POST /sessions/{id}/leave
func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
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

	if err := h.mgr.Leave(r.Context(), user, sessionID); err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"message": "Left session"})
}

// Events handles GET /sessions/{id}/events
// Streams session change events as Server-Sent Events until the session
// ends or the client disconnects.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
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

	sess, err := h.mgr.GetSession(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !sess.HasParticipant(user.ID) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not a participant in this session")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	slog.Info("event stream opened", "session_id", sessionID, "user_id", user.ID)

	for ev := range h.mgr.WatchSession(r.Context(), sessionID) {
		data, err := json.Marshal(ev)
		if err != nil {
			slog.Error("failed to encode watch event", "error", err)
			continue
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
		flusher.Flush()
	}

	slog.Info("event stream closed", "session_id", sessionID, "user_id", user.ID)
}
