// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/chowdown/models"
	"github.com/danielhkuo/chowdown/testutil"
)

func TestListInvitations(t *testing.T) {
	env := setupEnv(t, testutil.Restaurants("r1", "r2"))
	handler := NewInvitationHandler(env.mgr, env.cfg)

	alice := testutil.CreateTestUser(t, env.st, "Alice", nil, nil)
	bob := testutil.CreateTestUser(t, env.st, "Bob", nil, nil)

	sess, err := env.mgr.CreateSession(context.Background(), alice, []string{bob.ID}, 0, 0, false)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	tests := []struct {
		name          string
		token         string
		expectedCount int
	}{
		{"invitee sees the invitation", bob.Token, 1},
		{"initiator has none", alice.Token, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/invitations", nil)
			req.Header.Set("X-User-Token", tt.token)
			w := httptest.NewRecorder()

			handler.List(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d. Body: %s", w.Code, w.Body.String())
			}

			var resp models.InvitationListResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if len(resp.Invitations) != tt.expectedCount {
				t.Errorf("Expected %d invitations, got %d", tt.expectedCount, len(resp.Invitations))
			}
			if tt.expectedCount == 1 && resp.Invitations[0].VotingSessionID != sess.ID {
				t.Errorf("Expected invitation for session %s, got %+v", sess.ID, resp.Invitations[0])
			}
		})
	}
}

func TestRespondToInvitation(t *testing.T) {
	env := setupEnv(t, testutil.Restaurants("r1", "r2"))
	handler := NewInvitationHandler(env.mgr, env.cfg)

	alice := testutil.CreateTestUser(t, env.st, "Alice", nil, nil)
	bob := testutil.CreateTestUser(t, env.st, "Bob", nil, nil)
	carol := testutil.CreateTestUser(t, env.st, "Carol", nil, nil)

	sess, err := env.mgr.CreateSession(context.Background(), alice, []string{bob.ID, carol.ID}, 0, 0, false)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	bobKey := models.Invitation{ToID: bob.ID, VotingSessionID: sess.ID}.Key()
	carolKey := models.Invitation{ToID: carol.ID, VotingSessionID: sess.ID}.Key()

	tests := []struct {
		name           string
		key            string
		token          string
		requestBody    interface{}
		expectedStatus int
		wantMessage    string
	}{
		{
			// Runs first: the invitation must still exist to be guarded
			name:           "someone else's invitation",
			key:            bobKey,
			token:          alice.Token,
			requestBody:    models.RespondInvitationRequest{Accept: true},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "accept",
			key:            bobKey,
			token:          bob.Token,
			requestBody:    models.RespondInvitationRequest{Accept: true},
			expectedStatus: http.StatusOK,
			wantMessage:    "Invitation accepted",
		},
		{
			name:           "decline",
			key:            carolKey,
			token:          carol.Token,
			requestBody:    models.RespondInvitationRequest{},
			expectedStatus: http.StatusOK,
			wantMessage:    "Invitation declined",
		},
		{
			name:           "already resolved invitation",
			key:            bob.ID + "-long-gone",
			token:          bob.Token,
			requestBody:    models.RespondInvitationRequest{Accept: true},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid JSON",
			key:            bobKey,
			token:          bob.Token,
			requestBody:    "not json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body []byte
			var err error

			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatalf("Failed to marshal request body: %v", err)
				}
			}

			req := httptest.NewRequest("POST", "/invitations/"+tt.key+"/respond", bytes.NewReader(body))
			req.SetPathValue("key", tt.key)
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-User-Token", tt.token)
			w := httptest.NewRecorder()

			handler.Respond(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.wantMessage != "" {
				var resp map[string]string
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if resp["message"] != tt.wantMessage {
					t.Errorf("Expected message %q, got %q", tt.wantMessage, resp["message"])
				}
			}
		})
	}

	// Accept landed Bob in the session
	bobAfter, err := env.mgr.GetUser(context.Background(), bob.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if len(bobAfter.ActiveVotingSessions) != 1 || bobAfter.ActiveVotingSessions[0] != sess.ID {
		t.Errorf("Expected Bob to join %s, active = %v", sess.ID, bobAfter.ActiveVotingSessions)
	}

	// Decline left Carol out
	carolAfter, err := env.mgr.GetUser(context.Background(), carol.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if len(carolAfter.ActiveVotingSessions) != 0 {
		t.Errorf("Expected Carol to stay out, active = %v", carolAfter.ActiveVotingSessions)
	}
}
