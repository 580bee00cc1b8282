// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/chowdown/models"
	"github.com/danielhkuo/chowdown/relay"
)

// Leave removes the user from the session and the session from the user's
// active list. The last participant out abandons the session: its votes
// and the session itself are deleted with no outcome set.
//
// Leaving a session that is already gone (it concluded while the leave was
// in flight) only reconciles the user's own active list.
func (m *Manager) Leave(ctx context.Context, user models.User, sessionID string) error {
	sess, err := m.GetSession(ctx, sessionID)
	if isNotFound(err) {
		return m.dropActiveSession(ctx, user, sessionID)
	}
	if err != nil {
		return err
	}

	if !sess.HasParticipant(user.ID) {
		return fmt.Errorf("%w: user %s is not in session %s", models.ErrNotAuthorized, user.ID, sessionID)
	}

	sess.ParticipantIDs = removeString(sess.ParticipantIDs, user.ID)

	if len(sess.ParticipantIDs) == 0 {
		// Abandonment: tear down without an outcome.
		if err := m.dropActiveSession(ctx, user, sessionID); err != nil {
			return err
		}
		if err := m.deleteSessionRecords(ctx, sessionID); err != nil {
			return err
		}
		m.relay.Publish(ctx, relay.Event{
			Name:      relay.EventSessionConcluded,
			SessionID: sessionID,
		})
		slog.Info("session abandoned", "session_id", sessionID, "last_user", user.ID)
		return nil
	}

	if err := m.store.Set(ctx, models.CollectionSessions, sess.ID, sess.Doc()); err != nil {
		return err
	}
	if err := m.dropActiveSession(ctx, user, sessionID); err != nil {
		return err
	}
	slog.Info("participant left", "session_id", sessionID, "user_id", user.ID, "remaining", len(sess.ParticipantIDs))

	// The departure may have been the only thing holding up conclusion.
	_, _, err = m.checkConclusion(ctx, sess)
	return err
}

func (m *Manager) dropActiveSession(ctx context.Context, user models.User, sessionID string) error {
	user.ActiveVotingSessions = removeString(user.ActiveVotingSessions, sessionID)
	return m.store.Set(ctx, models.CollectionUsers, user.ID, user.Doc())
}
