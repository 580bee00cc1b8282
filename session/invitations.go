// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/chowdown/models"
	"github.com/danielhkuo/chowdown/relay"
	"github.com/danielhkuo/chowdown/store"
)

// PendingInvitations lists the user's open invitations.
func (m *Manager) PendingInvitations(ctx context.Context, userID string) ([]models.Invitation, error) {
	docs, err := m.store.Query(ctx, models.CollectionInvitations, store.Eq("toId", userID))
	if err != nil {
		return nil, err
	}
	invitations := make([]models.Invitation, 0, len(docs))
	for _, doc := range docs {
		inv, err := models.InvitationFromDoc(doc.Fields)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, nil
}

// Respond accepts or declines an invitation. On accept, the responder's
// session membership is persisted first and the invitation deleted only
// after that succeeds: a failed accept must not silently drop the
// invitation. The deletion is the signal other participants observe.
//
// A declined invitation is deleted without touching the responder's
// membership. Responding to an invitation that is already gone, or whose
// session has already ended, is treated as already-resolved and succeeds.
func (m *Manager) Respond(ctx context.Context, user models.User, invitationKey string, accept bool) error {
	doc, err := m.store.Get(ctx, models.CollectionInvitations, invitationKey)
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}

	inv, err := models.InvitationFromDoc(doc.Fields)
	if err != nil {
		return err
	}
	if inv.ToID != user.ID {
		return fmt.Errorf("%w: invitation %s belongs to %s", models.ErrNotAuthorized, invitationKey, inv.ToID)
	}

	if _, err := m.GetSession(ctx, inv.VotingSessionID); err != nil {
		if !isNotFound(err) {
			return err
		}
		// The session ended before the response landed: the response is
		// moot, so clear the orphaned invitation and succeed.
		if err := m.store.Delete(ctx, models.CollectionInvitations, invitationKey); err != nil && !isNotFound(err) {
			return err
		}
		return nil
	}

	if accept {
		user.ActiveVotingSessions = appendUnique(user.ActiveVotingSessions, inv.VotingSessionID)
		if err := m.store.Set(ctx, models.CollectionUsers, user.ID, user.Doc()); err != nil {
			// Membership update failed; keep the invitation so the accept
			// can be retried.
			return err
		}
	}

	if err := m.store.Delete(ctx, models.CollectionInvitations, invitationKey); err != nil && !isNotFound(err) {
		return err
	}

	m.relay.Publish(ctx, relay.Event{
		Name:       relay.EventInvitationResponse,
		SessionID:  inv.VotingSessionID,
		Invitation: &inv,
		Accepted:   accept,
	})
	slog.Info("invitation response",
		"session_id", inv.VotingSessionID,
		"user_id", user.ID,
		"accepted", accept,
	)
	return nil
}
