// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"

	"github.com/danielhkuo/chowdown/models"
	"github.com/danielhkuo/chowdown/store"
)

// Watch event types
const (
	WatchParticipantsChanged = "participants_changed"
	WatchSessionEnded        = "session_ended"
)

// WatchEvent is a digested store change for one session. A
// participants_changed event carries the authoritative participant list,
// re-fetched from the store rather than patched incrementally. A
// session_ended event carries the outcome (empty for abandonment) and is
// the last event on the stream.
type WatchEvent struct {
	Type           string   `json:"type"`
	SessionID      string   `json:"session_id"`
	ParticipantIDs []string `json:"participant_ids,omitempty"`
	OutcomeID      string   `json:"outcome_id,omitempty"`
}

// WatchSession streams membership changes and the conclusion signal for a
// session until ctx is cancelled or the session ends. Invitation deletions
// and session updates both trigger an authoritative participant re-fetch;
// the session document's deletion is the conclusion signal, with the
// outcome read from the document's last known payload.
func (m *Manager) WatchSession(ctx context.Context, sessionID string) <-chan WatchEvent {
	out := make(chan WatchEvent)

	watchCtx, cancel := context.WithCancel(ctx)
	invitations := m.store.Subscribe(watchCtx, models.CollectionInvitations,
		store.Eq("votingSessionId", sessionID))
	sessions := m.store.Subscribe(watchCtx, models.CollectionSessions)

	go func() {
		defer close(out)
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-invitations:
				if !ok {
					return
				}
				// Deletion is the response signal; creations are relayed
				// to invitees separately.
				if ev.Type != store.Removed {
					continue
				}
				m.emitParticipants(ctx, out, sessionID)

			case ev, ok := <-sessions:
				if !ok {
					return
				}
				if ev.ID != sessionID {
					continue
				}
				switch ev.Type {
				case store.Modified:
					m.emitParticipants(ctx, out, sessionID)
				case store.Removed:
					ended := WatchEvent{
						Type:      WatchSessionEnded,
						SessionID: sessionID,
					}
					if outcome, ok := ev.Fields["outcomeId"].(string); ok {
						ended.OutcomeID = outcome
					}
					select {
					case out <- ended:
					case <-ctx.Done():
					}
					return
				}
			}
		}
	}()

	return out
}

// WatchInvitations streams invitation changes addressed to the user, for
// clients surfacing incoming invitations as they arrive.
func (m *Manager) WatchInvitations(ctx context.Context, userID string) <-chan store.ChangeEvent {
	return m.store.Subscribe(ctx, models.CollectionInvitations, store.Eq("toId", userID))
}

// emitParticipants re-fetches the session and sends the current
// participant list. A missing session means the ended event is imminent;
// nothing is emitted.
func (m *Manager) emitParticipants(ctx context.Context, out chan<- WatchEvent, sessionID string) {
	sess, err := m.GetSession(ctx, sessionID)
	if err != nil {
		return
	}
	select {
	case out <- WatchEvent{
		Type:           WatchParticipantsChanged,
		SessionID:      sessionID,
		ParticipantIDs: sess.ParticipantIDs,
	}:
	case <-ctx.Done():
	}
}
