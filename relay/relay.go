// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package relay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/chowdown/models"
)

// Lifecycle event names
const (
	EventInvitationCreated  = "invitation_created"
	EventInvitationResponse = "invitation_response"
	EventSessionConcluded   = "session_concluded"
)

// Event is a session lifecycle notification. Exactly one of the optional
// payload fields is set depending on Name.
type Event struct {
	Name       string
	SessionID  string
	Invitation *models.Invitation
	Accepted   bool   // invitation_response only
	OutcomeID  string // session_concluded only; empty for abandonment
}

// Relay delivers lifecycle events to interested parties. Delivery and
// display are entirely the relay's concern; the session core fires and
// forgets, so Publish never returns an error.
type Relay interface {
	Publish(ctx context.Context, ev Event)
}

// LogRelay writes events to the structured log. It is the default relay
// and always runs, doubling as the audit trail for session lifecycles.
type LogRelay struct{}

func (LogRelay) Publish(ctx context.Context, ev Event) {
	switch ev.Name {
	case EventInvitationCreated:
		slog.Info("invitation created",
			"session_id", ev.SessionID,
			"from", ev.Invitation.FromName,
			"to", ev.Invitation.ToID,
		)
	case EventInvitationResponse:
		slog.Info("invitation response",
			"session_id", ev.SessionID,
			"to", ev.Invitation.ToID,
			"accepted", ev.Accepted,
		)
	case EventSessionConcluded:
		slog.Info("session concluded",
			"session_id", ev.SessionID,
			"outcome_id", ev.OutcomeID,
		)
	default:
		slog.Warn("unknown relay event", "name", ev.Name)
	}
}

// Multi fans an event out to several relays in order.
type Multi []Relay

func (m Multi) Publish(ctx context.Context, ev Event) {
	for _, r := range m {
		r.Publish(ctx, ev)
	}
}

// FormatMessage renders an event as human-readable text for chat relays.
func FormatMessage(ev Event) string {
	switch ev.Name {
	case EventInvitationCreated:
		return fmt.Sprintf("%s invited you to pick a restaurant (session %s)",
			ev.Invitation.FromName, ev.SessionID)
	case EventInvitationResponse:
		verb := "declined"
		if ev.Accepted {
			verb = "joined"
		}
		return fmt.Sprintf("%s %s session %s", ev.Invitation.ToID, verb, ev.SessionID)
	case EventSessionConcluded:
		if ev.OutcomeID == "" {
			return fmt.Sprintf("Session %s was abandoned", ev.SessionID)
		}
		return fmt.Sprintf("Session %s picked restaurant %s", ev.SessionID, ev.OutcomeID)
	}
	return ""
}
