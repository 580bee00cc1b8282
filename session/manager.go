// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/chowdown/catalog"
	"github.com/danielhkuo/chowdown/models"
	"github.com/danielhkuo/chowdown/relay"
	"github.com/danielhkuo/chowdown/store"
)

// votesFloor is the minimum vote allotment when the group is small, so a
// participant can always express a meaningful ranking.
const votesFloor = 5

// Manager runs the voting session protocol: creation, invitation fan-out,
// vote recording, tallying, and teardown. All state lives in the store;
// the Manager holds no caches.
type Manager struct {
	store   store.Store
	catalog catalog.Client
	relay   relay.Relay
}

// NewManager wires the manager to its collaborators.
func NewManager(st store.Store, cat catalog.Client, rl relay.Relay) *Manager {
	return &Manager{store: st, catalog: cat, relay: rl}
}

// CreateSession builds the candidate set near the location, computes the
// vote allotment, persists the session, and fans invitations out to every
// invitee. The initiator joins immediately; invitees join by accepting.
func (m *Manager) CreateSession(ctx context.Context, initiator models.User, inviteeIDs []string, latitude, longitude float64, dietaryFilter bool) (models.VotingSession, error) {
	// participantIds is a set: the same user may appear repeatedly in the
	// request (and as both initiator and invitee) but joins once.
	invitees := make([]models.User, 0, len(inviteeIDs))
	seen := map[string]bool{initiator.ID: true}
	for _, id := range inviteeIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		invitee, err := m.GetUser(ctx, id)
		if err != nil {
			return models.VotingSession{}, fmt.Errorf("load invitee %s: %w", id, err)
		}
		invitees = append(invitees, invitee)
	}

	restaurants, err := m.catalog.SearchNear(ctx, latitude, longitude, catalog.SearchFilters{})
	if err != nil {
		return models.VotingSession{}, fmt.Errorf("catalog search: %w", err)
	}

	participants := append([]models.User{initiator}, invitees...)
	candidateIDs := filterCandidates(restaurants, participants, dietaryFilter)
	if len(candidateIDs) == 0 {
		return models.VotingSession{}, models.ErrNoRestaurantsMatch
	}

	sess := models.VotingSession{
		VotesEach:      computeVotesEach(len(candidateIDs), len(invitees)),
		Latitude:       latitude,
		Longitude:      longitude,
		ParticipantIDs: participantIDs(participants),
		RestaurantIDs:  candidateIDs,
	}

	sess.ID, err = m.store.Create(ctx, models.CollectionSessions, sess.Doc())
	if err != nil {
		return models.VotingSession{}, err
	}

	for _, invitee := range invitees {
		inv := models.Invitation{
			FromUserID:      initiator.ID,
			FromName:        initiator.Name,
			ToID:            invitee.ID,
			VotingSessionID: sess.ID,
		}
		if err := m.store.Set(ctx, models.CollectionInvitations, inv.Key(), inv.Doc()); err != nil {
			return models.VotingSession{}, err
		}
		m.relay.Publish(ctx, relay.Event{
			Name:       relay.EventInvitationCreated,
			SessionID:  sess.ID,
			Invitation: &inv,
		})
	}

	// The initiator does not accept their own invitation; their membership
	// is recorded as part of creation.
	initiator.ActiveVotingSessions = appendUnique(initiator.ActiveVotingSessions, sess.ID)
	if err := m.store.Set(ctx, models.CollectionUsers, initiator.ID, initiator.Doc()); err != nil {
		return models.VotingSession{}, err
	}

	slog.Info("session created",
		"session_id", sess.ID,
		"initiator", initiator.ID,
		"invitees", len(invitees),
		"candidates", len(candidateIDs),
		"votes_each", sess.VotesEach,
	)
	return sess, nil
}

// GetSession loads a session by id.
func (m *Manager) GetSession(ctx context.Context, id string) (models.VotingSession, error) {
	doc, err := m.store.Get(ctx, models.CollectionSessions, id)
	if err != nil {
		return models.VotingSession{}, err
	}
	return models.SessionFromDoc(doc.ID, doc.Fields)
}

// computeVotesEach is the allotment formula: every participant gets enough
// votes to rank meaningfully (group size plus one, floor of five), bounded
// by how many candidates there are. inviteeCount excludes the initiator,
// so a solo session gets min(candidates, 5).
func computeVotesEach(candidateCount, inviteeCount int) int {
	floor := inviteeCount + 1
	if floor < votesFloor {
		floor = votesFloor
	}
	if candidateCount < floor {
		return candidateCount
	}
	return floor
}

// filterCandidates applies the creation-time filters in order: union of
// all participants' blacklists, optional dietary constraints, and
// open/closed status where the catalog reports it. Catalog order is
// preserved; the result is the session's fixed candidate set.
func filterCandidates(restaurants []models.Restaurant, participants []models.User, dietaryFilter bool) []string {
	blacklisted := make(map[string]bool)
	for _, p := range participants {
		for _, id := range p.BlacklistedRestaurants {
			blacklisted[id] = true
		}
	}

	var required []string
	if dietaryFilter {
		required = dietaryIntersection(participants)
	}

	var candidates []string
	for _, r := range restaurants {
		if blacklisted[r.ID] {
			continue
		}
		if !satisfiesTags(r, required) {
			continue
		}
		// Unknown open status skips the filter rather than failing.
		if r.Open != nil && !*r.Open {
			continue
		}
		candidates = append(candidates, r.ID)
	}
	return candidates
}

// dietaryIntersection returns the constraints shared by every participant
// who declared any. No declared constraints means no filtering.
func dietaryIntersection(participants []models.User) []string {
	var shared []string
	first := true
	for _, p := range participants {
		if len(p.DietaryTags) == 0 {
			continue
		}
		if first {
			shared = append(shared, p.DietaryTags...)
			first = false
			continue
		}
		tags := make(map[string]bool, len(p.DietaryTags))
		for _, t := range p.DietaryTags {
			tags[t] = true
		}
		kept := shared[:0]
		for _, t := range shared {
			if tags[t] {
				kept = append(kept, t)
			}
		}
		shared = kept
	}
	return shared
}

func satisfiesTags(r models.Restaurant, required []string) bool {
	if len(required) == 0 {
		return true
	}
	tags := make(map[string]bool, len(r.Tags))
	for _, t := range r.Tags {
		tags[t] = true
	}
	for _, t := range required {
		if !tags[t] {
			return false
		}
	}
	return true
}

func participantIDs(participants []models.User) []string {
	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	return ids
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

// isNotFound reports whether err is the already-resolved case that
// teardown races swallow.
func isNotFound(err error) bool {
	return errors.Is(err, models.ErrDocumentNotFound)
}
