// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Store collection names
const (
	CollectionUsers       = "users"
	CollectionSessions    = "voting_sessions"
	CollectionInvitations = "invitations"
	CollectionVotes       = "votes"
)

// Request types

type RegisterUserRequest struct {
	Name                   string   `json:"name"`
	BlacklistedRestaurants []string `json:"blacklisted_restaurants,omitempty"`
	DietaryTags            []string `json:"dietary_tags,omitempty"`
}

type UpdateBlacklistRequest struct {
	BlacklistedRestaurants []string `json:"blacklisted_restaurants"`
}

type CreateSessionRequest struct {
	InviteeIDs    []string `json:"invitee_ids"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Address       string   `json:"address,omitempty"`
	DietaryFilter bool     `json:"dietary_filter"`
}

type CastVoteRequest struct {
	RestaurantID string `json:"restaurant_id"`
}

type RespondInvitationRequest struct {
	Accept bool `json:"accept"`
}

// Response types

type RegisterUserResponse struct {
	UserID    string `json:"user_id"`
	UserToken string `json:"user_token"`
}

type CreateSessionResponse struct {
	Session VotingSession `json:"session"`
}

type CastVoteResponse struct {
	VoteValue      int    `json:"vote_value"`
	VotesRemaining int    `json:"votes_remaining"`
	Concluded      bool   `json:"concluded"`
	OutcomeID      string `json:"outcome_id,omitempty"`
}

type SessionDetailResponse struct {
	Session    VotingSession  `json:"session"`
	VoteCounts map[string]int `json:"vote_counts"` // user_id -> votes cast so far
}

type InvitationListResponse struct {
	Invitations []Invitation `json:"invitations"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type User struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Token                  string   `json:"-"` // Never expose in JSON
	BlacklistedRestaurants []string `json:"blacklisted_restaurants,omitempty"`
	DietaryTags            []string `json:"dietary_tags,omitempty"`
	ActiveVotingSessions   []string `json:"active_voting_sessions,omitempty"`
	RestaurantHistory      []string `json:"restaurant_history,omitempty"`
}

// VotingSession is the central aggregate: a group of participants voting on
// a fixed candidate set of restaurants. VotesEach, the location, and the
// candidate set are immutable after creation; ParticipantIDs shrinks as
// participants leave; OutcomeID is set exactly once at conclusion.
type VotingSession struct {
	ID             string   `json:"id"`
	VotesEach      int      `json:"votes_each"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	ParticipantIDs []string `json:"participant_ids"`
	RestaurantIDs  []string `json:"restaurant_ids"`
	OutcomeID      string   `json:"outcome_id,omitempty"`
}

// HasParticipant reports whether the user is currently in the session.
func (s VotingSession) HasParticipant(userID string) bool {
	for _, id := range s.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasCandidate reports whether the restaurant is in the candidate set.
func (s VotingSession) HasCandidate(restaurantID string) bool {
	for _, id := range s.RestaurantIDs {
		if id == restaurantID {
			return true
		}
	}
	return false
}

// Invitation is a pending request for a user to join a session. At most one
// exists per (invitee, session); deleting it is the response signal other
// participants react to.
type Invitation struct {
	FromUserID      string `json:"from_user_id"`
	FromName        string `json:"from_name"`
	ToID            string `json:"to_id"`
	VotingSessionID string `json:"voting_session_id"`
}

// Key returns the invitation's identity key in the store.
func (inv Invitation) Key() string {
	return inv.ToID + "-" + inv.VotingSessionID
}

// Vote is immutable once cast. VoteValue is the rank weight: a user's Nth
// vote in a session is worth votesEach-(N-1).
type Vote struct {
	VoteValue       int    `json:"vote_value"`
	UserID          string `json:"user_id"`
	RestaurantID    string `json:"restaurant_id"`
	VotingSessionID string `json:"voting_session_id"`
}

// Restaurant is a record from the catalog service. Open is nil when the
// catalog does not report open/closed status.
type Restaurant struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Rating    float64  `json:"rating"`
	Open      *bool    `json:"open,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}
