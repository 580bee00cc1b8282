// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterUserRequest: name, blacklisted_restaurants, dietary_tags
  - UpdateBlacklistRequest: blacklisted_restaurants
  - CreateSessionRequest: invitee_ids, latitude/longitude or address, dietary_filter
  - CastVoteRequest: restaurant_id
  - RespondInvitationRequest: accept

# Response Types

Types for JSON responses:

  - RegisterUserResponse: user_id, user_token
  - CreateSessionResponse: session
  - CastVoteResponse: vote_value, votes_remaining, concluded, outcome_id
  - SessionDetailResponse: session, vote_counts
  - InvitationListResponse: invitations
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - User: profile, blacklist, dietary tags, active sessions, history
  - VotingSession: the central voting aggregate
  - Invitation: pending join request, keyed by (invitee, session)
  - Vote: immutable weighted vote
  - Restaurant: catalog record

# Document Shape

The store persists flat key-value maps. Each persisted type carries a
Doc() method and a FromDoc constructor:

	doc := session.Doc()
	session, err := models.SessionFromDoc(id, doc)

Constructors validate required identifiers and fail fast.

# Error Kinds

Sentinel errors matched with errors.Is:

	ErrNoUserFound, ErrNoRestaurantsMatch, ErrNotAuthorized,
	ErrVotingComplete, ErrAlreadyVoted, ErrNotACandidate,
	ErrStoreWrite, ErrStoreRead, ErrDocumentNotFound,
	ErrNoLocationForAddress
*/
package models
