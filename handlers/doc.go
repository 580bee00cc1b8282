// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP request handlers.

# Handlers

  - UserHandler: registration, profile, blacklist
  - SessionHandler: session creation, detail, leave, event stream
  - VotingHandler: vote casting
  - InvitationHandler: pending list, accept/decline

# Authentication

Every endpoint except registration requires the X-User-Token header
issued at registration; currentUser resolves it to the stored user.

# Error Mapping

Core error kinds map to statuses in writeError:

	ErrNoUserFound          -> 401
	ErrNotAuthorized        -> 403
	ErrDocumentNotFound     -> 404
	ErrNotACandidate        -> 400
	ErrVotingComplete       -> 409
	ErrAlreadyVoted         -> 409
	ErrNoRestaurantsMatch   -> 422
	ErrNoLocationForAddress -> 422
	anything else           -> 500

# Event Stream

GET /sessions/{id}/events is a Server-Sent Events stream of
participants_changed and session_ended events, closing when the session
ends or the client disconnects.
*/
package handlers
