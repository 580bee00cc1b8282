// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Typed error kinds returned by the session core. Callers match with
// errors.Is; store transport failures are wrapped around ErrStoreRead or
// ErrStoreWrite so the underlying error stays inspectable.
var (
	// ErrNoUserFound means no authenticated user context (bad token).
	ErrNoUserFound = errors.New("no user found")

	// ErrNoRestaurantsMatch means the candidate set was empty after filtering.
	ErrNoRestaurantsMatch = errors.New("no restaurants match")

	// ErrNotAuthorized means the acting user is not a session participant.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrVotingComplete means the user already cast their full allotment.
	ErrVotingComplete = errors.New("voting complete")

	// ErrAlreadyVoted means the user already voted for that restaurant.
	ErrAlreadyVoted = errors.New("already voted")

	// ErrNotACandidate means the restaurant is not in the session's candidate set.
	ErrNotACandidate = errors.New("restaurant is not a candidate")

	// ErrStoreWrite wraps a failed store create/set/delete.
	ErrStoreWrite = errors.New("store write failed")

	// ErrStoreRead wraps a failed store get/query.
	ErrStoreRead = errors.New("store read failed")

	// ErrDocumentNotFound means the document does not exist. During teardown
	// races this is swallowed and treated as success, never surfaced.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNoLocationForAddress means geocoding found nothing for the address.
	ErrNoLocationForAddress = errors.New("no location for address")
)
