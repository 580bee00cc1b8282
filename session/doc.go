// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session implements the group voting session protocol.

# Lifecycle

A session is created by an initiator, stays open while votes accumulate,
and ends either concluded (winner decided, session deleted) or abandoned
(last participant left, no outcome).

	sess, err := mgr.CreateSession(ctx, initiator, inviteeIDs, lat, lng, dietary)
	err = mgr.Respond(ctx, invitee, invitationKey, true)
	result, err := mgr.CastVote(ctx, user, sess.ID, restaurantID)
	err = mgr.Leave(ctx, user, sess.ID)

# Candidate Set

Creation queries the catalog near the location and filters, in order:
restaurants blacklisted by any participant, dietary constraints (when
requested and constraint data exists), and restaurants known to be
closed. An empty result fails with models.ErrNoRestaurantsMatch and no
session is persisted.

# Vote Allotment

	votesEach = min(candidateCount, max(inviteeCount+1, 5))

Each participant's Nth vote is worth votesEach-(N-1): first vote counts
most. A session concludes once total votes reach participants x
votesEach; the winner is the restaurant with the highest weight sum,
exact ties resolving to the lowest restaurant id.

# Teardown Ordering

Conclusion writes in strict sequence: outcome on the session document,
per-user history and membership updates, vote deletions, session
deletion. The store is linearizable per document, so any client that
observes the session deletion can trust the per-user updates landed.
Concurrent conclusion attempts are expected; every step treats an
already-deleted document as another client having finished and succeeds
silently.

# Watching

WatchSession digests store change events into participant refreshes and
the end-of-session signal; WatchInvitations streams a user's incoming
invitations. Both close when the context is cancelled.
*/
package session
