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

// CastResult reports the outcome of a cast vote, including whether it
// completed the session.
type CastResult struct {
	Vote           models.Vote
	VotesRemaining int
	Concluded      bool
	OutcomeID      string
}

// CastVote records one ranked vote. The caller picks the restaurant; the
// manager stamps the weight: a user's Nth vote is worth votesEach-(N-1),
// so each successive vote counts for less.
func (m *Manager) CastVote(ctx context.Context, user models.User, sessionID, restaurantID string) (CastResult, error) {
	sess, err := m.GetSession(ctx, sessionID)
	if err != nil {
		return CastResult{}, err
	}

	if !sess.HasParticipant(user.ID) {
		return CastResult{}, fmt.Errorf("%w: user %s is not in session %s", models.ErrNotAuthorized, user.ID, sessionID)
	}
	if !sess.HasCandidate(restaurantID) {
		return CastResult{}, fmt.Errorf("%w: %s", models.ErrNotACandidate, restaurantID)
	}

	cast, err := m.userVotes(ctx, user.ID, sessionID)
	if err != nil {
		return CastResult{}, err
	}
	if len(cast) >= sess.VotesEach {
		return CastResult{}, models.ErrVotingComplete
	}
	for _, v := range cast {
		if v.RestaurantID == restaurantID {
			return CastResult{}, fmt.Errorf("%w: %s", models.ErrAlreadyVoted, restaurantID)
		}
	}

	vote := models.Vote{
		VoteValue:       sess.VotesEach - len(cast),
		UserID:          user.ID,
		RestaurantID:    restaurantID,
		VotingSessionID: sessionID,
	}
	if _, err := m.store.Create(ctx, models.CollectionVotes, vote.Doc()); err != nil {
		return CastResult{}, err
	}

	slog.Info("vote cast",
		"session_id", sessionID,
		"user_id", user.ID,
		"restaurant_id", restaurantID,
		"vote_value", vote.VoteValue,
	)

	result := CastResult{
		Vote:           vote,
		VotesRemaining: sess.VotesEach - len(cast) - 1,
	}
	result.Concluded, result.OutcomeID, err = m.checkConclusion(ctx, sess)
	if err != nil {
		// The vote is already durable; the next cast or leave re-runs
		// the conclusion check.
		slog.Error("conclusion check failed after vote",
			"session_id", sessionID, "user_id", user.ID, "error", err)
		result.Concluded, result.OutcomeID = false, ""
	}
	return result, nil
}

// VoteCounts returns how many votes each user has cast in the session.
func (m *Manager) VoteCounts(ctx context.Context, sessionID string) (map[string]int, error) {
	votes, err := m.sessionVotes(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, v := range votes {
		counts[v.UserID]++
	}
	return counts, nil
}

// checkConclusion concludes the session once every current participant has
// spent their full allotment. Votes from departed participants still count
// toward the total, so the check is >= rather than ==.
func (m *Manager) checkConclusion(ctx context.Context, sess models.VotingSession) (bool, string, error) {
	votes, err := m.sessionVotes(ctx, sess.ID)
	if err != nil {
		return false, "", err
	}
	if len(votes) < len(sess.ParticipantIDs)*sess.VotesEach {
		return false, "", nil
	}

	outcomeID, concluded, err := m.concludeSession(ctx, sess.ID)
	if err != nil {
		return false, "", err
	}
	return concluded, outcomeID, nil
}

// concludeSession tallies the winner and tears the session down in strict
// order: outcome write, per-user history and membership updates, vote
// deletes, session delete. Subscribers observing the session's deletion
// are therefore guaranteed the per-user updates already landed.
//
// Multiple clients may race to conclude; every step treats "document
// already gone" as someone else finished first and succeeds silently.
func (m *Manager) concludeSession(ctx context.Context, sessionID string) (string, bool, error) {
	// Re-read the session: a race loser finds it already deleted.
	sess, err := m.GetSession(ctx, sessionID)
	if isNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	votes, err := m.sessionVotes(ctx, sessionID)
	if err != nil {
		return "", false, err
	}
	winner, ok := Winner(votes)
	if !ok {
		return "", false, fmt.Errorf("session %s has no votes to tally", sessionID)
	}

	sess.OutcomeID = winner
	if err := m.store.Set(ctx, models.CollectionSessions, sess.ID, sess.Doc()); err != nil {
		return "", false, err
	}

	for _, userID := range sess.ParticipantIDs {
		if err := m.finishForUser(ctx, userID, sess.ID, winner); err != nil {
			return "", false, err
		}
	}

	if err := m.deleteSessionRecords(ctx, sess.ID); err != nil {
		return "", false, err
	}

	m.relay.Publish(ctx, relay.Event{
		Name:      relay.EventSessionConcluded,
		SessionID: sess.ID,
		OutcomeID: winner,
	})
	slog.Info("session concluded", "session_id", sess.ID, "outcome_id", winner)
	return winner, true, nil
}

// finishForUser appends the winner to the user's history and drops the
// session from their active list.
func (m *Manager) finishForUser(ctx context.Context, userID, sessionID, winner string) error {
	user, err := m.GetUser(ctx, userID)
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	user.RestaurantHistory = append(user.RestaurantHistory, winner)
	user.ActiveVotingSessions = removeString(user.ActiveVotingSessions, sessionID)
	return m.store.Set(ctx, models.CollectionUsers, user.ID, user.Doc())
}

// deleteSessionRecords removes the session's votes and unanswered
// invitations, then the session itself. Already-deleted documents are a
// race loser's view and ignored.
func (m *Manager) deleteSessionRecords(ctx context.Context, sessionID string) error {
	docs, err := m.store.Query(ctx, models.CollectionVotes, store.Eq("votingSessionId", sessionID))
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := m.store.Delete(ctx, models.CollectionVotes, doc.ID); err != nil && !isNotFound(err) {
			return err
		}
	}
	invs, err := m.store.Query(ctx, models.CollectionInvitations, store.Eq("votingSessionId", sessionID))
	if err != nil {
		return err
	}
	for _, doc := range invs {
		if err := m.store.Delete(ctx, models.CollectionInvitations, doc.ID); err != nil && !isNotFound(err) {
			return err
		}
	}
	if err := m.store.Delete(ctx, models.CollectionSessions, sessionID); err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

func (m *Manager) userVotes(ctx context.Context, userID, sessionID string) ([]models.Vote, error) {
	docs, err := m.store.Query(ctx, models.CollectionVotes,
		store.Eq("userId", userID),
		store.Eq("votingSessionId", sessionID),
	)
	if err != nil {
		return nil, err
	}
	return votesFromDocs(docs)
}

func (m *Manager) sessionVotes(ctx context.Context, sessionID string) ([]models.Vote, error) {
	docs, err := m.store.Query(ctx, models.CollectionVotes, store.Eq("votingSessionId", sessionID))
	if err != nil {
		return nil, err
	}
	return votesFromDocs(docs)
}

func votesFromDocs(docs []store.Document) ([]models.Vote, error) {
	votes := make([]models.Vote, 0, len(docs))
	for _, doc := range docs {
		v, err := models.VoteFromDoc(doc.Fields)
		if err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, nil
}
