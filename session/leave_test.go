// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/chowdown/models"
	"github.com/danielhkuo/chowdown/testutil"
)

func TestLeaveRemovesParticipant(t *testing.T) {
	mgr, st, _ := newTestManager(t, testutil.Restaurants("r1", "r2"))
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, st, "Alice", nil, nil)
	bob := testutil.CreateTestUser(t, st, "Bob", nil, nil)
	sess, err := mgr.CreateSession(ctx, alice, []string{bob.ID}, 0, 0, false)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if err := mgr.Leave(ctx, bob, sess.ID); err != nil {
		t.Fatalf("Leave() error = %v", err)
	}

	got, err := mgr.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if len(got.ParticipantIDs) != 1 || got.ParticipantIDs[0] != alice.ID {
		t.Errorf("participants = %v, want only %s", got.ParticipantIDs, alice.ID)
	}
}

func TestLastLeaveAbandonsSession(t *testing.T) {
	mgr, st, rl := newTestManager(t, testutil.Restaurants("r1", "r2", "r3"))
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, st, "Alice", nil, nil)
	sess, err := mgr.CreateSession(ctx, alice, nil, 0, 0, false)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	// A partial ballot exists when the session is abandoned
	if _, err := mgr.CastVote(ctx, alice, sess.ID, "r1"); err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}

	if err := mgr.Leave(ctx, alice, sess.ID); err != nil {
		t.Fatalf("Leave() error = %v", err)
	}

	if _, err := mgr.GetSession(ctx, sess.ID); !errors.Is(err, models.ErrDocumentNotFound) {
		t.Errorf("GetSession() after abandonment error = %v, want ErrDocumentNotFound", err)
	}
	votes, err := st.Query(ctx, models.CollectionVotes)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(votes) != 0 {
		t.Errorf("votes remaining = %d, want 0", len(votes))
	}

	// No winner: nothing lands in history
	got, err := mgr.GetUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if len(got.RestaurantHistory) != 0 {
		t.Errorf("history = %v, want empty after abandonment", got.RestaurantHistory)
	}
	if len(got.ActiveVotingSessions) != 0 {
		t.Errorf("active sessions = %v, want empty", got.ActiveVotingSessions)
	}

	events := rl.Events()
	last := events[len(events)-1]
	if last.Name != "session_concluded" || last.OutcomeID != "" {
		t.Errorf("last relay event = %+v, want session_concluded with no outcome", last)
	}
}

func TestLeaveConcludesWhenRemainderIsDone(t *testing.T) {
	mgr, st, _ := newTestManager(t, testutil.Restaurants("r1", "r2"))
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, st, "Alice", nil, nil)
	bob := testutil.CreateTestUser(t, st, "Bob", nil, nil)
	// votesEach = 2
	sess, err := mgr.CreateSession(ctx, alice, []string{bob.ID}, 0, 0, false)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	// Alice finishes her ballot; Bob's departure leaves nothing pending
	if _, err := mgr.CastVote(ctx, alice, sess.ID, "r1"); err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}
	if _, err := mgr.CastVote(ctx, alice, sess.ID, "r2"); err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}

	if err := mgr.Leave(ctx, bob, sess.ID); err != nil {
		t.Fatalf("Leave() error = %v", err)
	}

	if _, err := mgr.GetSession(ctx, sess.ID); !errors.Is(err, models.ErrDocumentNotFound) {
		t.Errorf("GetSession() error = %v, want ErrDocumentNotFound after conclusion", err)
	}

	got, err := mgr.GetUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if len(got.RestaurantHistory) != 1 || got.RestaurantHistory[0] != "r1" {
		t.Errorf("history = %v, want [r1]", got.RestaurantHistory)
	}

	// Bob already left; the winner is not part of his history
	gotBob, err := mgr.GetUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if len(gotBob.RestaurantHistory) != 0 {
		t.Errorf("departed user history = %v, want empty", gotBob.RestaurantHistory)
	}
}

func TestLeaveAfterSessionGone(t *testing.T) {
	mgr, st, _ := newTestManager(t, testutil.Restaurants("r1"))
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, st, "Alice", nil, nil)
	alice.ActiveVotingSessions = []string{"stale"}
	if err := st.Set(ctx, models.CollectionUsers, alice.ID, alice.Doc()); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// The session concluded elsewhere; leaving just reconciles the list
	if err := mgr.Leave(ctx, alice, "stale"); err != nil {
		t.Fatalf("Leave() error = %v", err)
	}
	got, err := mgr.GetUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if len(got.ActiveVotingSessions) != 0 {
		t.Errorf("active sessions = %v, want empty", got.ActiveVotingSessions)
	}
}

func TestLeaveByNonParticipant(t *testing.T) {
	mgr, st, _ := newTestManager(t, testutil.Restaurants("r1", "r2"))
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, st, "Alice", nil, nil)
	carol := testutil.CreateTestUser(t, st, "Carol", nil, nil)

	sess, err := mgr.CreateSession(ctx, alice, nil, 0, 0, false)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if err := mgr.Leave(ctx, carol, sess.ID); !errors.Is(err, models.ErrNotAuthorized) {
		t.Fatalf("Leave() error = %v, want ErrNotAuthorized", err)
	}

	got, err := mgr.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if len(got.ParticipantIDs) != 1 || got.ParticipantIDs[0] != alice.ID {
		t.Errorf("participants = %v, want just the initiator", got.ParticipantIDs)
	}
}
