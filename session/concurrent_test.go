// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/chowdown/models"
	"github.com/danielhkuo/chowdown/testutil"
)

// TestConcurrentInvitationResponses verifies that simultaneous responses
// from different invitees don't corrupt membership or leave invitations
// behind
func TestConcurrentInvitationResponses(t *testing.T) {
	mgr, st, _ := newTestManager(t, testutil.Restaurants("r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8"))
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, st, "Alice", nil, nil)

	numInvitees := 8
	invitees := make([]models.User, numInvitees)
	inviteeIDs := make([]string, numInvitees)
	for i := range invitees {
		invitees[i] = testutil.CreateTestUser(t, st, fmt.Sprintf("Guest%d", i), nil, nil)
		inviteeIDs[i] = invitees[i].ID
	}

	sess, err := mgr.CreateSession(ctx, alice, inviteeIDs, 0, 0, false)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	// Even invitees accept, odd decline, all at once
	var failures atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < numInvitees; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			key := models.Invitation{ToID: invitees[idx].ID, VotingSessionID: sess.ID}.Key()
			if err := mgr.Respond(ctx, invitees[idx], key, idx%2 == 0); err != nil {
				failures.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if failures.Load() != 0 {
		t.Errorf("Expected 0 failed responses, got %d", failures.Load())
	}

	docs, err := st.Query(ctx, models.CollectionInvitations)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("Expected 0 invitations left, got %d", len(docs))
	}

	for i, invitee := range invitees {
		got, err := mgr.GetUser(ctx, invitee.ID)
		if err != nil {
			t.Fatalf("GetUser() error = %v", err)
		}
		wantActive := 0
		if i%2 == 0 {
			wantActive = 1
		}
		if len(got.ActiveVotingSessions) != wantActive {
			t.Errorf("invitee %d active sessions = %v, want %d entries", i, got.ActiveVotingSessions, wantActive)
		}
	}
}

// TestConcurrentVoting verifies simultaneous ballots from different
// participants land without loss or duplication
func TestConcurrentVoting(t *testing.T) {
	mgr, st, _ := newTestManager(t, testutil.Restaurants("r1", "r2", "r3", "r4", "r5"))
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, st, "Alice", nil, nil)
	numVoters := 4
	voters := make([]models.User, numVoters)
	voterIDs := make([]string, numVoters)
	for i := range voters {
		voters[i] = testutil.CreateTestUser(t, st, fmt.Sprintf("Voter%d", i), nil, nil)
		voterIDs[i] = voters[i].ID
	}

	sess, err := mgr.CreateSession(ctx, alice, voterIDs, 0, 0, false)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	// Alice never votes, so the session cannot conclude mid-test
	restaurants := []string{"r1", "r2", "r3"}
	var successCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for _, id := range restaurants {
				if _, err := mgr.CastVote(ctx, voters[idx], sess.ID, id); err == nil {
					successCount.Add(1)
				}
			}
		}(i)
	}
	wg.Wait()

	want := numVoters * len(restaurants)
	if int(successCount.Load()) != want {
		t.Errorf("Expected %d successful votes, got %d", want, successCount.Load())
	}

	counts, err := mgr.VoteCounts(ctx, sess.ID)
	if err != nil {
		t.Fatalf("VoteCounts() error = %v", err)
	}
	for i, voter := range voters {
		if counts[voter.ID] != len(restaurants) {
			t.Errorf("voter %d cast %d votes, want %d", i, counts[voter.ID], len(restaurants))
		}
	}
}

// TestConcurrentLeaveAfterConclusion verifies that leave requests racing a
// finished session all resolve cleanly
func TestConcurrentLeaveAfterConclusion(t *testing.T) {
	mgr, st, _ := newTestManager(t, testutil.Restaurants("r1", "r2"))
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, st, "Alice", nil, nil)
	bob := testutil.CreateTestUser(t, st, "Bob", nil, nil)
	sess, err := mgr.CreateSession(ctx, alice, []string{bob.ID}, 0, 0, false)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	// Conclude the session outright
	for _, cast := range []struct {
		user models.User
		id   string
	}{
		{alice, "r1"}, {alice, "r2"}, {bob, "r1"}, {bob, "r2"},
	} {
		if _, err := mgr.CastVote(ctx, cast.user, sess.ID, cast.id); err != nil {
			t.Fatalf("CastVote() error = %v", err)
		}
	}

	// Stale clients race to leave the already-deleted session. Each
	// request reloads its user first, as the HTTP layer does.
	var failures atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			u, err := mgr.GetUser(ctx, userID)
			if err != nil {
				failures.Add(1)
				return
			}
			if err := mgr.Leave(ctx, u, sess.ID); err != nil {
				failures.Add(1)
			}
		}([]string{alice.ID, bob.ID}[i%2])
	}
	wg.Wait()

	if failures.Load() != 0 {
		t.Errorf("Expected 0 failed leaves, got %d", failures.Load())
	}

	// State remains as conclusion left it
	for _, u := range []models.User{alice, bob} {
		got, err := mgr.GetUser(ctx, u.ID)
		if err != nil {
			t.Fatalf("GetUser() error = %v", err)
		}
		if len(got.ActiveVotingSessions) != 0 {
			t.Errorf("%s active sessions = %v, want empty", u.Name, got.ActiveVotingSessions)
		}
		if len(got.RestaurantHistory) != 1 {
			t.Errorf("%s history = %v, want one entry", u.Name, got.RestaurantHistory)
		}
	}
}
