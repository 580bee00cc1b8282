// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "fmt"

// Document (de)serialization between domain types and the flat key-value
// map shape the store persists. Numbers come back from JSON storage as
// float64 and string lists as []interface{}; the helpers below absorb both.
//
// Constructors validate required identifiers and fail fast instead of
// carrying half-built records around.

// Doc returns the session's persisted map shape.
func (s VotingSession) Doc() map[string]interface{} {
	doc := map[string]interface{}{
		"votesEach":      s.VotesEach,
		"latitude":       s.Latitude,
		"longitude":      s.Longitude,
		"participantIds": toAnySlice(s.ParticipantIDs),
		"restaurantIds":  toAnySlice(s.RestaurantIDs),
	}
	if s.OutcomeID != "" {
		doc["outcomeId"] = s.OutcomeID
	}
	return doc
}

// SessionFromDoc rebuilds a VotingSession from its persisted map shape.
func SessionFromDoc(id string, doc map[string]interface{}) (VotingSession, error) {
	if id == "" {
		return VotingSession{}, fmt.Errorf("voting session document has no id")
	}
	votesEach, ok := docInt(doc, "votesEach")
	if !ok || votesEach <= 0 {
		return VotingSession{}, fmt.Errorf("voting session %s has invalid votesEach", id)
	}
	return VotingSession{
		ID:             id,
		VotesEach:      votesEach,
		Latitude:       docFloat(doc, "latitude"),
		Longitude:      docFloat(doc, "longitude"),
		ParticipantIDs: docStrings(doc, "participantIds"),
		RestaurantIDs:  docStrings(doc, "restaurantIds"),
		OutcomeID:      docString(doc, "outcomeId"),
	}, nil
}

// Doc returns the invitation's persisted map shape.
func (inv Invitation) Doc() map[string]interface{} {
	return map[string]interface{}{
		"fromUserId":      inv.FromUserID,
		"fromName":        inv.FromName,
		"toId":            inv.ToID,
		"votingSessionId": inv.VotingSessionID,
	}
}

// InvitationFromDoc rebuilds an Invitation from its persisted map shape.
func InvitationFromDoc(doc map[string]interface{}) (Invitation, error) {
	inv := Invitation{
		FromUserID:      docString(doc, "fromUserId"),
		FromName:        docString(doc, "fromName"),
		ToID:            docString(doc, "toId"),
		VotingSessionID: docString(doc, "votingSessionId"),
	}
	if inv.ToID == "" || inv.VotingSessionID == "" {
		return Invitation{}, fmt.Errorf("invitation document missing toId or votingSessionId")
	}
	return inv, nil
}

// Doc returns the vote's persisted map shape.
func (v Vote) Doc() map[string]interface{} {
	return map[string]interface{}{
		"voteValue":       v.VoteValue,
		"userId":          v.UserID,
		"restaurantId":    v.RestaurantID,
		"votingSessionId": v.VotingSessionID,
	}
}

// VoteFromDoc rebuilds a Vote from its persisted map shape.
func VoteFromDoc(doc map[string]interface{}) (Vote, error) {
	value, ok := docInt(doc, "voteValue")
	if !ok || value <= 0 {
		return Vote{}, fmt.Errorf("vote document has invalid voteValue")
	}
	v := Vote{
		VoteValue:       value,
		UserID:          docString(doc, "userId"),
		RestaurantID:    docString(doc, "restaurantId"),
		VotingSessionID: docString(doc, "votingSessionId"),
	}
	if v.UserID == "" || v.RestaurantID == "" || v.VotingSessionID == "" {
		return Vote{}, fmt.Errorf("vote document missing userId, restaurantId, or votingSessionId")
	}
	return v, nil
}

// Doc returns the user's persisted map shape.
func (u User) Doc() map[string]interface{} {
	return map[string]interface{}{
		"name":                   u.Name,
		"token":                  u.Token,
		"blacklistedRestaurants": toAnySlice(u.BlacklistedRestaurants),
		"dietaryTags":            toAnySlice(u.DietaryTags),
		"activeVotingSessions":   toAnySlice(u.ActiveVotingSessions),
		"restaurantHistory":      toAnySlice(u.RestaurantHistory),
	}
}

// UserFromDoc rebuilds a User from its persisted map shape.
func UserFromDoc(id string, doc map[string]interface{}) (User, error) {
	if id == "" {
		return User{}, fmt.Errorf("user document has no id")
	}
	name := docString(doc, "name")
	if name == "" {
		return User{}, fmt.Errorf("user %s has no name", id)
	}
	return User{
		ID:                     id,
		Name:                   name,
		Token:                  docString(doc, "token"),
		BlacklistedRestaurants: docStrings(doc, "blacklistedRestaurants"),
		DietaryTags:            docStrings(doc, "dietaryTags"),
		ActiveVotingSessions:   docStrings(doc, "activeVotingSessions"),
		RestaurantHistory:      docStrings(doc, "restaurantHistory"),
	}, nil
}

// Map helpers

func docString(doc map[string]interface{}, key string) string {
	if s, ok := doc[key].(string); ok {
		return s
	}
	return ""
}

func docFloat(doc map[string]interface{}, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func docInt(doc map[string]interface{}, key string) (int, bool) {
	switch v := doc[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func docStrings(doc map[string]interface{}, key string) []string {
	switch v := doc[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func toAnySlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
