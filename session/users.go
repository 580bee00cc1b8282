// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"fmt"

	"github.com/danielhkuo/chowdown/auth"
	"github.com/danielhkuo/chowdown/models"
	"github.com/danielhkuo/chowdown/store"
)

// RegisterUser creates a user profile and issues their API token.
func (m *Manager) RegisterUser(ctx context.Context, name string, blacklist, dietaryTags []string) (models.User, error) {
	token, err := auth.GenerateUserToken()
	if err != nil {
		return models.User{}, fmt.Errorf("generate user token: %w", err)
	}

	user := models.User{
		Name:                   name,
		Token:                  token,
		BlacklistedRestaurants: blacklist,
		DietaryTags:            dietaryTags,
	}
	user.ID, err = m.store.Create(ctx, models.CollectionUsers, user.Doc())
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// GetUser loads a user by id.
func (m *Manager) GetUser(ctx context.Context, id string) (models.User, error) {
	doc, err := m.store.Get(ctx, models.CollectionUsers, id)
	if err != nil {
		return models.User{}, err
	}
	return models.UserFromDoc(doc.ID, doc.Fields)
}

// UserByToken resolves an API token to its user. Unknown tokens return
// models.ErrNoUserFound.
func (m *Manager) UserByToken(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, models.ErrNoUserFound
	}
	docs, err := m.store.Query(ctx, models.CollectionUsers, store.Eq("token", token))
	if err != nil {
		return models.User{}, err
	}
	if len(docs) == 0 {
		return models.User{}, models.ErrNoUserFound
	}
	return models.UserFromDoc(docs[0].ID, docs[0].Fields)
}

// UpdateBlacklist replaces the user's blacklisted restaurant set.
func (m *Manager) UpdateBlacklist(ctx context.Context, user models.User, blacklist []string) (models.User, error) {
	user.BlacklistedRestaurants = blacklist
	if err := m.store.Set(ctx, models.CollectionUsers, user.ID, user.Doc()); err != nil {
		return models.User{}, err
	}
	return user, nil
}
