// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides the session store: collection-style document
storage with realtime change subscriptions.

# Model

Documents are flat key-value maps identified by (collection, id). The
store never interprets payloads; domain (de)serialization lives in the
models package.

# Operations

	id, err := st.Create(ctx, "votes", fields)        // generated id
	err = st.Set(ctx, "invitations", key, fields)     // explicit key
	doc, err := st.Get(ctx, "voting_sessions", id)
	docs, err := st.Query(ctx, "votes", store.Eq("votingSessionId", id))
	err = st.Delete(ctx, "votes", id)

Missing documents surface models.ErrDocumentNotFound; the session core
swallows it during teardown races.

# Subscriptions

Subscribe returns a channel of ChangeEvent (Added, Modified, Removed)
for documents matching a filter set:

	events := st.Subscribe(ctx, "invitations", store.Eq("votingSessionId", id))
	for ev := range events { ... }

Removed events carry the document's last known payload. Subscriptions
are in-process: the API server is the store's single writer, so every
mutation is observed. Slow subscribers lose events rather than blocking
writers.

# Backend

SQLStore stores payloads as JSON in a single table and works against
PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite). Filters are applied
in-process after decoding; collections here are small (one group's
sessions, invitations, and votes).
*/
package store
