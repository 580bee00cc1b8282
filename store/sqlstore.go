// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/chowdown/models"
)

// subscriberBuffer is each subscriber channel's capacity. A subscriber that
// falls this far behind loses events (logged), it is never allowed to block
// writers.
const subscriberBuffer = 32

// SQLStore implements Store on top of database/sql. Documents live in a
// single table keyed by (collection, id) with a JSON payload; filtering
// happens in-process after decoding. Change subscriptions are in-process:
// the server is the single writer, so every mutation passes through here.
type SQLStore struct {
	db *sql.DB

	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
}

type subscriber struct {
	collection string
	filters    []Filter
	ch         chan ChangeEvent
}

// NewSQLStore wraps an open database connection.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		db:   db,
		subs: make(map[int]*subscriber),
	}
}

// Create inserts a document under a generated id.
func (s *SQLStore) Create(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	id := uuid.NewString()
	payload, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO document (collection, id, payload, updated_at)
		VALUES ($1, $2, $3, $4)
	`, collection, id, string(payload), time.Now())
	if err != nil {
		return "", fmt.Errorf("%w: insert into %s: %v", models.ErrStoreWrite, collection, err)
	}

	s.publish(ChangeEvent{Type: Added, Collection: collection, ID: id, Fields: fields})
	return id, nil
}

// Set creates or replaces the document with the given id.
func (s *SQLStore) Set(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	// Check existence first so subscribers see Added vs Modified.
	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM document WHERE collection = $1 AND id = $2)
	`, collection, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%w: check %s/%s: %v", models.ErrStoreRead, collection, id, err)
	}

	if exists {
		_, err = s.db.ExecContext(ctx, `
			UPDATE document SET payload = $1, updated_at = $2
			WHERE collection = $3 AND id = $4
		`, string(payload), time.Now(), collection, id)
	} else {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO document (collection, id, payload, updated_at)
			VALUES ($1, $2, $3, $4)
		`, collection, id, string(payload), time.Now())
	}
	if err != nil {
		return fmt.Errorf("%w: set %s/%s: %v", models.ErrStoreWrite, collection, id, err)
	}

	changeType := Added
	if exists {
		changeType = Modified
	}
	s.publish(ChangeEvent{Type: changeType, Collection: collection, ID: id, Fields: fields})
	return nil
}

// Get returns the document with the given id.
func (s *SQLStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM document WHERE collection = $1 AND id = $2
	`, collection, id).Scan(&payload)

	if err == sql.ErrNoRows {
		return Document{}, fmt.Errorf("%w: %s/%s", models.ErrDocumentNotFound, collection, id)
	}
	if err != nil {
		return Document{}, fmt.Errorf("%w: get %s/%s: %v", models.ErrStoreRead, collection, id, err)
	}

	fields, err := decodePayload(payload)
	if err != nil {
		return Document{}, fmt.Errorf("%w: decode %s/%s: %v", models.ErrStoreRead, collection, id, err)
	}
	return Document{ID: id, Fields: fields}, nil
}

// Query returns all documents in the collection matching every filter.
func (s *SQLStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, payload FROM document WHERE collection = $1 ORDER BY id
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", models.ErrStoreRead, collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", models.ErrStoreRead, collection, err)
		}
		fields, err := decodePayload(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: decode %s/%s: %v", models.ErrStoreRead, collection, id, err)
		}
		if matchAll(fields, filters) {
			docs = append(docs, Document{ID: id, Fields: fields})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", models.ErrStoreRead, collection, err)
	}
	return docs, nil
}

// Delete removes the document with the given id. Missing documents return
// models.ErrDocumentNotFound so race losers can recognize and swallow it.
func (s *SQLStore) Delete(ctx context.Context, collection, id string) error {
	// Fetch the payload first: Removed events carry the last known fields.
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM document WHERE collection = $1 AND id = $2
	`, collection, id).Scan(&payload)

	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s/%s", models.ErrDocumentNotFound, collection, id)
	}
	if err != nil {
		return fmt.Errorf("%w: get %s/%s: %v", models.ErrStoreRead, collection, id, err)
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM document WHERE collection = $1 AND id = $2
	`, collection, id)
	if err != nil {
		return fmt.Errorf("%w: delete %s/%s: %v", models.ErrStoreWrite, collection, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Lost a delete race between the read and the delete.
		return fmt.Errorf("%w: %s/%s", models.ErrDocumentNotFound, collection, id)
	}

	fields, err := decodePayload(payload)
	if err != nil {
		fields = map[string]interface{}{}
	}
	s.publish(ChangeEvent{Type: Removed, Collection: collection, ID: id, Fields: fields})
	return nil
}

// Subscribe streams change events for matching documents until ctx is
// cancelled.
func (s *SQLStore) Subscribe(ctx context.Context, collection string, filters ...Filter) <-chan ChangeEvent {
	sub := &subscriber{
		collection: collection,
		filters:    filters,
		ch:         make(chan ChangeEvent, subscriberBuffer),
	}

	s.mu.Lock()
	key := s.nextID
	s.nextID++
	s.subs[key] = sub
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, key)
		s.mu.Unlock()
		close(sub.ch)
	}()

	return sub.ch
}

// publish fans an event out to every matching subscriber.
func (s *SQLStore) publish(ev ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subs {
		if sub.collection != ev.Collection {
			continue
		}
		if !matchAll(ev.Fields, sub.filters) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			slog.Warn("dropping change event for slow subscriber",
				"collection", ev.Collection, "doc_id", ev.ID, "type", ev.Type.String())
		}
	}
}

func decodePayload(payload string) (map[string]interface{}, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
