// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import "context"

// Document is a stored record: a generated or caller-chosen id plus a flat
// key-value payload. The store does not interpret fields; (de)serialization
// to domain types lives in the models package.
type Document struct {
	ID     string
	Fields map[string]interface{}
}

// FilterOp selects how a Filter matches a field.
type FilterOp int

const (
	// OpEq matches documents whose field equals the value.
	OpEq FilterOp = iota
	// OpContains matches documents whose array field contains the value.
	OpContains
	// OpIn matches documents whose field equals any of the values.
	OpIn
)

// Filter is a single field predicate. Filters in a query are ANDed.
type Filter struct {
	Field  string
	Op     FilterOp
	Value  interface{}
	Values []string
}

// Eq builds an equality filter.
func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpEq, Value: value}
}

// Contains builds an array-membership filter.
func Contains(field, value string) Filter {
	return Filter{Field: field, Op: OpContains, Value: value}
}

// In builds a value-in-set filter.
func In(field string, values ...string) Filter {
	return Filter{Field: field, Op: OpIn, Values: values}
}

// ChangeType classifies a ChangeEvent.
type ChangeType int

const (
	Added ChangeType = iota
	Modified
	Removed
)

func (t ChangeType) String() string {
	switch t {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// ChangeEvent is pushed to subscribers when a matching document changes.
// For Removed events, Fields holds the document's last known payload so
// subscribers can still identify what disappeared.
type ChangeEvent struct {
	Type       ChangeType
	Collection string
	ID         string
	Fields     map[string]interface{}
}

// Store is collection-style document storage: point lookups, filtered
// queries, atomic create/set/delete, and subscribe-to-query change streams.
//
// Get and Delete return models.ErrDocumentNotFound (wrapped) for missing
// documents; callers in teardown races treat that as already-resolved.
type Store interface {
	// Create inserts a document under a generated id and returns the id.
	Create(ctx context.Context, collection string, fields map[string]interface{}) (string, error)

	// Set creates or replaces the document with the given id.
	Set(ctx context.Context, collection, id string, fields map[string]interface{}) error

	// Get returns the document with the given id.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Query returns all documents in the collection matching every filter.
	Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error)

	// Delete removes the document with the given id.
	Delete(ctx context.Context, collection, id string) error

	// Subscribe streams change events for documents matching the filters
	// until ctx is cancelled. The returned channel is closed on cancel.
	Subscribe(ctx context.Context, collection string, filters ...Filter) <-chan ChangeEvent
}

// Match reports whether a document payload satisfies the filter.
func (f Filter) Match(fields map[string]interface{}) bool {
	switch f.Op {
	case OpEq:
		return valueEqual(fields[f.Field], f.Value)
	case OpContains:
		items, ok := fields[f.Field].([]interface{})
		if !ok {
			return false
		}
		for _, item := range items {
			if valueEqual(item, f.Value) {
				return true
			}
		}
		return false
	case OpIn:
		for _, v := range f.Values {
			if valueEqual(fields[f.Field], v) {
				return true
			}
		}
		return false
	}
	return false
}

func matchAll(fields map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		if !f.Match(fields) {
			return false
		}
	}
	return true
}

// valueEqual compares payload values loosely enough to survive a JSON
// round-trip (ints become float64 on read).
func valueEqual(a, b interface{}) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
		return false
	}
	return a == b
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
