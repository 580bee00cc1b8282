// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/chowdown/auth"
	"github.com/danielhkuo/chowdown/catalog"
	"github.com/danielhkuo/chowdown/cliparse"
	"github.com/danielhkuo/chowdown/db"
	"github.com/danielhkuo/chowdown/models"
	"github.com/danielhkuo/chowdown/relay"
	"github.com/danielhkuo/chowdown/store"
)

// SetupTestDB creates a fresh sqlite database in a test temp dir with the
// full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Serialize access; sqlite tolerates one writer.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// SetupTestStore creates a document store backed by a fresh test database.
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()
	return store.NewSQLStore(SetupTestDB(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3319,
		DatabaseURL:    "file:test.db",
		DatabaseType:   "sqlite",
		CatalogBaseURL: "http://catalog.test",
	}
}

// CreateTestUser persists a user with a fresh token and returns it.
func CreateTestUser(t *testing.T, st store.Store, name string, blacklist, dietaryTags []string) models.User {
	t.Helper()

	token, err := auth.GenerateUserToken()
	if err != nil {
		t.Fatalf("Failed to generate user token: %v", err)
	}
	user := models.User{
		Name:                   name,
		Token:                  token,
		BlacklistedRestaurants: blacklist,
		DietaryTags:            dietaryTags,
	}
	user.ID, err = st.Create(context.Background(), models.CollectionUsers, user.Doc())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// Restaurants builds catalog records with the given ids, all open.
func Restaurants(ids ...string) []models.Restaurant {
	open := true
	out := make([]models.Restaurant, len(ids))
	for i, id := range ids {
		out[i] = models.Restaurant{
			ID:     id,
			Name:   "Restaurant " + id,
			Rating: 4.0,
			Open:   &open,
		}
	}
	return out
}

// StubCatalog is a canned catalog client.
type StubCatalog struct {
	RestaurantList []models.Restaurant
	SearchErr      error
	GeoLat, GeoLng float64
	GeoErr         error
}

func (c *StubCatalog) SearchNear(ctx context.Context, latitude, longitude float64, filters catalog.SearchFilters) ([]models.Restaurant, error) {
	if c.SearchErr != nil {
		return nil, c.SearchErr
	}
	return c.RestaurantList, nil
}

func (c *StubCatalog) Geocode(ctx context.Context, address string) (float64, float64, error) {
	if c.GeoErr != nil {
		return 0, 0, c.GeoErr
	}
	return c.GeoLat, c.GeoLng, nil
}

// RecordingRelay captures published events for assertions.
type RecordingRelay struct {
	mu     sync.Mutex
	events []relay.Event
}

func (r *RecordingRelay) Publish(ctx context.Context, ev relay.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the captured events.
func (r *RecordingRelay) Events() []relay.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]relay.Event, len(r.events))
	copy(out, r.events)
	return out
}

// EventNames returns the captured event names in order.
func (r *RecordingRelay) EventNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, ev := range r.events {
		names[i] = ev.Name
	}
	return names
}
