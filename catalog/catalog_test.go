// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/chowdown/models"
)

func TestSearchNear(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"businesses": [
				{
					"id": "taco-haven",
					"name": "Taco Haven",
					"rating": 4.5,
					"is_closed": false,
					"coordinates": {"latitude": 32.9, "longitude": -96.7},
					"categories": [{"alias": "mexican"}, {"alias": "tacos"}]
				},
				{
					"id": "late-night-diner",
					"name": "Late Night Diner",
					"rating": 3.0,
					"is_closed": true,
					"coordinates": {"latitude": 32.8, "longitude": -96.6},
					"categories": []
				},
				{
					"id": "",
					"name": "Ghost Listing"
				},
				{
					"id": "mystery-cafe",
					"name": "Mystery Cafe",
					"rating": 4.0
				}
			]
		}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "test-key")
	restaurants, err := client.SearchNear(context.Background(), 32.9, -96.7, SearchFilters{})
	if err != nil {
		t.Fatalf("SearchNear() error = %v", err)
	}

	if gotPath != "/businesses/search" {
		t.Errorf("request path = %s, want /businesses/search", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want bearer key", gotAuth)
	}

	// The id-less record is dropped
	if len(restaurants) != 3 {
		t.Fatalf("restaurants = %d, want 3", len(restaurants))
	}

	taco := restaurants[0]
	if taco.ID != "taco-haven" || taco.Name != "Taco Haven" || taco.Rating != 4.5 {
		t.Errorf("first restaurant = %+v", taco)
	}
	if taco.Open == nil || !*taco.Open {
		t.Errorf("Open = %v, want open", taco.Open)
	}
	if len(taco.Tags) != 2 || taco.Tags[0] != "mexican" {
		t.Errorf("Tags = %v, want [mexican tacos]", taco.Tags)
	}

	if diner := restaurants[1]; diner.Open == nil || *diner.Open {
		t.Errorf("closed business Open = %v, want closed", diner.Open)
	}
	// No is_closed field means unknown status
	if mystery := restaurants[2]; mystery.Open != nil {
		t.Errorf("Open without is_closed = %v, want nil", mystery.Open)
	}
}

func TestSearchNearQueryDefaults(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"businesses": []}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "")
	if _, err := client.SearchNear(context.Background(), 1.5, -2.25, SearchFilters{Term: "tacos"}); err != nil {
		t.Fatalf("SearchNear() error = %v", err)
	}

	checks := map[string]string{
		"latitude":  "1.5",
		"longitude": "-2.25",
		"radius":    "2500",
		"limit":     "40",
		"term":      "tacos",
	}
	for key, want := range checks {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %s", key, got, want)
		}
	}
}

func TestSearchNearUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "")
	if _, err := client.SearchNear(context.Background(), 0, 0, SearchFilters{}); err == nil {
		t.Error("SearchNear() expected error on upstream 502")
	}
}

func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("address"); got != "123 Main St" {
			t.Errorf("address query = %q, want 123 Main St", got)
		}
		w.Write([]byte(`{"locations": [{"latitude": 32.9, "longitude": -96.7}]}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "")
	lat, lng, err := client.Geocode(context.Background(), "123 Main St")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if lat != 32.9 || lng != -96.7 {
		t.Errorf("Geocode() = %v, %v; want 32.9, -96.7", lat, lng)
	}
}

func TestGeocodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"locations": []}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "")
	if _, _, err := client.Geocode(context.Background(), "nowhere"); !errors.Is(err, models.ErrNoLocationForAddress) {
		t.Errorf("Geocode() error = %v, want ErrNoLocationForAddress", err)
	}
}
