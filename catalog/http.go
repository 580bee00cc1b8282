// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/danielhkuo/chowdown/models"
)

const (
	defaultRadiusM = 2500
	defaultLimit   = 40
)

// HTTPClient talks to a Yelp-style business directory over JSON.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient creates a catalog client. apiKey may be empty for
// directories that do not require auth.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Wire types for the directory API

type searchResponse struct {
	Businesses []business `json:"businesses"`
}

type business struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	IsClosed    *bool   `json:"is_closed,omitempty"`
	Coordinates struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
	Categories []struct {
		Alias string `json:"alias"`
	} `json:"categories"`
}

type geocodeResponse struct {
	Locations []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"locations"`
}

// SearchNear returns restaurants near the coordinates.
func (c *HTTPClient) SearchNear(ctx context.Context, latitude, longitude float64, filters SearchFilters) ([]models.Restaurant, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	radius := filters.RadiusM
	if radius == 0 {
		radius = defaultRadiusM
	}
	q.Set("radius", strconv.Itoa(radius))
	limit := filters.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	q.Set("limit", strconv.Itoa(limit))
	if filters.Term != "" {
		q.Set("term", filters.Term)
	}
	if filters.Category != "" {
		q.Set("categories", filters.Category)
	}

	var resp searchResponse
	if err := c.getJSON(ctx, "/businesses/search?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	restaurants := make([]models.Restaurant, 0, len(resp.Businesses))
	for _, b := range resp.Businesses {
		if b.ID == "" {
			// A record without an id can never be voted on; drop it here
			// instead of letting an empty id leak into a candidate set.
			slog.Warn("catalog returned business without id", "name", b.Name)
			continue
		}
		r := models.Restaurant{
			ID:        b.ID,
			Name:      b.Name,
			Latitude:  b.Coordinates.Latitude,
			Longitude: b.Coordinates.Longitude,
			Rating:    b.Rating,
		}
		if b.IsClosed != nil {
			open := !*b.IsClosed
			r.Open = &open
		}
		for _, cat := range b.Categories {
			if cat.Alias != "" {
				r.Tags = append(r.Tags, cat.Alias)
			}
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, nil
}

// Geocode resolves a street address to coordinates.
func (c *HTTPClient) Geocode(ctx context.Context, address string) (float64, float64, error) {
	q := url.Values{}
	q.Set("address", address)

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/locations/geocode?"+q.Encode(), &resp); err != nil {
		return 0, 0, err
	}
	if len(resp.Locations) == 0 {
		return 0, 0, fmt.Errorf("%w: %q", models.ErrNoLocationForAddress, address)
	}
	return resp.Locations[0].Latitude, resp.Locations[0].Longitude, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("catalog: create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog: decode response: %w", err)
	}
	return nil
}
