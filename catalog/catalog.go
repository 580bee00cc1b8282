// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"

	"github.com/danielhkuo/chowdown/models"
)

// SearchFilters narrows a nearby search. Zero values mean no constraint.
type SearchFilters struct {
	Term     string // free-text term, e.g. "tacos"
	RadiusM  int    // search radius in meters
	Limit    int    // max results
	Category string // catalog category alias
}

// Client is the restaurant catalog: given a location and filters it returns
// candidate restaurants. The upstream directory is an opaque service; the
// session core only consumes the returned records.
type Client interface {
	// SearchNear returns restaurants near the coordinates.
	SearchNear(ctx context.Context, latitude, longitude float64, filters SearchFilters) ([]models.Restaurant, error)

	// Geocode resolves a street address to coordinates. Returns
	// models.ErrNoLocationForAddress when the address matches nothing.
	Geocode(ctx context.Context, address string) (latitude, longitude float64, err error)
}
