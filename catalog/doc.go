// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog fetches candidate restaurants from an upstream directory.

The directory is treated as a black box behind the Client interface:

	restaurants, err := client.SearchNear(ctx, lat, lng, catalog.SearchFilters{})

HTTPClient speaks a Yelp-style JSON API (businesses/search with bearer
auth) and maps records to models.Restaurant. Records without an id are
dropped at the boundary; missing open/closed status maps to a nil Open
so downstream filtering can skip rather than fail.

Geocode resolves a street address through the same service, returning
models.ErrNoLocationForAddress when nothing matches.
*/
package catalog
