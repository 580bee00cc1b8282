// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"sort"

	"github.com/danielhkuo/chowdown/models"
)

// RestaurantTotal is one restaurant's summed vote weight.
type RestaurantTotal struct {
	RestaurantID string `json:"restaurant_id"`
	Total        int    `json:"total"`
}

// Tally sums vote weights per restaurant and orders strongest first.
// Exact ties resolve to the lowest restaurant id; the rule is arbitrary
// but deterministic, so every client computes the same winner.
func Tally(votes []models.Vote) []RestaurantTotal {
	totals := make(map[string]int)
	for _, v := range votes {
		totals[v.RestaurantID] += v.VoteValue
	}

	ranked := make([]RestaurantTotal, 0, len(totals))
	for id, total := range totals {
		ranked = append(ranked, RestaurantTotal{RestaurantID: id, Total: total})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.RestaurantID < b.RestaurantID
	})
	return ranked
}

// Winner returns the winning restaurant id, or false when no votes exist.
func Winner(votes []models.Vote) (string, bool) {
	ranked := Tally(votes)
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].RestaurantID, true
}
