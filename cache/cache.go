// Package cache provides the read-through cache layer. The cache is never a
// source of truth: reads fall through to storage on a miss and every failure
// is absorbed locally, so a cache outage costs latency, not correctness.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache key namespaces. Writes that touch a hotel must clear its entity keys
// plus every listing namespace that could have read the old state.
const (
	HotelPrefix  = "hotel"
	SearchPrefix = "hotel:search"
	LatestPrefix = "hotel:latest"
)

// Cache is the coherency layer contract. Implementations absorb their own
// failures; no method reports an error to the caller.
type Cache interface {
	// Get returns the cached value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key for the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Delete removes a single key.
	Delete(ctx context.Context, key string)
	// DeleteByPattern removes every key beginning with prefix.
	DeleteByPattern(ctx context.Context, prefix string)
}

// Key builds a deterministic cache key from a namespace prefix and a
// parameter set. Map keys are serialized in sorted order, so identical
// logical queries map to the same key regardless of construction order.
func Key(prefix string, params map[string]interface{}) string {
	// encoding/json marshals map keys lexicographically.
	b, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", prefix, params)
	}
	return prefix + ":" + string(b)
}

// HotelKey is the single-entity key for a hotel document.
func HotelKey(hotelID string, includeBookings bool) string {
	return fmt.Sprintf("%s:%s:%t", HotelPrefix, hotelID, includeBookings)
}

// InvalidateHotel clears every entry that could have read stale hotel state:
// the hotel's own entity keys and all search/latest listing namespaces.
// Passing an empty hotelID clears only the listing namespaces.
func InvalidateHotel(ctx context.Context, c Cache, hotelID string) {
	if hotelID != "" {
		c.DeleteByPattern(ctx, HotelPrefix+":"+hotelID)
	}
	c.DeleteByPattern(ctx, SearchPrefix+":")
	c.DeleteByPattern(ctx, LatestPrefix+":")
}
