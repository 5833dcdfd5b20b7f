package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"arbscan/internal/domain"
)

// ListingCache implements domain.ListingCache using one Redis string per
// venue holding the JSON-serialized snapshot. A whole snapshot is written
// and read atomically; there is no per-market granularity.
//
// Key schema:
//
//	arbscan:listings:{venue} - JSON array of listings
type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewListingCache creates a ListingCache backed by the given Client.
// Snapshots expire after ttl, after which Get reports domain.ErrNotFound.
func NewListingCache(c *Client, ttl time.Duration) *ListingCache {
	return &ListingCache{rdb: c.Underlying(), ttl: ttl}
}

func listingsKey(venue domain.Venue) string { return key("listings", string(venue)) }

// Put replaces the venue's snapshot wholesale.
func (lc *ListingCache) Put(ctx context.Context, venue domain.Venue, listings []domain.MarketListing) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("redis: marshal %s listings: %w", venue, err)
	}
	if err := lc.rdb.Set(ctx, listingsKey(venue), data, lc.ttl).Err(); err != nil {
		return fmt.Errorf("redis: put %s listings: %w", venue, err)
	}
	return nil
}

// Get returns the cached snapshot for a venue. It returns domain.ErrNotFound
// when no snapshot exists or the TTL has elapsed.
func (lc *ListingCache) Get(ctx context.Context, venue domain.Venue) ([]domain.MarketListing, error) {
	data, err := lc.rdb.Get(ctx, listingsKey(venue)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redis: get %s listings: %w", venue, err)
	}

	var listings []domain.MarketListing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("redis: unmarshal %s listings: %w", venue, err)
	}
	return listings, nil
}

// Compile-time interface check.
var _ domain.ListingCache = (*ListingCache)(nil)
