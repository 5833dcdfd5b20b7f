package domain

import (
	"context"
	"time"
)

// ListingCache is the retrieval layer's snapshot cache. It is an explicit
// object owned by the fetch path: the matching engine is a pure function of
// the listings it is handed and never reads the cache itself.
type ListingCache interface {
	// Get returns the cached snapshot for a venue, or ErrNotFound when no
	// snapshot exists or the TTL has elapsed.
	Get(ctx context.Context, venue Venue) ([]MarketListing, error)
	// Put replaces the venue's snapshot wholesale.
	Put(ctx context.Context, venue Venue, listings []MarketListing) error
}

// RateLimiter paces outbound venue API calls across processes.
type RateLimiter interface {
	// Allow reports whether a request for key is permitted under a sliding
	// window of limit requests per window, counting the request if so.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	// Wait blocks until a request for key is allowed or ctx is cancelled.
	Wait(ctx context.Context, key string) error
}

// LockManager provides distributed mutual exclusion so that concurrent
// scanner instances do not run overlapping scan cycles.
type LockManager interface {
	// Acquire obtains the lock for key with the given TTL and returns an
	// unlock function. It returns ErrLockHeld if another party holds it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}
