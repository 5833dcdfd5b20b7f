package domain

import (
	"context"
	"time"
)

// ListOpts provides pagination for list queries.
type ListOpts struct {
	Limit  int
	Offset int
	Since  *time.Time
}

// OpportunityStore persists detected arbitrage opportunities. The engine
// itself never touches the store; the scan pipeline records what the engine
// returns.
type OpportunityStore interface {
	Insert(ctx context.Context, opp ArbitrageOpportunity) error
	InsertBatch(ctx context.Context, opps []ArbitrageOpportunity) error
	GetByID(ctx context.Context, id string) (ArbitrageOpportunity, error)
	ListRecent(ctx context.Context, opts ListOpts) ([]ArbitrageOpportunity, error)
	// ListBefore returns opportunities detected strictly before the cutoff,
	// for cold-storage archival.
	ListBefore(ctx context.Context, before time.Time) ([]ArbitrageOpportunity, error)
}

// WatchlistStore persists user-pinned opportunity pairs.
type WatchlistStore interface {
	Create(ctx context.Context, entry WatchlistEntry) error
	GetByID(ctx context.Context, id string) (WatchlistEntry, error)
	List(ctx context.Context) ([]WatchlistEntry, error)
	Delete(ctx context.Context, id string) error
}
