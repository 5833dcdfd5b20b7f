package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbscan/internal/domain"
	"arbscan/internal/pricing"
)

type stubCache struct {
	snapshots map[domain.Venue][]domain.MarketListing
}

func (c *stubCache) Get(ctx context.Context, venue domain.Venue) ([]domain.MarketListing, error) {
	listings, ok := c.snapshots[venue]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return listings, nil
}

func (c *stubCache) Put(ctx context.Context, venue domain.Venue, listings []domain.MarketListing) error {
	c.snapshots[venue] = listings
	return nil
}

type memWatchlistStore struct {
	entries []domain.WatchlistEntry
}

func (s *memWatchlistStore) Create(ctx context.Context, entry domain.WatchlistEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memWatchlistStore) GetByID(ctx context.Context, id string) (domain.WatchlistEntry, error) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.WatchlistEntry{}, domain.ErrNotFound
}

func (s *memWatchlistStore) List(ctx context.Context) ([]domain.WatchlistEntry, error) {
	return s.entries, nil
}

func (s *memWatchlistStore) Delete(ctx context.Context, id string) error {
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func watchListing(venue domain.Venue, id, title string, yes float64) domain.MarketListing {
	return domain.MarketListing{
		Venue:    venue,
		ID:       id,
		Title:    title,
		YesPrice: yes,
		NoPrice:  1 - yes,
	}
}

func newTestService(t *testing.T) (*WatchlistService, *memWatchlistStore, *stubCache) {
	t.Helper()
	cache := &stubCache{snapshots: map[domain.Venue][]domain.MarketListing{
		domain.VenueKalshi: {
			watchListing(domain.VenueKalshi, "FED-25", "Fed rate cut in 2025?", 0.60),
		},
		domain.VenuePolymarket: {
			watchListing(domain.VenuePolymarket, "fed-cut", "Will the Fed cut rates in 2025?", 0.70),
		},
	}}
	store := &memWatchlistStore{}
	svc := NewWatchlistService(store, cache, nil, 2.0, testLogger())
	return svc, store, cache
}

func TestWatchlistCreate_DefaultsScenarioAndPricesEntry(t *testing.T) {
	svc, store, _ := newTestService(t)

	entry, err := svc.Create(context.Background(), CreateWatchParams{
		AVenue:    domain.VenueKalshi,
		AMarketID: "FED-25",
		BVenue:    domain.VenuePolymarket,
		BMarketID: "fed-cut",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Fed rate cut in 2025?", entry.ATitle)
	assert.Equal(t, domain.ScenarioYesANoB, entry.Scenario)
	assert.Equal(t, 100.0, entry.Investment)
	assert.InDelta(t, 100.0/9.0, entry.GrossRoi, 1e-6)

	want := pricing.EvaluateScenario(
		domain.VenueKalshi, 0.60, domain.VenuePolymarket, 0.70,
		domain.ScenarioYesANoB, 100, domain.OrderTaker,
	)
	assert.InDelta(t, want.Roi, entry.NetRoi, 1e-9)
	assert.Less(t, entry.NetRoi, entry.GrossRoi)

	require.Len(t, store.entries, 1)
}

func TestWatchlistCreate_MissingLeg(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateWatchParams{
		AVenue:    domain.VenueKalshi,
		AMarketID: "NOPE",
		BVenue:    domain.VenuePolymarket,
		BMarketID: "fed-cut",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWatchlistRefreshAll_RepricesAndMarksStale(t *testing.T) {
	svc, store, cache := newTestService(t)

	live, err := svc.Create(context.Background(), CreateWatchParams{
		AVenue:    domain.VenueKalshi,
		AMarketID: "FED-25",
		BVenue:    domain.VenuePolymarket,
		BMarketID: "fed-cut",
	})
	require.NoError(t, err)

	// A pinned pair whose legs have dropped out of the snapshots.
	store.entries = append(store.entries, domain.WatchlistEntry{
		ID:        "gone",
		AVenue:    domain.VenueKalshi,
		AMarketID: "GONE-26",
		BVenue:    domain.VenuePolymarket,
		BMarketID: "gone",
		Scenario:  domain.ScenarioYesANoB,
		GrossRoi:  4.2,
		NetRoi:    3.1,
		CreatedAt: time.Now().UTC(),
	})

	// Prices move before the refresh.
	cache.snapshots[domain.VenueKalshi] = []domain.MarketListing{
		watchListing(domain.VenueKalshi, "FED-25", "Fed rate cut in 2025?", 0.50),
	}

	statuses, err := svc.RefreshAll(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, live.ID, statuses[0].Entry.ID)
	assert.False(t, statuses[0].Stale)
	// Cost is now 0.50 + 0.30, so the gross ROI improves to 25%.
	assert.InDelta(t, 25.0, statuses[0].GrossRoi, 1e-9)

	assert.True(t, statuses[1].Stale)
	assert.InDelta(t, 4.2, statuses[1].GrossRoi, 1e-9)
	assert.InDelta(t, 3.1, statuses[1].NetRoi, 1e-9)
}
