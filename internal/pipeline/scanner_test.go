package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbscan/internal/domain"
)

type stubFetcher struct {
	venue    domain.Venue
	listings []domain.MarketListing
	err      error
}

func (f stubFetcher) Venue() domain.Venue { return f.venue }

func (f stubFetcher) FetchListings(ctx context.Context, maxListings int) ([]domain.MarketListing, error) {
	return f.listings, f.err
}

type recordingStore struct {
	batches [][]domain.ArbitrageOpportunity
}

func (s *recordingStore) Insert(ctx context.Context, opp domain.ArbitrageOpportunity) error {
	return nil
}

func (s *recordingStore) InsertBatch(ctx context.Context, opps []domain.ArbitrageOpportunity) error {
	s.batches = append(s.batches, opps)
	return nil
}

func (s *recordingStore) GetByID(ctx context.Context, id string) (domain.ArbitrageOpportunity, error) {
	return domain.ArbitrageOpportunity{}, domain.ErrNotFound
}

func (s *recordingStore) ListRecent(ctx context.Context, opts domain.ListOpts) ([]domain.ArbitrageOpportunity, error) {
	return nil, nil
}

func (s *recordingStore) ListBefore(ctx context.Context, before time.Time) ([]domain.ArbitrageOpportunity, error) {
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func scanListing(venue domain.Venue, id, title string, yes float64) domain.MarketListing {
	return domain.MarketListing{
		Venue:    venue,
		ID:       id,
		Title:    title,
		YesPrice: yes,
		NoPrice:  1 - yes,
	}
}

func TestScannerRunCycle_FindsAndPersistsOpportunities(t *testing.T) {
	fetchers := []ListingFetcher{
		stubFetcher{
			venue: domain.VenueKalshi,
			listings: []domain.MarketListing{
				scanListing(domain.VenueKalshi, "FED-25", "Fed rate cut in 2025?", 0.60),
			},
		},
		stubFetcher{
			venue: domain.VenuePolymarket,
			listings: []domain.MarketListing{
				scanListing(domain.VenuePolymarket, "fed-cut", "Will the Fed cut rates in 2025?", 0.70),
			},
		},
	}

	store := &recordingStore{}
	scanner := NewScanner(fetchers, ScannerConfig{MinRoi: 5, MaxListingsPerVenue: 100}, testLogger()).
		WithStore(store)

	opps, err := scanner.RunCycle(context.Background())
	require.NoError(t, err)
	require.Len(t, opps, 1)

	// Venue fetches race, so either listing may land in the A leg; the
	// complementary cost is the same in both directions.
	assert.InDelta(t, 0.90, opps[0].CombinedCost, 1e-9)
	assert.InDelta(t, 100.0/9.0, opps[0].Roi, 1e-6)
	assert.NotEqual(t, opps[0].A.Venue, opps[0].B.Venue)

	require.Len(t, store.batches, 1)
	assert.Equal(t, opps, store.batches[0])
}

func TestScannerRunCycle_SkipsFailedVenue(t *testing.T) {
	fetchers := []ListingFetcher{
		stubFetcher{venue: domain.VenueKalshi, err: errors.New("boom")},
		stubFetcher{
			venue: domain.VenuePolymarket,
			listings: []domain.MarketListing{
				scanListing(domain.VenuePolymarket, "fed-cut", "Will the Fed cut rates in 2025?", 0.70),
			},
		},
	}

	store := &recordingStore{}
	scanner := NewScanner(fetchers, ScannerConfig{MinRoi: 5, MaxListingsPerVenue: 100}, testLogger()).
		WithStore(store)

	opps, err := scanner.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Empty(t, opps)
	assert.Empty(t, store.batches)
}

func TestScannerRunCycle_NoListingsNoError(t *testing.T) {
	fetchers := []ListingFetcher{
		stubFetcher{venue: domain.VenueKalshi},
		stubFetcher{venue: domain.VenuePolymarket},
	}

	scanner := NewScanner(fetchers, ScannerConfig{MinRoi: 5, MaxListingsPerVenue: 100}, testLogger())

	opps, err := scanner.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Nil(t, opps)
}
