package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbscan/internal/domain"
)

func volListing(venue domain.Venue, id, title string, volume float64) domain.MarketListing {
	l := listing(venue, id, title)
	l.Volume = volume
	return l
}

func TestFindPairs_CrossVenueMatch(t *testing.T) {
	listings := []domain.MarketListing{
		volListing(domain.VenueKalshi, "k1", "Fed Rate Cut in 2025", 5000),
		volListing(domain.VenuePolymarket, "p1", "Will the Fed cut rates in 2025?", 8000),
	}

	pairs := FindPairs(listings)
	require.Len(t, pairs, 1)
	assert.Equal(t, 95, pairs[0].Score)
	assert.NotEqual(t, pairs[0].A.Venue, pairs[0].B.Venue)
}

func TestFindPairs_SingleVenueBucketDropped(t *testing.T) {
	listings := []domain.MarketListing{
		volListing(domain.VenueKalshi, "k1", "Fed Rate Cut in 2025", 5000),
		volListing(domain.VenueKalshi, "k2", "Will the Fed cut rates in 2025?", 8000),
	}

	assert.Empty(t, FindPairs(listings))
}

func TestFindPairs_PairScoredOnceAcrossBuckets(t *testing.T) {
	// These two listings share several buckets (fed-2025, rate-2025, and the
	// powell entity bucket); the pair must still appear exactly once.
	listings := []domain.MarketListing{
		volListing(domain.VenueKalshi, "k1", "Powell announces Fed rate cut in 2025", 5000),
		volListing(domain.VenuePolymarket, "p1", "Powell and the Fed cut rates in 2025?", 8000),
	}

	pairs := FindPairs(listings)
	assert.Len(t, pairs, 1)
}

func TestFindPairs_BucketCapPrefersVolume(t *testing.T) {
	var listings []domain.MarketListing
	// More same-venue listings than a bucket can hold; the low-volume tail
	// must be truncated away before pairing.
	for i := 0; i < maxBucketSize+5; i++ {
		listings = append(listings, volListing(
			domain.VenueKalshi,
			fmt.Sprintf("k%d", i),
			"Fed Rate Cut in 2025",
			float64(i+1),
		))
	}
	listings = append(listings, volListing(domain.VenuePolymarket, "p1", "Will the Fed cut rates in 2025?", 99999))

	pairs := FindPairs(listings)
	assert.Len(t, pairs, maxBucketSize-1)
	for _, p := range pairs {
		assert.NotEqual(t, "k0", p.A.ID)
		assert.NotEqual(t, "k0", p.B.ID)
	}
}

func TestFindPairs_NoTopicNoEntityNoPairs(t *testing.T) {
	listings := []domain.MarketListing{
		volListing(domain.VenueKalshi, "k1", "Will it snow on New Year's Eve?", 100),
		volListing(domain.VenuePolymarket, "p1", "Will it snow on New Year's Eve?", 100),
	}

	assert.Empty(t, FindPairs(listings))
}

func TestFindPairs_ZeroScorePairsExcluded(t *testing.T) {
	listings := []domain.MarketListing{
		volListing(domain.VenueKalshi, "k1", "Fed rate cut in 2025", 100),
		volListing(domain.VenuePolymarket, "p1", "Fed rate hike decision for 2025 meeting schedule", 100),
	}

	for _, p := range FindPairs(listings) {
		assert.Greater(t, p.Score, 0)
	}
}
