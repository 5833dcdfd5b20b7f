package arbitrage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbscan/internal/domain"
)

func listing(venue domain.Venue, id, title string, yes, volume float64) domain.MarketListing {
	return domain.MarketListing{
		Venue:    venue,
		ID:       id,
		Title:    title,
		YesPrice: yes,
		NoPrice:  1 - yes,
		Volume:   volume,
	}
}

func TestFindOpportunities_EndToEnd(t *testing.T) {
	listings := []domain.MarketListing{
		listing(domain.VenueKalshi, "k1", "Fed Rate Cut in 2025", 0.40, 5000),
		listing(domain.VenuePolymarket, "p1", "Will the Fed cut rates in 2025?", 0.50, 8000),
	}

	opps := FindOpportunities(listings, 5)
	require.Len(t, opps, 1)

	opp := opps[0]
	assert.InDelta(t, 0.90, opp.CombinedCost, 1e-9)
	assert.InDelta(t, 0.10, opp.Profit, 1e-9)
	assert.InDelta(t, 11.11, opp.Roi, 0.01)
	assert.Equal(t, 95, opp.MatchScore)
	assert.Equal(t, "fed-rate-cut-2025", opp.MatchReason)
	assert.NotEmpty(t, opp.ID)
	assert.False(t, opp.DetectedAt.IsZero())
	// The fee-aware view pays Kalshi taker fees, so it trails the
	// price-only figure.
	assert.Greater(t, opp.Roi, opp.NetRoi)
	assert.Greater(t, opp.NetRoi, 0.0)
}

func TestFindOpportunities_YearMismatchNeverSurfaces(t *testing.T) {
	listings := []domain.MarketListing{
		listing(domain.VenueKalshi, "k1", "Fed rate cut in 2025", 0.40, 5000),
		listing(domain.VenuePolymarket, "p1", "Will the Fed cut rates in 2026?", 0.50, 8000),
	}

	assert.Empty(t, FindOpportunities(listings, 0))
}

func TestFindOpportunities_UnitCostNotEmitted(t *testing.T) {
	// Prices sum to exactly 1 in both directions.
	listings := []domain.MarketListing{
		listing(domain.VenueKalshi, "k1", "Fed Rate Cut in 2025", 0.50, 5000),
		listing(domain.VenuePolymarket, "p1", "Will the Fed cut rates in 2025?", 0.50, 8000),
	}

	assert.Empty(t, FindOpportunities(listings, 0))
}

func TestFindOpportunities_MinRoiFilter(t *testing.T) {
	listings := []domain.MarketListing{
		listing(domain.VenueKalshi, "k1", "Fed Rate Cut in 2025", 0.40, 5000),
		listing(domain.VenuePolymarket, "p1", "Will the Fed cut rates in 2025?", 0.50, 8000),
	}

	assert.Len(t, FindOpportunities(listings, 11), 1)
	assert.Empty(t, FindOpportunities(listings, 15))
}

func TestFindOpportunities_RankingAndTieBreak(t *testing.T) {
	listings := []domain.MarketListing{
		// Pair one: event-pattern match, score 95, ROI ~11.1%.
		listing(domain.VenueKalshi, "k1", "Fed Rate Cut in 2025", 0.40, 5000),
		listing(domain.VenuePolymarket, "p1", "Will the Fed cut rates in 2025?", 0.50, 8000),
		// Pair two: identical titles with an entity anchor, score 100 at the
		// same ROI; the tie must break on match score.
		listing(domain.VenueKalshi, "k2", "Astros win the World Series in 2028", 0.40, 5000),
		listing(domain.VenuePolymarket, "p2", "Astros win the World Series in 2028", 0.50, 8000),
		// Pair three: clearly better ROI, ranks first outright.
		listing(domain.VenueKalshi, "k3", "Chiefs to win the Super Bowl in 2027", 0.20, 5000),
		listing(domain.VenuePolymarket, "p3", "Will the Chiefs win Super Bowl 2027?", 0.45, 8000),
	}

	opps := FindOpportunities(listings, 0)
	require.Len(t, opps, 3)

	assert.Equal(t, "k3", kalshiID(opps[0]))
	assert.Equal(t, "k2", kalshiID(opps[1]))
	assert.Equal(t, "k1", kalshiID(opps[2]))
	assert.Equal(t, 100, opps[1].MatchScore)
	assert.Equal(t, 95, opps[2].MatchScore)
}

func kalshiID(opp domain.ArbitrageOpportunity) string {
	if opp.A.Venue == domain.VenueKalshi {
		return opp.A.ID
	}
	return opp.B.ID
}
