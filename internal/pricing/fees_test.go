package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"arbscan/internal/domain"
)

func TestFee_KalshiSlidingScaleTakerOnly(t *testing.T) {
	// 0.07 x 0.5 x 0.5 x 10
	fee := Fee(domain.VenueKalshi, 0.5, 10, domain.OrderTaker)
	assert.InDelta(t, 0.175, fee, 1e-9)

	assert.Equal(t, 0.0, Fee(domain.VenueKalshi, 0.5, 10, domain.OrderMaker))
}

func TestFee_KalshiPeaksAtEvenOdds(t *testing.T) {
	mid := Fee(domain.VenueKalshi, 0.5, 100, domain.OrderTaker)
	assert.Greater(t, mid, Fee(domain.VenueKalshi, 0.1, 100, domain.OrderTaker))
	assert.Greater(t, mid, Fee(domain.VenueKalshi, 0.9, 100, domain.OrderTaker))
}

func TestFee_PredictItProfitCutAnyOrderType(t *testing.T) {
	// 0.10 x (1-0.6) x 10
	taker := Fee(domain.VenuePredictIt, 0.6, 10, domain.OrderTaker)
	maker := Fee(domain.VenuePredictIt, 0.6, 10, domain.OrderMaker)
	assert.InDelta(t, 0.4, taker, 1e-9)
	assert.Equal(t, taker, maker)
}

func TestFee_RobinhoodFlatPerContract(t *testing.T) {
	lo := Fee(domain.VenueRobinhood, 0.1, 7, domain.OrderTaker)
	hi := Fee(domain.VenueRobinhood, 0.9, 7, domain.OrderMaker)
	assert.InDelta(t, 0.07, lo, 1e-9)
	assert.Equal(t, lo, hi)
}

func TestFee_PolymarketAndUnknownAreFree(t *testing.T) {
	assert.Equal(t, 0.0, Fee(domain.VenuePolymarket, 0.5, 100, domain.OrderTaker))
	assert.Equal(t, 0.0, Fee(domain.Venue("bovada"), 0.5, 100, domain.OrderTaker))
}

func TestFee_NonPositiveCount(t *testing.T) {
	assert.Equal(t, 0.0, Fee(domain.VenueKalshi, 0.5, 0, domain.OrderTaker))
	assert.Equal(t, 0.0, Fee(domain.VenueKalshi, 0.5, -3, domain.OrderTaker))
}

func TestFee_MonotoneInCount(t *testing.T) {
	for _, venue := range domain.Venues() {
		prev := 0.0
		for n := 1; n <= 50; n++ {
			fee := Fee(venue, 0.37, n, domain.OrderTaker)
			assert.GreaterOrEqual(t, fee, prev, "venue %s at n=%d", venue, n)
			prev = fee
		}
	}
}
