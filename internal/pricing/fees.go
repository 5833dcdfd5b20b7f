// Package pricing holds the fee models of the supported venues and the
// fee-aware ROI calculator for paired complementary positions.
package pricing

import "arbscan/internal/domain"

const (
	// kalshiTakerRate is Kalshi's sliding-scale coefficient; the fee is
	// charged on taker fills only and peaks at even odds.
	kalshiTakerRate = 0.07
	// predictItProfitCut is PredictIt's cut of per-contract winnings,
	// independent of order type.
	predictItProfitCut = 0.10
	// robinhoodPerContract is the flat per-contract charge, independent of
	// price and order type.
	robinhoodPerContract = 0.01
)

// Fee returns the venue's fee for buying the given number of contracts at the
// given price. It is pure and total: unknown venues and non-positive counts
// cost zero rather than failing.
//
// All fee curves are non-decreasing in the contract count; the ROI
// calculator's feasibility search relies on that monotonicity, so any fee
// model added here must preserve it.
func Fee(venue domain.Venue, price float64, contracts int, orderType domain.OrderType) float64 {
	if contracts <= 0 {
		return 0
	}
	n := float64(contracts)
	switch venue {
	case domain.VenueKalshi:
		if orderType != domain.OrderTaker {
			return 0
		}
		return kalshiTakerRate * price * (1 - price) * n
	case domain.VenuePredictIt:
		return predictItProfitCut * (1 - price) * n
	case domain.VenueRobinhood:
		return robinhoodPerContract * n
	case domain.VenuePolymarket:
		return 0
	default:
		return 0
	}
}
