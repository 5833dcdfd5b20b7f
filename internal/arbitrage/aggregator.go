// Package arbitrage turns matched cross-venue pairs into a ranked list of
// guaranteed-profit opportunities.
package arbitrage

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"arbscan/internal/domain"
	"arbscan/internal/match"
	"arbscan/internal/pricing"
)

const (
	// referenceInvestment is the budget used for the fee-aware net view
	// attached to every opportunity.
	referenceInvestment = 100.0
	// roiTieEpsilon: opportunities within this many ROI points rank by match
	// score instead.
	roiTieEpsilon = 0.1
)

// FindOpportunities matches the listing snapshot across venues and returns
// every complementary-purchase scenario whose combined pre-fee cost is below
// the unit payout and whose price-only ROI meets minRoi, ordered best first.
//
// Discovery and the minRoi filter are price-only; the fee-aware NetRoi and
// fee fields on each opportunity come from the same calculator the watchlist
// path uses, so the two views are always derived from one routine.
func FindOpportunities(listings []domain.MarketListing, minRoi float64) []domain.ArbitrageOpportunity {
	pairs := match.FindPairs(listings)

	now := time.Now().UTC()
	var opps []domain.ArbitrageOpportunity
	for _, p := range pairs {
		for _, sc := range []domain.Scenario{domain.ScenarioYesANoB, domain.ScenarioNoAYesB} {
			opp, ok := evaluatePair(p, sc, minRoi)
			if !ok {
				continue
			}
			opp.ID = uuid.NewString()
			opp.DetectedAt = now
			opps = append(opps, opp)
		}
	}

	sort.SliceStable(opps, func(i, j int) bool {
		if math.Abs(opps[i].Roi-opps[j].Roi) < roiTieEpsilon {
			return opps[i].MatchScore > opps[j].MatchScore
		}
		return opps[i].Roi > opps[j].Roi
	})
	return opps
}

// evaluatePair prices one scenario of a matched pair. Combined cost at or
// above 1 can never be profitable and is dropped outright.
func evaluatePair(p domain.MatchCandidatePair, sc domain.Scenario, minRoi float64) (domain.ArbitrageOpportunity, bool) {
	var cost float64
	if sc == domain.ScenarioYesANoB {
		cost = p.A.YesPrice + (1 - p.B.YesPrice)
	} else {
		cost = (1 - p.A.YesPrice) + p.B.YesPrice
	}
	if cost <= 0 || cost >= 1 {
		return domain.ArbitrageOpportunity{}, false
	}

	profit := 1 - cost
	roi := profit / cost * 100
	if roi < minRoi {
		return domain.ArbitrageOpportunity{}, false
	}

	net := pricing.EvaluateScenario(p.A.Venue, p.A.YesPrice, p.B.Venue, p.B.YesPrice, sc, referenceInvestment, domain.OrderTaker)

	return domain.ArbitrageOpportunity{
		A:            p.A,
		B:            p.B,
		Scenario:     sc,
		CombinedCost: cost,
		Profit:       profit,
		Roi:          roi,
		NetRoi:       net.Roi,
		FeeA:         net.FeeA,
		FeeB:         net.FeeB,
		MatchScore:   p.Score,
		MatchReason:  p.Reason,
	}, true
}
