package pricing

import (
	"math"

	"arbscan/internal/domain"
)

// Result is the fee-aware outcome of one complementary-purchase evaluation.
type Result struct {
	Roi           float64 // net profit / total invested, percent
	Scenario      domain.Scenario
	Contracts     int
	TotalInvested float64 // contracts x base cost + both fees
	Profit        float64 // payout (1 per paired contract) minus TotalInvested
	FeeA          float64
	FeeB          float64
}

// BestRoi evaluates both complementary scenarios for a cross-venue pair and
// returns the one with the higher ROI, including its fee breakdown.
//
// Scenario one buys YES on A and NO on B; scenario two buys NO on A and YES
// on B. Calling once with OrderMaker (fee-exempt on every supported venue
// that distinguishes order types) and once with the actual order type yields
// the gross-versus-net fee comparison.
func BestRoi(venueA domain.Venue, yesPriceA float64, venueB domain.Venue, yesPriceB float64, investment float64, orderType domain.OrderType) Result {
	yesANoB := evaluate(venueA, yesPriceA, venueB, 1-yesPriceB, investment, orderType)
	yesANoB.Scenario = domain.ScenarioYesANoB

	noAYesB := evaluate(venueA, 1-yesPriceA, venueB, yesPriceB, investment, orderType)
	noAYesB.Scenario = domain.ScenarioNoAYesB

	if noAYesB.Roi > yesANoB.Roi {
		return noAYesB
	}
	return yesANoB
}

// EvaluateScenario prices one specific direction instead of picking the best
// of the two. The aggregator uses it to attach fee-aware figures to an
// opportunity whose scenario is already fixed.
func EvaluateScenario(venueA domain.Venue, yesPriceA float64, venueB domain.Venue, yesPriceB float64, scenario domain.Scenario, investment float64, orderType domain.OrderType) Result {
	var res Result
	if scenario == domain.ScenarioNoAYesB {
		res = evaluate(venueA, 1-yesPriceA, venueB, yesPriceB, investment, orderType)
	} else {
		res = evaluate(venueA, yesPriceA, venueB, 1-yesPriceB, investment, orderType)
	}
	res.Scenario = scenario
	return res
}

// evaluate finds the maximum integer contract count affordable under the fee
// model and derives net profit and ROI. Fees are nonlinear in price and count,
// so there is no closed form: it starts from the fee-naive upper bound
// floor(investment/baseCost) and decrements while the fee-inclusive total
// exceeds the budget. Fees are non-decreasing in the count (a documented
// precondition of the Fee table), so the walk converges to the true maximum
// or to zero.
func evaluate(venueA domain.Venue, priceA float64, venueB domain.Venue, priceB float64, investment float64, orderType domain.OrderType) Result {
	baseCost := priceA + priceB
	// No legitimate arbitrage exists at or above unit cost: each paired
	// contract pays exactly 1.
	if baseCost >= 1 || investment <= 0 {
		return Result{}
	}

	n := int(math.Floor(investment / baseCost))
	var feeA, feeB, total float64
	for n > 0 {
		feeA = Fee(venueA, priceA, n, orderType)
		feeB = Fee(venueB, priceB, n, orderType)
		total = float64(n)*baseCost + feeA + feeB
		if total <= investment {
			break
		}
		n--
	}
	if n == 0 {
		return Result{}
	}

	payout := float64(n)
	profit := payout - total
	return Result{
		Roi:           profit / total * 100,
		Contracts:     n,
		TotalInvested: total,
		Profit:        profit,
		FeeA:          feeA,
		FeeB:          feeB,
	}
}
