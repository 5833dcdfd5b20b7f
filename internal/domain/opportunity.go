package domain

import "time"

// Scenario names one of the two complementary purchase directions for a
// cross-venue pair.
type Scenario string

const (
	// ScenarioYesANoB buys YES on listing A and NO on listing B.
	ScenarioYesANoB Scenario = "yes_a_no_b"
	// ScenarioNoAYesB buys NO on listing A and YES on listing B.
	ScenarioNoAYesB Scenario = "no_a_yes_b"
)

// ArbitrageOpportunity is a matched cross-venue pair whose complementary legs
// cost less than the unit payout. CombinedCost, Profit and ROI are pre-fee
// (price-only) figures from the discovery pass; NetRoi and the fee fields are
// the fee-aware view of the same pair computed through the ROI calculator.
type ArbitrageOpportunity struct {
	ID           string // UUID
	A            MarketListing
	B            MarketListing
	Scenario     Scenario
	CombinedCost float64 // sum of the two leg prices, strictly < 1
	Profit       float64 // 1 - CombinedCost, per contract
	Roi          float64 // price-only ROI percent
	NetRoi       float64 // fee-aware ROI percent at the reference investment
	FeeA         float64
	FeeB         float64
	MatchScore   int
	MatchReason  string
	DetectedAt   time.Time
}

// WatchlistEntry is a user-pinned opportunity tracked across scan cycles.
type WatchlistEntry struct {
	ID         string // UUID
	AVenue     Venue
	AMarketID  string
	ATitle     string
	BVenue     Venue
	BMarketID  string
	BTitle     string
	Scenario   Scenario
	Investment float64
	GrossRoi   float64 // zero-fee ROI at Investment
	NetRoi     float64 // fee-aware ROI at Investment
	CreatedAt  time.Time
}
