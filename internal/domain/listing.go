// Package domain defines the core types shared by the matching engine, the
// pricing calculators, and the infrastructure packages: venue listings,
// candidate pairs, opportunities, and the store/cache contracts they flow
// through.
package domain

import "time"

// Venue identifies a supported prediction-market trading platform.
type Venue string

const (
	VenueKalshi     Venue = "kalshi"
	VenuePolymarket Venue = "polymarket"
	VenuePredictIt  Venue = "predictit"
	VenueRobinhood  Venue = "robinhood"
)

// Venues lists every supported venue in a stable order.
func Venues() []Venue {
	return []Venue{VenueKalshi, VenuePolymarket, VenuePredictIt, VenueRobinhood}
}

// OrderType is the order style used for fee treatment. Some venues charge
// only one of the two.
type OrderType string

const (
	OrderMaker OrderType = "maker"
	OrderTaker OrderType = "taker"
)

// MarketListing is one venue's tradable binary-outcome contract at a point in
// time. Listings are immutable snapshots: every ingestion cycle produces a
// fresh set and the previous one is discarded wholesale, never patched.
type MarketListing struct {
	Venue     Venue
	ID        string // opaque per-venue identifier
	Title     string
	Category  string
	YesPrice  float64 // probability in (0,1)
	NoPrice   float64 // yes+no ~= 1; venues without a reliable no quote report 1-yes
	Volume    float64 // non-negative, 0 when unknown
	UpdatedAt time.Time
	URL       string
}

// NewListing builds a listing, deriving the no-price when the venue did not
// report one.
func NewListing(venue Venue, id, title string, yesPrice, noPrice float64) MarketListing {
	if noPrice <= 0 || noPrice >= 1 {
		noPrice = 1 - yesPrice
	}
	return MarketListing{
		Venue:     venue,
		ID:        id,
		Title:     title,
		YesPrice:  yesPrice,
		NoPrice:   noPrice,
		UpdatedAt: time.Now().UTC(),
	}
}

// Key returns a globally unique identifier for the listing (per-venue IDs are
// only unique within their venue).
func (l MarketListing) Key() string {
	return string(l.Venue) + ":" + l.ID
}

// HasPrices reports whether both sides carry a usable probability.
func (l MarketListing) HasPrices() bool {
	return l.YesPrice > 0 && l.YesPrice < 1 && l.NoPrice > 0 && l.NoPrice < 1
}

// MatchCandidatePair is a scored cross-venue pairing of two listings. It only
// exists transiently during a matching pass; A and B are always from
// different venues.
type MatchCandidatePair struct {
	A      MarketListing
	B      MarketListing
	Score  int // 0-100
	Reason string
}
