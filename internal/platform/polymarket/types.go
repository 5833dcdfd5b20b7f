package polymarket

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"arbscan/internal/domain"
)

// APIMarket represents a market as returned by the Gamma API. Numeric fields
// arrive as JSON strings; outcomePrices is a JSON-encoded array nested inside
// a string.
type APIMarket struct {
	ID            string `json:"id"`
	Question      string `json:"question"`
	Slug          string `json:"slug"`
	Category      string `json:"category"`
	Outcomes      string `json:"outcomes"`      // e.g. `["Yes","No"]`
	OutcomePrices string `json:"outcomePrices"` // e.g. `["0.45","0.55"]`
	VolumeNum     float64 `json:"volumeNum"`
	Active        bool   `json:"active"`
	Closed        bool   `json:"closed"`
	EndDate       string `json:"endDate"`
}

// toListing converts the DTO into a venue-neutral listing. Multi-outcome and
// unpriceable markets are skipped: the engine only handles binary contracts
// with probabilities in (0,1).
func (m APIMarket) toListing() (domain.MarketListing, bool) {
	if m.Closed || m.Question == "" {
		return domain.MarketListing{}, false
	}

	yes, no, ok := parseOutcomePrices(m.Outcomes, m.OutcomePrices)
	if !ok {
		return domain.MarketListing{}, false
	}

	return domain.MarketListing{
		Venue:     domain.VenuePolymarket,
		ID:        m.ID,
		Title:     m.Question,
		Category:  m.Category,
		YesPrice:  yes,
		NoPrice:   no,
		Volume:    m.VolumeNum,
		UpdatedAt: time.Now().UTC(),
		URL:       "https://polymarket.com/event/" + m.Slug,
	}, true
}

// parseOutcomePrices decodes the doubly-encoded outcome arrays and returns
// the yes/no probabilities for a binary market.
func parseOutcomePrices(outcomesRaw, pricesRaw string) (yes, no float64, ok bool) {
	var outcomes, prices []string
	if err := json.Unmarshal([]byte(outcomesRaw), &outcomes); err != nil {
		return 0, 0, false
	}
	if err := json.Unmarshal([]byte(pricesRaw), &prices); err != nil {
		return 0, 0, false
	}
	if len(outcomes) != 2 || len(prices) != 2 {
		return 0, 0, false
	}

	yesIdx, noIdx := 0, 1
	if strings.EqualFold(outcomes[1], "yes") {
		yesIdx, noIdx = 1, 0
	} else if !strings.EqualFold(outcomes[0], "yes") {
		return 0, 0, false
	}

	yes, err := strconv.ParseFloat(prices[yesIdx], 64)
	if err != nil {
		return 0, 0, false
	}
	no, err = strconv.ParseFloat(prices[noIdx], 64)
	if err != nil {
		return 0, 0, false
	}
	if yes <= 0 || yes >= 1 {
		return 0, 0, false
	}
	if no <= 0 || no >= 1 {
		no = 1 - yes
	}
	return yes, no, true
}
