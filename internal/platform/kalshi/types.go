package kalshi

import (
	"strings"
	"time"

	"arbscan/internal/domain"
)

// APIMarket represents a market as returned by the Kalshi REST API. Prices
// are quoted in cents (1-99).
type APIMarket struct {
	Ticker       string  `json:"ticker"`
	EventTicker  string  `json:"event_ticker"`
	Title        string  `json:"title"`
	Subtitle     string  `json:"subtitle"`
	Status       string  `json:"status"`
	YesBid       float64 `json:"yes_bid"`
	YesAsk       float64 `json:"yes_ask"`
	NoBid        float64 `json:"no_bid"`
	NoAsk        float64 `json:"no_ask"`
	LastPrice    float64 `json:"last_price"`
	Volume       int64   `json:"volume"`
	Volume24H    int64   `json:"volume_24h"`
	OpenInterest int64   `json:"open_interest"`
	Category     string  `json:"category"`
	CloseTime    string  `json:"close_time"`
}

// toListing converts the DTO into a venue-neutral listing. Markets without a
// priceable yes side are skipped: the engine needs probabilities in (0,1).
func (m APIMarket) toListing() (domain.MarketListing, bool) {
	yes := m.YesAsk / 100
	if yes <= 0 || yes >= 1 {
		yes = m.LastPrice / 100
	}
	if yes <= 0 || yes >= 1 {
		return domain.MarketListing{}, false
	}

	no := m.NoAsk / 100
	if no <= 0 || no >= 1 {
		no = 1 - yes
	}

	title := m.Title
	if m.Subtitle != "" && !strings.EqualFold(m.Subtitle, m.Title) {
		title = m.Title + " " + m.Subtitle
	}

	return domain.MarketListing{
		Venue:     domain.VenueKalshi,
		ID:        m.Ticker,
		Title:     title,
		Category:  m.Category,
		YesPrice:  yes,
		NoPrice:   no,
		Volume:    float64(m.Volume),
		UpdatedAt: time.Now().UTC(),
		URL:       "https://kalshi.com/markets/" + strings.ToLower(m.EventTicker),
	}, true
}
