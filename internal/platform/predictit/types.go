package predictit

import (
	"fmt"
	"time"

	"arbscan/internal/domain"
)

type apiSnapshot struct {
	Markets []apiMarket `json:"markets"`
}

type apiMarket struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	ShortName string        `json:"shortName"`
	URL       string        `json:"url"`
	Contracts []apiContract `json:"contracts"`
	Status    string        `json:"status"`
}

type apiContract struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	ShortName     string  `json:"shortName"`
	Status        string  `json:"status"`
	BestBuyYes    float64 `json:"bestBuyYesCost"`
	BestBuyNo     float64 `json:"bestBuyNoCost"`
	LastTrade     float64 `json:"lastTradePrice"`
	TotalShares   float64 `json:"totalSharesTraded"`
}

// toListings flattens an open market into one listing per open contract.
func (m apiMarket) toListings() []domain.MarketListing {
	if m.Status != "Open" {
		return nil
	}

	now := time.Now().UTC()
	listings := make([]domain.MarketListing, 0, len(m.Contracts))
	for _, c := range m.Contracts {
		if c.Status != "Open" {
			continue
		}
		yes := c.BestBuyYes
		if yes <= 0 {
			yes = c.LastTrade
		}
		if yes <= 0 || yes >= 1 {
			continue
		}
		no := c.BestBuyNo
		if no <= 0 || no >= 1 {
			no = 1 - yes
		}

		title := m.Name
		if len(m.Contracts) > 1 {
			title = m.Name + " " + c.Name
		}

		listings = append(listings, domain.MarketListing{
			Venue:     domain.VenuePredictIt,
			ID:        fmt.Sprintf("%d-%d", m.ID, c.ID),
			Title:     title,
			YesPrice:  yes,
			NoPrice:   no,
			Volume:    c.TotalShares,
			UpdatedAt: now,
			URL:       m.URL,
		})
	}
	return listings
}
