package predictit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbscan/internal/domain"
)

func TestToListings_MultiContractMarket(t *testing.T) {
	m := apiMarket{
		ID:     7419,
		Name:   "Which party will win the 2028 presidential election?",
		Status: "Open",
		URL:    "https://www.predictit.org/markets/detail/7419",
		Contracts: []apiContract{
			{ID: 1, Name: "Democratic", Status: "Open", BestBuyYes: 0.52, BestBuyNo: 0.50, TotalShares: 10000},
			{ID: 2, Name: "Republican", Status: "Open", BestBuyYes: 0.49, BestBuyNo: 0.53, TotalShares: 9000},
			{ID: 3, Name: "Other", Status: "Closed", BestBuyYes: 0.03},
		},
	}

	listings := m.toListings()
	require.Len(t, listings, 2)

	assert.Equal(t, domain.VenuePredictIt, listings[0].Venue)
	assert.Equal(t, "7419-1", listings[0].ID)
	assert.Equal(t, "Which party will win the 2028 presidential election? Democratic", listings[0].Title)
	assert.InDelta(t, 0.52, listings[0].YesPrice, 1e-9)
	assert.InDelta(t, 0.50, listings[0].NoPrice, 1e-9)
}

func TestToListings_FallbacksAndFilters(t *testing.T) {
	m := apiMarket{
		ID:     100,
		Name:   "Single question market",
		Status: "Open",
		Contracts: []apiContract{
			{ID: 1, Name: "Yes", Status: "Open", LastTrade: 0.40},
		},
	}

	listings := m.toListings()
	require.Len(t, listings, 1)
	// Single-contract markets keep the bare market name and fall back to the
	// last trade when no ask is posted.
	assert.Equal(t, "Single question market", listings[0].Title)
	assert.InDelta(t, 0.40, listings[0].YesPrice, 1e-9)
	assert.InDelta(t, 0.60, listings[0].NoPrice, 1e-9)

	m.Status = "Closed"
	assert.Empty(t, m.toListings())

	m.Status = "Open"
	m.Contracts[0].LastTrade = 0
	assert.Empty(t, m.toListings(), "unpriceable contract is skipped")
}
