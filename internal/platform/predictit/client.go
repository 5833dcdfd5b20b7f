// Package predictit is the read-only client for the PredictIt public market
// data API.
package predictit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"arbscan/internal/domain"
)

// Client fetches the full market snapshot from the PredictIt marketdata API.
// The API exposes a single unauthenticated endpoint with every open market.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new PredictIt client.
//
// baseURL is the marketdata root, e.g. "https://www.predictit.org/api/marketdata".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Venue identifies which venue this client feeds.
func (c *Client) Venue() domain.Venue { return domain.VenuePredictIt }

// FetchListings returns all open binary contracts, up to maxListings. Each
// contract inside a PredictIt market becomes its own listing; multi-contract
// markets prefix the contract name with the market question.
func (c *Client) FetchListings(ctx context.Context, maxListings int) ([]domain.MarketListing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/all/", nil)
	if err != nil {
		return nil, fmt.Errorf("predictit: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predictit: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("predictit: read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, domain.ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("predictit: status %d: %s", resp.StatusCode, string(body))
	}

	var snapshot apiSnapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return nil, fmt.Errorf("predictit: decode snapshot: %w", err)
	}

	var listings []domain.MarketListing
	for i := range snapshot.Markets {
		for _, l := range snapshot.Markets[i].toListings() {
			listings = append(listings, l)
			if len(listings) >= maxListings {
				return listings, nil
			}
		}
	}
	return listings, nil
}
