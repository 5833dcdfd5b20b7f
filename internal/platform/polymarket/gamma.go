// Package polymarket is the REST client for the Polymarket Gamma API, mapping
// its market DTOs onto venue-neutral listings.
package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"arbscan/internal/domain"
)

const pageSize = 100

// GammaClient is the REST client for the Polymarket Gamma API, which provides
// market discovery, metadata, and prices.
type GammaClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGammaClient creates a new Gamma API client.
//
// baseURL is the Gamma API root, e.g. "https://gamma-api.polymarket.com".
func NewGammaClient(baseURL string) *GammaClient {
	return &GammaClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Venue identifies which venue this client feeds.
func (g *GammaClient) Venue() domain.Venue { return domain.VenuePolymarket }

// FetchListings pages through all active markets and returns them as
// listings, up to maxListings.
func (g *GammaClient) FetchListings(ctx context.Context, maxListings int) ([]domain.MarketListing, error) {
	var listings []domain.MarketListing
	offset := 0

	for {
		markets, err := g.getMarkets(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(markets) == 0 {
			return listings, nil
		}
		for i := range markets {
			l, ok := markets[i].toListing()
			if !ok {
				continue
			}
			listings = append(listings, l)
			if len(listings) >= maxListings {
				return listings, nil
			}
		}
		offset += len(markets)
	}
}

// getMarkets returns one page of active, binary markets.
func (g *GammaClient) getMarkets(ctx context.Context, limit, offset int) ([]APIMarket, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("active", "true")
	params.Set("closed", "false")

	body, err := g.doGet(ctx, "/markets?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("polymarket/gamma: get markets: %w", err)
	}

	var apiMarkets []APIMarket
	if err := json.Unmarshal(body, &apiMarkets); err != nil {
		return nil, fmt.Errorf("polymarket/gamma: decode markets: %w", err)
	}
	return apiMarkets, nil
}

func (g *GammaClient) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, domain.ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
