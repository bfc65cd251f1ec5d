package upstream

import (
	"context"
	"fmt"
	"time"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// MarketClient fetches the current market overview from the market data
// service.
type MarketClient struct {
	client
}

// NewMarketClient creates a client for the market data service.
func NewMarketClient(baseURL string, timeout time.Duration) *MarketClient {
	return &MarketClient{client: newClient("market-data-service", baseURL, timeout)}
}

// marketOverviewResponse is the market data service's wire envelope.
type marketOverviewResponse struct {
	Status string `json:"status"`
	Data   struct {
		Indices map[string]struct {
			Symbol        string  `json:"symbol"`
			Price         float64 `json:"price"`
			Change        float64 `json:"change"`
			ChangePercent float64 `json:"change_percent"`
		} `json:"indices"`
		Forex map[string]struct {
			ExchangeRate float64 `json:"exchange_rate"`
		} `json:"forex"`
		Cryptocurrencies map[string]struct {
			Price float64 `json:"price"`
		} `json:"cryptocurrencies"`
		LastUpdated time.Time `json:"last_updated"`
	} `json:"data"`
}

// FetchSnapshot returns the current market snapshot. Sentiment is derived
// here from the index quotes rather than trusted from upstream.
func (c *MarketClient) FetchSnapshot(ctx context.Context) (*model.MarketSnapshot, error) {
	var resp marketOverviewResponse
	if err := c.getJSON(ctx, "/api/market/current", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch market snapshot: %w", err)
	}

	snap := &model.MarketSnapshot{
		Timestamp: resp.Data.LastUpdated,
		Indices:   make(map[string]model.IndexQuote, len(resp.Data.Indices)),
		Forex:     make(map[string]float64, len(resp.Data.Forex)),
		Crypto:    make(map[string]float64, len(resp.Data.Cryptocurrencies)),
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}

	for symbol, q := range resp.Data.Indices {
		snap.Indices[symbol] = model.IndexQuote{
			Symbol:        symbol,
			Price:         q.Price,
			Change:        q.Change,
			ChangePercent: q.ChangePercent,
		}
	}
	for pair, f := range resp.Data.Forex {
		snap.Forex[pair] = f.ExchangeRate
	}
	for symbol, cr := range resp.Data.Cryptocurrencies {
		snap.Crypto[symbol] = cr.Price
	}

	snap.Sentiment = model.DeriveSentiment(snap.Indices)
	return snap, nil
}
