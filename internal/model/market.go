package model

import "time"

// Index symbols and forex pairs the engine treats specially. The volatility
// index drives the volatility-regime scoring adjustment, the benchmark index
// drives the return multiplier, and the forex proxy drives the SAVINGS
// catalog adjustment.
const (
	VolatilityIndexSymbol = "^VIX"
	BenchmarkIndexSymbol  = "^GSPC"
	ForexProxyPair        = "USDVND"
)

// IndexQuote is a single market index quote inside a snapshot.
type IndexQuote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// MarketSnapshot is an advisory point-in-time view of market conditions
// fetched from the market data service. It is not a source of truth; every
// consumer must tolerate a nil snapshot.
type MarketSnapshot struct {
	Timestamp time.Time             `json:"timestamp"`
	Indices   map[string]IndexQuote `json:"indices"`
	Forex     map[string]float64    `json:"forex"`
	Crypto    map[string]float64    `json:"cryptocurrencies"`
	Sentiment Sentiment             `json:"market_sentiment"`
}

// DeriveSentiment computes the market mood from index quotes: BULLISH when at
// least 70% of indices show a positive change, BEARISH when at most 30% do,
// NEUTRAL otherwise (including when there are no quotes).
func DeriveSentiment(indices map[string]IndexQuote) Sentiment {
	if len(indices) == 0 {
		return SentimentNeutral
	}
	positive := 0
	for _, q := range indices {
		if q.Change > 0 {
			positive++
		}
	}
	ratio := float64(positive) / float64(len(indices))
	switch {
	case ratio >= 0.7:
		return SentimentBullish
	case ratio <= 0.3:
		return SentimentBearish
	default:
		return SentimentNeutral
	}
}

// SentimentOf returns the snapshot's sentiment, defaulting to NEUTRAL for a
// nil snapshot.
func (s *MarketSnapshot) SentimentOf() Sentiment {
	if s == nil || s.Sentiment == "" {
		return SentimentNeutral
	}
	return s.Sentiment
}

// VolatilityIndex returns the volatility index price and whether it was
// present in the snapshot.
func (s *MarketSnapshot) VolatilityIndex() (float64, bool) {
	if s == nil {
		return 0, false
	}
	q, ok := s.Indices[VolatilityIndexSymbol]
	if !ok {
		return 0, false
	}
	return q.Price, true
}

// BenchmarkReturn returns the broad benchmark index return as a fraction
// (0.08 means 8%). Falls back to the documented 8% default when the
// benchmark is unavailable.
func (s *MarketSnapshot) BenchmarkReturn() float64 {
	if s == nil {
		return 0.08
	}
	q, ok := s.Indices[BenchmarkIndexSymbol]
	if !ok {
		return 0.08
	}
	return q.ChangePercent / 100
}

// ForexProxy returns the designated forex rate proxy and whether it was
// present in the snapshot.
func (s *MarketSnapshot) ForexProxy() (float64, bool) {
	if s == nil {
		return 0, false
	}
	rate, ok := s.Forex[ForexProxyPair]
	return rate, ok
}
