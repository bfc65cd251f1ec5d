package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// MakeID generates a unique UUID string for test entities.
func MakeID() string {
	return uuid.New().String()
}

// ProfileBuilder provides a fluent interface for creating test customer
// profiles.
//
// Example usage:
//
//	// Simple creation with defaults (MEDIUM risk)
//	profile := testutil.NewProfile().Build()
//
//	// Customized profile
//	profile := testutil.NewProfile().
//	    WithRiskProfile(model.RiskHigh).
//	    WithAge(28).
//	    Build()
type ProfileBuilder struct {
	profile model.CustomerProfile
}

// NewProfile creates a ProfileBuilder with sensible defaults.
func NewProfile() *ProfileBuilder {
	return &ProfileBuilder{profile: model.CustomerProfile{
		ID:                MakeID(),
		Age:               35,
		Income:            50_000_000,
		CurrentAssets:     200_000_000,
		InvestmentHorizon: 5,
		RiskTolerance:     3,
		RiskProfile:       model.RiskMedium,
		RiskScore:         5,
	}}
}

// WithID sets a custom customer ID.
func (b *ProfileBuilder) WithID(id string) *ProfileBuilder {
	b.profile.ID = id
	return b
}

// WithAge sets the customer age.
func (b *ProfileBuilder) WithAge(age int) *ProfileBuilder {
	b.profile.Age = age
	return b
}

// WithHorizon sets the investment horizon in years.
func (b *ProfileBuilder) WithHorizon(years int) *ProfileBuilder {
	b.profile.InvestmentHorizon = years
	return b
}

// WithTolerance sets the 1-5 risk tolerance self-assessment.
func (b *ProfileBuilder) WithTolerance(tolerance int) *ProfileBuilder {
	b.profile.RiskTolerance = tolerance
	return b
}

// WithRiskProfile sets the assigned risk profile and aligns the risk score
// with it.
func (b *ProfileBuilder) WithRiskProfile(level model.RiskLevel) *ProfileBuilder {
	b.profile.RiskProfile = level
	b.profile.RiskScore = float64(level.Scale())
	return b
}

// Build returns the assembled profile.
func (b *ProfileBuilder) Build() model.CustomerProfile {
	return b.profile
}

// Holding creates a test asset holding with equal current and initial value.
func Holding(name string, at model.AssetType, value float64, risk model.RiskLevel) model.AssetHolding {
	return model.AssetHolding{
		AssetName:    name,
		AssetType:    at,
		CurrentValue: value,
		InitialValue: value,
		RiskLevel:    risk,
	}
}

// HoldingWithGain creates a test asset holding with an explicit cost basis.
func HoldingWithGain(name string, at model.AssetType, current, initial float64, risk model.RiskLevel) model.AssetHolding {
	return model.AssetHolding{
		AssetName:    name,
		AssetType:    at,
		CurrentValue: current,
		InitialValue: initial,
		RiskLevel:    risk,
	}
}

// SnapshotBuilder provides a fluent interface for creating test market
// snapshots.
type SnapshotBuilder struct {
	snap model.MarketSnapshot
}

// NewSnapshot creates a SnapshotBuilder with a neutral market: half the
// indices up, half down, no volatility index, no forex rates.
func NewSnapshot() *SnapshotBuilder {
	return &SnapshotBuilder{snap: model.MarketSnapshot{
		Timestamp: time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
		Indices: map[string]model.IndexQuote{
			"^DJI":  {Symbol: "^DJI", Price: 38000, Change: 120, ChangePercent: 0.32},
			"^IXIC": {Symbol: "^IXIC", Price: 15500, Change: -45, ChangePercent: -0.29},
		},
		Forex:     map[string]float64{},
		Crypto:    map[string]float64{},
		Sentiment: model.SentimentNeutral,
	}}
}

// Bullish marks the snapshot as a rising market.
func (b *SnapshotBuilder) Bullish() *SnapshotBuilder {
	b.snap.Sentiment = model.SentimentBullish
	return b
}

// Bearish marks the snapshot as a falling market.
func (b *SnapshotBuilder) Bearish() *SnapshotBuilder {
	b.snap.Sentiment = model.SentimentBearish
	return b
}

// WithVolatilityIndex sets the volatility index price.
func (b *SnapshotBuilder) WithVolatilityIndex(price float64) *SnapshotBuilder {
	b.snap.Indices[model.VolatilityIndexSymbol] = model.IndexQuote{
		Symbol: model.VolatilityIndexSymbol,
		Price:  price,
	}
	return b
}

// WithBenchmarkReturn sets the benchmark index change as a percent
// (0.5 means 0.5%).
func (b *SnapshotBuilder) WithBenchmarkReturn(changePercent float64) *SnapshotBuilder {
	b.snap.Indices[model.BenchmarkIndexSymbol] = model.IndexQuote{
		Symbol:        model.BenchmarkIndexSymbol,
		Price:         4800,
		Change:        changePercent * 48,
		ChangePercent: changePercent,
	}
	return b
}

// WithForexProxy sets the forex rate proxy used by catalog adjustments.
func (b *SnapshotBuilder) WithForexProxy(rate float64) *SnapshotBuilder {
	b.snap.Forex[model.ForexProxyPair] = rate
	return b
}

// Build returns a pointer to the assembled snapshot.
func (b *SnapshotBuilder) Build() *model.MarketSnapshot {
	return &b.snap
}
