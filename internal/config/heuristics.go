package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// Heuristics consolidates every tunable constant used by the scoring,
// catalog, analytics, and stress-test calculations. Keeping them in one
// place makes each table independently testable and tunable without touching
// the calculation code.
type Heuristics struct {
	Scoring    ScoringWeights     `yaml:"scoring"`
	Catalog    CatalogAdjustments `yaml:"catalog"`
	Volatility VolatilityTable    `yaml:"volatility"`
	Stress     StressRates        `yaml:"stress"`
}

// ScoringWeights holds the multi-factor product scorer weights.
type ScoringWeights struct {
	ReturnWeight         float64 `yaml:"return_weight"`
	RiskMatchBonus       float64 `yaml:"risk_match_bonus"`
	RiskAdjacentBonus    float64 `yaml:"risk_adjacent_bonus"`
	DiversificationBonus float64 `yaml:"diversification_bonus"`
	AmountFitBonus       float64 `yaml:"amount_fit_bonus"`
	AmountMissPenalty    float64 `yaml:"amount_miss_penalty"`

	// Sentiment maps asset type and market sentiment to a score adjustment.
	Sentiment map[model.AssetType]map[model.Sentiment]float64 `yaml:"sentiment"`

	// ML-alignment bands: bonus by distance between the model prediction and
	// the product's risk scale / expected return.
	RiskDiffClose      float64 `yaml:"risk_diff_close"`       // diff <= 2
	RiskDiffNear       float64 `yaml:"risk_diff_near"`        // diff <= 4
	RiskDiffFarPenalty float64 `yaml:"risk_diff_far_penalty"` // otherwise, subtracted

	ReturnDiffClose      float64 `yaml:"return_diff_close"`       // diff <= 3
	ReturnDiffNear       float64 `yaml:"return_diff_near"`        // diff <= 6
	ReturnDiffFarPenalty float64 `yaml:"return_diff_far_penalty"` // otherwise, subtracted

	// Volatility-regime thresholds on the volatility index's native scale.
	VolatilityHighThreshold float64 `yaml:"volatility_high_threshold"`
	VolatilityLowThreshold  float64 `yaml:"volatility_low_threshold"`
	VolatilityRegimeBonus   float64 `yaml:"volatility_regime_bonus"`

	TopN           int     `yaml:"top_n"`
	ConfidenceBase float64 `yaml:"confidence_base"` // score divisor for confidence
}

// CatalogAdjustments holds the per-asset-class expected-return adjustments
// the catalog generator applies from the market snapshot.
type CatalogAdjustments struct {
	// Sentiment maps asset type and sentiment to a base-return adjustment.
	Sentiment map[model.AssetType]map[model.Sentiment]float64 `yaml:"sentiment"`

	// SAVINGS products key off the forex rate proxy instead of sentiment.
	ForexHighThreshold  float64 `yaml:"forex_high_threshold"`
	ForexLowThreshold   float64 `yaml:"forex_low_threshold"`
	ForexSavingsShift   float64 `yaml:"forex_savings_shift"`
	ReturnNoiseRange    float64 `yaml:"return_noise_range"`     // uniform(-x, x)
	MinInvestScaleFloor float64 `yaml:"min_invest_scale_floor"` // uniform scale lower bound
	MinInvestScaleCeil  float64 `yaml:"min_invest_scale_ceil"`  // uniform scale upper bound
}

// VolatilityTable is the fixed per-asset-class annualized volatility estimate
// used for the value-weighted portfolio volatility.
type VolatilityTable map[model.AssetType]float64

// Estimate returns the volatility for an asset type, using the OTHER entry
// for unknown types.
func (t VolatilityTable) Estimate(at model.AssetType) float64 {
	if v, ok := t[at]; ok {
		return v
	}
	return t[model.AssetOther]
}

// StressRates holds the scenario loss rates used by the stress tests.
type StressRates struct {
	CrashEquityLossRate float64 `yaml:"crash_equity_loss_rate"` // STOCK and FUND
	CrashGoldLossRate   float64 `yaml:"crash_gold_loss_rate"`
	RateHikeBondImpact  float64 `yaml:"rate_hike_bond_impact"`
	RateHikeSavingsGain float64 `yaml:"rate_hike_savings_gain"`
}

// DefaultHeuristics returns the compiled-in heuristic tables.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		Scoring: ScoringWeights{
			ReturnWeight:         2.0,
			RiskMatchBonus:       20,
			RiskAdjacentBonus:    10,
			DiversificationBonus: 15,
			AmountFitBonus:       10,
			AmountMissPenalty:    20,
			Sentiment: map[model.AssetType]map[model.Sentiment]float64{
				model.AssetStock: {
					model.SentimentBullish: 15,
					model.SentimentBearish: -10,
				},
				model.AssetBond: {
					model.SentimentBearish: 10,
					model.SentimentBullish: -5,
				},
				model.AssetGold: {
					model.SentimentBearish: 10,
				},
				model.AssetSavings: {
					model.SentimentBullish: 5,
					model.SentimentNeutral: 5,
					model.SentimentBearish: 5,
				},
			},
			RiskDiffClose:           10,
			RiskDiffNear:            5,
			RiskDiffFarPenalty:      5,
			ReturnDiffClose:         8,
			ReturnDiffNear:          4,
			ReturnDiffFarPenalty:    3,
			VolatilityHighThreshold: 30,
			VolatilityLowThreshold:  15,
			VolatilityRegimeBonus:   5,
			TopN:                    5,
			ConfidenceBase:          100,
		},
		Catalog: CatalogAdjustments{
			Sentiment: map[model.AssetType]map[model.Sentiment]float64{
				model.AssetFund: {
					model.SentimentBullish: 1.0,
					model.SentimentBearish: -1.0,
				},
				model.AssetBond: {
					model.SentimentBearish: 0.5,
					model.SentimentBullish: -0.5,
				},
				model.AssetStock: {
					model.SentimentBullish: 2.0,
					model.SentimentBearish: -2.0,
				},
				model.AssetGold: {
					model.SentimentBearish: 1.0,
					model.SentimentBullish: -0.5,
				},
			},
			ForexHighThreshold:  25000,
			ForexLowThreshold:   23000,
			ForexSavingsShift:   0.5,
			ReturnNoiseRange:    2.0,
			MinInvestScaleFloor: 0.8,
			MinInvestScaleCeil:  1.5,
		},
		Volatility: VolatilityTable{
			model.AssetSavings: 0.02,
			model.AssetBond:    0.05,
			model.AssetGold:    0.15,
			model.AssetFund:    0.20,
			model.AssetStock:   0.25,
			model.AssetOther:   0.10,
		},
		Stress: StressRates{
			CrashEquityLossRate: 0.15,
			CrashGoldLossRate:   0.05,
			RateHikeBondImpact:  0.08,
			RateHikeSavingsGain: 0.02,
		},
	}
}

// LoadHeuristics returns the default tables, overridden by the YAML file at
// path when one is given. A missing path is not an error; the defaults are
// authoritative.
func LoadHeuristics(path string) (Heuristics, error) {
	h := DefaultHeuristics()
	if path == "" {
		return h, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return h, fmt.Errorf("failed to read heuristics file: %w", err)
	}
	if err := yaml.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("failed to parse heuristics file: %w", err)
	}
	return h, nil
}
