package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/cache"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/config"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// Neutral defaults for a customer without holdings or cost-basis data.
const (
	neutralRiskScore        = 5.0
	neutralPerformanceScore = 0.5
	maxDiversifyingTypes    = 5
)

// PortfolioService computes allocation, diversification, concentration,
// performance, and volatility analytics for a customer's existing holdings.
type PortfolioService struct {
	customers  CustomerFetcher
	assets     HoldingsFetcher
	memo       *cache.Cache
	volatility config.VolatilityTable
	log        zerolog.Logger
}

// NewPortfolioService creates a PortfolioService. The cache may be nil.
func NewPortfolioService(
	customers CustomerFetcher,
	assets HoldingsFetcher,
	memo *cache.Cache,
	volatility config.VolatilityTable,
	log zerolog.Logger,
) *PortfolioService {
	return &PortfolioService{
		customers:  customers,
		assets:     assets,
		memo:       memo,
		volatility: volatility,
		log:        log.With().Str("component", "portfolio").Logger(),
	}
}

// Analyze computes the portfolio analysis for a customer. Upstream failures,
// including an absent profile, degrade to documented defaults; the analysis
// never fails.
func (s *PortfolioService) Analyze(ctx context.Context, customerID string) (*model.PortfolioAnalysis, error) {
	key := cache.Key("analysis", customerID)
	var cached model.PortfolioAnalysis
	if s.memo.Get(ctx, key, &cached) {
		return &cached, nil
	}

	profile := s.profileOrDefault(ctx, customerID)
	holdings, err := s.assets.FetchHoldings(ctx, customerID)
	if err != nil {
		s.log.Warn().Err(err).Str("customer_id", customerID).Msg("asset fetch failed, assuming no holdings")
		holdings = nil
	}

	analysis := s.analyze(profile, holdings)
	s.memo.Set(ctx, key, analysis, cache.AnalysisTTL)
	return analysis, nil
}

func (s *PortfolioService) analyze(profile model.CustomerProfile, holdings []model.AssetHolding) *model.PortfolioAnalysis {
	total := model.TotalValue(holdings)
	if len(holdings) == 0 || total <= 0 {
		return &model.PortfolioAnalysis{
			AssetAllocation: map[model.AssetType]float64{},
			RiskScore:       neutralRiskScore,
			Recommendations: []string{"Start building an investment portfolio"},
		}
	}

	allocation := allocationByType(holdings, total)
	riskScore := portfolioRiskScore(holdings, total)
	diversification := diversificationScore(allocation)

	analysis := &model.PortfolioAnalysis{
		TotalValue:           total,
		AssetAllocation:      allocation,
		RiskScore:            riskScore,
		DiversificationScore: diversification,
		PerformanceScore:     performanceScore(holdings),
		ConcentrationHHI:     concentrationHHI(holdings, total),
		VolatilityEstimate:   s.volatilityEstimate(holdings, total),
	}
	analysis.Recommendations = portfolioRecommendations(profile, allocation, riskScore, diversification)
	return analysis
}

func (s *PortfolioService) profileOrDefault(ctx context.Context, customerID string) model.CustomerProfile {
	profile, err := s.customers.FetchProfile(ctx, customerID)
	if err != nil {
		s.log.Warn().Err(err).Str("customer_id", customerID).Msg("customer fetch failed, using default profile")
		return model.DefaultProfile(customerID)
	}
	return *profile
}

// allocationByType returns the percentage allocation per asset type. The
// percentages sum to 100 whenever total is positive.
func allocationByType(holdings []model.AssetHolding, total float64) map[model.AssetType]float64 {
	allocation := make(map[model.AssetType]float64)
	if total <= 0 {
		return allocation
	}
	for _, h := range holdings {
		at := h.AssetType
		if at == "" {
			at = model.AssetOther
		}
		allocation[at] += h.CurrentValue / total * 100
	}
	return allocation
}

// portfolioRiskScore is the value-weighted average of holding risk levels on
// the 1-10 scale. Defaults to the neutral score with no holdings.
func portfolioRiskScore(holdings []model.AssetHolding, total float64) float64 {
	if len(holdings) == 0 || total <= 0 {
		return neutralRiskScore
	}
	var weighted float64
	for _, h := range holdings {
		weighted += h.CurrentValue / total * h.RiskLevel.Scale()
	}
	return roundTo(weighted, 2)
}

// diversificationScore rewards distinct asset types (capped at five) and
// penalizes any type above a 50% allocation. Result is in [0, 1].
func diversificationScore(allocation map[model.AssetType]float64) float64 {
	if len(allocation) == 0 {
		return 0
	}

	score := math.Min(float64(len(allocation))/maxDiversifyingTypes, 1.0)
	for _, pct := range allocation {
		if pct > 50 {
			score -= (pct - 50) / 100
		}
	}
	return math.Max(0, score)
}

// concentrationHHI is the Herfindahl-Hirschman index over individual
// holdings (not asset types). A single holding yields exactly 1.0.
func concentrationHHI(holdings []model.AssetHolding, total float64) float64 {
	if total <= 0 {
		return 0
	}
	var hhi float64
	for _, h := range holdings {
		weight := h.CurrentValue / total
		hhi += weight * weight
	}
	return hhi
}

// performanceScore bands the total return over holdings with cost-basis
// data. Returns the neutral score when no holding has an initial value.
func performanceScore(holdings []model.AssetHolding) float64 {
	var profitLoss, initialTotal float64
	for _, h := range holdings {
		if h.InitialValue > 0 {
			profitLoss += h.CurrentValue - h.InitialValue
			initialTotal += h.InitialValue
		}
	}
	if initialTotal == 0 {
		return neutralPerformanceScore
	}

	returnPct := profitLoss / initialTotal * 100
	switch {
	case returnPct >= 10:
		return 1.0
	case returnPct >= 5:
		return 0.8
	case returnPct >= 0:
		return 0.6
	case returnPct >= -5:
		return 0.4
	default:
		return 0.2
	}
}

// volatilityEstimate is the value-weighted average of the per-asset-class
// volatility table.
func (s *PortfolioService) volatilityEstimate(holdings []model.AssetHolding, total float64) float64 {
	if total <= 0 {
		return 0
	}
	var weighted float64
	for _, h := range holdings {
		weighted += h.CurrentValue / total * s.volatility.Estimate(h.AssetType)
	}
	return weighted
}

// portfolioRecommendations applies the textual advice rules in order and
// emits every one that matches, falling back to a single balanced message.
func portfolioRecommendations(profile model.CustomerProfile, allocation map[model.AssetType]float64, riskScore, diversification float64) []string {
	var recommendations []string

	if diversification < 0.5 {
		recommendations = append(recommendations, "Increase portfolio diversification across asset classes")
	}
	if profile.RiskProfile == model.RiskLow && riskScore > 6 {
		recommendations = append(recommendations, "Reduce risk by shifting toward safer assets")
	}
	if profile.RiskProfile == model.RiskHigh && riskScore < 4 {
		recommendations = append(recommendations, "Consider taking more risk to reach higher returns")
	}
	if allocation[model.AssetSavings] > 80 {
		recommendations = append(recommendations, "Consider higher-yield products for part of your savings")
	}
	if allocation[model.AssetStock] > 60 {
		recommendations = append(recommendations, "Consider reducing equity weight to lower risk")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Your portfolio is well balanced")
	}
	return recommendations
}

func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
