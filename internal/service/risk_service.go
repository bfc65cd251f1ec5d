package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/cache"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/config"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/ml"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// Concentration thresholds for the risk-factor scan, in percent of total
// portfolio value.
const (
	concentrationWarnPct = 30.0
	concentrationHighPct = 50.0
)

// RiskService blends customer, portfolio, and model-predicted risk into an
// overall assessment with identified risk factors and stress-test scenarios.
type RiskService struct {
	customers CustomerFetcher
	assets    HoldingsFetcher
	markets   *MarketService
	predictor RiskReturnPredictor // nil means heuristic fallback
	memo      *cache.Cache
	rates     config.StressRates
	log       zerolog.Logger
}

// NewRiskService creates a RiskService. The predictor and cache may be nil.
func NewRiskService(
	customers CustomerFetcher,
	assets HoldingsFetcher,
	markets *MarketService,
	predictor RiskReturnPredictor,
	memo *cache.Cache,
	rates config.StressRates,
	log zerolog.Logger,
) *RiskService {
	return &RiskService{
		customers: customers,
		assets:    assets,
		markets:   markets,
		predictor: predictor,
		memo:      memo,
		rates:     rates,
		log:       log.With().Str("component", "risk").Logger(),
	}
}

// Assess computes the risk assessment for a customer. Upstream failures,
// including an absent profile, degrade to documented defaults; the
// assessment never fails.
func (s *RiskService) Assess(ctx context.Context, customerID string) (*model.RiskAssessment, error) {
	key := cache.Key("risk", customerID)
	var cached model.RiskAssessment
	if s.memo.Get(ctx, key, &cached) {
		return &cached, nil
	}

	profile := s.profileOrDefault(ctx, customerID)
	holdings, err := s.assets.FetchHoldings(ctx, customerID)
	if err != nil {
		s.log.Warn().Err(err).Str("customer_id", customerID).Msg("asset fetch failed, assuming no holdings")
		holdings = nil
	}

	snap := s.markets.Snapshot(ctx)
	prediction := s.predict(profile, snap)

	assessment := s.assess(profile, holdings, prediction)
	s.memo.Set(ctx, key, assessment, cache.RiskTTL)
	return assessment, nil
}

func (s *RiskService) assess(profile model.CustomerProfile, holdings []model.AssetHolding, prediction ml.Prediction) *model.RiskAssessment {
	total := model.TotalValue(holdings)
	portfolioRisk := portfolioRiskScore(holdings, total)
	overall := (portfolioRisk + profile.RiskScore + prediction.RiskScore) / 3
	level := model.RiskLevelFromScore(overall)

	return &model.RiskAssessment{
		OverallRiskLevel:  level,
		RiskScore:         roundTo(overall, 2),
		RiskFactors:       riskFactors(profile, holdings, total),
		RiskMitigation:    mitigationAdvice(level),
		StressTestResults: s.stressTest(holdings, total),
	}
}

func (s *RiskService) profileOrDefault(ctx context.Context, customerID string) model.CustomerProfile {
	profile, err := s.customers.FetchProfile(ctx, customerID)
	if err != nil {
		s.log.Warn().Err(err).Str("customer_id", customerID).Msg("customer fetch failed, using default profile")
		return model.DefaultProfile(customerID)
	}
	return *profile
}

func (s *RiskService) predict(profile model.CustomerProfile, snap *model.MarketSnapshot) ml.Prediction {
	if s.predictor == nil {
		s.log.Warn().Err(apperrors.ErrModelUnavailable).Str("customer_id", profile.ID).Msg("using heuristic prediction")
		return ml.FallbackPrediction(profile)
	}
	return s.predictor.Predict(profile, snap)
}

// riskFactors scans the holdings for concentration and risk-mismatch
// findings.
func riskFactors(profile model.CustomerProfile, holdings []model.AssetHolding, total float64) []model.RiskFactor {
	factors := []model.RiskFactor{}
	if total <= 0 {
		return factors
	}

	for _, h := range holdings {
		pct := h.CurrentValue / total * 100
		if pct <= concentrationWarnPct {
			continue
		}
		severity := model.RiskMedium
		if pct > concentrationHighPct {
			severity = model.RiskHigh
		}
		rounded := roundTo(pct, 2)
		factors = append(factors, model.RiskFactor{
			Type:        "concentration",
			Asset:       h.AssetName,
			Percentage:  rounded,
			Severity:    severity,
			Description: fmt.Sprintf("%s makes up %.2f%% of the portfolio", h.AssetName, rounded),
		})
	}

	if profile.RiskProfile == model.RiskLow {
		for _, h := range holdings {
			if h.RiskLevel == model.RiskHigh {
				factors = append(factors, model.RiskFactor{
					Type:        "risk_mismatch",
					Severity:    model.RiskHigh,
					Description: "Customer has a low risk profile but holds high-risk assets",
				})
				break
			}
		}
	}

	return factors
}

// mitigationAdvice returns the fixed advice list for an overall risk level.
func mitigationAdvice(level model.RiskLevel) []string {
	switch level {
	case model.RiskHigh:
		return []string{
			"Increase the weight of safe assets (savings, bonds)",
			"Diversify the investment portfolio",
			"Set stop-losses on risky positions",
		}
	case model.RiskMedium:
		return []string{
			"Maintain the balance between safe and growth assets",
			"Monitor portfolio performance periodically",
		}
	default:
		return []string{
			"Consider adding growth exposure for higher returns",
		}
	}
}

// stressTest simulates the two fixed scenarios against the current
// allocation. With no holdings both scenarios report zero impact.
func (s *RiskService) stressTest(holdings []model.AssetHolding, total float64) model.StressTestResults {
	allocation := allocationByType(holdings, total)
	equityPct := allocation[model.AssetStock] + allocation[model.AssetFund]
	goldPct := allocation[model.AssetGold]
	bondPct := allocation[model.AssetBond]
	savingsPct := allocation[model.AssetSavings]

	crashLoss := total * (equityPct*s.rates.CrashEquityLossRate + goldPct*s.rates.CrashGoldLossRate) / 100

	var recovery string
	switch {
	case equityPct > 50:
		recovery = "3-5 years"
	case equityPct > 20:
		recovery = "2-3 years"
	default:
		recovery = "1-2 years"
	}

	// Savings interest income offsets part of the bond repricing, so it
	// enters with the opposite sign.
	rateImpact := total * (bondPct*s.rates.RateHikeBondImpact - savingsPct*s.rates.RateHikeSavingsGain) / 100

	return model.StressTestResults{
		MarketCrash: model.StressScenario{
			Description:   "Market crash scenario with a 20% equity drawdown",
			EstimatedLoss: roundTo(crashLoss, 2),
			RecoveryTime:  recovery,
		},
		InterestRateHike: model.StressScenario{
			Description:     "Interest rates rise by 2%",
			Impact:          "Bond values fall while savings interest income rises",
			EstimatedImpact: roundTo(rateImpact, 2),
		},
	}
}
