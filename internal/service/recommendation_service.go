package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/cache"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/config"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/ml"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// RecommendationService generates ranked investment recommendations from the
// product catalog, the customer profile, and the predictive model.
type RecommendationService struct {
	customers CustomerFetcher
	assets    HoldingsFetcher
	markets   *MarketService
	predictor RiskReturnPredictor // nil means heuristic fallback
	catalog   ProductSource
	memo      *cache.Cache
	weights   config.ScoringWeights
	log       zerolog.Logger
}

// NewRecommendationService creates a RecommendationService. The predictor
// and cache may be nil; both have documented degraded behavior.
func NewRecommendationService(
	customers CustomerFetcher,
	assets HoldingsFetcher,
	markets *MarketService,
	predictor RiskReturnPredictor,
	catalog ProductSource,
	memo *cache.Cache,
	weights config.ScoringWeights,
	log zerolog.Logger,
) *RecommendationService {
	return &RecommendationService{
		customers: customers,
		assets:    assets,
		markets:   markets,
		predictor: predictor,
		catalog:   catalog,
		memo:      memo,
		weights:   weights,
		log:       log.With().Str("component", "recommendations").Logger(),
	}
}

// AnalysisSummary is the compact per-request summary attached to a
// recommendation response.
type AnalysisSummary struct {
	HoldingCount            int     `json:"holding_count"`
	DistinctAssetTypes      int     `json:"distinct_asset_types"`
	PredictedRiskScore      float64 `json:"predicted_risk_score"`
	PredictedExpectedReturn float64 `json:"predicted_expected_return"`
	ModelFallback           bool    `json:"model_fallback"`
}

// MarketInsights summarizes the market context the recommendations were
// generated under.
type MarketInsights struct {
	Sentiment           model.Sentiment `json:"market_sentiment"`
	VolatilityIndex     *float64        `json:"volatility_index,omitempty"`
	BenchmarkReturn     float64         `json:"benchmark_return"`
	MarketDataAvailable bool            `json:"market_data_available"`
}

// RecommendationResult is the full outcome of a recommendation request.
type RecommendationResult struct {
	CustomerID         string                    `json:"customer_id"`
	Recommendations    []model.InvestmentProduct `json:"recommendations"`
	RiskProfile        model.RiskLevel           `json:"risk_profile"`
	TotalCurrentAssets float64                   `json:"total_current_assets"`
	AnalysisSummary    AnalysisSummary           `json:"analysis_summary"`
	MarketInsights     MarketInsights            `json:"market_insights"`
	GeneratedAt        time.Time                 `json:"generated_at"`
}

// Generate produces the top-ranked recommendations for a customer. The only
// error it returns is ErrCustomerNotFound; every other upstream or model
// failure is absorbed into a degraded but fully populated result.
func (s *RecommendationService) Generate(ctx context.Context, customerID string, investmentAmount *float64) (*RecommendationResult, error) {
	key := cache.Key("recommendations", customerID)
	var cached RecommendationResult
	if s.memo.Get(ctx, key, &cached) {
		return &cached, nil
	}

	profile, err := s.fetchProfile(ctx, customerID)
	if err != nil {
		return nil, err
	}

	holdings := s.fetchHoldings(ctx, customerID)
	snap := s.markets.Snapshot(ctx)
	prediction := s.predict(*profile, snap)

	candidates := s.catalog.Products(snap)
	admissible := s.filterCandidates(candidates, profile.RiskProfile, snap.SentimentOf())
	ranked := s.rank(admissible, *profile, holdings, snap, prediction, investmentAmount)

	result := &RecommendationResult{
		CustomerID:         customerID,
		Recommendations:    ranked,
		RiskProfile:        profile.RiskProfile,
		TotalCurrentAssets: model.TotalValue(holdings),
		AnalysisSummary: AnalysisSummary{
			HoldingCount:            len(holdings),
			DistinctAssetTypes:      len(model.HeldAssetTypes(holdings)),
			PredictedRiskScore:      prediction.RiskScore,
			PredictedExpectedReturn: prediction.ExpectedReturn,
			ModelFallback:           prediction.Fallback,
		},
		MarketInsights: s.marketInsights(snap),
		GeneratedAt:    time.Now().UTC(),
	}

	s.memo.Set(ctx, key, result, cache.RecommendationsTTL)
	return result, nil
}

// fetchProfile propagates an absent profile and substitutes the documented
// default profile for transport failures.
func (s *RecommendationService) fetchProfile(ctx context.Context, customerID string) (*model.CustomerProfile, error) {
	profile, err := s.customers.FetchProfile(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCustomerNotFound) {
			return nil, err
		}
		s.log.Warn().Err(err).Str("customer_id", customerID).Msg("customer fetch failed, using default profile")
		fallback := model.DefaultProfile(customerID)
		return &fallback, nil
	}
	return profile, nil
}

func (s *RecommendationService) fetchHoldings(ctx context.Context, customerID string) []model.AssetHolding {
	holdings, err := s.assets.FetchHoldings(ctx, customerID)
	if err != nil {
		s.log.Warn().Err(err).Str("customer_id", customerID).Msg("asset fetch failed, assuming no holdings")
		return nil
	}
	return holdings
}

func (s *RecommendationService) predict(profile model.CustomerProfile, snap *model.MarketSnapshot) ml.Prediction {
	if s.predictor == nil {
		s.log.Warn().Err(apperrors.ErrModelUnavailable).Str("customer_id", profile.ID).Msg("using heuristic prediction")
		return ml.FallbackPrediction(profile)
	}
	return s.predictor.Predict(profile, snap)
}

// filterCandidates applies the risk-profile admissibility rule, then the
// market-regime rule. When the regime rule would empty a non-empty risk-
// admissible set, it is relaxed so the customer still receives candidates.
func (s *RecommendationService) filterCandidates(products []model.InvestmentProduct, profile model.RiskLevel, sentiment model.Sentiment) []model.InvestmentProduct {
	riskAdmissible := make([]model.InvestmentProduct, 0, len(products))
	for _, p := range products {
		if p.RiskLevel.Rank() <= profile.Rank() {
			riskAdmissible = append(riskAdmissible, p)
		}
	}

	regimeAdmissible := make([]model.InvestmentProduct, 0, len(riskAdmissible))
	for _, p := range riskAdmissible {
		if !regimeExcluded(p.AssetType, sentiment) {
			regimeAdmissible = append(regimeAdmissible, p)
		}
	}

	if len(regimeAdmissible) == 0 && len(riskAdmissible) > 0 {
		s.log.Warn().
			Str("risk_profile", string(profile)).
			Str("sentiment", string(sentiment)).
			Msg("market-regime filter emptied candidate set, relaxing it")
		return riskAdmissible
	}
	return regimeAdmissible
}

// regimeExcluded holds the market-regime suitability rule: no STOCK picks in
// a BEARISH market, no BOND or GOLD picks in a BULLISH one.
func regimeExcluded(at model.AssetType, sentiment model.Sentiment) bool {
	switch sentiment {
	case model.SentimentBearish:
		return at == model.AssetStock
	case model.SentimentBullish:
		return at == model.AssetBond || at == model.AssetGold
	default:
		return false
	}
}

// rank scores every admissible candidate, sorts descending, and returns the
// finished top-N with confidence, amount post-processing, and market context.
func (s *RecommendationService) rank(
	candidates []model.InvestmentProduct,
	profile model.CustomerProfile,
	holdings []model.AssetHolding,
	snap *model.MarketSnapshot,
	prediction ml.Prediction,
	investmentAmount *float64,
) []model.InvestmentProduct {
	heldTypes := model.HeldAssetTypes(holdings)

	type scoredProduct struct {
		product model.InvestmentProduct
		score   float64
	}
	scored := make([]scoredProduct, len(candidates))
	for i, p := range candidates {
		scored[i] = scoredProduct{
			product: p,
			score:   s.scoreProduct(p, profile, heldTypes, snap, prediction, investmentAmount),
		}
	}

	// Stable sort with a product-code tiebreak keeps ranking reproducible.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].product.ProductCode < scored[j].product.ProductCode
	})

	topN := s.weights.TopN
	if topN > len(scored) {
		topN = len(scored)
	}

	result := make([]model.InvestmentProduct, 0, topN)
	for _, sp := range scored[:topN] {
		p := sp.product
		p.ConfidenceScore = math.Min(sp.score/s.weights.ConfidenceBase, 1.0)
		s.applyAmount(&p, investmentAmount)
		p.MarketContext = s.marketContext(p, snap, prediction)
		result = append(result, p)
	}
	return result
}

// applyAmount adjusts the displayed investment bounds for the requested
// amount: the minimum is only ever lowered, and the maximum is capped.
func (s *RecommendationService) applyAmount(p *model.InvestmentProduct, amount *float64) {
	if amount == nil {
		return
	}
	if *amount < p.MinInvestment {
		p.MinInvestment = *amount
	}
	if p.MaxInvestment != nil {
		capped := math.Min(*p.MaxInvestment, *amount)
		p.MaxInvestment = &capped
	}
}

func (s *RecommendationService) marketInsights(snap *model.MarketSnapshot) MarketInsights {
	insights := MarketInsights{
		Sentiment:           snap.SentimentOf(),
		BenchmarkReturn:     snap.BenchmarkReturn(),
		MarketDataAvailable: snap != nil,
	}
	if vix, ok := snap.VolatilityIndex(); ok {
		insights.VolatilityIndex = &vix
	}
	return insights
}
