package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/config"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/ml"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/service"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/testutil"
)

// fullCatalog covers every asset class across the three risk bands.
func fullCatalog() *testutil.StubCatalog {
	return &testutil.StubCatalog{Items: []model.InvestmentProduct{
		testutil.Product("SAV01", model.AssetSavings, model.RiskLow, 7.5, 1_000_000),
		testutil.Product("BND01", model.AssetBond, model.RiskLow, 8.5, 100_000),
		testutil.Product("FND01", model.AssetFund, model.RiskMedium, 12, 500_000),
		testutil.Product("GLD01", model.AssetGold, model.RiskMedium, 6, 500_000),
		testutil.Product("STK01", model.AssetStock, model.RiskHigh, 15, 1_000_000),
	}}
}

func newRecommendationService(
	customers service.CustomerFetcher,
	assets service.HoldingsFetcher,
	market service.SnapshotFetcher,
	predictor service.RiskReturnPredictor,
	catalog service.ProductSource,
) *service.RecommendationService {
	markets := service.NewMarketService(market, nil, zerolog.Nop())
	return service.NewRecommendationService(
		customers, assets, markets, predictor, catalog, nil,
		config.DefaultHeuristics().Scoring, zerolog.Nop(),
	)
}

// TestRecommendationService_Generate tests the end-to-end recommendation flow.
//
// WHY: Generation combines filtering, scoring, and post-processing. These
// subtests pin the externally observable guarantees: suitability, market
// regime handling, amount tailoring, and the response envelope.
func TestRecommendationService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("never recommends above the customer's risk band", func(t *testing.T) {
		profile := testutil.NewProfile().WithRiskProfile(model.RiskLow).Build()
		svc := newRecommendationService(
			testutil.FixedCustomers(profile),
			testutil.FixedAssets(nil),
			testutil.FixedMarket(testutil.NewSnapshot().Build()),
			&testutil.StubPredictor{Result: ml.Prediction{RiskScore: 3, ExpectedReturn: 8}},
			fullCatalog(),
		)

		result, err := svc.Generate(ctx, testutil.MakeID(), nil)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		if len(result.Recommendations) == 0 {
			t.Fatal("Expected recommendations for a LOW-risk customer")
		}
		for _, p := range result.Recommendations {
			if p.RiskLevel != model.RiskLow {
				t.Errorf("LOW-risk customer received %s product %s", p.RiskLevel, p.ProductCode)
			}
		}
	})

	t.Run("bearish market excludes stocks even for high-risk customers", func(t *testing.T) {
		profile := testutil.NewProfile().WithRiskProfile(model.RiskHigh).Build()
		svc := newRecommendationService(
			testutil.FixedCustomers(profile),
			testutil.FixedAssets(nil),
			testutil.FixedMarket(testutil.NewSnapshot().Bearish().Build()),
			&testutil.StubPredictor{Result: ml.Prediction{RiskScore: 8, ExpectedReturn: 14}},
			fullCatalog(),
		)

		result, err := svc.Generate(ctx, testutil.MakeID(), nil)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		for _, p := range result.Recommendations {
			if p.AssetType == model.AssetStock {
				t.Errorf("Bearish market still recommended stock %s", p.ProductCode)
			}
		}
	})

	t.Run("relaxes the regime filter instead of returning nothing", func(t *testing.T) {
		// A bullish market excludes BOND and GOLD, but the catalog offers
		// nothing else inside the LOW band except those.
		profile := testutil.NewProfile().WithRiskProfile(model.RiskLow).Build()
		bondOnly := &testutil.StubCatalog{Items: []model.InvestmentProduct{
			testutil.Product("BND01", model.AssetBond, model.RiskLow, 8.5, 100_000),
			testutil.Product("BND02", model.AssetBond, model.RiskLow, 8.0, 100_000),
		}}
		svc := newRecommendationService(
			testutil.FixedCustomers(profile),
			testutil.FixedAssets(nil),
			testutil.FixedMarket(testutil.NewSnapshot().Bullish().Build()),
			&testutil.StubPredictor{Result: ml.Prediction{RiskScore: 3, ExpectedReturn: 8}},
			bondOnly,
		)

		result, err := svc.Generate(ctx, testutil.MakeID(), nil)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		if len(result.Recommendations) != 2 {
			t.Errorf("Expected the relaxed filter to keep both bonds, got %d products",
				len(result.Recommendations))
		}
	})

	t.Run("lowers the minimum investment to the requested amount", func(t *testing.T) {
		profile := testutil.NewProfile().WithRiskProfile(model.RiskHigh).Build()
		svc := newRecommendationService(
			testutil.FixedCustomers(profile),
			testutil.FixedAssets(nil),
			testutil.FixedMarket(testutil.NewSnapshot().Build()),
			&testutil.StubPredictor{Result: ml.Prediction{RiskScore: 6, ExpectedReturn: 10}},
			fullCatalog(),
		)

		amount := 200_000.0
		result, err := svc.Generate(ctx, testutil.MakeID(), &amount)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		for _, p := range result.Recommendations {
			if p.MinInvestment > amount {
				t.Errorf("Product %s kept minimum %v above the requested amount %v",
					p.ProductCode, p.MinInvestment, amount)
			}
			if p.MaxInvestment != nil && *p.MaxInvestment > amount {
				t.Errorf("Product %s kept maximum %v above the requested amount %v",
					p.ProductCode, *p.MaxInvestment, amount)
			}
		}
	})

	t.Run("bullish sentiment ranks stocks above an equally suitable fund", func(t *testing.T) {
		profile := testutil.NewProfile().WithRiskProfile(model.RiskHigh).Build()
		// Two MEDIUM-adjacent products with identical returns so the
		// sentiment bonus decides the order.
		pair := &testutil.StubCatalog{Items: []model.InvestmentProduct{
			testutil.Product("FND01", model.AssetFund, model.RiskHigh, 12, 500_000),
			testutil.Product("STK01", model.AssetStock, model.RiskHigh, 12, 500_000),
		}}
		svc := newRecommendationService(
			testutil.FixedCustomers(profile),
			testutil.FixedAssets(nil),
			testutil.FixedMarket(testutil.NewSnapshot().Bullish().Build()),
			&testutil.StubPredictor{Result: ml.Prediction{RiskScore: 9, ExpectedReturn: 12}},
			pair,
		)

		result, err := svc.Generate(ctx, testutil.MakeID(), nil)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		if len(result.Recommendations) != 2 {
			t.Fatalf("Expected 2 recommendations, got %d", len(result.Recommendations))
		}
		if result.Recommendations[0].AssetType != model.AssetStock {
			t.Errorf("Expected the stock first in a bullish market, got %s",
				result.Recommendations[0].AssetType)
		}
	})

	t.Run("held asset types lose the diversification edge", func(t *testing.T) {
		profile := testutil.NewProfile().WithRiskProfile(model.RiskMedium).Build()
		holdings := []model.AssetHolding{
			testutil.Holding("Equity fund", model.AssetFund, 10_000_000, model.RiskMedium),
		}
		pair := &testutil.StubCatalog{Items: []model.InvestmentProduct{
			testutil.Product("FND01", model.AssetFund, model.RiskMedium, 10, 500_000),
			testutil.Product("GLD01", model.AssetGold, model.RiskMedium, 10, 500_000),
		}}
		svc := newRecommendationService(
			testutil.FixedCustomers(profile),
			testutil.FixedAssets(holdings),
			testutil.FixedMarket(testutil.NewSnapshot().Build()),
			&testutil.StubPredictor{Result: ml.Prediction{RiskScore: 6, ExpectedReturn: 10}},
			pair,
		)

		result, err := svc.Generate(ctx, testutil.MakeID(), nil)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		if result.Recommendations[0].AssetType != model.AssetGold {
			t.Errorf("Expected the unheld asset class first, got %s",
				result.Recommendations[0].AssetType)
		}
	})

	t.Run("limits recommendations to the top five", func(t *testing.T) {
		items := make([]model.InvestmentProduct, 0, 8)
		for i, code := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
			items = append(items, testutil.Product(
				"SAV0"+code, model.AssetSavings, model.RiskLow, 5+float64(i), 100_000))
		}
		profile := testutil.NewProfile().WithRiskProfile(model.RiskMedium).Build()
		svc := newRecommendationService(
			testutil.FixedCustomers(profile),
			testutil.FixedAssets(nil),
			testutil.FixedMarket(testutil.NewSnapshot().Build()),
			&testutil.StubPredictor{Result: ml.Prediction{RiskScore: 5, ExpectedReturn: 8}},
			&testutil.StubCatalog{Items: items},
		)

		result, err := svc.Generate(ctx, testutil.MakeID(), nil)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		if len(result.Recommendations) != 5 {
			t.Errorf("Expected top 5, got %d", len(result.Recommendations))
		}
	})

	t.Run("confidence scores stay within [0, 1]", func(t *testing.T) {
		profile := testutil.NewProfile().WithRiskProfile(model.RiskHigh).Build()
		svc := newRecommendationService(
			testutil.FixedCustomers(profile),
			testutil.FixedAssets(nil),
			testutil.FixedMarket(testutil.NewSnapshot().Bullish().WithVolatilityIndex(10).Build()),
			&testutil.StubPredictor{Result: ml.Prediction{RiskScore: 9, ExpectedReturn: 15}},
			fullCatalog(),
		)

		amount := 5_000_000.0
		result, err := svc.Generate(ctx, testutil.MakeID(), &amount)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		for _, p := range result.Recommendations {
			if p.ConfidenceScore < 0 || p.ConfidenceScore > 1 {
				t.Errorf("Product %s confidence %v out of [0, 1]", p.ProductCode, p.ConfidenceScore)
			}
			if p.MarketContext == nil {
				t.Errorf("Product %s missing market context", p.ProductCode)
			}
		}
	})

	t.Run("populates the analysis summary and market insights", func(t *testing.T) {
		profile := testutil.NewProfile().WithRiskProfile(model.RiskMedium).Build()
		holdings := []model.AssetHolding{
			testutil.Holding("Gold bar", model.AssetGold, 30_000_000, model.RiskMedium),
			testutil.Holding("Savings", model.AssetSavings, 70_000_000, model.RiskLow),
		}
		svc := newRecommendationService(
			testutil.FixedCustomers(profile),
			testutil.FixedAssets(holdings),
			testutil.FixedMarket(testutil.NewSnapshot().WithVolatilityIndex(22).Build()),
			&testutil.StubPredictor{Result: ml.Prediction{RiskScore: 5.5, ExpectedReturn: 9, UsedMarketData: true}},
			fullCatalog(),
		)

		result, err := svc.Generate(ctx, testutil.MakeID(), nil)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		if result.TotalCurrentAssets != 100_000_000 {
			t.Errorf("TotalCurrentAssets = %v, want 100000000", result.TotalCurrentAssets)
		}
		if result.AnalysisSummary.HoldingCount != 2 || result.AnalysisSummary.DistinctAssetTypes != 2 {
			t.Errorf("Unexpected analysis summary: %+v", result.AnalysisSummary)
		}
		if !result.MarketInsights.MarketDataAvailable {
			t.Error("Expected market insights to report available data")
		}
		if result.MarketInsights.VolatilityIndex == nil || *result.MarketInsights.VolatilityIndex != 22 {
			t.Errorf("Unexpected volatility index in insights: %v", result.MarketInsights.VolatilityIndex)
		}
	})
}

// TestRecommendationService_ErrorPolicy tests the degradation matrix.
//
// WHY: An absent customer is the single user-visible failure; transport
// failures must silently fall back to the default MEDIUM profile so the
// customer still gets an answer.
func TestRecommendationService_ErrorPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("absent customer propagates not-found", func(t *testing.T) {
		svc := newRecommendationService(
			&testutil.StubCustomers{
				FetchProfileFunc: func(ctx context.Context, id string) (*model.CustomerProfile, error) {
					return nil, apperrors.ErrCustomerNotFound
				},
			},
			testutil.FixedAssets(nil),
			testutil.FixedMarket(nil),
			&testutil.StubPredictor{},
			fullCatalog(),
		)

		_, err := svc.Generate(ctx, testutil.MakeID(), nil)
		if !errors.Is(err, apperrors.ErrCustomerNotFound) {
			t.Errorf("Expected ErrCustomerNotFound, got %v", err)
		}
	})

	t.Run("transport failure falls back to the default profile", func(t *testing.T) {
		svc := newRecommendationService(
			&testutil.StubCustomers{
				FetchProfileFunc: func(ctx context.Context, id string) (*model.CustomerProfile, error) {
					return nil, errors.New("connection refused")
				},
			},
			testutil.FixedAssets(nil),
			testutil.FixedMarket(nil),
			&testutil.StubPredictor{Result: ml.Prediction{RiskScore: 5, ExpectedReturn: 8}},
			fullCatalog(),
		)

		result, err := svc.Generate(ctx, testutil.MakeID(), nil)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		if result.RiskProfile != model.RiskMedium {
			t.Errorf("Expected the default MEDIUM profile, got %s", result.RiskProfile)
		}
		for _, p := range result.Recommendations {
			if p.RiskLevel == model.RiskHigh {
				t.Errorf("Default profile received HIGH-risk product %s", p.ProductCode)
			}
		}
	})

	t.Run("holdings failure is absorbed as an empty portfolio", func(t *testing.T) {
		profile := testutil.NewProfile().Build()
		svc := newRecommendationService(
			testutil.FixedCustomers(profile),
			&testutil.StubAssets{
				FetchHoldingsFunc: func(ctx context.Context, id string) ([]model.AssetHolding, error) {
					return nil, errors.New("timeout")
				},
			},
			testutil.FixedMarket(nil),
			&testutil.StubPredictor{Result: ml.Prediction{RiskScore: 5, ExpectedReturn: 8}},
			fullCatalog(),
		)

		result, err := svc.Generate(ctx, testutil.MakeID(), nil)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}
		if result.AnalysisSummary.HoldingCount != 0 || result.TotalCurrentAssets != 0 {
			t.Errorf("Expected empty portfolio after holdings failure, got %+v", result.AnalysisSummary)
		}
	})

	t.Run("missing market data yields neutral insights", func(t *testing.T) {
		profile := testutil.NewProfile().Build()
		svc := newRecommendationService(
			testutil.FixedCustomers(profile),
			testutil.FixedAssets(nil),
			testutil.FixedMarket(nil),
			&testutil.StubPredictor{Result: ml.Prediction{RiskScore: 5, ExpectedReturn: 8}},
			fullCatalog(),
		)

		result, err := svc.Generate(ctx, testutil.MakeID(), nil)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		if result.MarketInsights.MarketDataAvailable {
			t.Error("Expected market data unavailable")
		}
		if result.MarketInsights.Sentiment != model.SentimentNeutral {
			t.Errorf("Expected NEUTRAL sentiment without market data, got %s",
				result.MarketInsights.Sentiment)
		}
	})

	t.Run("missing model degrades to the heuristic prediction", func(t *testing.T) {
		profile := testutil.NewProfile().Build() // RiskScore 5
		svc := newRecommendationService(
			testutil.FixedCustomers(profile),
			testutil.FixedAssets(nil),
			testutil.FixedMarket(testutil.NewSnapshot().Build()),
			nil,
			fullCatalog(),
		)

		result, err := svc.Generate(ctx, testutil.MakeID(), nil)
		if err != nil {
			t.Fatalf("Generate() returned unexpected error: %v", err)
		}

		if !result.AnalysisSummary.ModelFallback {
			t.Error("Expected the fallback flag on the analysis summary")
		}
		if result.AnalysisSummary.PredictedRiskScore != profile.RiskScore {
			t.Errorf("PredictedRiskScore = %v, want the self-reported %v",
				result.AnalysisSummary.PredictedRiskScore, profile.RiskScore)
		}
		if result.AnalysisSummary.PredictedExpectedReturn != ml.FallbackReturn {
			t.Errorf("PredictedExpectedReturn = %v, want %v",
				result.AnalysisSummary.PredictedExpectedReturn, ml.FallbackReturn)
		}
		if len(result.Recommendations) == 0 {
			t.Error("Expected recommendations despite the missing model")
		}
	})
}
