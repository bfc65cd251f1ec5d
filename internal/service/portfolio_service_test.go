package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/config"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/service"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/testutil"
)

func newPortfolioService(customers service.CustomerFetcher, assets service.HoldingsFetcher) *service.PortfolioService {
	return service.NewPortfolioService(
		customers, assets, nil,
		config.DefaultHeuristics().Volatility, zerolog.Nop(),
	)
}

// TestPortfolioService_Analyze tests the portfolio analytics.
//
// WHY: Analysis feeds both the customer-facing report and the risk
// assessment. The allocation, concentration, and performance numbers have
// exact definitions that these subtests pin down.
func TestPortfolioService_Analyze(t *testing.T) {
	ctx := context.Background()
	profile := testutil.NewProfile().Build()

	t.Run("empty portfolio yields the neutral analysis", func(t *testing.T) {
		svc := newPortfolioService(testutil.FixedCustomers(profile), testutil.FixedAssets(nil))

		analysis, err := svc.Analyze(ctx, testutil.MakeID())
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}

		if analysis.TotalValue != 0 {
			t.Errorf("TotalValue = %v, want 0", analysis.TotalValue)
		}
		if analysis.RiskScore != 5 {
			t.Errorf("RiskScore = %v, want the neutral 5", analysis.RiskScore)
		}
		if len(analysis.Recommendations) != 1 || analysis.Recommendations[0] != "Start building an investment portfolio" {
			t.Errorf("Unexpected recommendations: %v", analysis.Recommendations)
		}
	})

	t.Run("allocation percentages sum to 100", func(t *testing.T) {
		holdings := []model.AssetHolding{
			testutil.Holding("Savings", model.AssetSavings, 30_000_000, model.RiskLow),
			testutil.Holding("Bond fund", model.AssetBond, 20_000_000, model.RiskLow),
			testutil.Holding("Equity fund", model.AssetFund, 35_000_000, model.RiskMedium),
			testutil.Holding("Tech stock", model.AssetStock, 15_000_000, model.RiskHigh),
		}
		svc := newPortfolioService(testutil.FixedCustomers(profile), testutil.FixedAssets(holdings))

		analysis, err := svc.Analyze(ctx, testutil.MakeID())
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}

		var sum float64
		for _, pct := range analysis.AssetAllocation {
			sum += pct
		}
		if math.Abs(sum-100) > 1e-6 {
			t.Errorf("Allocation sum = %v, want 100", sum)
		}
		if analysis.AssetAllocation[model.AssetSavings] != 30 {
			t.Errorf("Savings allocation = %v, want 30", analysis.AssetAllocation[model.AssetSavings])
		}
	})

	t.Run("risk score is the value-weighted holding risk", func(t *testing.T) {
		// 50% LOW (3) + 50% HIGH (9) = 6.
		holdings := []model.AssetHolding{
			testutil.Holding("Savings", model.AssetSavings, 50_000_000, model.RiskLow),
			testutil.Holding("Tech stock", model.AssetStock, 50_000_000, model.RiskHigh),
		}
		svc := newPortfolioService(testutil.FixedCustomers(profile), testutil.FixedAssets(holdings))

		analysis, err := svc.Analyze(ctx, testutil.MakeID())
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}
		if analysis.RiskScore != 6 {
			t.Errorf("RiskScore = %v, want 6", analysis.RiskScore)
		}
	})

	t.Run("single holding concentrates to HHI 1", func(t *testing.T) {
		holdings := []model.AssetHolding{
			testutil.Holding("Everything", model.AssetStock, 10_000_000, model.RiskHigh),
		}
		svc := newPortfolioService(testutil.FixedCustomers(profile), testutil.FixedAssets(holdings))

		analysis, err := svc.Analyze(ctx, testutil.MakeID())
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}
		if analysis.ConcentrationHHI != 1 {
			t.Errorf("ConcentrationHHI = %v, want 1", analysis.ConcentrationHHI)
		}
	})

	t.Run("performance bands follow the total return", func(t *testing.T) {
		cases := []struct {
			name            string
			current, initial float64
			want            float64
		}{
			{"strong gain", 115, 100, 1.0},
			{"moderate gain", 107, 100, 0.8},
			{"flat", 100, 100, 0.6},
			{"small loss", 97, 100, 0.4},
			{"large loss", 80, 100, 0.2},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				holdings := []model.AssetHolding{
					testutil.HoldingWithGain("Fund", model.AssetFund, tc.current, tc.initial, model.RiskMedium),
				}
				svc := newPortfolioService(testutil.FixedCustomers(profile), testutil.FixedAssets(holdings))

				analysis, err := svc.Analyze(ctx, testutil.MakeID())
				if err != nil {
					t.Fatalf("Analyze() returned unexpected error: %v", err)
				}
				if analysis.PerformanceScore != tc.want {
					t.Errorf("PerformanceScore = %v, want %v", analysis.PerformanceScore, tc.want)
				}
			})
		}
	})

	t.Run("no cost basis yields the neutral performance score", func(t *testing.T) {
		holdings := []model.AssetHolding{
			testutil.HoldingWithGain("Inherited gold", model.AssetGold, 5_000_000, 0, model.RiskMedium),
		}
		svc := newPortfolioService(testutil.FixedCustomers(profile), testutil.FixedAssets(holdings))

		analysis, err := svc.Analyze(ctx, testutil.MakeID())
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}
		if analysis.PerformanceScore != 0.5 {
			t.Errorf("PerformanceScore = %v, want the neutral 0.5", analysis.PerformanceScore)
		}
	})

	t.Run("volatility estimate is value-weighted by asset class", func(t *testing.T) {
		// 50% savings (0.02) + 50% stock (0.25) = 0.135.
		holdings := []model.AssetHolding{
			testutil.Holding("Savings", model.AssetSavings, 50, model.RiskLow),
			testutil.Holding("Stock", model.AssetStock, 50, model.RiskHigh),
		}
		svc := newPortfolioService(testutil.FixedCustomers(profile), testutil.FixedAssets(holdings))

		analysis, err := svc.Analyze(ctx, testutil.MakeID())
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}
		if math.Abs(analysis.VolatilityEstimate-0.135) > 1e-9 {
			t.Errorf("VolatilityEstimate = %v, want 0.135", analysis.VolatilityEstimate)
		}
	})

	t.Run("unknown asset types count as OTHER", func(t *testing.T) {
		holdings := []model.AssetHolding{
			{AssetName: "Mystery", CurrentValue: 100, RiskLevel: model.RiskMedium},
		}
		svc := newPortfolioService(testutil.FixedCustomers(profile), testutil.FixedAssets(holdings))

		analysis, err := svc.Analyze(ctx, testutil.MakeID())
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}
		if analysis.AssetAllocation[model.AssetOther] != 100 {
			t.Errorf("Expected OTHER allocation 100, got %v", analysis.AssetAllocation[model.AssetOther])
		}
	})
}

// TestPortfolioService_Recommendations tests the textual advice rules.
//
// WHY: Each advice rule has a precise trigger. Verifying representative
// portfolios per rule keeps the advice from drifting away from the numbers
// it describes.
func TestPortfolioService_Recommendations(t *testing.T) {
	ctx := context.Background()

	run := func(t *testing.T, profile model.CustomerProfile, holdings []model.AssetHolding) []string {
		t.Helper()
		svc := newPortfolioService(testutil.FixedCustomers(profile), testutil.FixedAssets(holdings))
		analysis, err := svc.Analyze(ctx, testutil.MakeID())
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}
		return analysis.Recommendations
	}

	contains := func(recs []string, want string) bool {
		for _, r := range recs {
			if r == want {
				return true
			}
		}
		return false
	}

	t.Run("concentrated portfolio triggers diversification advice", func(t *testing.T) {
		recs := run(t, testutil.NewProfile().Build(), []model.AssetHolding{
			testutil.Holding("Single stock", model.AssetStock, 100, model.RiskHigh),
		})
		if !contains(recs, "Increase portfolio diversification across asset classes") {
			t.Errorf("Missing diversification advice in %v", recs)
		}
	})

	t.Run("risky portfolio for a cautious customer triggers de-risking advice", func(t *testing.T) {
		profile := testutil.NewProfile().WithRiskProfile(model.RiskLow).Build()
		recs := run(t, profile, []model.AssetHolding{
			testutil.Holding("Tech stock", model.AssetStock, 100, model.RiskHigh),
		})
		if !contains(recs, "Reduce risk by shifting toward safer assets") {
			t.Errorf("Missing de-risking advice in %v", recs)
		}
	})

	t.Run("savings-heavy portfolio triggers yield advice", func(t *testing.T) {
		recs := run(t, testutil.NewProfile().Build(), []model.AssetHolding{
			testutil.Holding("Savings", model.AssetSavings, 90, model.RiskLow),
			testutil.Holding("Fund", model.AssetFund, 10, model.RiskMedium),
		})
		if !contains(recs, "Consider higher-yield products for part of your savings") {
			t.Errorf("Missing yield advice in %v", recs)
		}
	})

	t.Run("well-spread portfolio gets the balanced message", func(t *testing.T) {
		recs := run(t, testutil.NewProfile().Build(), []model.AssetHolding{
			testutil.Holding("Savings", model.AssetSavings, 25, model.RiskLow),
			testutil.Holding("Bond", model.AssetBond, 25, model.RiskLow),
			testutil.Holding("Fund", model.AssetFund, 25, model.RiskMedium),
			testutil.Holding("Gold", model.AssetGold, 25, model.RiskMedium),
		})
		if len(recs) != 1 || recs[0] != "Your portfolio is well balanced" {
			t.Errorf("Expected the balanced message only, got %v", recs)
		}
	})
}

// TestPortfolioService_Degradation tests that analysis never fails.
//
// WHY: Unlike recommendations, analysis has no failure mode: absent profiles
// and upstream failures must produce the documented default analysis.
func TestPortfolioService_Degradation(t *testing.T) {
	ctx := context.Background()

	t.Run("profile fetch failure still analyzes", func(t *testing.T) {
		svc := newPortfolioService(
			&testutil.StubCustomers{
				FetchProfileFunc: func(ctx context.Context, id string) (*model.CustomerProfile, error) {
					return nil, errors.New("connection refused")
				},
			},
			testutil.FixedAssets([]model.AssetHolding{
				testutil.Holding("Savings", model.AssetSavings, 100, model.RiskLow),
			}),
		)

		analysis, err := svc.Analyze(ctx, testutil.MakeID())
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}
		if analysis.TotalValue != 100 {
			t.Errorf("TotalValue = %v, want 100", analysis.TotalValue)
		}
	})

	t.Run("holdings fetch failure degrades to the empty analysis", func(t *testing.T) {
		svc := newPortfolioService(
			testutil.FixedCustomers(testutil.NewProfile().Build()),
			&testutil.StubAssets{
				FetchHoldingsFunc: func(ctx context.Context, id string) ([]model.AssetHolding, error) {
					return nil, errors.New("timeout")
				},
			},
		)

		analysis, err := svc.Analyze(ctx, testutil.MakeID())
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}
		if analysis.RiskScore != 5 {
			t.Errorf("RiskScore = %v, want the neutral 5", analysis.RiskScore)
		}
	})
}
