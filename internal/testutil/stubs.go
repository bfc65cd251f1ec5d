package testutil

import (
	"context"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/ml"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// StubCustomers implements the customer fetcher interface with a function
// field so tests can script profile responses per call.
type StubCustomers struct {
	FetchProfileFunc func(ctx context.Context, customerID string) (*model.CustomerProfile, error)
}

func (s *StubCustomers) FetchProfile(ctx context.Context, customerID string) (*model.CustomerProfile, error) {
	return s.FetchProfileFunc(ctx, customerID)
}

// FixedCustomers returns a stub that always serves the given profile.
func FixedCustomers(profile model.CustomerProfile) *StubCustomers {
	return &StubCustomers{
		FetchProfileFunc: func(ctx context.Context, customerID string) (*model.CustomerProfile, error) {
			p := profile
			p.ID = customerID
			return &p, nil
		},
	}
}

// StubAssets implements the holdings fetcher interface.
type StubAssets struct {
	FetchHoldingsFunc func(ctx context.Context, customerID string) ([]model.AssetHolding, error)
}

func (s *StubAssets) FetchHoldings(ctx context.Context, customerID string) ([]model.AssetHolding, error) {
	return s.FetchHoldingsFunc(ctx, customerID)
}

// FixedAssets returns a stub that always serves the given holdings.
func FixedAssets(holdings []model.AssetHolding) *StubAssets {
	return &StubAssets{
		FetchHoldingsFunc: func(ctx context.Context, customerID string) ([]model.AssetHolding, error) {
			return holdings, nil
		},
	}
}

// StubMarket implements the snapshot fetcher interface.
type StubMarket struct {
	FetchSnapshotFunc func(ctx context.Context) (*model.MarketSnapshot, error)
}

func (s *StubMarket) FetchSnapshot(ctx context.Context) (*model.MarketSnapshot, error) {
	return s.FetchSnapshotFunc(ctx)
}

// FixedMarket returns a stub that always serves the given snapshot.
// A nil snapshot simulates market data being unavailable.
func FixedMarket(snap *model.MarketSnapshot) *StubMarket {
	return &StubMarket{
		FetchSnapshotFunc: func(ctx context.Context) (*model.MarketSnapshot, error) {
			if snap == nil {
				return nil, context.DeadlineExceeded
			}
			return snap, nil
		},
	}
}

// StubPredictor implements the risk/return predictor interface with a fixed
// prediction, letting scoring tests pin the model output.
type StubPredictor struct {
	Result ml.Prediction
}

func (s *StubPredictor) Predict(profile model.CustomerProfile, snap *model.MarketSnapshot) ml.Prediction {
	return s.Result
}

// StubCatalog implements the product source interface with a fixed product
// list.
type StubCatalog struct {
	Items []model.InvestmentProduct
}

func (s *StubCatalog) Products(snap *model.MarketSnapshot) []model.InvestmentProduct {
	return s.Items
}

func (s *StubCatalog) Refresh(snap *model.MarketSnapshot) []model.InvestmentProduct {
	return s.Items
}

func (s *StubCatalog) Size() int {
	return len(s.Items)
}

// Product creates a test investment product with the given characteristics.
func Product(code string, at model.AssetType, risk model.RiskLevel, expectedReturn, minInvestment float64) model.InvestmentProduct {
	return model.InvestmentProduct{
		ProductCode:       code,
		ProductName:       string(at) + " test product",
		AssetType:         at,
		RiskLevel:         risk,
		ExpectedReturn:    expectedReturn,
		MinInvestment:     minInvestment,
		InvestmentHorizon: "5 years",
	}
}
