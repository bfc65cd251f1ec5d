// Package service implements the recommendation, portfolio-analytics, and
// risk-assessment engines on top of the upstream data contracts.
package service

import (
	"context"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/ml"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// CustomerFetcher fetches a customer profile from the customer service.
type CustomerFetcher interface {
	FetchProfile(ctx context.Context, customerID string) (*model.CustomerProfile, error)
}

// HoldingsFetcher fetches a customer's asset holdings from the asset service.
type HoldingsFetcher interface {
	FetchHoldings(ctx context.Context, customerID string) ([]model.AssetHolding, error)
}

// SnapshotFetcher fetches the current market snapshot.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context) (*model.MarketSnapshot, error)
}

// RiskReturnPredictor predicts a risk score and expected return for a
// customer under the current market conditions.
type RiskReturnPredictor interface {
	Predict(profile model.CustomerProfile, snap *model.MarketSnapshot) ml.Prediction
}

// ProductSource supplies the generated product catalog.
type ProductSource interface {
	Products(snap *model.MarketSnapshot) []model.InvestmentProduct
	Refresh(snap *model.MarketSnapshot) []model.InvestmentProduct
	Size() int
}
