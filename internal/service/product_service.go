package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// ProductService exposes the generated product catalog.
type ProductService struct {
	catalog ProductSource
	markets *MarketService
	log     zerolog.Logger
}

// NewProductService creates a ProductService.
func NewProductService(catalog ProductSource, markets *MarketService, log zerolog.Logger) *ProductService {
	return &ProductService{
		catalog: catalog,
		markets: markets,
		log:     log.With().Str("component", "products").Logger(),
	}
}

// ProductList is the catalog listing with summary statistics.
type ProductList struct {
	Products           []model.InvestmentProduct `json:"products"`
	TotalCount         int                       `json:"total_count"`
	DistinctAssetTypes []model.AssetType         `json:"asset_types"`
	DistinctRiskLevels []model.RiskLevel         `json:"risk_levels"`
}

// List returns the current catalog, building it on first access.
func (s *ProductService) List(ctx context.Context) *ProductList {
	return summarize(s.catalog.Products(s.markets.Snapshot(ctx)))
}

// RefreshCatalog rebuilds the catalog from a fresh market snapshot.
func (s *ProductService) RefreshCatalog(ctx context.Context) *ProductList {
	products := s.catalog.Refresh(s.markets.Snapshot(ctx))
	s.log.Info().Int("products", len(products)).Msg("catalog refreshed on request")
	return summarize(products)
}

func summarize(products []model.InvestmentProduct) *ProductList {
	assetSeen := map[model.AssetType]bool{}
	riskSeen := map[model.RiskLevel]bool{}
	var assetTypes []model.AssetType
	var riskLevels []model.RiskLevel

	for _, p := range products {
		if !assetSeen[p.AssetType] {
			assetSeen[p.AssetType] = true
			assetTypes = append(assetTypes, p.AssetType)
		}
		if !riskSeen[p.RiskLevel] {
			riskSeen[p.RiskLevel] = true
			riskLevels = append(riskLevels, p.RiskLevel)
		}
	}

	return &ProductList{
		Products:           products,
		TotalCount:         len(products),
		DistinctAssetTypes: assetTypes,
		DistinctRiskLevels: riskLevels,
	}
}
