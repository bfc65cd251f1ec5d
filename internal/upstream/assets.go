package upstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// AssetClient fetches a customer's asset holdings from the asset service.
type AssetClient struct {
	client
}

// NewAssetClient creates a client for the asset service.
func NewAssetClient(baseURL string, timeout time.Duration) *AssetClient {
	return &AssetClient{client: newClient("asset-service", baseURL, timeout)}
}

// assetListResponse is the asset service's wire envelope.
type assetListResponse struct {
	Assets []model.AssetHolding `json:"assets"`
}

// FetchHoldings returns the customer's holdings. A customer with no recorded
// assets yields an empty slice, not an error.
func (c *AssetClient) FetchHoldings(ctx context.Context, customerID string) ([]model.AssetHolding, error) {
	var resp assetListResponse
	err := c.getJSON(ctx, "/api/assets/customer/"+customerID, &resp)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return []model.AssetHolding{}, nil
		}
		return nil, fmt.Errorf("failed to fetch asset holdings: %w", err)
	}

	if resp.Assets == nil {
		return []model.AssetHolding{}, nil
	}
	return resp.Assets, nil
}
