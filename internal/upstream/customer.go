package upstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// CustomerClient fetches customer profiles from the customer service.
type CustomerClient struct {
	client
}

// NewCustomerClient creates a client for the customer service.
func NewCustomerClient(baseURL string, timeout time.Duration) *CustomerClient {
	return &CustomerClient{client: newClient("customer-service", baseURL, timeout)}
}

// FetchProfile returns the profile for a customer. An absent profile is
// reported as ErrCustomerNotFound; any other error is a transport failure
// the caller may absorb with a default profile.
func (c *CustomerClient) FetchProfile(ctx context.Context, customerID string) (*model.CustomerProfile, error) {
	var profile model.CustomerProfile
	err := c.getJSON(ctx, "/api/customers/"+customerID, &profile)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to fetch customer profile: %w", err)
	}

	if profile.ID == "" {
		profile.ID = customerID
	}
	return &profile, nil
}
