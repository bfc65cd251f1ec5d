// Package request defines the API request payloads and their validation.
package request

import (
	"github.com/ndewijer/Investment-Advisor-Backend/internal/validation"
)

// RecommendationRequest is the payload for generating recommendations.
// InvestmentAmount is optional; when present it tailors product minimums
// and maximums to the amount the customer intends to invest.
type RecommendationRequest struct {
	CustomerID       string   `json:"customer_id"`
	InvestmentAmount *float64 `json:"investment_amount,omitempty"`
}

// Validate checks the request fields and returns the first validation error.
func (r *RecommendationRequest) Validate() error {
	if err := validation.ValidateCustomerID(r.CustomerID); err != nil {
		return err
	}
	return validation.ValidateInvestmentAmount(r.InvestmentAmount)
}
