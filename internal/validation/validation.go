// Package validation holds input validation helpers shared by the API layer.
package validation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/apperrors"
)

// ValidateCustomerID checks that a customer ID is present and a valid UUID.
func ValidateCustomerID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: customer ID is required", apperrors.ErrInvalidCustomerID)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidCustomerID, id)
	}
	return nil
}

// ValidateInvestmentAmount checks that an optional investment amount, when
// provided, is not negative.
func ValidateInvestmentAmount(amount *float64) error {
	if amount != nil && *amount < 0 {
		return apperrors.ErrNegativeAmount
	}
	return nil
}
