package validation_test

import (
	"errors"
	"testing"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/testutil"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/validation"
)

// TestValidateCustomerID tests customer ID validation.
//
// WHY: Every customer-scoped endpoint gates on this check; it must accept
// any UUID and reject everything else with the sentinel the handlers map to
// 400.
func TestValidateCustomerID(t *testing.T) {
	t.Run("accepts a UUID", func(t *testing.T) {
		if err := validation.ValidateCustomerID(testutil.MakeID()); err != nil {
			t.Errorf("Unexpected error for a valid UUID: %v", err)
		}
	})

	cases := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"not a UUID", "customer-123"},
		{"truncated UUID", "123e4567-e89b-12d3-a456"},
	}
	for _, tc := range cases {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			err := validation.ValidateCustomerID(tc.id)
			if !errors.Is(err, apperrors.ErrInvalidCustomerID) {
				t.Errorf("Expected ErrInvalidCustomerID, got %v", err)
			}
		})
	}
}

// TestValidateInvestmentAmount tests the optional amount rule.
func TestValidateInvestmentAmount(t *testing.T) {
	if err := validation.ValidateInvestmentAmount(nil); err != nil {
		t.Errorf("Unexpected error for an absent amount: %v", err)
	}

	zero := 0.0
	if err := validation.ValidateInvestmentAmount(&zero); err != nil {
		t.Errorf("Unexpected error for a zero amount: %v", err)
	}

	negative := -1.0
	if err := validation.ValidateInvestmentAmount(&negative); !errors.Is(err, apperrors.ErrNegativeAmount) {
		t.Errorf("Expected ErrNegativeAmount, got %v", err)
	}
}
