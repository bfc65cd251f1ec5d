package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
var (
	// ErrCustomerNotFound indicates that the customer profile is absent.
	// This is the only error condition that propagates to the API caller;
	// no recommendation can be anchored without a profile.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrModelNotFound indicates that no fitted model parameters exist in
	// the model store yet.
	ErrModelNotFound = errors.New("fitted model parameters not found")
)

// Degraded-path errors represent upstream or model failures that are absorbed
// with documented defaults and never surface to the API caller.
var (
	// ErrMissingUpstreamData indicates a customer, asset, or market fetch
	// returned nothing. Resolved by substituting documented defaults
	// (MEDIUM risk profile, empty holdings, NEUTRAL sentiment).
	ErrMissingUpstreamData = errors.New("missing upstream data")

	// ErrModelUnavailable indicates the predictive model failed to load or
	// predict. Resolved by heuristic fallback values.
	ErrModelUnavailable = errors.New("predictive model unavailable")

	// ErrFeatureShapeMismatch indicates the inference feature vector width
	// disagrees with the fitted normalizer. Resolved by retrying with the
	// customer-only feature subset.
	ErrFeatureShapeMismatch = errors.New("feature vector width does not match fitted normalizer")
)

// Business logic errors represent validation failures on API input.
var (
	// ErrInvalidCustomerID indicates that a provided customer ID is empty or
	// not a valid UUID.
	ErrInvalidCustomerID = errors.New("invalid customer ID")

	// ErrNegativeAmount indicates that an investment amount has an invalid
	// negative value.
	ErrNegativeAmount = errors.New("investment amount cannot be negative")
)
