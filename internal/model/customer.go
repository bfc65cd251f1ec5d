package model

// CustomerProfile is the customer record fetched from the customer service.
// It is immutable for the duration of a request. JSON field names follow the
// customer service's wire format.
type CustomerProfile struct {
	ID                string    `json:"id"`
	Age               int       `json:"age"`
	Income            float64   `json:"income"`
	CurrentAssets     float64   `json:"currentAssets"`
	InvestmentHorizon int       `json:"investmentHorizon"` // years
	RiskTolerance     int       `json:"riskTolerance"`     // 1-5 self-assessment
	RiskProfile       RiskLevel `json:"riskProfile"`
	RiskScore         float64   `json:"riskScore"` // 0-10 self-reported
}

// DefaultProfile returns the documented stand-in profile used when the
// customer service fails mid-request: a MEDIUM risk profile with neutral
// self-assessment values.
func DefaultProfile(customerID string) CustomerProfile {
	return CustomerProfile{
		ID:                customerID,
		Age:               40,
		InvestmentHorizon: 5,
		RiskTolerance:     3,
		RiskProfile:       RiskMedium,
		RiskScore:         5,
	}
}

// AssetHolding is a single position in a customer's existing portfolio,
// fetched from the asset service.
type AssetHolding struct {
	AssetName    string    `json:"assetName"`
	AssetType    AssetType `json:"assetType"`
	CurrentValue float64   `json:"currentValue"`
	InitialValue float64   `json:"initialValue"`
	RiskLevel    RiskLevel `json:"riskLevel"`
}

// TotalValue sums the current value of all holdings.
func TotalValue(holdings []AssetHolding) float64 {
	var total float64
	for _, h := range holdings {
		total += h.CurrentValue
	}
	return total
}

// HeldAssetTypes returns the set of asset types present in the holdings.
func HeldAssetTypes(holdings []AssetHolding) map[AssetType]bool {
	types := make(map[AssetType]bool, len(holdings))
	for _, h := range holdings {
		types[h.AssetType] = true
	}
	return types
}
