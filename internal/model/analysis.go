package model

// PortfolioAnalysis is the per-request analysis of a customer's existing
// holdings. Allocation percentages sum to 100 whenever TotalValue is
// positive; ConcentrationHHI is 1.0 exactly for a single holding.
type PortfolioAnalysis struct {
	TotalValue           float64               `json:"total_value"`
	AssetAllocation      map[AssetType]float64 `json:"asset_allocation"`
	RiskScore            float64               `json:"risk_score"`
	DiversificationScore float64               `json:"diversification_score"`
	PerformanceScore     float64               `json:"performance_score"`
	ConcentrationHHI     float64               `json:"concentration_hhi"`
	VolatilityEstimate   float64               `json:"volatility_estimate"`
	Recommendations      []string              `json:"recommendations"`
}

// RiskFactor is a single identified risk in a customer's portfolio.
type RiskFactor struct {
	Type        string    `json:"type"`
	Asset       string    `json:"asset,omitempty"`
	Percentage  float64   `json:"percentage,omitempty"`
	Severity    RiskLevel `json:"severity"`
	Description string    `json:"description"`
}

// StressScenario holds the outcome of a single simulated stress scenario.
type StressScenario struct {
	Description     string  `json:"description"`
	EstimatedLoss   float64 `json:"estimated_loss,omitempty"`
	EstimatedImpact float64 `json:"estimated_impact,omitempty"`
	RecoveryTime    string  `json:"recovery_time,omitempty"`
	Impact          string  `json:"impact,omitempty"`
}

// StressTestResults groups the two simulated scenarios.
type StressTestResults struct {
	MarketCrash      StressScenario `json:"market_crash_scenario"`
	InterestRateHike StressScenario `json:"interest_rate_increase"`
}

// RiskAssessment blends customer, portfolio, and model-predicted risk into an
// overall verdict with identified factors, mitigation advice, and stress
// test results.
type RiskAssessment struct {
	OverallRiskLevel  RiskLevel         `json:"overall_risk_level"`
	RiskScore         float64           `json:"risk_score"`
	RiskFactors       []RiskFactor      `json:"risk_factors"`
	RiskMitigation    []string          `json:"risk_mitigation"`
	StressTestResults StressTestResults `json:"stress_test_results"`
}
