package model

// MarketContext explains how a recommendation relates to current market
// conditions. Alignment qualifiers are EXCELLENT, GOOD, or POOR.
type MarketContext struct {
	Sentiment       Sentiment `json:"market_sentiment"`
	RiskAlignment   string    `json:"risk_alignment"`
	ReturnAlignment string    `json:"return_alignment"`
	Rationale       string    `json:"rationale"`
}

// InvestmentProduct is a generated catalog instance. Products are rebuilt on
// every catalog refresh and are not durable.
type InvestmentProduct struct {
	ProductName          string         `json:"product_name"`
	AssetType            AssetType      `json:"asset_type"`
	ExpectedReturn       float64        `json:"expected_return"`
	RiskLevel            RiskLevel      `json:"risk_level"`
	InvestmentHorizon    string         `json:"investment_horizon"`
	MinInvestment        float64        `json:"min_investment"`
	MaxInvestment        *float64       `json:"max_investment,omitempty"`
	Description          string         `json:"description"`
	Advantages           []string       `json:"advantages"`
	Disadvantages        []string       `json:"disadvantages"`
	Institution          string         `json:"institution"`
	ProductCode          string         `json:"product_code"`
	ConfidenceScore      float64        `json:"confidence_score"`
	MarketDataIntegrated bool           `json:"market_data_integrated"`
	MarketContext        *MarketContext `json:"market_context,omitempty"`
}
