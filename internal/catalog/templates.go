// Package catalog synthesizes the candidate investment product set from
// fixed asset-class templates, parameterized by the current market snapshot.
package catalog

import "github.com/ndewijer/Investment-Advisor-Backend/internal/model"

// Template is the static configuration for one asset class. The generator
// turns each template into 2-4 concrete products per catalog build.
type Template struct {
	AssetType       model.AssetType
	BaseReturn      float64 // percent
	RiskLevel       model.RiskLevel
	MinHorizonYears int
	MaxHorizonYears int
	MinInvestment   float64
	MaxInvestment   *float64
	Names           []string
	Description     string
	Advantages      []string
	Disadvantages   []string
	Institution     string
	CodePrefix      string
}

func ptr(v float64) *float64 { return &v }

// DefaultTemplates returns the fixed asset-class template set.
func DefaultTemplates() []Template {
	return []Template{
		{
			AssetType:       model.AssetSavings,
			BaseReturn:      7.5,
			RiskLevel:       model.RiskLow,
			MinHorizonYears: 1,
			MaxHorizonYears: 2,
			MinInvestment:   1_000_000,
			MaxInvestment:   ptr(2_000_000_000),
			Names: []string{
				"12-Month Term Deposit",
				"Flexible Savings Plus",
				"Online Savings Account",
				"24-Month Term Deposit",
			},
			Description:   "Safe savings product with a fixed interest rate",
			Advantages:    []string{"Capital preservation", "Stable interest", "Good liquidity"},
			Disadvantages: []string{"Low returns", "No inflation protection"},
			Institution:   "Commercial Bank",
			CodePrefix:    "SAV",
		},
		{
			AssetType:       model.AssetFund,
			BaseReturn:      12.0,
			RiskLevel:       model.RiskMedium,
			MinHorizonYears: 3,
			MaxHorizonYears: 5,
			MinInvestment:   500_000,
			Names: []string{
				"Balanced Allocation Fund",
				"Equity Growth Fund",
				"Dividend Income Fund",
				"Index Tracker Fund",
			},
			Description:   "Open-ended fund with a diversified holdings mix",
			Advantages:    []string{"Diversification", "Professional management", "High return potential"},
			Disadvantages: []string{"Market risk", "Management fees"},
			Institution:   "Asset Management Co.",
			CodePrefix:    "FND",
		},
		{
			AssetType:       model.AssetBond,
			BaseReturn:      8.5,
			RiskLevel:       model.RiskLow,
			MinHorizonYears: 3,
			MaxHorizonYears: 7,
			MinInvestment:   100_000,
			Names: []string{
				"Government Bond Series A",
				"Municipal Bond Portfolio",
				"Corporate Bond Ladder",
				"Treasury Note Bundle",
			},
			Description:   "Fixed-income securities with high capital safety",
			Advantages:    []string{"Capital safety", "Stable coupon", "Government backing"},
			Disadvantages: []string{"Long maturity", "Limited liquidity"},
			Institution:   "Ministry of Finance",
			CodePrefix:    "BND",
		},
		{
			AssetType:       model.AssetStock,
			BaseReturn:      15.0,
			RiskLevel:       model.RiskHigh,
			MinHorizonYears: 5,
			MaxHorizonYears: 10,
			MinInvestment:   1_000_000,
			Names: []string{
				"Blue-Chip Equity Basket",
				"Consumer Staples Leader",
				"Banking Sector Pick",
				"Technology Growth Stock",
			},
			Description:   "Listed equities with long-term growth potential",
			Advantages:    []string{"High growth potential", "Dividend income"},
			Disadvantages: []string{"High risk", "Large price swings"},
			Institution:   "Stock Exchange",
			CodePrefix:    "STK",
		},
		{
			AssetType:       model.AssetGold,
			BaseReturn:      6.0,
			RiskLevel:       model.RiskMedium,
			MinHorizonYears: 3,
			MaxHorizonYears: 5,
			MinInvestment:   500_000,
			Names: []string{
				"Physical Gold Bar",
				"Gold Savings Certificate",
				"Gold Accumulation Plan",
				"Minted Gold Coin",
			},
			Description:   "Physical gold investment",
			Advantages:    []string{"Inflation hedge", "Tangible asset"},
			Disadvantages: []string{"No yield", "Storage costs"},
			Institution:   "National Gold Co.",
			CodePrefix:    "GLD",
		},
	}
}
