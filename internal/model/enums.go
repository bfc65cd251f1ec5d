package model

// RiskLevel represents a risk band. Levels are totally ordered LOW < MEDIUM < HIGH.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Rank returns the position of the level in the LOW < MEDIUM < HIGH order.
// Unknown levels rank as MEDIUM.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	default:
		return 1
	}
}

// Scale maps a risk level onto the 1-10 risk score scale used by the
// predictive model and the portfolio risk calculation (LOW=3, MEDIUM=6, HIGH=9).
func (r RiskLevel) Scale() float64 {
	switch r {
	case RiskLow:
		return 3
	case RiskHigh:
		return 9
	default:
		return 6
	}
}

// RiskLevelFromScore discretizes a 0-10 risk score into a risk band:
// scores up to 3 are LOW, up to 7 are MEDIUM, anything above is HIGH.
func RiskLevelFromScore(score float64) RiskLevel {
	switch {
	case score <= 3:
		return RiskLow
	case score <= 7:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// AssetType classifies a holding or investment product.
type AssetType string

const (
	AssetSavings    AssetType = "SAVINGS"
	AssetFund       AssetType = "FUND"
	AssetStock      AssetType = "STOCK"
	AssetBond       AssetType = "BOND"
	AssetRealEstate AssetType = "REAL_ESTATE"
	AssetGold       AssetType = "GOLD"
	AssetOther      AssetType = "OTHER"
)

// Sentiment is the derived market mood computed from index quotes.
type Sentiment string

const (
	SentimentBullish Sentiment = "BULLISH"
	SentimentNeutral Sentiment = "NEUTRAL"
	SentimentBearish Sentiment = "BEARISH"
)
