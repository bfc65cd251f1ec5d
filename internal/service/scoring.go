package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/ml"
	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// Alignment qualifiers used in the per-recommendation market context.
const (
	AlignmentExcellent = "EXCELLENT"
	AlignmentGood      = "GOOD"
	AlignmentPoor      = "POOR"
)

// scoreProduct computes the multi-factor score for one candidate. The factor
// weights all come from the configured scoring table.
func (s *RecommendationService) scoreProduct(
	p model.InvestmentProduct,
	profile model.CustomerProfile,
	heldTypes map[model.AssetType]bool,
	snap *model.MarketSnapshot,
	prediction ml.Prediction,
	investmentAmount *float64,
) float64 {
	w := s.weights
	score := p.ExpectedReturn * w.ReturnWeight

	// Risk alignment: exact match or adjacent band.
	switch {
	case p.RiskLevel == profile.RiskProfile:
		score += w.RiskMatchBonus
	case riskAdjacent(p.RiskLevel, profile.RiskProfile):
		score += w.RiskAdjacentBonus
	}

	if !heldTypes[p.AssetType] {
		score += w.DiversificationBonus
	}

	score += w.Sentiment[p.AssetType][snap.SentimentOf()]

	if investmentAmount != nil {
		if *investmentAmount >= p.MinInvestment {
			score += w.AmountFitBonus
		} else {
			score -= w.AmountMissPenalty
		}
	}

	score += s.mlAlignmentScore(p, prediction)
	score += s.volatilityRegimeScore(p.AssetType, snap)

	return score
}

// mlAlignmentScore rewards candidates close to the model's predicted risk
// and return, and penalizes the distant ones.
func (s *RecommendationService) mlAlignmentScore(p model.InvestmentProduct, prediction ml.Prediction) float64 {
	w := s.weights
	var score float64

	switch riskDiff := math.Abs(prediction.RiskScore - p.RiskLevel.Scale()); {
	case riskDiff <= 2:
		score += w.RiskDiffClose
	case riskDiff <= 4:
		score += w.RiskDiffNear
	default:
		score -= w.RiskDiffFarPenalty
	}

	switch returnDiff := math.Abs(prediction.ExpectedReturn - p.ExpectedReturn); {
	case returnDiff <= 3:
		score += w.ReturnDiffClose
	case returnDiff <= 6:
		score += w.ReturnDiffNear
	default:
		score -= w.ReturnDiffFarPenalty
	}

	return score
}

// volatilityRegimeScore shifts scores by the volatility index regime: a high
// reading favors SAVINGS and BOND over STOCK, a low one favors STOCK.
func (s *RecommendationService) volatilityRegimeScore(at model.AssetType, snap *model.MarketSnapshot) float64 {
	vix, ok := snap.VolatilityIndex()
	if !ok {
		return 0
	}

	w := s.weights
	switch {
	case vix > w.VolatilityHighThreshold:
		if at == model.AssetSavings || at == model.AssetBond {
			return w.VolatilityRegimeBonus
		}
		if at == model.AssetStock {
			return -w.VolatilityRegimeBonus
		}
	case vix < w.VolatilityLowThreshold:
		if at == model.AssetStock {
			return w.VolatilityRegimeBonus
		}
	}
	return 0
}

// riskAdjacent reports whether two risk bands are one step apart, which is
// exactly when one of them is MEDIUM and the other is not.
func riskAdjacent(a, b model.RiskLevel) bool {
	diff := a.Rank() - b.Rank()
	return diff == 1 || diff == -1
}

// marketContext builds the per-recommendation explanation block.
func (s *RecommendationService) marketContext(p model.InvestmentProduct, snap *model.MarketSnapshot, prediction ml.Prediction) *model.MarketContext {
	riskDiff := math.Abs(prediction.RiskScore - p.RiskLevel.Scale())
	returnDiff := math.Abs(prediction.ExpectedReturn - p.ExpectedReturn)

	riskAlignment := qualifier(riskDiff, 2, 4)
	returnAlignment := qualifier(returnDiff, 3, 6)
	sentiment := snap.SentimentOf()

	return &model.MarketContext{
		Sentiment:       sentiment,
		RiskAlignment:   riskAlignment,
		ReturnAlignment: returnAlignment,
		Rationale:       rationale(p, sentiment, riskAlignment, returnAlignment, s.weights.Sentiment[p.AssetType][sentiment]),
	}
}

func qualifier(diff, excellent, good float64) string {
	switch {
	case diff <= excellent:
		return AlignmentExcellent
	case diff <= good:
		return AlignmentGood
	default:
		return AlignmentPoor
	}
}

// rationale assembles a short natural-language justification from the
// alignment qualifiers and the sentiment/asset-type interaction.
func rationale(p model.InvestmentProduct, sentiment model.Sentiment, riskAlignment, returnAlignment string, sentimentShift float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s shows %s risk alignment and %s return alignment with your predicted profile.",
		p.ProductName, strings.ToLower(riskAlignment), strings.ToLower(returnAlignment))

	assetName := strings.ToLower(string(p.AssetType))
	switch {
	case sentimentShift > 0:
		fmt.Fprintf(&b, " Current %s market conditions favor %s products.",
			strings.ToLower(string(sentiment)), assetName)
	case sentimentShift < 0:
		fmt.Fprintf(&b, " Current %s market conditions weigh on %s products.",
			strings.ToLower(string(sentiment)), assetName)
	}

	return b.String()
}
