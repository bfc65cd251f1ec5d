// Package ml implements the feature extractor and the predictive risk/return
// model. Models are plain linear regressions fit offline on a synthetic
// training distribution; the fitted normalizer is reused unchanged at
// inference time.
package ml

import (
	"math"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// CustomerFeatureCount is the width of the customer-only feature vector the
// normalizer is fitted on.
const CustomerFeatureCount = 5

// Sentiment feature encoding.
const (
	sentimentBullishScore = 0.8
	sentimentNeutralScore = 0.5
	sentimentBearishScore = 0.2
)

// CustomerFeatures extracts the five customer-only features in fitting order:
// age, income, current assets, investment horizon, risk tolerance.
func CustomerFeatures(p model.CustomerProfile) []float64 {
	return []float64{
		float64(p.Age),
		p.Income,
		p.CurrentAssets,
		float64(p.InvestmentHorizon),
		float64(p.RiskTolerance),
	}
}

// Features extracts the full inference vector. With a market snapshot three
// derived scalars are appended: a volatility proxy, a sentiment score, and
// the benchmark index return.
func Features(p model.CustomerProfile, snap *model.MarketSnapshot) []float64 {
	features := CustomerFeatures(p)
	if snap == nil {
		return features
	}
	return append(features,
		VolatilityProxy(snap),
		SentimentScore(snap.SentimentOf()),
		snap.BenchmarkReturn(),
	)
}

// VolatilityProxy normalizes the volatility index price to [0, 0.5].
func VolatilityProxy(snap *model.MarketSnapshot) float64 {
	price, ok := snap.VolatilityIndex()
	if !ok {
		return 0.2
	}
	return clamp(price/100, 0, 0.5)
}

// SentimentScore encodes market sentiment as a scalar feature.
func SentimentScore(s model.Sentiment) float64 {
	switch s {
	case model.SentimentBullish:
		return sentimentBullishScore
	case model.SentimentBearish:
		return sentimentBearishScore
	default:
		return sentimentNeutralScore
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
