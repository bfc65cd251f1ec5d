package ml

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/model"
)

// Prediction output ranges and fallback values.
const (
	MinRiskScore      = 1.0
	MaxRiskScore      = 10.0
	MinExpectedReturn = 0.0
	MaxExpectedReturn = 25.0
	FallbackReturn    = 8.0
)

// Prediction is the model output for a single customer.
type Prediction struct {
	RiskScore      float64 `json:"predicted_risk_score"`
	ExpectedReturn float64 `json:"predicted_expected_return"`
	UsedMarketData bool    `json:"used_market_data"`
	Fallback       bool    `json:"fallback"`
}

// Params are the fitted parameters of the predictor: the normalizer moments
// and the two regression coefficient vectors (intercept first). They are
// what the model store persists.
type Params struct {
	ScalerMean []float64
	ScalerStd  []float64
	RiskCoef   []float64
	ReturnCoef []float64
}

// Predictor predicts a risk score and an expected return from a customer
// profile plus optional market context. It is read-only after construction
// and safe for concurrent use.
type Predictor struct {
	scaler     *Scaler
	riskCoef   []float64
	returnCoef []float64
	log        zerolog.Logger
}

// Train fits the normalizer and both regressions on the synthetic training
// distribution. Training is deterministic for a fixed seed.
func Train(seed int64, samples int, log zerolog.Logger) (*Predictor, error) {
	rng := rand.New(rand.NewSource(seed))
	set := syntheticTrainingSet(rng, samples)

	scaler := FitScaler(set.features)
	scaled := make([][]float64, len(set.features))
	for i, row := range set.features {
		s, err := scaler.Transform(row)
		if err != nil {
			return nil, err
		}
		scaled[i] = s
	}

	riskCoef, err := fitLeastSquares(scaled, set.riskScores)
	if err != nil {
		return nil, fmt.Errorf("failed to fit risk model: %w", err)
	}
	returnCoef, err := fitLeastSquares(scaled, set.returns)
	if err != nil {
		return nil, fmt.Errorf("failed to fit return model: %w", err)
	}

	log.Info().
		Int("samples", samples).
		Int64("seed", seed).
		Int("features", scaler.Width()).
		Msg("trained risk and return models")

	return &Predictor{
		scaler:     scaler,
		riskCoef:   riskCoef,
		returnCoef: returnCoef,
		log:        log,
	}, nil
}

// NewPredictorFromParams restores a predictor from persisted parameters.
func NewPredictorFromParams(p Params, log zerolog.Logger) (*Predictor, error) {
	width := len(p.ScalerMean)
	if width == 0 || len(p.ScalerStd) != width {
		return nil, fmt.Errorf("inconsistent scaler parameters: mean width %d, std width %d", width, len(p.ScalerStd))
	}
	if len(p.RiskCoef) != width+1 || len(p.ReturnCoef) != width+1 {
		return nil, fmt.Errorf("coefficient width %d/%d does not match scaler width %d", len(p.RiskCoef), len(p.ReturnCoef), width)
	}

	return &Predictor{
		scaler:     &Scaler{Mean: p.ScalerMean, Std: p.ScalerStd},
		riskCoef:   p.RiskCoef,
		returnCoef: p.ReturnCoef,
		log:        log,
	}, nil
}

// Params returns the fitted parameters for persistence.
func (p *Predictor) Params() Params {
	return Params{
		ScalerMean: p.scaler.Mean,
		ScalerStd:  p.scaler.Std,
		RiskCoef:   p.riskCoef,
		ReturnCoef: p.returnCoef,
	}
}

// Predict produces clamped risk and return predictions for a customer. When
// the full inference vector (with market features) does not match the fitted
// normalizer width, it retries with the customer-only subset; it never fails.
// With a market snapshot present the raw predictions get the documented
// sentiment and benchmark adjustments.
func (p *Predictor) Predict(profile model.CustomerProfile, snap *model.MarketSnapshot) Prediction {
	features := Features(profile, snap)

	scaled, err := p.scaler.Transform(features)
	if err != nil {
		scaled, err = p.scaler.Transform(features[:CustomerFeatureCount])
		if err != nil {
			// Normalizer fitted on an unexpected width; use the heuristic fallback.
			p.log.Warn().Err(err).Msg("feature fallback failed, using heuristic prediction")
			return FallbackPrediction(profile)
		}
	}

	risk := clamp(dot(p.riskCoef, scaled), MinRiskScore, MaxRiskScore)
	ret := clamp(dot(p.returnCoef, scaled), MinExpectedReturn, MaxExpectedReturn)

	if snap != nil {
		risk, ret = adjustForMarket(risk, ret, snap)
	}

	return Prediction{
		RiskScore:      risk,
		ExpectedReturn: ret,
		UsedMarketData: snap != nil,
	}
}

// FallbackPrediction is the heuristic used when no model is available: the
// customer's self-reported risk score and a fixed default return.
func FallbackPrediction(profile model.CustomerProfile) Prediction {
	return Prediction{
		RiskScore:      clamp(profile.RiskScore, MinRiskScore, MaxRiskScore),
		ExpectedReturn: FallbackReturn,
		Fallback:       true,
	}
}

// adjustForMarket applies the post-prediction sentiment shifts and the
// benchmark return multiplier, keeping both outputs in range.
func adjustForMarket(risk, ret float64, snap *model.MarketSnapshot) (float64, float64) {
	switch snap.SentimentOf() {
	case model.SentimentBearish:
		risk = clamp(risk+1, MinRiskScore, MaxRiskScore)
		ret = clamp(ret-1, MinExpectedReturn, MaxExpectedReturn)
	case model.SentimentBullish:
		risk = clamp(risk-0.5, MinRiskScore, MaxRiskScore)
		ret = clamp(ret+2, MinExpectedReturn, MaxExpectedReturn)
	}

	ret = clamp(ret*(1+snap.BenchmarkReturn()*0.3), MinExpectedReturn, MaxExpectedReturn)
	return risk, ret
}

// fitLeastSquares solves the ordinary least-squares problem for one target
// vector, returning the coefficient vector with the intercept first.
func fitLeastSquares(samples [][]float64, targets []float64) ([]float64, error) {
	n := len(samples)
	if n == 0 {
		return nil, fmt.Errorf("empty training set")
	}
	width := len(samples[0])

	design := mat.NewDense(n, width+1, nil)
	for i, row := range samples {
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	y := mat.NewVecDense(n, targets)

	var qr mat.QR
	qr.Factorize(design)

	var solution mat.Dense
	if err := qr.SolveTo(&solution, false, y); err != nil {
		return nil, fmt.Errorf("least squares solve failed: %w", err)
	}

	coef := make([]float64, width+1)
	for i := range coef {
		coef[i] = solution.At(i, 0)
	}
	return coef, nil
}

// dot evaluates a regression with intercept-first coefficients.
func dot(coef, features []float64) float64 {
	sum := coef[0]
	for i, v := range features {
		sum += coef[i+1] * v
	}
	return sum
}
