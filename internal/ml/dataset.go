package ml

import (
	"math"
	"math/rand"
)

// DefaultTrainingSeed and DefaultTrainingSamples parameterize the synthetic
// training distribution. The seed is fixed so that a retrained model is
// reproducible across processes.
const (
	DefaultTrainingSeed    = 42
	DefaultTrainingSamples = 1000
)

// trainingSet is the synthetic sample matrix with its two target vectors.
type trainingSet struct {
	features   [][]float64
	riskScores []float64
	returns    []float64
}

var horizonChoices = []float64{1, 3, 5, 10, 20}

// syntheticTrainingSet draws n samples from the training distribution:
// age ~ N(45, 15), income ~ LogNormal(10, 0.5), assets ~ LogNormal(12, 0.8),
// horizon uniform over {1,3,5,10,20}, risk tolerance uniform over 1..5.
// Targets carry the heuristic relationship between the profile and the
// risk/return outcome plus Gaussian noise, clamped to their output ranges.
func syntheticTrainingSet(rng *rand.Rand, n int) trainingSet {
	set := trainingSet{
		features:   make([][]float64, n),
		riskScores: make([]float64, n),
		returns:    make([]float64, n),
	}

	for i := 0; i < n; i++ {
		age := 45 + 15*rng.NormFloat64()
		income := math.Exp(10 + 0.5*rng.NormFloat64())
		assets := math.Exp(12 + 0.8*rng.NormFloat64())
		horizon := horizonChoices[rng.Intn(len(horizonChoices))]
		tolerance := float64(1 + rng.Intn(5))

		set.features[i] = []float64{age, income, assets, horizon, tolerance}

		risk := tolerance*1.5 + horizon*0.15 + (65-age)*0.03 + rng.NormFloat64()*0.8
		set.riskScores[i] = clamp(risk, 1, 10)

		ret := tolerance*2 + horizon*0.5 + 5 + rng.NormFloat64()*3
		set.returns[i] = clamp(ret, 0, 25)
	}

	return set
}
