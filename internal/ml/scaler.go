package ml

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ndewijer/Investment-Advisor-Backend/internal/apperrors"
)

// Scaler standardizes feature vectors to zero mean and unit variance. It is
// fit once on the training distribution and reused unchanged at inference.
type Scaler struct {
	Mean []float64
	Std  []float64
}

// FitScaler computes per-column mean and standard deviation over the training
// matrix. Columns with zero variance get a unit standard deviation so that
// transformed values stay finite.
func FitScaler(samples [][]float64) *Scaler {
	if len(samples) == 0 {
		return &Scaler{}
	}

	width := len(samples[0])
	mean := make([]float64, width)
	std := make([]float64, width)
	column := make([]float64, len(samples))

	for j := 0; j < width; j++ {
		for i, row := range samples {
			column[i] = row[j]
		}
		mean[j] = stat.Mean(column, nil)
		std[j] = stat.StdDev(column, nil)
		if std[j] == 0 {
			std[j] = 1
		}
	}

	return &Scaler{Mean: mean, Std: std}
}

// Width returns the feature vector width the scaler was fitted on.
func (s *Scaler) Width() int {
	return len(s.Mean)
}

// Transform standardizes a single feature vector. Vectors whose width does
// not match the fitted width are rejected with ErrFeatureShapeMismatch.
func (s *Scaler) Transform(features []float64) ([]float64, error) {
	if len(features) != s.Width() {
		return nil, apperrors.ErrFeatureShapeMismatch
	}

	scaled := make([]float64, len(features))
	for i, v := range features {
		scaled[i] = (v - s.Mean[i]) / s.Std[i]
	}
	return scaled, nil
}
