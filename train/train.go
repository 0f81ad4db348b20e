// ABOUTME: Ridge-regression trainer fitting rater.Model coefficients from rated fingerings
// ABOUTME: Centers the design matrix, takes a thin SVD, and damps singular values by alpha

// Package train fits a rater.Model from a dataset of category scores and
// user ratings via ridge regression.
package train

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"fretwork/fingering"
	"fretwork/rater"
)

// ErrInsufficientData is returned by Fit when there are not enough
// samples to fit the 8-coefficient model.
var ErrInsufficientData = errors.New("train: need at least as many samples as category scores")

// Sample is one rated fingering: its 8 category scores and the rating a
// user gave it.
type Sample struct {
	Scores [fingering.NumScores]float64 `json:"scores"`
	Rating float64                      `json:"rating"`
}

// DefaultAlpha is the ridge damping factor used when none is supplied.
const DefaultAlpha = 1.0

// Result is the fitted model plus the residual norm reported by Fit.
type Result struct {
	Model        rater.Model
	ResidualNorm float64
}

// Fit fits a ridge-regression model to samples per spec.md §4.8: center
// the columns of the design matrix and the rating vector, take a thin
// SVD, damp each singular value sigma to sigma/(sigma^2 + alpha^2), and
// recombine. Returns ErrInsufficientData if len(samples) is smaller than
// the number of category scores.
func Fit(samples []Sample, alpha float64) (Result, error) {
	n := len(samples)
	if n < fingering.NumScores {
		return Result{}, ErrInsufficientData
	}

	aData := make([]float64, n*fingering.NumScores)
	yData := make([]float64, n)

	for i, s := range samples {
		for j, v := range s.Scores {
			aData[i*fingering.NumScores+j] = v
		}

		yData[i] = s.Rating
	}

	a := mat.NewDense(n, fingering.NumScores, aData)
	y := mat.NewVecDense(n, yData)

	colMeans := make([]float64, fingering.NumScores)
	for j := 0; j < fingering.NumScores; j++ {
		colMeans[j] = mat.Sum(a.ColView(j)) / float64(n)
	}

	yMean := mat.Sum(y) / float64(n)

	centeredA := mat.NewDense(n, fingering.NumScores, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < fingering.NumScores; j++ {
			centeredA.Set(i, j, a.At(i, j)-colMeans[j])
		}
	}

	centeredY := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		centeredY.SetVec(i, y.AtVec(i)-yMean)
	}

	var svd mat.SVD
	if ok := svd.Factorize(centeredA, mat.SVDThin); !ok {
		return Result{}, fmt.Errorf("train: SVD factorization failed")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sigma := svd.Values(nil)

	damped := make([]float64, len(sigma))
	for i, s := range sigma {
		damped[i] = s / (s*s + alpha*alpha)
	}

	// w = V * diag(damped) * U^T * y
	var uty mat.VecDense
	uty.MulVec(u.T(), centeredY)

	scaled := mat.NewVecDense(uty.Len(), nil)
	for i := 0; i < uty.Len(); i++ {
		scaled.SetVec(i, damped[i]*uty.AtVec(i))
	}

	var w mat.VecDense
	w.MulVec(&v, scaled)

	var coeffs [fingering.NumScores]float64

	intercept := yMean

	for j := 0; j < fingering.NumScores; j++ {
		coeffs[j] = w.AtVec(j)
		intercept -= colMeans[j] * coeffs[j]
	}

	var yHat mat.VecDense
	yHat.MulVec(a, &w)

	residualNorm := 0.0

	for i := 0; i < n; i++ {
		predicted := intercept + yHat.AtVec(i)
		diff := y.AtVec(i) - predicted
		residualNorm += diff * diff
	}

	return Result{
		Model:        rater.FromCoefficients(coeffs, intercept),
		ResidualNorm: math.Sqrt(residualNorm),
	}, nil
}
