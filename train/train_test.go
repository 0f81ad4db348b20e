// ABOUTME: Tests for the ridge-regression trainer, including the spec's "Ridge sanity" scenario
package train

import (
	"math"
	"testing"

	"fretwork/fingering"
)

func TestFit_ReturnsErrInsufficientData(t *testing.T) {
	samples := []Sample{
		{Scores: [fingering.NumScores]float64{1, 2, 3, 4, 5, 6, 7, 8}, Rating: 1},
	}

	if _, err := Fit(samples, DefaultAlpha); err != ErrInsufficientData {
		t.Errorf("Fit() error = %v, want ErrInsufficientData", err)
	}
}

// toyDataset builds the spec.md §8 "Ridge sanity" fixture: 20 rows of
// category scores (the pattern repeats every 11 rows; the centered matrix
// has full rank 8) with y = A·[1,0,...,0]^T exactly (no noise, no
// intercept).
func toyDataset() []Sample {
	samples := make([]Sample, 20)

	for i := range samples {
		var scores [fingering.NumScores]float64
		for j := range scores {
			scores[j] = float64((i*7+j*3+1)%11) / 10.0
		}

		samples[i] = Sample{Scores: scores, Rating: scores[0]}
	}

	return samples
}

func TestFit_RidgeSanity_SmallAlphaRecoversExactWeights(t *testing.T) {
	samples := toyDataset()

	result, err := Fit(samples, 1e-6)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	want := [fingering.NumScores]float64{1, 0, 0, 0, 0, 0, 0, 0}
	for i, w := range result.Model.Coefficients {
		if math.Abs(w-want[i]) > 1e-6 {
			t.Errorf("coefficient[%d] = %.9f, want ~%f within 1e-6", i, w, want[i])
		}
	}

	if math.Abs(result.Model.Intercept) > 1e-6 {
		t.Errorf("Intercept = %.9f, want ~0 within 1e-6", result.Model.Intercept)
	}
}

func TestFit_RidgeSanity_UnitAlphaBiasesTowardZeroButKeepsSign(t *testing.T) {
	samples := toyDataset()

	result, err := Fit(samples, 1.0)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if result.Model.Coefficients[0] <= 0 {
		t.Errorf("coefficient[0] = %f, want positive (sign-consistent with 1)", result.Model.Coefficients[0])
	}

	if result.Model.Coefficients[0] >= 1 {
		t.Errorf("coefficient[0] = %f, want biased toward zero (< 1)", result.Model.Coefficients[0])
	}

	for i := 1; i < fingering.NumScores; i++ {
		if math.Abs(result.Model.Coefficients[i]) >= math.Abs(result.Model.Coefficients[0]) {
			t.Errorf("coefficient[%d] = %f should be small relative to coefficient[0] = %f", i, result.Model.Coefficients[i], result.Model.Coefficients[0])
		}
	}
}

func TestFit_ResidualNormIsNonNegative(t *testing.T) {
	samples := toyDataset()

	result, err := Fit(samples, DefaultAlpha)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if result.ResidualNorm < 0 {
		t.Errorf("ResidualNorm = %f, want >= 0", result.ResidualNorm)
	}
}
