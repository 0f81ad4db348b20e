// ABOUTME: Heuristic rater combining a fingering's 8 category scores into one scalar
// ABOUTME: Coefficients come from spec defaults, an explicit vector, or the ridge trainer

// Package rater scores a Fingering's category scores with a learned or
// default linear model.
package rater

import "fretwork/fingering"

// DefaultCoefficients are the seed weights used before any training data
// has been collected.
var DefaultCoefficients = [fingering.NumScores]float64{0.09, 0.28, 0.28, 0.18, 0.03, 0.03, 0.04, 0.07}

// Model is a linear combination of category scores plus an intercept.
type Model struct {
	Coefficients [fingering.NumScores]float64
	Intercept    float64
}

// Default returns the built-in seed model: DefaultCoefficients, intercept 0.
func Default() Model {
	return Model{Coefficients: DefaultCoefficients}
}

// FromCoefficients builds a Model from an explicit coefficient vector and
// intercept, as produced by Fit or loaded from a saved config.
func FromCoefficients(w [fingering.NumScores]float64, intercept float64) Model {
	return Model{Coefficients: w, Intercept: intercept}
}

// Score combines a fingering's category scores into a single scalar:
// coefficients·scores + intercept.
func (m Model) Score(scores [fingering.NumScores]float64) float64 {
	total := m.Intercept
	for i, w := range m.Coefficients {
		total += w * scores[i]
	}

	return total
}

// ScoreFingering scores f in place, writing the result to f.Score, and
// returns the same value.
func (m Model) ScoreFingering(f *fingering.Fingering) float64 {
	f.Score = m.Score(f.Scores)
	return f.Score
}

// ScoreBatch scores every fingering in fs in place.
func (m Model) ScoreBatch(fs []*fingering.Fingering) {
	for _, f := range fs {
		m.ScoreFingering(f)
	}
}
