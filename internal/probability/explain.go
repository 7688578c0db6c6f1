// Package probability maps ratings and situational scalars to probabilities. Every model returns
// an Explain record so a single roll can be audited term by term.
package probability

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Term is one labeled additive contribution to a linear score.
type Term struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Explain decomposes a probability into its additive linear terms.
type Explain struct {
	Terms       []Term  `json:"terms"`
	Score       float64 `json:"score"`
	Probability float64 `json:"probability"`
}

// Logit builds an Explain whose probability is the logistic of the summed terms.
func Logit(terms ...Term) Explain {
	score := sumTerms(terms)
	return Explain{Terms: terms, Score: score, Probability: Clamp01(Logistic(score))}
}

// Fixed builds an Explain for a probability that is not derived from a linear score.
func Fixed(label string, p float64) Explain {
	p = Clamp01(p)
	return Explain{Terms: []Term{{Label: label, Value: p}}, Score: p, Probability: p}
}

func sumTerms(terms []Term) float64 {
	values := make([]float64, len(terms))
	for i, t := range terms {
		values[i] = t.Value
	}
	return floats.Sum(values)
}

// Logistic is the standard sigmoid.
func Logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// LogOdds is the inverse of Logistic, with p kept away from 0 and 1.
func LogOdds(p float64) float64 {
	p = math.Min(math.Max(Clamp01(p), 1e-6), 1-1e-6)
	return math.Log(p / (1 - p))
}

// Clamp01 clamps p into [0,1]. NaN becomes 0.
func Clamp01(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// RatingZ converts a 0-99 rating into a z-score against a league-average 50.
func RatingZ(rating int) float64 {
	return (float64(rating) - 50) / 15
}
