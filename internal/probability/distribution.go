package probability

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Softmax converts scores into a distribution. Non-finite scores get zero mass; if no score is
// finite the result is uniform.
func Softmax(scores []float64) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out
	}
	finite := make([]float64, 0, len(scores))
	for _, s := range scores {
		if !math.IsNaN(s) && !math.IsInf(s, 0) {
			finite = append(finite, s)
		}
	}
	if len(finite) == 0 {
		return uniform(len(scores))
	}
	peak := floats.Max(finite)
	for i, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			continue
		}
		out[i] = math.Exp(s - peak)
	}
	floats.Scale(1/floats.Sum(out), out)
	return out
}

// DirichletMean returns the mean of a Dirichlet distribution with concentration alpha, which is
// alpha normalized to sum to one. Negative or non-finite entries count as zero and an all-zero
// vector yields the uniform distribution.
func DirichletMean(alpha []float64) []float64 {
	out := make([]float64, len(alpha))
	for i, a := range alpha {
		if a > 0 && !math.IsInf(a, 0) {
			out[i] = a
		}
	}
	total := floats.Sum(out)
	if total <= 0 {
		return uniform(len(alpha))
	}
	floats.Scale(1/total, out)
	return out
}

func uniform(n int) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	for i := range out {
		out[i] = 1 / float64(n)
	}
	return out
}
