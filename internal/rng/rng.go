// Package rng provides the possession-scoped deterministic random source. Every stochastic
// decision in a possession draws from one RNG so a fixed seed replays the same outcomes.
package rng

import (
	"math"
	"math/rand/v2"
)

// possessionMix spreads consecutive possession numbers across the seed space.
const possessionMix uint64 = 0x9E3779B97F4A7C15

const streamSalt uint64 = 0xD1B54A32D192ED03

// PossessionSeed derives the seed of a possession from the game seed.
func PossessionSeed(gameSeed uint64, possession int) uint64 {
	return gameSeed ^ (uint64(possession) * possessionMix)
}

// RNG is a seeded source that counts its draws. It is not safe for concurrent use; each
// possession owns its own instance.
type RNG struct {
	seed  uint64
	src   *rand.Rand
	draws int
}

// New returns an RNG seeded with seed.
func New(seed uint64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewPCG(seed, seed^streamSalt)),
	}
}

// ForPossession returns the RNG for a possession of a game.
func ForPossession(gameSeed uint64, possession int) *RNG {
	return New(PossessionSeed(gameSeed, possession))
}

// Seed returns the seed the RNG was built with.
func (g *RNG) Seed() uint64 {
	return g.seed
}

// Draws returns how many values have been drawn.
func (g *RNG) Draws() int {
	return g.draws
}

// Float64 returns a value in [0,1).
func (g *RNG) Float64() float64 {
	g.draws++
	return g.src.Float64()
}

// Range returns a value in [lo,hi).
func (g *RNG) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*g.Float64()
}

// Bernoulli draws once and reports whether the draw lands under p. p is clamped to [0,1] and
// NaN is treated as 0.
func (g *RNG) Bernoulli(p float64) bool {
	if math.IsNaN(p) || p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return g.Float64() < p
}

// Pick samples an index proportional to weights with a single cumulative-distribution draw.
// Negative or NaN weights count as zero; when every weight is zero the draw is uniform.
// It returns -1 only for an empty slice, without drawing.
func (g *RNG) Pick(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0.0
	for _, w := range weights {
		total += sanitize(w)
	}
	u := g.Float64()
	if total <= 0 {
		idx := int(u * float64(len(weights)))
		if idx >= len(weights) {
			idx = len(weights) - 1
		}
		return idx
	}
	target := u * total
	acc := 0.0
	last := -1
	for i, w := range weights {
		w = sanitize(w)
		if w == 0 {
			continue
		}
		acc += w
		last = i
		if target < acc {
			return i
		}
	}
	return last
}

func sanitize(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0
	}
	return w
}
