// Package random provides the seeded distributions behind every procedural
// generator. All engines draw from an injected *Source so that generation is
// reproducible given a seed; nothing in the module uses ambient global
// randomness.
package random

import (
	"math/rand"
)

// Source wraps a seeded PRNG. It is not safe for concurrent use; the worker
// owns one source per open league under the single-writer model.
type Source struct {
	rng *rand.Rand
}

// NewSource returns a Source seeded with the given value.
func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 { return s.rng.Float64() }

// Uniform returns a uniform value in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Gauss returns a normally distributed value with the given mean and
// standard deviation.
func (s *Source) Gauss(mu, sigma float64) float64 {
	return s.rng.NormFloat64()*sigma + mu
}

// BoundedGauss returns Gauss(mu, sigma) clamped to [lo, hi].
func (s *Source) BoundedGauss(mu, sigma, lo, hi float64) float64 {
	return Bound(s.Gauss(mu, sigma), lo, hi)
}

// TruncGauss resamples Gauss(mu, sigma) until the value lands in [lo, hi].
// It gives up after 100 draws and clamps, so a degenerate range cannot hang
// the generator.
func (s *Source) TruncGauss(mu, sigma, lo, hi float64) float64 {
	for i := 0; i < 100; i++ {
		v := s.Gauss(mu, sigma)
		if v >= lo && v <= hi {
			return v
		}
	}
	return Bound(mu, lo, hi)
}

// RandInt returns a uniform integer in [a, b] inclusive.
func (s *Source) RandInt(a, b int) int {
	if b < a {
		a, b = b, a
	}
	return a + s.rng.Intn(b-a+1)
}

// Shuffle permutes the slice in place (Fisher-Yates).
func Shuffle[T any](s *Source, xs []T) {
	s.rng.Shuffle(len(xs), func(i, j int) {
		xs[i], xs[j] = xs[j], xs[i]
	})
}

// Choice returns a uniformly random element of xs, which must be non-empty.
func Choice[T any](s *Source, xs []T) T {
	return xs[s.rng.Intn(len(xs))]
}

// WeightedChoice returns a random element of xs with probability proportional
// to weight(x). Non-positive weights are treated as zero; if every weight is
// zero it falls back to a uniform choice.
func WeightedChoice[T any](s *Source, xs []T, weight func(T) float64) T {
	var total float64
	for _, x := range xs {
		if w := weight(x); w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return Choice(s, xs)
	}
	target := s.rng.Float64() * total
	var acc float64
	for _, x := range xs {
		w := weight(x)
		if w <= 0 {
			continue
		}
		acc += w
		if target < acc {
			return x
		}
	}
	return xs[len(xs)-1]
}

// Bound clamps x to [lo, hi].
func Bound(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
