package random

import (
	"math"
	"testing"
)

func TestChoiceUniform(t *testing.T) {
	s := NewSource(1)
	x := []string{"a", "b", "c", "d", "e"}
	counts := map[string]int{}

	const n = 10000
	for i := 0; i < n; i++ {
		counts[Choice(s, x)]++
	}

	for _, letter := range x {
		if counts[letter] < n/10 || counts[letter] > 3*n/10 {
			t.Errorf("Choice(%q) hit %d times out of %d, outside [%d, %d]",
				letter, counts[letter], n, n/10, 3*n/10)
		}
	}
}

func TestWeightedChoice(t *testing.T) {
	s := NewSource(2)
	x := []string{"a", "b", "c", "d", "e"}
	counts := map[string]int{}

	const n = 100000
	weight := func(letter string) float64 {
		if letter == "e" {
			return 10
		}
		return 1
	}

	for i := 0; i < n; i++ {
		counts[WeightedChoice(s, x, weight)]++
	}

	for _, letter := range x {
		got := float64(counts[letter])
		if letter == "e" {
			// Should be close to 10/14 of draws.
			if got < 9.5/14*n || got > 10.5/14*n {
				t.Errorf("weighted Choice(%q) hit %d times, want about %d", letter, counts[letter], 10*n/14)
			}
		} else if got < 0.8/14*n || got > 1.2/14*n {
			t.Errorf("weighted Choice(%q) hit %d times, want about %d", letter, counts[letter], n/14)
		}
	}
}

func TestBoundedGaussStaysInRange(t *testing.T) {
	s := NewSource(3)
	for i := 0; i < 10000; i++ {
		v := s.BoundedGauss(1, 0.2, 0.2, 1.2)
		if v < 0.2 || v > 1.2 {
			t.Fatalf("BoundedGauss returned %v, outside [0.2, 1.2]", v)
		}
	}
}

func TestTruncGaussDegenerateRange(t *testing.T) {
	s := NewSource(4)
	// Range far from the mean must still terminate and clamp.
	v := s.TruncGauss(0, 0.001, 50, 60)
	if v < 50 || v > 60 {
		t.Fatalf("TruncGauss returned %v, outside [50, 60]", v)
	}
}

func TestRandIntInclusive(t *testing.T) {
	s := NewSource(5)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := s.RandInt(-1, 1)
		if v < -1 || v > 1 {
			t.Fatalf("RandInt(-1, 1) returned %d", v)
		}
		seen[v] = true
	}
	for _, want := range []int{-1, 0, 1} {
		if !seen[want] {
			t.Errorf("RandInt(-1, 1) never returned %d", want)
		}
	}
}

func TestDeterministicForSeed(t *testing.T) {
	a, b := NewSource(42), NewSource(42)
	for i := 0; i < 100; i++ {
		if ga, gb := a.Gauss(0, 1), b.Gauss(0, 1); ga != gb {
			t.Fatalf("same seed diverged at draw %d: %v vs %v", i, ga, gb)
		}
	}
}

func TestHeightDistRange(t *testing.T) {
	s := NewSource(6)
	var sum float64
	const n = 10000
	for i := 0; i < n; i++ {
		h := s.HeightDist()
		if h < 67 || h > 89 {
			t.Fatalf("HeightDist returned %v inches", h)
		}
		sum += h
	}
	mean := sum / n
	if math.Abs(mean-79) > 1.5 {
		t.Errorf("HeightDist mean %.2f, want about 79 inches", mean)
	}
}
