// Package generate provides text generation for character-level models.
//
// This package implements categorical sampling over model probability
// rows and the autoregressive generation loop.
package generate

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Config configures the sampling strategy for text generation.
type Config struct {
	// Temperature controls randomness. 0 means the default of 1;
	// below 1 sharpens the distribution, above 1 flattens it.
	Temperature float32

	// TopK limits sampling to the K most probable symbols. 0 = disabled.
	// TopK=1 is greedy decoding.
	TopK int

	// Seed for reproducibility. -1 = random.
	Seed int64
}

// DefaultConfig returns sensible defaults for text generation.
func DefaultConfig() Config {
	return Config{
		Temperature: 1.0,
		TopK:        0,
		Seed:        -1,
	}
}

// Sampler draws symbol IDs from probability distributions.
//
// Sample takes a probability row the model has already normalized, not
// raw logits. The draw is stochastic; greedy decoding is available via
// TopK=1.
type Sampler struct {
	config Config
	rng    *rand.Rand
}

// NewSampler creates a new sampler with the given configuration.
func NewSampler(config Config) *Sampler {
	var rng *rand.Rand
	if config.Seed >= 0 {
		rng = rand.New(rand.NewSource(config.Seed)) //nolint:gosec // Intentional deterministic seed for reproducibility
	} else {
		rng = rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // User requested random seed
	}

	return &Sampler{
		config: config,
		rng:    rng,
	}
}

// Sample returns the next symbol ID drawn from probs.
//
// The sampling process:
//  1. Reshape with temperature: p^(1/T), renormalized
//  2. Apply Top-K filtering
//  3. Draw from the resulting categorical distribution
//
// The row must be non-empty with finite, non-negative entries that sum
// to something positive.
func (s *Sampler) Sample(probs []float32) (int32, error) {
	if len(probs) == 0 {
		return 0, fmt.Errorf("cannot sample from an empty distribution")
	}
	if s.config.Temperature < 0 {
		return 0, fmt.Errorf("temperature must be non-negative, got %v", s.config.Temperature)
	}

	work := make([]float64, len(probs))
	total := 0.0
	for i, p := range probs {
		v := float64(p)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("probability at index %d is not finite: %v", i, p)
		}
		if v < 0 {
			return 0, fmt.Errorf("probability at index %d is negative: %v", i, p)
		}
		work[i] = v
		total += v
	}
	if total <= 0 {
		return 0, fmt.Errorf("probabilities sum to %v, nothing to sample", total)
	}

	// 1. Temperature. Raising to 1/T is the probability-space version
	// of dividing logits by T; any overall scale cancels in the
	// normalization below.
	if temp := float64(s.config.Temperature); temp > 0 && temp != 1.0 {
		for i := range work {
			work[i] = math.Pow(work[i], 1.0/temp)
		}
	}

	// 2. Top-K filter.
	if k := s.config.TopK; k > 0 && k < len(work) {
		topKZero(work, k)
	}

	return s.multinomial(work)
}

// topKZero zeroes every entry below the k-th largest.
func topKZero(work []float64, k int) {
	sorted := append([]float64{}, work...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })
	threshold := sorted[k-1]

	// Zero strictly-below entries first, then trim ties from the back
	// so exactly k survive.
	kept := 0
	for i := range work {
		if work[i] < threshold {
			work[i] = 0
		} else {
			kept++
		}
	}
	for i := len(work) - 1; i >= 0 && kept > k; i-- {
		if work[i] == threshold {
			work[i] = 0
			kept--
		}
	}
}

// multinomial draws an index from an unnormalized weight vector.
func (s *Sampler) multinomial(work []float64) (int32, error) {
	sum := 0.0
	for _, w := range work {
		sum += w
	}
	if sum <= 0 {
		return 0, fmt.Errorf("all probabilities filtered out")
	}

	r := s.rng.Float64() * sum

	cumSum := 0.0
	last := 0
	for i, w := range work {
		if w <= 0 {
			continue
		}
		cumSum += w
		last = i
		if r < cumSum {
			return int32(i), nil //nolint:gosec // G115: vocab size is bounded by model architecture
		}
	}

	// Rounding can leave r just past the final cumulative sum; fall
	// back to the last symbol with any probability mass.
	return int32(last), nil //nolint:gosec // G115: vocab size is bounded by model architecture
}
