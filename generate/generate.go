// Package generate provides text generation from trained character models.
//
// This package wraps the internal generate implementations and provides
// a clean public API for sampling tasks.
//
// Components:
//   - Sampler: Categorical sampling with temperature and top-k
//   - Generator: Autoregressive generation driving a recurrent cell
//
// Example usage:
//
//	import (
//	    "github.com/inkwell-ml/inkwell/generate"
//	    "github.com/inkwell-ml/inkwell/tokenizer"
//	)
//
//	config := generate.Config{
//	    Temperature: 0.8,
//	    TopK:        0,
//	    Seed:        42,
//	}
//	gen, err := generate.NewGenerator(cell, tok, config, backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, err := gen.Generate(ctx, "T", 200)
package generate

import (
	"github.com/inkwell-ml/inkwell/internal/generate"
	"github.com/inkwell-ml/inkwell/internal/nn"
	"github.com/inkwell-ml/inkwell/internal/tensor"
	"github.com/inkwell-ml/inkwell/internal/tokenizer"
)

// Sampling configuration

// Config configures the sampling strategy for generation.
//
// Parameters:
//   - Temperature: Sharpens (<1) or flattens (>1) the distribution; 0 means 1.0
//   - TopK: Limits sampling to the K most probable symbols (0 = disabled, 1 = greedy)
//   - Seed: Random seed for reproducibility (-1 = random)
type Config = generate.Config

// DefaultConfig returns sensible defaults for generation.
//
// Defaults:
//   - Temperature: 1.0
//   - TopK: 0 (disabled)
//   - Seed: -1 (random)
func DefaultConfig() Config {
	return generate.DefaultConfig()
}

// Sampler

// Sampler draws symbol ids from probability distributions.
//
// The draw is stochastic by default; greedy decoding is available via
// TopK = 1. Two samplers built with the same non-negative seed produce
// identical draws for identical inputs.
type Sampler = generate.Sampler

// NewSampler creates a new sampler with the given configuration.
//
// Example:
//
//	sampler := generate.NewSampler(generate.Config{Seed: 42})
//	id, err := sampler.Sample(probs)
func NewSampler(config Config) *Sampler {
	return generate.NewSampler(config)
}

// Generator

// Generator produces text by repeatedly stepping a recurrent cell and
// sampling from its output distribution.
type Generator[B tensor.Backend] = generate.Generator[B]

// NewGenerator creates a generator around a trained cell. The
// tokenizer's vocabulary must match the cell's.
//
// Example:
//
//	gen, err := generate.NewGenerator(cell, tok, generate.DefaultConfig(), backend)
//	text, err := gen.Generate(ctx, "T", 200)
func NewGenerator[B tensor.Backend](
	cell nn.Cell[B],
	tok tokenizer.Tokenizer,
	config Config,
	backend B,
) (*Generator[B], error) {
	return generate.NewGenerator(cell, tok, config, backend)
}

// Collect drains a GenerateStream result into a single string. It
// returns the concatenated output and the first error, if any.
func Collect(out <-chan string, errc <-chan error) (string, error) {
	return generate.Collect(out, errc)
}
