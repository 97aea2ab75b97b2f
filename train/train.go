// Package train provides the training loop for character-level models.
//
// This package wraps the internal trainer and provides a clean public
// API: derive a vocabulary from a corpus, train a recurrent cell on
// fixed-length chunks, and sample from the result.
//
// Example usage:
//
//	import (
//	    "github.com/inkwell-ml/inkwell/backend/cpu"
//	    "github.com/inkwell-ml/inkwell/dataset"
//	    "github.com/inkwell-ml/inkwell/logger"
//	    "github.com/inkwell-ml/inkwell/train"
//	)
//
//	corpus, _ := dataset.Load("input.txt")
//	trainer, err := train.New(corpus, train.DefaultConfig(), cpu.New(), logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := trainer.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	text, _ := trainer.Sample(ctx, 200)
package train

import (
	"github.com/inkwell-ml/inkwell/internal/dataset"
	"github.com/inkwell-ml/inkwell/internal/logger"
	"github.com/inkwell-ml/inkwell/internal/tensor"
	"github.com/inkwell-ml/inkwell/internal/train"
)

// Model architectures.
const (
	ModelRNN  = train.ModelRNN
	ModelLSTM = train.ModelLSTM
)

// Config holds the hyperparameters of a training run.
type Config = train.Config

// DefaultConfig returns the hyperparameters used by the CLI when no
// flags are given.
func DefaultConfig() Config {
	return train.DefaultConfig()
}

// Trainer owns a training run: the derived vocabulary, the model, the
// optimizer, and the chunked corpus.
type Trainer[B tensor.Backend] = train.Trainer[B]

// New builds a trainer. The vocabulary is derived from the corpus, so
// training fails fast on an empty corpus or a seed text containing
// unknown symbols.
func New[B tensor.Backend](corpus *dataset.Corpus, config Config, base B, log logger.Logger) (*Trainer[B], error) {
	return train.New(corpus, config, base, log)
}
