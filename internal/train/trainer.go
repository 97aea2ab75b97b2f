// Package train runs the character-level training loop.
//
// A Trainer owns a cell, an SGD optimizer, and the chunked corpus. Each
// chunk starts from zero state, accumulates the sequence loss through
// the recorded graph, runs backward for gradients, clips, updates the
// parameters, and clears the tape. Progress is logged periodically with
// a windowed mean loss, and samples can be drawn mid-run for
// qualitative inspection. Parameters live only for the run; nothing is
// checkpointed.
package train

import (
	"context"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/inkwell-ml/inkwell/internal/autodiff"
	"github.com/inkwell-ml/inkwell/internal/dataset"
	"github.com/inkwell-ml/inkwell/internal/generate"
	"github.com/inkwell-ml/inkwell/internal/logger"
	"github.com/inkwell-ml/inkwell/internal/nn"
	"github.com/inkwell-ml/inkwell/internal/optim"
	"github.com/inkwell-ml/inkwell/internal/tensor"
	"github.com/inkwell-ml/inkwell/internal/tokenizer"
)

// Trainer drives the training loop for one corpus.
type Trainer[B tensor.Backend] struct {
	config  Config
	backend *autodiff.AutodiffBackend[B]
	cell    nn.Cell[*autodiff.AutodiffBackend[B]]
	opt     *optim.SGD[*autodiff.AutodiffBackend[B]]
	tok     *tokenizer.CharTokenizer
	chunks  []dataset.Chunk
	seed    string
	runID   string
	log     logger.Logger
}

// New builds a trainer for corpus on top of base.
//
// The vocabulary is derived from the corpus, the cell and optimizer are
// created fresh, and the corpus is chunked up front so configuration
// problems surface before Run.
func New[B tensor.Backend](corpus *dataset.Corpus, config Config, base B, log logger.Logger) (*Trainer[B], error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tok, err := tokenizer.NewCharTokenizer(corpus.Text())
	if err != nil {
		return nil, err
	}

	ids, err := tok.Encode(corpus.Text())
	if err != nil {
		return nil, err
	}

	chunks, err := dataset.Chunks(ids, config.ChunkLen)
	if err != nil {
		return nil, err
	}

	seed := config.SeedText
	if seed == "" {
		r, _ := utf8.DecodeRuneInString(corpus.Text())
		seed = string(r)
	} else if _, err := tok.Encode(seed); err != nil {
		return nil, fmt.Errorf("seed text: %w", err)
	}

	backend := autodiff.New(base)

	var cell nn.Cell[*autodiff.AutodiffBackend[B]]
	switch config.Model {
	case ModelRNN:
		cell = nn.NewRNNCell(tok.VocabSize(), config.HiddenSize, backend)
	case ModelLSTM:
		cell = nn.NewLSTMCell(tok.VocabSize(), config.HiddenSize, backend)
	}

	opt := optim.NewSGD(cell.Parameters(), optim.SGDConfig{
		LR:        config.LearningRate,
		ClipValue: config.ClipValue,
	}, backend)

	runID := uuid.NewString()

	return &Trainer[B]{
		config:  config,
		backend: backend,
		cell:    cell,
		opt:     opt,
		tok:     tok,
		chunks:  chunks,
		seed:    seed,
		runID:   runID,
		log:     log.With("run_id", runID, "model", config.Model),
	}, nil
}

// Run trains for the configured number of epochs.
//
// The context is checked between chunks; cancelling it stops the run
// with the context's error.
func (t *Trainer[B]) Run(ctx context.Context) error {
	t.log.Info("training started",
		"vocab_size", t.tok.VocabSize(),
		"hidden_size", t.config.HiddenSize,
		"parameters", t.parameterCount(),
		"chunks", len(t.chunks),
		"epochs", t.config.Epochs,
	)

	windowCap := t.config.LogEvery
	if windowCap < 1 {
		windowCap = 1
	}
	window := make([]float64, 0, windowCap)
	step := 0
	for epoch := 1; epoch <= t.config.Epochs; epoch++ {
		for _, chunk := range t.chunks {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			loss := t.trainChunk(chunk)
			window = append(window, loss)
			step++

			if t.config.LogEvery > 0 && step%t.config.LogEvery == 0 {
				mean := stat.Mean(window, nil)
				t.log.Info("progress",
					"epoch", epoch,
					"step", step,
					"loss", mean,
					"perplexity", math.Exp(mean),
				)
				window = window[:0]
			}

			if t.config.SampleEvery > 0 && step%t.config.SampleEvery == 0 {
				t.logSample(ctx)
			}
		}
	}

	final := t.EvalLoss()
	t.log.Info("training finished", "steps", step, "loss", final, "perplexity", math.Exp(final))
	return nil
}

// trainChunk runs one optimization step and returns the chunk's
// per-symbol loss.
func (t *Trainer[B]) trainChunk(chunk dataset.Chunk) float64 {
	inputs := toInts(chunk.Input)
	targets := toInts(chunk.Target)

	tape := t.backend.Tape()
	tape.Clear()
	tape.StartRecording()
	loss := nn.SequenceNLL(t.cell, inputs, targets, t.backend)
	tape.StopRecording()

	grads := autodiff.Backward(loss, t.backend)
	t.opt.Step(grads)

	return float64(loss.Item()) / float64(chunk.Len())
}

// EvalLoss computes the mean per-symbol loss over all chunks without
// updating parameters.
func (t *Trainer[B]) EvalLoss() float64 {
	tape := t.backend.Tape()
	recording := tape.IsRecording()
	tape.StopRecording()
	defer func() {
		if recording {
			tape.StartRecording()
		}
	}()

	losses := make([]float64, len(t.chunks))
	for i, chunk := range t.chunks {
		loss := nn.SequenceNLL(t.cell, toInts(chunk.Input), toInts(chunk.Target), t.backend)
		losses[i] = float64(loss.Item()) / float64(chunk.Len())
	}
	return stat.Mean(losses, nil)
}

// Sample draws length symbols from the current parameters, primed with
// the configured seed text.
func (t *Trainer[B]) Sample(ctx context.Context, length int) (string, error) {
	gen, err := generate.NewGenerator(t.cell, t.tok, generate.Config{
		Temperature: 1.0,
		Seed:        t.config.Seed,
	}, t.backend)
	if err != nil {
		return "", err
	}
	return gen.Generate(ctx, t.seed, length)
}

func (t *Trainer[B]) logSample(ctx context.Context) {
	text, err := t.Sample(ctx, t.config.SampleLen)
	if err != nil {
		t.log.Warn("sampling failed", "error", err)
		return
	}
	t.log.Info("sample", "seed", t.seed, "text", text)
}

// Cell exposes the model, e.g. for generation after training.
func (t *Trainer[B]) Cell() nn.Cell[*autodiff.AutodiffBackend[B]] {
	return t.cell
}

// Tokenizer exposes the vocabulary derived from the corpus.
func (t *Trainer[B]) Tokenizer() *tokenizer.CharTokenizer {
	return t.tok
}

// Backend exposes the autodiff backend the model runs on.
func (t *Trainer[B]) Backend() *autodiff.AutodiffBackend[B] {
	return t.backend
}

// RunID identifies this trainer's log lines.
func (t *Trainer[B]) RunID() string {
	return t.runID
}

func (t *Trainer[B]) parameterCount() int {
	total := 0
	for _, p := range t.cell.Parameters() {
		total += p.Tensor().NumElements()
	}
	return total
}

func toInts(ids []int32) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
