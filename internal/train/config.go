package train

import "fmt"

// Model names accepted by Config.Model.
const (
	ModelRNN  = "rnn"
	ModelLSTM = "lstm"
)

// Config controls a training run.
type Config struct {
	// Model selects the cell: "rnn" or "lstm".
	Model string

	// HiddenSize is the width of the hidden state.
	HiddenSize int

	// ChunkLen is the number of timesteps per training chunk.
	ChunkLen int

	// Epochs is the fixed number of passes over the corpus. There is
	// no convergence criterion and no early stopping.
	Epochs int

	// LearningRate for the SGD update.
	LearningRate float32

	// ClipValue bounds every gradient element to [-ClipValue,
	// ClipValue] before the update. 0 disables clipping.
	ClipValue float32

	// LogEvery is the number of chunks between progress lines.
	LogEvery int

	// SampleEvery is the number of chunks between sample generations.
	// 0 disables periodic sampling.
	SampleEvery int

	// SampleLen is the number of symbols per periodic sample.
	SampleLen int

	// SeedText primes periodic samples. Empty means the first corpus
	// symbol.
	SeedText string

	// Seed feeds the sampler for periodic samples. -1 = random.
	Seed int64
}

// DefaultConfig returns a starting point for small corpora.
func DefaultConfig() Config {
	return Config{
		Model:        ModelRNN,
		HiddenSize:   128,
		ChunkLen:     25,
		Epochs:       5,
		LearningRate: 0.1,
		ClipValue:    5,
		LogEvery:     20,
		SampleEvery:  200,
		SampleLen:    200,
		Seed:         -1,
	}
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	if c.Model != ModelRNN && c.Model != ModelLSTM {
		return fmt.Errorf("model must be %q or %q, got %q", ModelRNN, ModelLSTM, c.Model)
	}
	if c.HiddenSize < 1 {
		return fmt.Errorf("hidden size must be positive, got %d", c.HiddenSize)
	}
	if c.ChunkLen < 1 {
		return fmt.Errorf("chunk length must be positive, got %d", c.ChunkLen)
	}
	if c.Epochs < 1 {
		return fmt.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %v", c.LearningRate)
	}
	if c.ClipValue < 0 {
		return fmt.Errorf("clip value must be non-negative, got %v", c.ClipValue)
	}
	if c.LogEvery < 0 {
		return fmt.Errorf("log interval must be non-negative, got %d", c.LogEvery)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("sample interval must be non-negative, got %d", c.SampleEvery)
	}
	if c.SampleEvery > 0 && c.SampleLen < 1 {
		return fmt.Errorf("sample length must be positive when sampling is enabled, got %d", c.SampleLen)
	}
	return nil
}
