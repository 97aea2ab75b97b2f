package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwell-ml/inkwell/internal/nn"
	"github.com/inkwell-ml/inkwell/internal/tensor"
	"github.com/inkwell-ml/inkwell/internal/tokenizer"
)

// Generator produces text from a trained cell one symbol at a time.
type Generator[B tensor.Backend] struct {
	cell    nn.Cell[B]
	tok     tokenizer.Tokenizer
	sampler *Sampler
	backend B
}

// NewGenerator creates a generator around cell and tok.
func NewGenerator[B tensor.Backend](cell nn.Cell[B], tok tokenizer.Tokenizer, config Config, backend B) (*Generator[B], error) {
	if cell.VocabSize() != tok.VocabSize() {
		return nil, fmt.Errorf("cell vocabulary (%d) does not match tokenizer vocabulary (%d)",
			cell.VocabSize(), tok.VocabSize())
	}

	return &Generator[B]{
		cell:    cell,
		tok:     tok,
		sampler: NewSampler(config),
		backend: backend,
	}, nil
}

// Generate returns length symbols sampled after priming with seedText.
//
// The cell starts from zero state, consumes every seed symbol, then
// alternates drawing a symbol from the output distribution and feeding
// it back in. The returned string is only the continuation; callers
// that want the seed echoed can prepend it. The context is checked
// between symbols.
func (g *Generator[B]) Generate(ctx context.Context, seedText string, length int) (string, error) {
	if seedText == "" {
		return "", fmt.Errorf("seed text is empty")
	}
	if length < 0 {
		return "", fmt.Errorf("length must be non-negative, got %d", length)
	}

	seedIDs, err := g.tok.Encode(seedText)
	if err != nil {
		return "", fmt.Errorf("encode seed text: %w", err)
	}

	// Prime: run the seed symbols through the cell. Only the last
	// step's distribution is kept.
	state := g.cell.InitState(1)
	var probs *tensor.Tensor[float32, B]
	for _, id := range seedIDs {
		probs, state = g.cell.Step(nn.OneHot(int(id), g.cell.VocabSize(), g.backend), state)
	}

	generated := make([]int32, 0, length)
	for i := 0; i < length; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		next, err := g.sampler.Sample(probs.Data())
		if err != nil {
			return "", fmt.Errorf("sample symbol %d: %w", i, err)
		}
		generated = append(generated, next)

		probs, state = g.cell.Step(nn.OneHot(int(next), g.cell.VocabSize(), g.backend), state)
	}

	text, err := g.tok.Decode(generated)
	if err != nil {
		return "", fmt.Errorf("decode generated symbols: %w", err)
	}
	return text, nil
}

// GenerateStream generates like Generate but delivers each decoded
// symbol on the returned channel as it is drawn.
func (g *Generator[B]) GenerateStream(ctx context.Context, seedText string, length int) (<-chan string, <-chan error) {
	out := make(chan string, 1)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)

		if seedText == "" {
			errc <- fmt.Errorf("seed text is empty")
			return
		}

		seedIDs, err := g.tok.Encode(seedText)
		if err != nil {
			errc <- fmt.Errorf("encode seed text: %w", err)
			return
		}

		state := g.cell.InitState(1)
		var probs *tensor.Tensor[float32, B]
		for _, id := range seedIDs {
			probs, state = g.cell.Step(nn.OneHot(int(id), g.cell.VocabSize(), g.backend), state)
		}

		for i := 0; i < length; i++ {
			next, err := g.sampler.Sample(probs.Data())
			if err != nil {
				errc <- fmt.Errorf("sample symbol %d: %w", i, err)
				return
			}

			piece, err := g.tok.Decode([]int32{next})
			if err != nil {
				errc <- fmt.Errorf("decode symbol %d: %w", i, err)
				return
			}

			select {
			case out <- piece:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}

			probs, state = g.cell.Step(nn.OneHot(int(next), g.cell.VocabSize(), g.backend), state)
		}
	}()

	return out, errc
}

// Collect drains a GenerateStream channel pair into a single string.
func Collect(out <-chan string, errc <-chan error) (string, error) {
	var sb strings.Builder
	for piece := range out {
		sb.WriteString(piece)
	}
	if err := <-errc; err != nil {
		return "", err
	}
	return sb.String(), nil
}
