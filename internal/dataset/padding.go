package dataset

import (
	"fmt"

	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// PadID marks padded positions in a batch row. It is deliberately
// outside every vocabulary so a real symbol can never be mistaken for
// padding; symbol ID 0 stays a normal symbol.
const PadID int32 = -1

// PaddedBatch holds variable-length ID sequences padded to a common
// length with PadID, together with each sequence's true length.
type PaddedBatch struct {
	Rows    [][]int32
	Lengths []int
}

// MaxLen returns the padded row length.
func (pb *PaddedBatch) MaxLen() int {
	if len(pb.Rows) == 0 {
		return 0
	}
	return len(pb.Rows[0])
}

// PadBatch pads seqs to the length of the longest sequence.
//
// Every sequence must be non-empty; the returned Lengths records how
// many leading positions of each row are real symbols.
func PadBatch(seqs [][]int32) (*PaddedBatch, error) {
	if len(seqs) == 0 {
		return nil, fmt.Errorf("cannot pad an empty batch")
	}

	maxLen := 0
	for i, seq := range seqs {
		if len(seq) == 0 {
			return nil, fmt.Errorf("sequence %d is empty", i)
		}
		if len(seq) > maxLen {
			maxLen = len(seq)
		}
	}

	rows := make([][]int32, len(seqs))
	lengths := make([]int, len(seqs))
	for i, seq := range seqs {
		row := make([]int32, maxLen)
		copy(row, seq)
		for j := len(seq); j < maxLen; j++ {
			row[j] = PadID
		}
		rows[i] = row
		lengths[i] = len(seq)
	}

	return &PaddedBatch{Rows: rows, Lengths: lengths}, nil
}

// OneHotSteps encodes a padded batch as one [batch, numClasses] tensor
// per timestep.
//
// Positions holding PadID become all-zero rows, which contribute
// nothing through a model's input weights. Read each sequence's real
// final output with FinalOutputs and the batch's true lengths.
func OneHotSteps[B tensor.Backend](pb *PaddedBatch, numClasses int, backend B) ([]*tensor.Tensor[float32, B], error) {
	if numClasses < 1 {
		return nil, fmt.Errorf("numClasses must be at least 1, got %d", numClasses)
	}

	batch := len(pb.Rows)
	steps := make([]*tensor.Tensor[float32, B], pb.MaxLen())
	for t := range steps {
		raw, err := tensor.NewRaw(tensor.Shape{batch, numClasses}, tensor.Float32, backend.Device())
		if err != nil {
			return nil, err
		}
		data := raw.AsFloat32()
		for b, row := range pb.Rows {
			id := row[t]
			if id == PadID {
				continue
			}
			if id < 0 || int(id) >= numClasses {
				return nil, fmt.Errorf("symbol ID %d at row %d step %d is outside [0, %d)", id, b, t, numClasses)
			}
			data[b*numClasses+int(id)] = 1
		}
		steps[t] = tensor.New[float32](raw, backend)
	}
	return steps, nil
}

// FinalOutputs gathers each sequence's output at its last true
// timestep.
//
// stepOutputs[t] must be the [batch, classes] output of timestep t.
// Row b of the result is row b of stepOutputs[lengths[b]-1], so the
// padded tail never influences what a caller reads out.
func FinalOutputs[B tensor.Backend](stepOutputs []*tensor.Tensor[float32, B], lengths []int, backend B) (*tensor.Tensor[float32, B], error) {
	if len(stepOutputs) == 0 {
		return nil, fmt.Errorf("no step outputs")
	}

	shape := stepOutputs[0].Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("step outputs must be 2D [batch, classes], got %v", shape)
	}
	batch, classes := shape[0], shape[1]
	if len(lengths) != batch {
		return nil, fmt.Errorf("got %d lengths for batch size %d", len(lengths), batch)
	}
	for t, out := range stepOutputs {
		if !out.Shape().Equal(shape) {
			return nil, fmt.Errorf("step %d has shape %v, want %v", t, out.Shape(), shape)
		}
	}

	raw, err := tensor.NewRaw(tensor.Shape{batch, classes}, tensor.Float32, backend.Device())
	if err != nil {
		return nil, err
	}
	data := raw.AsFloat32()
	for b, length := range lengths {
		if length < 1 || length > len(stepOutputs) {
			return nil, fmt.Errorf("length %d for row %d is outside [1, %d]", length, b, len(stepOutputs))
		}
		src := stepOutputs[length-1].Data()
		copy(data[b*classes:(b+1)*classes], src[b*classes:(b+1)*classes])
	}

	return tensor.New[float32](raw, backend), nil
}
