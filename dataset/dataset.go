// Package dataset provides corpus loading and chunking for training
// character-level models.
//
// This package wraps the internal dataset implementation and provides
// a clean public API for data preparation.
//
// Components:
//   - Corpus: A validated UTF-8 training text
//   - Chunks: Fixed-length input/target pairs over an encoded corpus
//   - PadBatch, OneHotSteps, FinalOutputs: Variable-length batching helpers
//
// Example usage:
//
//	import "github.com/inkwell-ml/inkwell/dataset"
//
//	corpus, err := dataset.Load("input.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ids, _ := tok.Encode(corpus.Text())
//	chunks, err := dataset.Chunks(ids, 25)
package dataset

import (
	"github.com/inkwell-ml/inkwell/internal/dataset"
	"github.com/inkwell-ml/inkwell/internal/tensor"
)

// Corpus is a validated UTF-8 training text.
type Corpus = dataset.Corpus

// Load reads a corpus from a file. Empty and invalid UTF-8 files are
// rejected.
func Load(path string) (*Corpus, error) {
	return dataset.Load(path)
}

// FromString builds a corpus from an in-memory string.
func FromString(text string) (*Corpus, error) {
	return dataset.FromString(text)
}

// Chunk is one training example: Target[i] is the symbol that follows
// Input[i] in the corpus.
type Chunk = dataset.Chunk

// Chunks partitions an encoded corpus into fixed-length chunks. Every
// adjacent symbol pair appears in exactly one chunk; a shorter trailing
// chunk covers the corpus tail.
//
// Example:
//
//	chunks, err := dataset.Chunks([]int32{0, 1, 2}, 25)
//	// chunks[0].Input = [0, 1], chunks[0].Target = [1, 2]
func Chunks(ids []int32, chunkLen int) ([]Chunk, error) {
	return dataset.Chunks(ids, chunkLen)
}

// PadID marks padded positions in a batch. It is never a valid symbol
// id.
const PadID = dataset.PadID

// PaddedBatch holds right-padded sequences together with their true
// lengths.
type PaddedBatch = dataset.PaddedBatch

// PadBatch right-pads variable-length sequences to the longest one.
//
// Example:
//
//	pb, err := dataset.PadBatch([][]int32{{5, 1, 2, 0}, {3, 4}, {9}})
//	// pb.Lengths = [4, 2, 1], every row has 4 entries
func PadBatch(seqs [][]int32) (*PaddedBatch, error) {
	return dataset.PadBatch(seqs)
}

// OneHotSteps encodes a padded batch as per-timestep one-hot tensors.
// Padded positions become all-zero rows, so they contribute nothing
// through a model's input weights.
func OneHotSteps[B tensor.Backend](pb *PaddedBatch, numClasses int, backend B) ([]*tensor.Tensor[float32, B], error) {
	return dataset.OneHotSteps(pb, numClasses, backend)
}

// FinalOutputs gathers, for each batch row, the model output at the
// row's last real timestep (true length minus one).
func FinalOutputs[B tensor.Backend](stepOutputs []*tensor.Tensor[float32, B], lengths []int, backend B) (*tensor.Tensor[float32, B], error) {
	return dataset.FinalOutputs(stepOutputs, lengths, backend)
}
