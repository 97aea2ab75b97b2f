package dataset

import "fmt"

// Chunk is one training example: Target[i] is the symbol that follows
// Input[i] in the corpus.
type Chunk struct {
	Input  []int32
	Target []int32
}

// Len returns the number of timesteps in the chunk.
func (c Chunk) Len() int {
	return len(c.Input)
}

// Chunks partitions an ID stream into fixed-length non-overlapping
// chunks of next-symbol prediction pairs.
//
// A chunk spans chunkLen+1 consecutive symbols, yielding chunkLen
// (input, target) pairs. Consecutive chunks share one boundary symbol
// so every adjacent pair in the stream is trained exactly once. A
// trailing fragment still forms a shorter chunk when it has at least
// two symbols; a lone final symbol is dropped.
func Chunks(ids []int32, chunkLen int) ([]Chunk, error) {
	if chunkLen < 1 {
		return nil, fmt.Errorf("chunk length must be at least 1, got %d", chunkLen)
	}
	if len(ids) < 2 {
		return nil, fmt.Errorf("need at least 2 symbols to form a training pair, got %d", len(ids))
	}

	var chunks []Chunk
	for p := 0; p < len(ids)-1; p += chunkLen {
		n := chunkLen
		if remaining := len(ids) - 1 - p; remaining < n {
			n = remaining
		}
		chunks = append(chunks, Chunk{
			Input:  ids[p : p+n],
			Target: ids[p+1 : p+n+1],
		})
	}
	return chunks, nil
}
