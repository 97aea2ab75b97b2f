// Package dataset prepares training data for character-level models.
//
// A corpus is loaded whole into memory, encoded to symbol IDs by a
// tokenizer, partitioned into fixed-length non-overlapping chunks, and
// optionally zero-padded into equal-length batches. No shuffling, no
// validation split, no augmentation.
package dataset

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// Corpus is a training text held fully in memory.
type Corpus struct {
	text string
}

// Load reads a corpus from path.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path comes from trusted caller
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return FromString(string(data))
}

// FromString wraps text as a corpus.
//
// An empty or whitespace-only corpus is an error: there is nothing to
// model. Invalid UTF-8 is an error as well, so symbol derivation never
// sees replacement runes.
func FromString(text string) (*Corpus, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("corpus is empty")
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("corpus is not valid UTF-8")
	}
	return &Corpus{text: text}, nil
}

// Text returns the raw corpus text.
func (c *Corpus) Text() string {
	return c.text
}

// Len returns the corpus length in runes.
func (c *Corpus) Len() int {
	return utf8.RuneCountInString(c.text)
}
