// Package tokenizer provides text tokenization for character-level models.
//
// This package wraps the internal tokenizer implementations and provides
// a clean public API for tokenization tasks.
//
// Supported tokenizers:
//   - CharTokenizer: Closed-world character vocabulary derived from a corpus
//   - TikToken: OpenAI BPE tokenizers (GPT-3, GPT-4) for subword experiments
//
// Example usage:
//
//	import "github.com/inkwell-ml/inkwell/tokenizer"
//
//	// Derive a character vocabulary
//	tok, err := tokenizer.NewCharTokenizer("hello world")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encode text
//	ids, err := tok.Encode("hello")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Decode ids
//	text, err := tok.Decode(ids)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Character tokenizers are closed-world: encoding a symbol that was not
// in the corpus fails rather than falling back to an unknown id, so
// vocabulary mistakes surface at data-loading time instead of as silent
// model noise.
package tokenizer

import (
	"github.com/inkwell-ml/inkwell/internal/tokenizer"
)

// Tokenizer is the core interface for text tokenization.
//
// All tokenizer implementations must implement this interface.
type Tokenizer = tokenizer.Tokenizer

// CharTokenizer maps individual symbols to dense ids, assigned by
// sorted code point so equal corpora always produce equal mappings.
type CharTokenizer = tokenizer.CharTokenizer

// NewCharTokenizer derives a character vocabulary from a corpus.
//
// Example:
//
//	tok, err := tokenizer.NewCharTokenizer(corpusText)
func NewCharTokenizer(corpus string) (*CharTokenizer, error) {
	return tokenizer.NewCharTokenizer(corpus)
}

// FromVocab builds a character tokenizer from an explicit symbol set.
// Duplicate symbols are rejected.
func FromVocab(runes []rune) (*CharTokenizer, error) {
	return tokenizer.FromVocab(runes)
}

// LoadCharTokenizer reads a vocabulary JSON file written by
// CharTokenizer.Save.
func LoadCharTokenizer(path string) (*CharTokenizer, error) {
	return tokenizer.LoadCharTokenizer(path)
}

// NewTikToken creates a new TikToken tokenizer with the specified encoding.
//
// Supported encodings: "cl100k_base" (GPT-4), "p50k_base" and
// "r50k_base" (GPT-3).
func NewTikToken(encodingName string) (Tokenizer, error) {
	return tokenizer.NewTikToken(encodingName)
}
