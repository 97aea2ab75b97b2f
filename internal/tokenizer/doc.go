// Package tokenizer provides text tokenization for character-level
// language models.
//
// The tokenizer package implements two tokenization strategies:
//   - Char: closed-world character vocabulary built from a training corpus
//   - tiktoken: BPE tokenizer used by GPT-3/GPT-4 (cl100k_base, p50k_base)
//
// The character tokenizer is the primary strategy. Its vocabulary is the
// set of distinct runes observed in the corpus, sorted by code point, so
// symbol IDs are stable across runs on the same corpus. Encoding is
// closed-world: any rune outside the vocabulary is an error, never a
// silent substitution.
//
// Example usage:
//
//	// Build a vocabulary from the corpus
//	tok, err := tokenizer.NewCharTokenizer(corpus)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encode text
//	tokens, err := tok.Encode("hello")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Decode tokens
//	text, err := tok.Decode(tokens)
//	if err != nil {
//	    log.Fatal(err)
//	}
package tokenizer
