package tokenizer

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// CharTokenizer maps individual runes to symbol IDs.
//
// The vocabulary is closed: every rune the tokenizer will ever see must
// be present at construction time. Encode fails on anything else rather
// than substituting an unknown marker, so a model trained with this
// tokenizer never spends capacity on symbols it cannot emit.
type CharTokenizer struct {
	idToRune []rune
	runeToID map[rune]int32
}

// NewCharTokenizer builds a vocabulary from the distinct runes in corpus.
//
// Runes are sorted by code point, so the same corpus always produces the
// same ID assignment. The corpus must be non-empty, valid UTF-8.
func NewCharTokenizer(corpus string) (*CharTokenizer, error) {
	if corpus == "" {
		return nil, fmt.Errorf("cannot build a vocabulary from an empty corpus")
	}
	if !utf8.ValidString(corpus) {
		return nil, fmt.Errorf("corpus is not valid UTF-8")
	}

	seen := make(map[rune]bool)
	var runes []rune
	for _, r := range corpus {
		if !seen[r] {
			seen[r] = true
			runes = append(runes, r)
		}
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	return fromSortedRunes(runes), nil
}

// FromVocab creates a tokenizer over an explicit set of runes.
//
// The runes are sorted by code point before ID assignment. Duplicates
// are an error.
func FromVocab(runes []rune) (*CharTokenizer, error) {
	if len(runes) == 0 {
		return nil, fmt.Errorf("vocabulary must contain at least one symbol")
	}

	sorted := make([]rune, len(runes))
	copy(sorted, runes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return nil, fmt.Errorf("duplicate symbol %q in vocabulary", sorted[i])
		}
	}

	return fromSortedRunes(sorted), nil
}

func fromSortedRunes(runes []rune) *CharTokenizer {
	runeToID := make(map[rune]int32, len(runes))
	for i, r := range runes {
		runeToID[r] = int32(i) //nolint:gosec // G115: vocabulary sizes are far below int32 range.
	}

	return &CharTokenizer{
		idToRune: runes,
		runeToID: runeToID,
	}
}

// Encode converts text to symbol IDs.
//
// Any rune outside the vocabulary is an error naming the offending
// symbol and its rune position.
func (c *CharTokenizer) Encode(text string) ([]int32, error) {
	tokens := make([]int32, 0, len(text))
	pos := 0
	for _, r := range text {
		id, ok := c.runeToID[r]
		if !ok {
			return nil, fmt.Errorf("symbol %q at position %d is not in the vocabulary", r, pos)
		}
		tokens = append(tokens, id)
		pos++
	}
	return tokens, nil
}

// Decode converts symbol IDs back to text.
//
// IDs outside [0, VocabSize) are an error.
func (c *CharTokenizer) Decode(tokens []int32) (string, error) {
	var sb strings.Builder
	for _, id := range tokens {
		if id < 0 || int(id) >= len(c.idToRune) {
			return "", fmt.Errorf("token ID %d is outside the vocabulary (size %d)", id, len(c.idToRune))
		}
		sb.WriteRune(c.idToRune[id])
	}
	return sb.String(), nil
}

// VocabSize returns the total vocabulary size.
func (c *CharTokenizer) VocabSize() int {
	return len(c.idToRune)
}

// Runes returns the vocabulary runes in ID order.
func (c *CharTokenizer) Runes() []rune {
	out := make([]rune, len(c.idToRune))
	copy(out, c.idToRune)
	return out
}
