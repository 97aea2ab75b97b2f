package tokenizer

import (
	"fmt"
	"os"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// vocabFile is the on-disk JSON layout for a character vocabulary.
//
// Symbols are stored as single-rune strings in ID order so the file
// stays readable and diffs cleanly.
type vocabFile struct {
	Symbols []string `json:"symbols"`
}

// Save writes the vocabulary to path as JSON.
func (c *CharTokenizer) Save(path string) error {
	symbols := make([]string, len(c.idToRune))
	for i, r := range c.idToRune {
		symbols[i] = string(r)
	}

	data, err := json.MarshalIndent(vocabFile{Symbols: symbols}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode vocabulary: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write vocabulary file: %w", err)
	}
	return nil
}

// LoadCharTokenizer reads a vocabulary file written by Save.
func LoadCharTokenizer(path string) (*CharTokenizer, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path comes from trusted caller
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var file vocabFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}

	runes := make([]rune, 0, len(file.Symbols))
	for i, s := range file.Symbols {
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || size != len(s) || (r == utf8.RuneError && size == 1) {
			return nil, fmt.Errorf("vocabulary entry %d (%q) is not a single rune", i, s)
		}
		runes = append(runes, r)
	}

	return FromVocab(runes)
}
