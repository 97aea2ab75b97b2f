package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/inkwell-ml/inkwell/internal/dataset"
	"github.com/inkwell-ml/inkwell/internal/tokenizer"
)

func vocabCmd() *cli.Command {
	var outPath string

	return &cli.Command{
		Name:  "vocab",
		Usage: "Derive the character vocabulary of a corpus",
		Flags: append(corpusFlags(),
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write the vocabulary to a JSON file instead of stdout",
				Destination: &outPath,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			if corpusPath == "" {
				return cli.Exit("error: --corpus is required", 1)
			}

			corpus, err := dataset.Load(corpusPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load corpus: %v", err), 1)
			}
			tok, err := tokenizer.NewCharTokenizer(corpus.Text())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			if outPath != "" {
				if err := tok.Save(outPath); err != nil {
					return cli.Exit(fmt.Sprintf("error: save vocabulary: %v", err), 1)
				}
				fmt.Printf("wrote %d symbols to %s\n", tok.VocabSize(), outPath)
				return nil
			}

			for id, r := range tok.Runes() {
				fmt.Printf("%4d  %q\n", id, r)
			}
			fmt.Printf("%d symbols\n", tok.VocabSize())
			return nil
		},
	}
}
