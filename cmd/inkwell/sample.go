package main

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/urfave/cli/v3"

	"github.com/inkwell-ml/inkwell/internal/backend/cpu"
	"github.com/inkwell-ml/inkwell/internal/dataset"
	"github.com/inkwell-ml/inkwell/internal/generate"
	"github.com/inkwell-ml/inkwell/internal/train"
)

func sampleCmd() *cli.Command {
	var (
		configPath  string
		model       string
		hiddenSize  int64
		epochs      int64
		length      int64
		temperature float64
		topK        int64
		seedText    string
		seed        int64
	)

	defaults := train.DefaultConfig()

	return &cli.Command{
		Name:  "sample",
		Usage: "Train a model on a corpus, then generate text from it",
		Flags: append(append(corpusFlags(),
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to a YAML run configuration",
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "model",
				Usage:       "model architecture (rnn, lstm)",
				Value:       defaults.Model,
				Destination: &model,
			},
			&cli.Int64Flag{
				Name:        "hidden-size",
				Usage:       "hidden state width",
				Value:       int64(defaults.HiddenSize),
				Destination: &hiddenSize,
			},
			&cli.Int64Flag{
				Name:        "epochs",
				Usage:       "passes over the corpus before sampling",
				Value:       int64(defaults.Epochs),
				Destination: &epochs,
			},
			&cli.Int64Flag{
				Name:        "length",
				Aliases:     []string{"n"},
				Usage:       "number of symbols to generate",
				Value:       200,
				Destination: &length,
			},
			&cli.Float64Flag{
				Name:        "temperature",
				Aliases:     []string{"temp", "t"},
				Usage:       "sampling temperature",
				Value:       1.0,
				Destination: &temperature,
			},
			&cli.Int64Flag{
				Name:        "top-k",
				Usage:       "top-k sampling parameter (0 = disabled, 1 = greedy)",
				Destination: &topK,
			},
			&cli.StringFlag{
				Name:        "seed-text",
				Usage:       "prompt to prime generation (default: first corpus symbol)",
				Destination: &seedText,
			},
			&cli.Int64Flag{
				Name:        "seed",
				Usage:       "sampling RNG seed (default -1 = random)",
				Value:       defaults.Seed,
				Destination: &seed,
			},
		), loggingFlags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if corpusPath == "" {
				return cli.Exit("error: --corpus is required", 1)
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			tc := train.DefaultConfig()
			tc.Model = model
			tc.HiddenSize = int(hiddenSize)
			tc.Epochs = int(epochs)
			tc.SampleEvery = 0
			tc.SeedText = seedText
			tc.Seed = seed
			applyTrainConfig(c, cfg, &tc)

			corpus, err := dataset.Load(corpusPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load corpus: %v", err), 1)
			}

			trainer, err := train.New(corpus, tc, cpu.New(), newLogger())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err := trainer.Run(ctx); err != nil {
				return cli.Exit(fmt.Sprintf("error: training: %v", err), 1)
			}

			gen, err := generate.NewGenerator(trainer.Cell(), trainer.Tokenizer(), generate.Config{
				Temperature: float32(temperature),
				TopK:        int(topK),
				Seed:        seed,
			}, trainer.Backend())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			prompt := tc.SeedText
			if prompt == "" {
				r, _ := utf8.DecodeRuneInString(corpus.Text())
				prompt = string(r)
			}

			text, err := gen.Generate(ctx, prompt, int(length))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: generation: %v", err), 1)
			}
			fmt.Printf("%s%s\n", prompt, text)
			return nil
		},
	}
}
