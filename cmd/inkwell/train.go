package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/inkwell-ml/inkwell/internal/backend/cpu"
	"github.com/inkwell-ml/inkwell/internal/dataset"
	"github.com/inkwell-ml/inkwell/internal/train"
)

func trainCmd() *cli.Command {
	var (
		configPath  string
		model       string
		hiddenSize  int64
		chunkLen    int64
		epochs      int64
		lr          float64
		clip        float64
		logEvery    int64
		sampleEvery int64
		sampleLen   int64
		seedText    string
		seed        int64
	)

	defaults := train.DefaultConfig()

	return &cli.Command{
		Name:  "train",
		Usage: "Train a character-level model on a text corpus",
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
				Name:        "chunk-len",
				Usage:       "symbols per training chunk",
				Value:       int64(defaults.ChunkLen),
				Destination: &chunkLen,
			},
			&cli.Int64Flag{
				Name:        "epochs",
				Usage:       "passes over the corpus",
				Value:       int64(defaults.Epochs),
				Destination: &epochs,
			},
			&cli.Float64Flag{
				Name:        "lr",
				Usage:       "learning rate",
				Value:       float64(defaults.LearningRate),
				Destination: &lr,
			},
			&cli.Float64Flag{
				Name:        "clip",
				Usage:       "gradient clip threshold (0 = disabled)",
				Value:       float64(defaults.ClipValue),
				Destination: &clip,
			},
			&cli.Int64Flag{
				Name:        "log-every",
				Usage:       "log progress every n chunks (0 = silent)",
				Value:       int64(defaults.LogEvery),
				Destination: &logEvery,
			},
			&cli.Int64Flag{
				Name:        "sample-every",
				Usage:       "log a generated sample every n chunks (0 = never)",
				Value:       int64(defaults.SampleEvery),
				Destination: &sampleEvery,
			},
			&cli.Int64Flag{
				Name:        "sample-len",
				Usage:       "symbols per logged sample",
				Value:       int64(defaults.SampleLen),
				Destination: &sampleLen,
			},
			&cli.StringFlag{
				Name:        "seed-text",
				Usage:       "prompt for logged samples (default: first corpus symbol)",
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

			tc := train.Config{
				Model:        model,
				HiddenSize:   int(hiddenSize),
				ChunkLen:     int(chunkLen),
				Epochs:       int(epochs),
				LearningRate: float32(lr),
				ClipValue:    float32(clip),
				LogEvery:     int(logEvery),
				SampleEvery:  int(sampleEvery),
				SampleLen:    int(sampleLen),
				SeedText:     seedText,
				Seed:         seed,
			}
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
			return nil
		},
	}
}
