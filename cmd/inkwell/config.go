package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/inkwell-ml/inkwell/internal/train"
)

// Config represents an inkwell run configuration file (--config path).
// All fields are pointers so we can distinguish "not set" from zero values.
type Config struct {
	Model        *string  `yaml:"model"`
	HiddenSize   *int64   `yaml:"hidden_size"`
	ChunkLen     *int64   `yaml:"chunk_len"`
	Epochs       *int64   `yaml:"epochs"`
	LearningRate *float64 `yaml:"learning_rate"`
	ClipValue    *float64 `yaml:"clip_value"`
	LogEvery     *int64   `yaml:"log_every"`
	SampleEvery  *int64   `yaml:"sample_every"`
	SampleLen    *int64   `yaml:"sample_len"`
	SeedText     *string  `yaml:"seed_text"`
	Seed         *int64   `yaml:"seed"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// loadConfig reads a YAML run configuration. An empty path yields a zero
// Config so commands work without a config file.
func loadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the --config flag.
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyTrainConfig applies config file values to the training configuration
// when the corresponding CLI flag was not explicitly set.
func applyTrainConfig(c *cli.Command, cfg Config, tc *train.Config) {
	if cfg.Model != nil && !c.IsSet("model") {
		tc.Model = *cfg.Model
	}
	if cfg.HiddenSize != nil && !c.IsSet("hidden-size") {
		tc.HiddenSize = int(*cfg.HiddenSize)
	}
	if cfg.ChunkLen != nil && !c.IsSet("chunk-len") {
		tc.ChunkLen = int(*cfg.ChunkLen)
	}
	if cfg.Epochs != nil && !c.IsSet("epochs") {
		tc.Epochs = int(*cfg.Epochs)
	}
	if cfg.LearningRate != nil && !c.IsSet("lr") {
		tc.LearningRate = float32(*cfg.LearningRate)
	}
	if cfg.ClipValue != nil && !c.IsSet("clip") {
		tc.ClipValue = float32(*cfg.ClipValue)
	}
	if cfg.LogEvery != nil && !c.IsSet("log-every") {
		tc.LogEvery = int(*cfg.LogEvery)
	}
	if cfg.SampleEvery != nil && !c.IsSet("sample-every") {
		tc.SampleEvery = int(*cfg.SampleEvery)
	}
	if cfg.SampleLen != nil && !c.IsSet("sample-len") {
		tc.SampleLen = int(*cfg.SampleLen)
	}
	if cfg.SeedText != nil && !c.IsSet("seed-text") {
		tc.SeedText = *cfg.SeedText
	}
	if cfg.Seed != nil && !c.IsSet("seed") {
		tc.Seed = *cfg.Seed
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}
