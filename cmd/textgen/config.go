package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/CTAG07/textgen/pkg/markov"
	"github.com/CTAG07/textgen/pkg/templating"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// GenerationConfig holds the settings for training and generation.
type GenerationConfig struct {
	MaxWords    int    `json:"max_words" yaml:"max_words"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	// Seed makes output reproducible. Zero picks a random seed.
	Seed  uint64 `json:"seed" yaml:"seed"`
	Store string `json:"store" yaml:"store"`
}

// LogConfig holds logging settings. Logs are always written to stderr.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	Generation GenerationConfig          `json:"generation" yaml:"generation"`
	Log        LogConfig                 `json:"log" yaml:"log"`
	Templates  templating.TemplateConfig `json:"templates" yaml:"templates"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			MaxWords:    30,
			Placeholder: markov.DefaultPlaceholder,
			Store:       storeMemory,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Templates: templating.DefaultConfig(),
	}
}

// LoadConfig reads the configuration from a YAML file at the given path.
// Keys missing from the file keep their default values. If the file doesn't
// exist, it is created with the defaults and created is true.
func LoadConfig(path string) (config *Config, created bool, err error) {
	config = DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, fmt.Errorf("failed to read config file: %w", err)
		}
		var data []byte
		data, err = yaml.Marshal(config)
		if err != nil {
			return nil, false, fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
			return nil, false, fmt.Errorf("failed to write default config file: %w", err)
		}
		return config, true, nil
	}

	if err = yaml.Unmarshal(file, config); err != nil {
		return nil, false, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, false, nil
}
