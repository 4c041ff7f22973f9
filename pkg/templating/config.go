package templating

import "github.com/CTAG07/textgen/pkg/markov"

// TemplateConfig holds all configuration options for the templating engine.
type TemplateConfig struct {
	// MaxWords caps the number of sampling steps a single content function
	// may request from the chain.
	MaxWords int `json:"max_words" yaml:"max_words"`

	// MaxParagraphs caps the count argument of markovParagraphs.
	MaxParagraphs int `json:"max_paragraphs" yaml:"max_paragraphs"`

	// Placeholder is the seed slot text used by functions that generate
	// without a start word.
	Placeholder string `json:"placeholder" yaml:"placeholder"`
}

// DefaultConfig returns a TemplateConfig with safe default values.
func DefaultConfig() TemplateConfig {
	return TemplateConfig{
		MaxWords:      1000,
		MaxParagraphs: 50,
		Placeholder:   markov.DefaultPlaceholder,
	}
}
