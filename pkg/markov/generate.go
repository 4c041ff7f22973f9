package markov

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// sentencePunctuation is sampled when an EndOfSentence token is generated.
// Periods and commas are repeated to make them more likely.
var sentencePunctuation = []string{
	".", ".", ".", ".", ".", ".", ".", ".", ".",
	",", ",",
	";",
	"!",
	"?",
}

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	maxWords    int
	placeholder string
}

// GenerateOption is a function that configures generation parameters.
type GenerateOption func(*generateOptions)

// WithMaxWords sets the number of sampling steps. Generation always runs
// exactly that many steps unless it reaches a dead end, so the output may
// stop mid-sentence. Must be positive.
// Default: 100
func WithMaxWords(n int) GenerateOption {
	return func(o *generateOptions) { o.maxWords = n }
}

// WithPlaceholder sets the text used for the seed slot when generation
// starts from StartKey.
// Default: "None"
func WithPlaceholder(s string) GenerateOption {
	return func(o *generateOptions) { o.placeholder = s }
}

// Generate walks the chain from start and returns the generated words
// joined by single spaces. The output always begins with the seed slot:
// the start token, or the placeholder when start is StartKey.
//
// ErrNoTransition is returned, without partial output, as soon as the walk
// reaches a key with no successors. That includes a start token that was
// never seen during training.
func (c *Chain) Generate(ctx context.Context, start Key, opts ...GenerateOption) (string, error) {
	words, err := c.GenerateWords(ctx, start, opts...)
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

// GenerateWords is like Generate but returns the output sequence without
// joining it. The result holds at most one more element than the number of
// sampling steps.
func (c *Chain) GenerateWords(ctx context.Context, start Key, opts ...GenerateOption) ([]string, error) {
	options := &generateOptions{
		maxWords:    DefaultMaxWords,
		placeholder: DefaultPlaceholder,
	}
	for _, opt := range opts {
		opt(options)
	}

	if options.maxWords <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxWords, options.maxWords)
	}

	seed, ok := start.Token()
	if !ok {
		seed = options.placeholder
	}
	// The bound may be far larger than any walk before a dead end.
	words := make([]string, 1, min(options.maxWords, 64)+1)
	words[0] = seed

	cursor := start
	for step := 0; step < options.maxWords; step++ {
		choices, err := c.table.Successors(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to get successors of %s: %w", cursor, err)
		}

		if len(choices) == 0 { // Dead end in chain
			c.logger.DebugContext(ctx, "Generation failed at dead-end",
				slog.String("key", cursor.String()),
				slog.Int("steps_taken", step),
			)
			return nil, fmt.Errorf("%w for %s", ErrNoTransition, cursor)
		}

		next := c.choose(choices)
		if next == EndOfSentence {
			// Punctuation is glued onto the last word instead of becoming a word.
			words[len(words)-1] += c.choose(sentencePunctuation) + "\n"
		} else {
			words = append(words, next)
		}
		cursor = KeyOf(next)
	}

	c.logger.DebugContext(ctx, "Generation completed",
		slog.String("start", start.String()),
		slog.Int("max_words", options.maxWords),
		slog.Int("words_generated", len(words)-1),
	)

	return words, nil
}

// Successors returns the recorded successors of key.
func (c *Chain) Successors(ctx context.Context, key Key) ([]string, error) {
	return c.table.Successors(ctx, key)
}
