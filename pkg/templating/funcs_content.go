package templating

import (
	"context"
	"strings"

	"github.com/CTAG07/textgen/pkg/markov"
)

// clampWords keeps a requested word count inside [1, MaxWords]. A
// non-positive MaxWords allows a single word.
func (r *Renderer) clampWords(maxWords int) int {
	return min(max(maxWords, 1), max(r.config.MaxWords, 1))
}

// markovText generates text that starts with the given word.
func (r *Renderer) markovText(ctx context.Context, start string, maxWords int) (string, error) {
	text, err := r.chain.Generate(ctx, markov.KeyOf(start), markov.WithMaxWords(r.clampWords(maxWords)))
	if err != nil {
		r.logger.Error("markovText: generation failed", "start", start, "error", err)
		return "", err
	}
	return text, nil
}

// markovFree generates text without a start word.
func (r *Renderer) markovFree(ctx context.Context, maxWords int) (string, error) {
	text, err := r.chain.Generate(ctx, markov.StartKey,
		markov.WithMaxWords(r.clampWords(maxWords)),
		markov.WithPlaceholder(r.config.Placeholder),
	)
	if err != nil {
		r.logger.Error("markovFree: generation failed", "error", err)
		return "", err
	}
	return text, nil
}

// markovParagraphs generates count passages without a start word, separated
// by blank lines.
func (r *Renderer) markovParagraphs(ctx context.Context, count, maxWords int) (string, error) {
	if count > r.config.MaxParagraphs {
		count = r.config.MaxParagraphs
	}
	paragraphs := make([]string, 0, max(count, 0))
	for i := 0; i < count; i++ {
		text, err := r.markovFree(ctx, maxWords)
		if err != nil {
			return "", err
		}
		paragraphs = append(paragraphs, strings.TrimSpace(text))
	}
	return strings.Join(paragraphs, "\n\n"), nil
}
