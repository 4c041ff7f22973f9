package markov

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/CTAG07/textgen/pkg/cleaning"
)

// Train cleans and tokenizes text and records every token as a successor
// of the token before it. The first token of text is recorded under
// StartKey: the previous-word cursor is reset on every call, so texts
// trained one after another never link the end of one to the start of the
// next. Transitions accumulate across calls.
func (c *Chain) Train(ctx context.Context, text string) error {
	tokens := cleaning.Tokenize(text, EndOfSentence)
	if len(tokens) == 0 {
		c.logger.DebugContext(ctx, "Training skipped, no tokens in text")
		return nil
	}

	transitions := make([]Transition, 0, len(tokens))
	var sentenceCount int

	prev := StartKey
	for _, token := range tokens {
		transitions = append(transitions, Transition{From: prev, To: token})
		if token == EndOfSentence {
			sentenceCount++
		}
		prev = KeyOf(token)
	}

	if err := c.table.Record(ctx, transitions); err != nil {
		return fmt.Errorf("failed to record transitions: %w", err)
	}

	c.logger.InfoContext(ctx, "Training completed",
		slog.Int("tokens_processed", len(tokens)),
		slog.Int("sentences_processed", sentenceCount),
	)

	return nil
}

// TrainFromReader reads r to the end and trains on its content. A read
// error aborts training before anything is recorded.
func (c *Chain) TrainFromReader(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read training text: %w", err)
	}
	return c.Train(ctx, string(data))
}
