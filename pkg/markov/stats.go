package markov

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Stats holds aggregated statistics for a chain's transition table.
type Stats struct {
	Keys           int     // The number of keys with at least one successor, StartKey included.
	Transitions    int     // The number of recorded transitions, duplicates included.
	Vocabulary     int     // The number of distinct successor words, EndOfSentence excluded.
	StartingTokens int     // The number of transitions recorded under StartKey; one per trained text.
	Sentences      int     // The number of recorded EndOfSentence transitions.
	MeanBranching  float64 // The mean number of distinct successors per key.
	MeanEntropy    float64 // The mean Shannon entropy, in bits, of each key's successor distribution.
}

// Stats returns a snapshot of statistics for the chain's table.
func (c *Chain) Stats(ctx context.Context) (*Stats, error) {
	keys, err := c.table.Keys(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Keys: len(keys)}
	vocab := make(map[string]struct{})
	var branching, entropy float64

	for _, key := range keys {
		successors, err := c.table.Successors(ctx, key)
		if err != nil {
			return nil, err
		}
		stats.Transitions += len(successors)
		if key.IsStart() {
			stats.StartingTokens = len(successors)
		}

		counts := make(map[string]int)
		order := make([]string, 0)
		for _, token := range successors {
			if _, seen := counts[token]; !seen {
				order = append(order, token)
			}
			counts[token]++
			if token == EndOfSentence {
				stats.Sentences++
			} else {
				vocab[token] = struct{}{}
			}
		}

		p := make([]float64, len(order))
		for i, token := range order {
			p[i] = float64(counts[token]) / float64(len(successors))
		}
		branching += float64(len(order))
		entropy += stat.Entropy(p) / math.Ln2
	}

	stats.Vocabulary = len(vocab)
	if len(keys) > 0 {
		stats.MeanBranching = branching / float64(len(keys))
		stats.MeanEntropy = entropy / float64(len(keys))
	}

	return stats, nil
}
