package markov

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
)

const (
	// EndOfSentence is the reserved token that stands in for '.', '!' and '?'
	// in training text. It is made of upper case word characters so the
	// cleaning pipeline, which works on lower case text, never alters it.
	EndOfSentence = "ENDOFSENTENCE"
	// DefaultPlaceholder is the text used for the seed slot of generated
	// output when no start word is given.
	DefaultPlaceholder = "None"
	// DefaultMaxWords is the default number of sampling steps in Generate.
	DefaultMaxWords = 100
)

var (
	// ErrNoTransition is returned by generation when the current key has no
	// recorded successors, e.g. a start word that never appeared in training.
	ErrNoTransition = errors.New("markov: no transition found")
	// ErrInvalidMaxWords is returned when the word bound is not positive.
	ErrInvalidMaxWords = errors.New("markov: max words must be positive")
)

// Chooser picks one element of a non-empty slice.
type Chooser func(choices []string) string

// RandomChooser returns a Chooser that picks uniformly using r. A nil r uses
// the global math/rand/v2 source.
func RandomChooser(r *rand.Rand) Chooser {
	if r == nil {
		return func(choices []string) string {
			return choices[rand.IntN(len(choices))]
		}
	}
	return func(choices []string) string {
		return choices[r.IntN(len(choices))]
	}
}

// Chain is a first-order Markov chain over words. It is not safe for
// concurrent use; training and generation must not overlap.
type Chain struct {
	table  Table
	choose Chooser
	logger *slog.Logger
}

// Option configures a Chain.
type Option func(*Chain)

// WithTable sets the table transitions are stored in.
// Default: a new MemoryTable
func WithTable(table Table) Option {
	return func(c *Chain) {
		c.table = table
	}
}

// WithChooser sets the function used for every random choice made during
// generation, which makes generation deterministic in tests.
func WithChooser(choose Chooser) Option {
	return func(c *Chain) {
		c.choose = choose
	}
}

// WithSeed makes generation reproducible by choosing with a PCG source
// seeded with seed.
func WithSeed(seed uint64) Option {
	return func(c *Chain) {
		c.choose = RandomChooser(rand.New(rand.NewPCG(seed, seed)))
	}
}

// NewChain creates an empty chain, which can be customized with Option
// functions.
func NewChain(opts ...Option) *Chain {
	c := &Chain{
		table:  NewMemoryTable(),
		choose: RandomChooser(nil),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetLogger sets the logger for the Chain. By default, all logs are discarded.
func (c *Chain) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Table returns the table backing the chain.
func (c *Chain) Table() Table {
	return c.table
}
