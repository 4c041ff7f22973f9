package markov

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestGenerateSingleStep(t *testing.T) {
	for _, kind := range tableKinds {
		t.Run(kind.name, func(t *testing.T) {
			ctx, c := setupTestChainWithTraining(t, kind.newTable(t))

			// StartKey only ever leads to "the", so this is deterministic.
			output, err := c.Generate(ctx, StartKey, WithMaxWords(1))
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if output != "None the" {
				t.Errorf("Generate() got = %q, want %q", output, "None the")
			}
		})
	}
}

func TestGenerateFirstChoice(t *testing.T) {
	for _, kind := range tableKinds {
		t.Run(kind.name, func(t *testing.T) {
			ctx, c := setupTestChainWithTraining(t, kind.newTable(t), WithChooser(firstChooser))

			output, err := c.Generate(ctx, StartKey, WithMaxWords(10))
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			expected := "None the cat sat.\n the cat sat.\n the cat"
			if output != expected {
				t.Errorf("Generate() got = %q, want %q", output, expected)
			}
		})
	}
}

func TestGenerateFrom(t *testing.T) {
	testCases := []struct {
		name        string
		corpus      string
		start       Key
		opts        []GenerateOption
		expected    string
		expectError error
	}{
		{
			name:     "Generation from start word",
			corpus:   testCorpus,
			start:    KeyOf("dog"),
			opts:     []GenerateOption{WithMaxWords(2)},
			expected: "dog ran.\n",
		},
		{
			name:     "Empty placeholder",
			corpus:   testCorpus,
			start:    StartKey,
			opts:     []GenerateOption{WithMaxWords(1), WithPlaceholder("")},
			expected: " the",
		},
		{
			name:     "Marker right after the placeholder",
			corpus:   ". hi",
			start:    StartKey,
			opts:     []GenerateOption{WithMaxWords(2)},
			expected: "None.\n hi",
		},
		{
			name:     "Default length",
			corpus:   "go go",
			start:    StartKey,
			expected: "None" + strings.Repeat(" go", DefaultMaxWords),
		},
		{
			name:        "Start word never seen",
			corpus:      testCorpus,
			start:       KeyOf("zebra"),
			opts:        []GenerateOption{WithMaxWords(5)},
			expectError: ErrNoTransition,
		},
		{
			name:        "Start word is case sensitive",
			corpus:      testCorpus,
			start:       KeyOf("The"),
			opts:        []GenerateOption{WithMaxWords(5)},
			expectError: ErrNoTransition,
		},
		{
			name:        "Terminal word reached",
			corpus:      "hello world",
			start:       StartKey,
			opts:        []GenerateOption{WithMaxWords(5)},
			expectError: ErrNoTransition,
		},
		{
			name:        "Untrained chain",
			corpus:      "",
			start:       StartKey,
			expectError: ErrNoTransition,
		},
		{
			name:        "Zero max words",
			corpus:      testCorpus,
			start:       StartKey,
			opts:        []GenerateOption{WithMaxWords(0)},
			expectError: ErrInvalidMaxWords,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			c := NewChain(WithChooser(firstChooser))
			if err := c.Train(ctx, tc.corpus); err != nil {
				t.Fatalf("Train() failed: %v", err)
			}

			output, err := c.Generate(ctx, tc.start, tc.opts...)

			if tc.expectError != nil {
				if !errors.Is(err, tc.expectError) {
					t.Errorf("expected error %v, got %v", tc.expectError, err)
				}
				if output != "" {
					t.Errorf("expected no partial output, got %q", output)
				}
				return
			}

			if err != nil {
				t.Errorf("got unexpected error: %v", err)
			}
			if output != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, output)
			}
		})
	}
}

func TestGenerateLengthBound(t *testing.T) {
	ctx := context.Background()
	c := NewChain(WithSeed(42))
	corpus := "one fish two fish. red fish blue fish! this one has a little star? " +
		"say what a lot of fish there are. yes some are red and some are blue."
	if err := c.Train(ctx, corpus); err != nil {
		t.Fatalf("Train() failed: %v", err)
	}

	for _, n := range []int{1, 2, 3, 10, 50, 200} {
		for run := 0; run < 20; run++ {
			words, err := c.GenerateWords(ctx, StartKey, WithMaxWords(n))
			if err != nil {
				t.Fatalf("GenerateWords(%d) failed: %v", n, err)
			}
			if len(words) > n+1 {
				t.Fatalf("GenerateWords(%d) returned %d words", n, len(words))
			}
			for _, w := range words {
				if strings.Contains(w, EndOfSentence) {
					t.Fatalf("marker leaked into output: %q", words)
				}
			}
		}
	}
}

func TestGenerateHugeBoundReachesDeadEnd(t *testing.T) {
	for _, kind := range tableKinds {
		t.Run(kind.name, func(t *testing.T) {
			ctx := context.Background()
			c := NewChain(WithTable(kind.newTable(t)))
			// "hello world" cleans to "heo wor", which ends after two steps.
			if err := c.Train(ctx, "hello world"); err != nil {
				t.Fatalf("Train() failed: %v", err)
			}

			for _, n := range []int{math.MaxInt, 1 << 40} {
				words, err := c.GenerateWords(ctx, StartKey, WithMaxWords(n))
				if !errors.Is(err, ErrNoTransition) {
					t.Errorf("GenerateWords(%d) error = %v, want %v", n, err, ErrNoTransition)
				}
				if words != nil {
					t.Errorf("GenerateWords(%d) returned partial output %q", n, words)
				}
			}
		})
	}
}

func TestGenerateSeedIsReproducible(t *testing.T) {
	ctx := context.Background()
	outputs := make([]string, 2)
	for i := range outputs {
		c := NewChain(WithSeed(7))
		_ = c.Train(ctx, "a b. a c. a d! b a? c a, d b; a a")
		out, err := c.Generate(ctx, KeyOf("a"), WithMaxWords(40))
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		outputs[i] = out
	}
	if outputs[0] != outputs[1] {
		t.Errorf("same seed produced different output:\n%q\n%q", outputs[0], outputs[1])
	}
}

func TestGenerateChoosesFromDuplicates(t *testing.T) {
	ctx := context.Background()
	var seen [][]string
	recorder := func(choices []string) string {
		seen = append(seen, choices)
		return choices[len(choices)-1]
	}
	c := NewChain(WithChooser(recorder))
	for _, text := range []string{"x a b", "x a b", "x a c"} {
		_ = c.Train(ctx, text)
	}

	output, err := c.Generate(ctx, KeyOf("x"), WithMaxWords(2))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if output != "x a c" {
		t.Errorf("expected %q, got %q", "x a c", output)
	}
	if len(seen) != 2 || strings.Join(seen[1], " ") != "b b c" {
		t.Errorf("chooser did not see every observation: %q", seen)
	}
}

func BenchmarkGenerate(b *testing.B) {
	corpus := createBenchmarkCorpus()
	ctx := context.Background()

	for _, kind := range tableKinds {
		b.Run(kind.name, func(b *testing.B) {
			c := NewChain(WithTable(kind.newTable(b)), WithSeed(1))
			if err := c.Train(ctx, corpus); err != nil {
				b.Fatalf("Train() setup for benchmark failed: %v", err)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				// Dead ends are expected on a code corpus; only the work matters here.
				s, _ := c.Generate(ctx, StartKey, WithMaxWords(50))
				b.SetBytes(int64(len(s)))
			}
		})
	}
}
