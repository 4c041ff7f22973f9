package markov

import (
	"context"
	"strconv"
)

// Key identifies a row of the transition table. A Key either holds a token
// or is the start key, which stands for "no previous word" and never
// compares equal to a token key, not even one holding the empty string.
// The zero Key is the start key.
type Key struct {
	token string
	valid bool
}

// StartKey is the key every training text starts from.
var StartKey = Key{}

// KeyOf returns the key for a token.
func KeyOf(token string) Key {
	return Key{token: token, valid: true}
}

// Token returns the token held by k. The boolean is false for the start key.
func (k Key) Token() (string, bool) {
	return k.token, k.valid
}

// IsStart reports whether k is the start key.
func (k Key) IsStart() bool {
	return !k.valid
}

func (k Key) String() string {
	if !k.valid {
		return "<start>"
	}
	return strconv.Quote(k.token)
}

// Transition is a single observation: To was seen directly after From.
type Transition struct {
	From Key
	To   string
}

// Table stores the observed transitions of a chain. Successor lists are
// append-only and keep duplicates, so the number of times a token appears
// in a list is the number of times it was observed after that key.
type Table interface {
	// Record appends every transition, in order, to the list of its key.
	Record(ctx context.Context, transitions []Transition) error
	// Successors returns the ordered successor list for key. An unknown key
	// yields an empty list and leaves the table unchanged. Callers must not
	// modify the returned slice.
	Successors(ctx context.Context, key Key) ([]string, error)
	// Keys returns every key that has at least one successor, in the order
	// they were first recorded.
	Keys(ctx context.Context) ([]Key, error)
}

// MemoryTable is a map-backed Table. It is not safe for concurrent use.
type MemoryTable struct {
	next  map[Key][]string
	order []Key
}

// NewMemoryTable returns an empty MemoryTable.
func NewMemoryTable() *MemoryTable {
	return &MemoryTable{next: make(map[Key][]string)}
}

// Record appends the transitions to the table.
func (t *MemoryTable) Record(_ context.Context, transitions []Transition) error {
	for _, tr := range transitions {
		list, ok := t.next[tr.From]
		if !ok {
			t.order = append(t.order, tr.From)
		}
		t.next[tr.From] = append(list, tr.To)
	}
	return nil
}

// Successors returns the successor list for key, or nil if key was never
// recorded. The returned slice is capped so appending to it cannot write
// into the table.
func (t *MemoryTable) Successors(_ context.Context, key Key) ([]string, error) {
	list := t.next[key]
	return list[:len(list):len(list)], nil
}

// Keys returns the recorded keys in first-seen order.
func (t *MemoryTable) Keys(_ context.Context) ([]Key, error) {
	keys := make([]Key, len(t.order))
	copy(keys, t.order)
	return keys, nil
}
