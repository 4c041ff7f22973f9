package markov

import (
	"context"
	"database/sql"
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates a new in-memory SQLite database and an SQLTable for
// testing. It uses t.Cleanup to ensure resources are released.
func setupTestDB(t testing.TB) (*sql.DB, *SQLTable) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	table, err := NewSQLTable(db)
	if err != nil {
		t.Fatalf("NewSQLTable() error = %v", err)
	}
	t.Cleanup(table.Close)

	return db, table
}

// tableKinds lists every Table implementation so behavioral tests run
// against each of them.
var tableKinds = []struct {
	name     string
	newTable func(t testing.TB) Table
}{
	{
		name:     "memory",
		newTable: func(testing.TB) Table { return NewMemoryTable() },
	},
	{
		name: "sql",
		newTable: func(t testing.TB) Table {
			_, table := setupTestDB(t)
			return table
		},
	},
}

// firstChooser always picks the first choice, which makes generation follow
// the first recorded successor of every key.
func firstChooser(choices []string) string {
	return choices[0]
}

const testCorpus = "The cat sat. The dog ran."

// setupTestChainWithTraining is a convenience helper that trains a chain on
// testCorpus.
func setupTestChainWithTraining(t *testing.T, table Table, opts ...Option) (context.Context, *Chain) {
	ctx := context.Background()
	opts = append([]Option{WithTable(table)}, opts...)
	c := NewChain(opts...)
	if err := c.Train(ctx, testCorpus); err != nil {
		t.Fatalf("setup: Train() failed: %v", err)
	}
	return ctx, c
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
