package main

import (
	"fmt"
	"os"
)

// document is the full content of one input file.
type document struct {
	path string
	text string
}

// readCorpus reads every file completely. The first failure aborts the
// whole run, before any training happens.
func readCorpus(paths []string) ([]document, error) {
	docs := make([]document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs = append(docs, document{path: path, text: string(data)})
	}
	return docs, nil
}
