package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/CTAG07/textgen/pkg/markov"
)

const (
	storeMemory = "memory"
	storeSQLite = "sqlite"
)

// openTable returns the transition table for store and a function that
// releases it. The sqlite store always lives in memory; trained chains are
// never written to disk.
func openTable(ctx context.Context, store string, logger *slog.Logger) (markov.Table, func(), error) {
	switch store {
	case "", storeMemory:
		return markov.NewMemoryTable(), func() {}, nil
	case storeSQLite:
	default:
		return nil, nil, fmt.Errorf("unknown store %q, want %q or %q", store, storeMemory, storeSQLite)
	}

	db, err := sql.Open(sqliteDriver, ":memory:")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = markov.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to setup markov schema: %w", err)
	}

	table, err := markov.NewSQLTable(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("error creating sql table: %w", err)
	}

	logger.Debug("Opened in-memory sqlite store", "driver", sqliteDriver)

	return table, func() {
		table.Close()
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}, nil
}
