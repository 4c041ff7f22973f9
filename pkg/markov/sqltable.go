package markov

import (
	"context"
	"database/sql"
	"fmt"
)

// SetupSchema creates the transition table in the provided database. It is
// idempotent and safe to call on an already-initialized database.
//
// A NULL prev_token is the start key; seq keeps successors in the order they
// were observed.
func SetupSchema(db *sql.DB) error {

	const (
		schemaTransitions = `
CREATE TABLE IF NOT EXISTS markov_transitions (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    prev_token TEXT,
    next_token TEXT NOT NULL
);
`
		schemaPrevIndex = `
CREATE INDEX IF NOT EXISTS markov_transitions_prev ON markov_transitions (prev_token, seq);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	// Rollback is a no-op once Commit succeeded.
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaTransitions); err != nil {
		return fmt.Errorf("could not create schema: %w", err)
	}

	if _, err = tx.Exec(schemaPrevIndex); err != nil {
		return fmt.Errorf("could not create index: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// SQLTable is a Table stored in a SQL database prepared with SetupSchema.
// The queries are written for SQLite. An in-memory SQLite database must be
// limited to a single open connection, since every new connection to
// ":memory:" opens a fresh, empty database.
type SQLTable struct {
	db             *sql.DB
	stmtInsert     *sql.Stmt
	stmtSuccessors *sql.Stmt
	stmtKeys       *sql.Stmt
}

// NewSQLTable pre-compiles the statements used by the table, returning an
// error if any preparation fails.
func NewSQLTable(db *sql.DB) (*SQLTable, error) {
	stmtInsert, err := db.Prepare(`INSERT INTO markov_transitions (prev_token, next_token) VALUES (?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtSuccessors, err := db.Prepare(`SELECT next_token FROM markov_transitions WHERE prev_token IS ? ORDER BY seq;`)
	if err != nil {
		_ = stmtInsert.Close()
		return nil, err
	}

	stmtKeys, err := db.Prepare(`SELECT prev_token FROM markov_transitions GROUP BY prev_token ORDER BY MIN(seq);`)
	if err != nil {
		_ = stmtInsert.Close()
		_ = stmtSuccessors.Close()
		return nil, err
	}

	return &SQLTable{
		db:             db,
		stmtInsert:     stmtInsert,
		stmtSuccessors: stmtSuccessors,
		stmtKeys:       stmtKeys,
	}, nil
}

// Close releases the prepared statements. The database itself is owned by
// the caller.
func (t *SQLTable) Close() {
	_ = t.stmtInsert.Close()
	_ = t.stmtSuccessors.Close()
	_ = t.stmtKeys.Close()
}

func keyArg(key Key) sql.NullString {
	token, ok := key.Token()
	return sql.NullString{String: token, Valid: ok}
}

// Record inserts the transitions within a single transaction.
func (t *SQLTable) Record(ctx context.Context, transitions []Transition) error {
	if len(transitions) == 0 {
		return nil
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	stmtInsert := tx.StmtContext(ctx, t.stmtInsert)
	for _, tr := range transitions {
		if _, err = stmtInsert.ExecContext(ctx, keyArg(tr.From), tr.To); err != nil {
			return fmt.Errorf("failed to insert transition (%s -> %q): %w", tr.From, tr.To, err)
		}
	}

	return tx.Commit()
}

// Successors returns the successors of key ordered as they were recorded.
func (t *SQLTable) Successors(ctx context.Context, key Key) ([]string, error) {
	rows, err := t.stmtSuccessors.QueryContext(ctx, keyArg(key))
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var tokens []string
	for rows.Next() {
		var token string
		if err = rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// Keys returns every recorded key in first-seen order.
func (t *SQLTable) Keys(ctx context.Context) ([]Key, error) {
	rows, err := t.stmtKeys.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var keys []Key
	for rows.Next() {
		var prev sql.NullString
		if err = rows.Scan(&prev); err != nil {
			return nil, err
		}
		if prev.Valid {
			keys = append(keys, KeyOf(prev.String))
		} else {
			keys = append(keys, StartKey)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
