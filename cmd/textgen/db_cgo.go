//go:build cgo_sqlite

package main

import _ "github.com/mattn/go-sqlite3"

// sqliteDriver is the database/sql driver backing --store sqlite.
const sqliteDriver = "sqlite3"
