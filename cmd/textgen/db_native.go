//go:build !cgo_sqlite

package main

import _ "modernc.org/sqlite"

// sqliteDriver is the database/sql driver backing --store sqlite.
const sqliteDriver = "sqlite"
