// Package testdb opens throwaway in-memory SQLite databases for repository tests.
package testdb

import (
	"shareit/infras/postgres"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

// Open returns a connection to a fresh database with statements applied.
// A single connection keeps every query on the same in-memory database.
func Open(t testing.TB, statements ...string) *postgres.Connection {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	for _, statement := range statements {
		if _, err = db.Exec(statement); err != nil {
			t.Fatalf("failed to apply schema: %v", err)
		}
	}

	return postgres.NewFromDB(db)
}

const Users = `CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL,
	modified_at TIMESTAMP NOT NULL
)`

const Requests = `CREATE TABLE requests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL,
	requestor_id INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL,
	modified_at TIMESTAMP NOT NULL
)`

const Items = `CREATE TABLE items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	available BOOLEAN NOT NULL,
	owner_id INTEGER NOT NULL,
	request_id INTEGER,
	created_at TIMESTAMP NOT NULL,
	modified_at TIMESTAMP NOT NULL
)`

const Bookings = `CREATE TABLE bookings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	start_time TIMESTAMP NOT NULL,
	end_time TIMESTAMP NOT NULL,
	item_id INTEGER NOT NULL,
	booker_id INTEGER NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	modified_at TIMESTAMP NOT NULL
)`

const Comments = `CREATE TABLE comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text TEXT NOT NULL,
	item_id INTEGER NOT NULL,
	author_id INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL,
	modified_at TIMESTAMP NOT NULL
)`
