package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const (
	maxOpenConns = 25
	maxIdleConns = 5
)

type DB struct {
	*sql.DB
}

// Connect opens a PostgreSQL connection via database/sql. The service itself
// runs on pgx pools; this path exists for one-shot tooling such as the schema
// setup script, where multi-statement Exec is convenient.
func Connect(connString string) (*DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)

	return &DB{db}, nil
}
