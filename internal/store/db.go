// Package store is the persistence adapter: one logical JSON blob per key,
// backed by a single table. SQLite is the default backend for local use;
// PostgreSQL is available behind the same interface.
package store

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"proinvoice/internal/config"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS blobs (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// NewDB opens the blob store database for the configured driver and applies
// the schema.
func NewDB(cfg *config.StoreConfig) (*sqlx.DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = "sqlite3"
	}
	db, err := sqlx.Connect(driver, cfg.DataSource())
	if err != nil {
		return nil, fmt.Errorf("store: connecting (%s): %w", driver, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: applying schema: %w", err)
	}
	if driver == "sqlite3" {
		// A single writer keeps SQLite happy under concurrent handlers.
		db.SetMaxOpenConns(1)
	}
	return db, nil
}
