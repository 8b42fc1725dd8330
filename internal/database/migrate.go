package database

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		firstname TEXT NOT NULL,
		lastname TEXT NOT NULL,
		email TEXT,
		city TEXT,
		created_on TEXT NOT NULL,
		updated_on TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		price REAL NOT NULL DEFAULT 0,
		created_on TEXT NOT NULL,
		updated_on TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1,
		created_on TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		hash TEXT NOT NULL,
		firstname TEXT,
		lastname TEXT,
		created_on TEXT NOT NULL,
		updated_on TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		token_hash TEXT NOT NULL UNIQUE,
		issued_at TEXT NOT NULL,
		expires_at TEXT NOT NULL,
		revoked INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);`,
	`CREATE INDEX IF NOT EXISTS idx_customers_lastname ON customers(lastname);`,
}

// Migrate applies the schema. Statements are idempotent, so calling this on
// every startup is safe.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: apply schema: %v", ErrQuery, err)
		}
	}
	return nil
}
