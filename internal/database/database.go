package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/go-libsql"
)

const driverLibsql = "libsql"

// Standard errors for store operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (e.g., duplicate email).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the store.
	ErrConnection = errors.New("store connection error")

	// ErrQuery indicates a query execution failure.
	ErrQuery = errors.New("query error")
)

// Config holds store configuration.
type Config struct {
	// Path is a local database file, ":memory:", or a file: URI.
	Path string
	// URL is a remote libsql endpoint. Takes precedence over Path.
	URL string
	// AuthToken authenticates against a remote endpoint.
	AuthToken string
}

// Store wraps the database connection for Storefront.
type Store struct {
	DB *sql.DB
}

// Open initializes a store connection using the provided configuration.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverLibsql, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open libsql store: %v", ErrConnection, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping libsql store: %v", ErrConnection, err)
	}

	return &Store{DB: db}, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Ping verifies the connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

func buildDSN(cfg Config) (string, error) {
	if url := strings.TrimSpace(cfg.URL); url != "" {
		if cfg.AuthToken != "" {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			return url + sep + "authToken=" + cfg.AuthToken, nil
		}
		return url, nil
	}

	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return "", errors.New("store path or url is required")
	}
	if path == ":memory:" {
		return path, nil
	}
	if strings.HasPrefix(path, "file:") {
		return path, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create store directory: %w", err)
	}
	return "file:" + path, nil
}
