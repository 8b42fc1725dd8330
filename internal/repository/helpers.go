package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/shopworks/storefront/internal/database"
)

// sb is the statement builder shared by all repositories. The libsql driver
// uses ? placeholders, squirrel's default.
var sb = sq.StatementBuilder

// mapError normalizes driver errors to the database package sentinels.
// The underlying message is preserved so the handler layer can surface it.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return database.ErrNotFound
	}
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%w: %v", database.ErrDuplicate, err)
	}
	return fmt.Errorf("%w: %v", database.ErrQuery, err)
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// formatTime renders a timestamp for a TEXT column.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime reads a timestamp from a TEXT column. A zero time is returned
// for values written by other tools in an unexpected layout.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// likePattern builds a substring LIKE pattern for a search term.
// Matching is case-insensitive for ASCII under the store's default
// NOCASE-style LIKE collation.
func likePattern(term string) string {
	return "%" + term + "%"
}
