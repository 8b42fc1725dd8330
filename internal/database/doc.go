// Package database provides the relational store boundary for Storefront.
//
// The store is a libsql (SQLite dialect) database accessed through
// database/sql. Open connects and pings; Migrate applies the idempotent
// schema statements. Repositories hold a *Store and build their SQL with
// squirrel.
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: row does not exist
//   - ErrDuplicate: unique constraint violation
//   - ErrConnection: connection or ping failure
//   - ErrQuery: query execution failure
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing row
//	}
package database
