// Package repository implements the data access layer for the Storefront API.
//
// The repository package contains all database operations against the
// relational store. Each repository struct handles CRUD operations for a
// specific domain entity.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a *database.Store
//   - Methods implement specific data operations (Create, GetByID, Update, Delete, etc.)
//   - SQL is built with squirrel and executed with placeholders
//   - Row results are scanned into model structs
//
// # Error Mapping
//
// Driver-level failures are normalized in helpers.go:
//
//   - sql.ErrNoRows becomes database.ErrNotFound
//   - unique constraint violations become database.ErrDuplicate
//   - anything else is wrapped in database.ErrQuery, preserving the
//     underlying message
//
// Timestamps are stored as RFC 3339 text and parsed on scan.
package repository
