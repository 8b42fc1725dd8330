// Package model defines domain entities and data structures for the Storefront API.
//
// The model package contains all struct definitions for domain objects and
// error definitions. Models are used across all layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Customer: A buyer with contact details
//   - Product: A sellable item with name, category, and price
//   - Order: A purchase linking a customer to a product
//   - User: An API account with authentication credentials
//   - Session: A server-side record backing an issued access token
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Product struct {
//	    ID       int64  `json:"id"`
//	    Name     string `json:"name"`
//	    Category string `json:"category"`
//	}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
