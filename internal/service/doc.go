// Package service implements the business layer of the Storefront API.
//
// Services sit between handlers and repositories. For the resource
// entities (customers, products, orders) they are deliberately thin: each
// operation performs exactly one store call and propagates the store's
// sentinel errors unchanged. The auth service carries the only real
// logic in the system: credential checking, session issuance, and token
// verification.
//
// Repository interfaces are declared here, next to their consumers, so
// tests can substitute in-memory fakes.
package service
