// Package handler implements the HTTP layer of the storefront API:
// request decoding, response encoding, service error mapping and route
// registration for the versioned API surface.
package handler
