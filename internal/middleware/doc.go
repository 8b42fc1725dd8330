// Package middleware provides HTTP middleware for the storefront API:
// request IDs, structured request logging, panic recovery, CORS,
// token authentication and fixed-window rate limiting.
//
// Middlewares compose with Chain; the first middleware listed is the
// outermost wrapper.
package middleware
