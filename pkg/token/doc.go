// Package token implements signing and validation of Storefront access
// tokens.
//
// Tokens are HS256 JWTs carrying the user ID, email, and a session ID
// (the jti claim) that references a server-side session row. Signature and
// expiry are checked here; whether the referenced session is still active
// is the auth service's concern.
package token
