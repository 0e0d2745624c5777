// Package http implements the REST API of the password manager.
//
// It wires routes, request handlers and middleware. Tracing, access logging,
// CORS, rate limiting, compression and JWT authentication run here before
// requests reach the service layer. Errors from lower layers are turned into
// status codes by a single table in errors_mapper.go.
package http
