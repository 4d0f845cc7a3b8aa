// Package api implements the HTTP REST API and WebSocket server for cartool.
//
// This package provides:
//   - REST endpoints listing and invoking the vehicle property functions
//   - the raw property catalog as served to clients
//   - a WebSocket endpoint for invoking functions over a single connection
//   - JWT bearer authentication with ticket-based WebSocket auth
//   - the function call audit log, when one is configured
//   - Middleware stack (request ID, logging, recovery, CORS)
//   - TLS support for production deployments
//
// # Errors
//
// Function errors are mapped to HTTP status codes by kind. A property that is
// not in the allow-list answers 403, a property that cannot currently be read
// answers 409, and malformed arguments answer 400. Failures inside the core
// answer 500 with an opaque message; the detail is only written to the log.
//
// # Security
//
// When security.jwt.secret is set, every route except the health check
// requires an HS256 bearer token. Browsers cannot set headers on a WebSocket
// handshake, so clients first exchange their token for a single-use ticket.
// The ticket carries the token's role.
//
// A viewer token may call the getters only; setters and the audit log need an
// operator token. A call the role does not allow answers 403 with code
// "forbidden", distinct from "not_authorized" for properties outside the
// allow-list.
package api
