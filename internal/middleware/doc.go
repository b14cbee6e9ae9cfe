// Package middleware provides the HTTP middleware for the mini-app
// backend.
//
// # Available Middleware
//
//   - RequestID: attaches a unique id to each request
//   - Logger: structured request logging via slog
//   - Recovery: panic recovery with the uniform 500 envelope
//   - CORS: cross-origin request handling
//   - InitData: launch-payload verification for mutating routes
//
// # Request Gate
//
// InitData is the authentication boundary. It verifies the signed launch
// payload carried in the request body and, on success, injects the
// caller's identity:
//
//	mux.Handle("POST /api/v1/players", middleware.InitData(botToken)(playerHandler))
//
// Handlers read the identity back with GetIdentity(r.Context()). Every
// verification failure answers with the same body, so callers cannot
// probe which check rejected them.
//
// # Context Values
//
//   - GetRequestID(ctx): unique request identifier
//   - GetIdentity(ctx): verified caller identity, gated routes only
package middleware
