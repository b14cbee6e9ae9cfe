// Package handler provides the HTTP endpoint implementations for the
// mini-app backend.
//
// Each handler struct encapsulates the dependencies needed to serve its
// feature area. Response helpers in response.go produce the two success
// envelopes:
//
//   - WriteResult: a single resource under "result"
//   - WriteResults: a collection under "results" with pagination metadata
//
// Errors always leave through WriteError with the uniform envelope from
// the model package; MapServiceError centralizes the translation from
// service errors to HTTP status codes.
//
// Player endpoints that act on behalf of the caller require a verified
// launch payload. The request gate in the middleware package performs the
// verification and injects the caller's identity into the request context.
package handler
