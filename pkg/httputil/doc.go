// Package httputil provides HTTP server utilities for the resolve API.
//
// # Overview
//
// This package provides infrastructure shared by every HTTP handler:
//
//   - [WriteJSON] and [WriteError]: consistent JSON response envelopes
//   - [Observe]: middleware that reports requests to the observability hooks
//
// # Responses
//
// Successful responses carry the payload directly; failures carry an error
// envelope with a stable machine-readable code:
//
//	{"error": {"code": "INVALID_DOCUMENT", "message": "system 0: ..."}}
//
// [WriteError] maps the error codes from pkg/errors to HTTP status codes, so
// handlers can return domain errors without choosing a status themselves.
package httputil
