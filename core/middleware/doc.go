// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the store endpoints.
//   - requestid: a unique id per request, stored in locals and echoed in the
//     X-Request-ID response header for tracing.
//
// requestid must be registered first so that every later log line carries the id.
package middleware
