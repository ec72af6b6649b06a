// Package middleware holds the global echo middleware: request ids,
// request-scoped logging, New Relic tracing, Prometheus metrics, body
// logging, rate limiting, CORS, panic recovery and the global error handler.
package middleware
