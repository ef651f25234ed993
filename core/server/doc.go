// Package server holds the HTTP server configuration.
//
// The cmd start command hosts the filter in a Fiber app: control endpoints under
// /idcheck, Prometheus metrics at /metrics, and every other route treated as
// traffic that passes the request guard and is proxied to Upstream.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key protecting the control
// endpoints, the upstream URL and the graceful shutdown timeout.
package server
