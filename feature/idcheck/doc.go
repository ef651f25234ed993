// Package idcheck implements the request-time identifier filter.
//
// A Plugin answers one question for the host's request path: is this numeric
// identifier in the configured list? The list is loaded at startup (fatal on
// failure) and can be reloaded at runtime without ever exposing a partially
// built list to readers.
//
// # Host Contract
//
//   - IsMember(id): lock-free lookup against the active snapshot.
//   - OnControlMessage(tag): "id_check.reload" (case-insensitive) starts a
//     background reload; a second request while one runs is rejected.
//   - OnShutdown(): waits for a running reload and drops the list.
//
// # Startup Options
//
//	-path=<location>   file, s3://bucket/object or db://table/column
//
// # HTTP Endpoints
//
//   - GET /idcheck/:id : Membership of a single identifier.
//   - GET /idcheck/status : Source, size, checksum and reload state.
//   - POST /idcheck/msg : Deliver a control message ({"tag": "id_check.reload"}).
//
// NewGuard turns the filter into Fiber middleware for filtered traffic, in allow
// or deny mode.
package idcheck
