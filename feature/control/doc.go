// Package control carries host control messages over Redis pub/sub.
//
// Operators (or the `id-check reload` command) publish a tag such as
// "id_check.reload" on the configured channel; every running instance receives
// it and hands it to the filter's OnControlMessage. Tags not addressed to the
// filter are ignored by the filter itself.
package control
