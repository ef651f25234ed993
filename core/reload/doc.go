// Package reload replaces the active snapshot without disturbing readers.
//
// A Controller owns a two-state machine (Idle, Reloading). Trigger performs the
// only Idle -> Reloading transition with a compare-and-swap; the background
// load is the only path back to Idle, whether it succeeded or not. A second
// Trigger while Reloading fails fast with ErrReloadBusy.
//
// Loading (I/O, parsing, sorting) happens entirely off the caller's goroutine and
// holds nothing readers need. Only a successful load touches the store, through a
// single atomic Publish. A failed load leaves the store as it was.
package reload
