// Package store publishes the active identifier snapshot to concurrent readers.
//
// The store is a single atomic slot. Readers call Current to pin the snapshot
// that is active at that instant and Release when done; a concurrent Publish
// swaps the slot without waiting for them, and the replaced snapshot stays
// valid for as long as any handle still refers to it.
//
//	h := st.Current()
//	defer h.Release()
//	ok := h.Contains(id)
package store
