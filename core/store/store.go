package store

import (
	"sync/atomic"

	"id-check/core/snapshot"
)

// Store holds the active snapshot. Readers never lock; Publish is a single atomic swap.
//
// Store does not serialise writers. Callers that publish from more than one goroutine
// must coordinate themselves (the reload controller does).
type Store struct {
	current atomic.Pointer[snapshot.Snapshot]
	live    atomic.Int64
}

// New returns a store serving initial. A nil initial serves an empty snapshot.
func New(initial *snapshot.Snapshot) *Store {
	if initial == nil {
		initial = snapshot.Empty()
	}
	s := &Store{}
	s.current.Store(initial)
	return s
}

// Current returns a handle to the active snapshot. The handle keeps that snapshot
// usable even if a newer one is published before Release.
func (s *Store) Current() *Handle {
	s.live.Add(1)
	return &Handle{snap: s.current.Load(), store: s}
}

// Publish makes next the active snapshot and returns the one it replaced.
// Publishing nil is a no-op.
func (s *Store) Publish(next *snapshot.Snapshot) *snapshot.Snapshot {
	if next == nil {
		return nil
	}
	return s.current.Swap(next)
}

// Reset drops the active snapshot in favour of an empty one.
func (s *Store) Reset() {
	s.current.Store(snapshot.Empty())
}

// Live returns the number of handles that have not been released yet.
func (s *Store) Live() int64 {
	return s.live.Load()
}

// Handle pins one snapshot for the duration of a read.
type Handle struct {
	snap     *snapshot.Snapshot
	store    *Store
	released atomic.Bool
}

// Snapshot returns the pinned snapshot.
func (h *Handle) Snapshot() *snapshot.Snapshot {
	return h.snap
}

// Contains is shorthand for h.Snapshot().Contains(id).
func (h *Handle) Contains(id uint64) bool {
	return h.snap.Contains(id)
}

// Release unpins the snapshot. It is safe to call Release more than once.
func (h *Handle) Release() {
	if !h.released.CompareAndSwap(false, true) {
		return
	}
	h.store.live.Add(-1)
}
