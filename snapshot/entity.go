// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

// Package snapshot holds the double-buffered entity and camera state the
// render thread swaps into view once per frame (§4.3, §4.4). It
// generalizes the teacher-adjacent full-copy-per-swap design into
// per-key dirty tracking: only the keys touched since the last swap are
// reconciled, the rest are equal by induction.
package snapshot

import (
	"sync"

	"github.com/gazed/scriptbridge/eid"
)

// EntityState is a value-semantic snapshot of one entity's rendering
// state. It carries no pointers, so it is safe to copy between buffers.
type EntityState struct {
	Position      Vec3
	Orientation   Orientation
	Color         RGBA8
	Radius        float64
	MeshArchetype string
	WorldCamera   bool // cameraBinding == "world"
	ScreenCamera  bool // cameraBinding == "screen"
	Active        bool
}

// Vec3 mirrors lin.V3's shape without importing the math package here;
// EntityState stays a plain value type with no math-package fields.
type Vec3 struct{ X, Y, Z float64 }

// Orientation is a yaw/pitch/roll triple in degrees.
type Orientation struct{ Yaw, Pitch, Roll float64 }

// RGBA8 is a four-channel byte color, matching resource.RGBA8's shape.
type RGBA8 struct{ R, G, B, A uint8 }

// EntitySnapshotStore is the double-buffered EntityId → EntityState map
// described in §4.3.
//
// Threading model:
//   - Put (which also marks the id dirty) and BackBuffer are called only
//     from the render thread while dispatching commands into the current
//     back buffer; they take no lock, matching the "back buffer written... lock-free" discipline.
//   - Get/Range are called from any thread (the worker peeks at the
//     front buffer to resolve "relative" operations, per §9's read-lag
//     design) and take a read lock.
//   - Swap is called once per frame, render-thread only, and takes the
//     write lock for the brief reconciliation + pointer flip.
type EntitySnapshotStore struct {
	mu       sync.RWMutex
	buffers  [2]map[eid.ID]EntityState
	frontIdx int
	dirty    map[eid.ID]struct{}

	totalSwaps uint64
}

// NewEntitySnapshotStore returns an empty store with both buffers ready.
func NewEntitySnapshotStore() *EntitySnapshotStore {
	return &EntitySnapshotStore{
		buffers: [2]map[eid.ID]EntityState{
			{}, {},
		},
		dirty: map[eid.ID]struct{}{},
	}
}

// Put writes state into the current back buffer and marks id dirty for
// the next swap. Render-thread only.
func (s *EntitySnapshotStore) Put(id eid.ID, state EntityState) {
	s.buffers[1-s.frontIdx][id] = state
	s.dirty[id] = struct{}{}
}

// BackBuffer reads id from the current back buffer rather than the
// committed front buffer (§4.3's backBuffer() accessor). Right after a
// swap the two buffers hold identical content, so this only diverges from
// Get within a single Drain pass: once a command Puts a value this frame,
// a later command touching the same id in the same pass sees it here,
// where Get would still report the stale pre-frame snapshot. Render-thread
// only, same lock-free discipline as Put.
func (s *EntitySnapshotStore) BackBuffer(id eid.ID) (EntityState, bool) {
	st, ok := s.buffers[1-s.frontIdx][id]
	return st, ok
}

// Get reads the current front buffer by id. Safe from any goroutine.
func (s *EntitySnapshotStore) Get(id eid.ID) (EntityState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.buffers[s.frontIdx][id]
	return st, ok
}

// Range calls fn for every entry in the current front buffer. Safe from
// any goroutine; fn must not call back into the store.
func (s *EntitySnapshotStore) Range(fn func(id eid.ID, state EntityState)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, st := range s.buffers[s.frontIdx] {
		fn(id, st)
	}
}

// Swap reconciles the dirty keys into the newly-demoted back buffer,
// flips the front/back pointer, and clears the dirty set. Render-thread
// only.
func (s *EntitySnapshotStore) Swap() {
	s.mu.Lock()
	defer s.mu.Unlock()

	newFront := s.buffers[1-s.frontIdx]
	oldFront := s.buffers[s.frontIdx]
	for id := range s.dirty {
		oldFront[id] = newFront[id]
	}
	s.frontIdx = 1 - s.frontIdx
	s.dirty = make(map[eid.ID]struct{}, len(s.dirty))
	s.totalSwaps++
}

// EntityCount returns the number of entries in the current front buffer,
// including soft-deleted ones, for monitoring.
func (s *EntitySnapshotStore) EntityCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buffers[s.frontIdx])
}

// TotalSwaps returns the number of swaps performed so far.
func (s *EntitySnapshotStore) TotalSwaps() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalSwaps
}
