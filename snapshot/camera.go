// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package snapshot

import (
	"sync"
	"sync/atomic"

	"github.com/gazed/scriptbridge/camera"
	"github.com/gazed/scriptbridge/eid"
)

// CameraSnapshotStore is the double-buffered CameraId → camera.State map
// described in §4.4. It layers a derived-object cache on top of the same
// dirty-tracked swap protocol as EntitySnapshotStore: after every swap the
// whole *camera.Camera cache is rebuilt from the new front buffer, since
// projection/view matrices are cheap to recompute and expensive to patch
// incrementally.
type CameraSnapshotStore struct {
	mu       sync.RWMutex
	buffers  [2]map[eid.ID]camera.State
	frontIdx int
	dirty    map[eid.ID]struct{}
	cache    map[eid.ID]*camera.Camera

	// active holds the CameraId of the active camera as a relaxed atomic
	// (§4.4). SetActive writes it as soon as SetActiveCamera is dispatched,
	// during the command drain that precedes the swap-or-skip step; Swap
	// does not touch it. On a frame where the swap is skipped, the new id
	// is visible while the front buffer and camera cache still hold the
	// previous snapshot.
	active atomic.Uint64

	totalSwaps uint64
}

// NewCameraSnapshotStore returns an empty store with no active camera.
func NewCameraSnapshotStore() *CameraSnapshotStore {
	return &CameraSnapshotStore{
		buffers: [2]map[eid.ID]camera.State{
			{}, {},
		},
		dirty: map[eid.ID]struct{}{},
		cache: map[eid.ID]*camera.Camera{},
	}
}

// Put writes state into the current back buffer and marks id dirty.
// Render-thread only.
func (s *CameraSnapshotStore) Put(id eid.ID, state camera.State) {
	s.buffers[1-s.frontIdx][id] = state
	s.dirty[id] = struct{}{}
}

// Get reads the current front buffer by id. Safe from any goroutine.
func (s *CameraSnapshotStore) Get(id eid.ID) (camera.State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.buffers[s.frontIdx][id]
	return st, ok
}

// BackBuffer reads id from the current back buffer rather than the
// committed front buffer (§4.3's backBuffer() accessor, shared with
// EntitySnapshotStore). Lets the dispatcher read-modify-write a camera
// touched twice within the same Drain pass without the second command
// seeing a pre-frame snapshot and clobbering the first. Render-thread
// only, same lock-free discipline as Put.
func (s *CameraSnapshotStore) BackBuffer(id eid.ID) (camera.State, bool) {
	st, ok := s.buffers[1-s.frontIdx][id]
	return st, ok
}

// LookupCamera returns the derived projection/view pair for id. The
// returned pointer is valid only until the next Swap (§4.4).
func (s *CameraSnapshotStore) LookupCamera(id eid.ID) (*camera.Camera, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cache[id]
	return c, ok
}

// SetActive assigns the active camera id. Render-thread only, called
// while dispatching SetActiveCamera.
func (s *CameraSnapshotStore) SetActive(id eid.ID) { s.active.Store(uint64(id)) }

// Active returns the current active camera id, or eid.Invalid if none has
// been set yet.
func (s *CameraSnapshotStore) Active() eid.ID { return eid.ID(s.active.Load()) }

// Swap reconciles dirty keys, flips the front/back pointer, rebuilds the
// derived Camera cache wholesale from the new front buffer, and clears
// the dirty set. Render-thread only.
func (s *CameraSnapshotStore) Swap() {
	s.mu.Lock()
	defer s.mu.Unlock()

	newFront := s.buffers[1-s.frontIdx]
	oldFront := s.buffers[s.frontIdx]
	for id := range s.dirty {
		oldFront[id] = newFront[id]
	}
	s.frontIdx = 1 - s.frontIdx
	s.dirty = make(map[eid.ID]struct{}, len(s.dirty))

	cache := make(map[eid.ID]*camera.Camera, len(newFront))
	for id, st := range newFront {
		cache[id] = camera.Derive(st)
	}
	s.cache = cache
	s.totalSwaps++
}

// CameraCount returns the number of entries in the current front buffer.
func (s *CameraSnapshotStore) CameraCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buffers[s.frontIdx])
}

// TotalSwaps returns the number of swaps performed so far.
func (s *CameraSnapshotStore) TotalSwaps() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalSwaps
}
