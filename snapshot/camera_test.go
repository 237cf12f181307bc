// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package snapshot

import (
	"testing"

	camerapkg "github.com/gazed/scriptbridge/camera"
	"github.com/gazed/scriptbridge/eid"
	"github.com/gazed/scriptbridge/math/lin"
)

func TestLookupCameraNilBeforeSwap(t *testing.T) {
	s := NewCameraSnapshotStore()
	s.Put(1, camerapkg.NewWorldState(lin.V3{}, camerapkg.Orientation{}))
	if _, ok := s.LookupCamera(1); ok {
		t.Errorf("expecting no derived camera before the first swap")
	}
}

// TestScreenCameraViewportDerivation exercises spec.md §8.2: a screen
// camera created against a (1600, 800) window produces the exact
// orthographic bounds and full normalized viewport after swap.
func TestScreenCameraViewportDerivation(t *testing.T) {
	s := NewCameraSnapshotStore()
	id := eid.ID(1000)
	s.Put(id, camerapkg.NewScreenState(lin.V3{}, camerapkg.Orientation{}, 1600, 800))
	s.Swap()

	cam, ok := s.LookupCamera(id)
	if !ok {
		t.Fatalf("expecting a derived camera after swap")
	}
	if cam.Viewport != camerapkg.FullViewport {
		t.Errorf("expecting full viewport, got %+v", cam.Viewport)
	}
	if cam.Proj.Xx == 0 {
		t.Errorf("expecting a non-degenerate orthographic projection")
	}
}

func TestSetActiveTakesEffectImmediatelyForReads(t *testing.T) {
	s := NewCameraSnapshotStore()
	if s.Active() != eid.Invalid {
		t.Errorf("expecting no active camera initially")
	}
	s.SetActive(5)
	if s.Active() != 5 {
		t.Errorf("expecting active camera 5, got %d", s.Active())
	}
}

func TestCacheRebuildsWholesaleOnSwap(t *testing.T) {
	s := NewCameraSnapshotStore()
	s.Put(1, camerapkg.NewWorldState(lin.V3{}, camerapkg.Orientation{}))
	s.Swap()
	if _, ok := s.LookupCamera(1); !ok {
		t.Fatalf("expecting camera 1 in the rebuilt cache")
	}

	s.Put(2, camerapkg.NewWorldState(lin.V3{}, camerapkg.Orientation{}))
	s.Swap()
	if _, ok := s.LookupCamera(1); !ok {
		t.Errorf("expecting camera 1 to remain in the cache after an unrelated swap")
	}
	if _, ok := s.LookupCamera(2); !ok {
		t.Errorf("expecting camera 2 to appear in the cache after its swap")
	}
}
