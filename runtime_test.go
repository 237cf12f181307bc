// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package bridge

import (
	"testing"
	"time"

	"github.com/gazed/scriptbridge/camera"
	"github.com/gazed/scriptbridge/config"
	"github.com/gazed/scriptbridge/snapshot"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition never became true within %s", timeout)
		}
		time.Sleep(time.Millisecond)
	}
}

func newTestRuntime(t *testing.T, presenter Presenter) *Runtime {
	t.Helper()
	cfg := config.New(config.QueueCapacity(16, 16), config.ShutdownTiming(time.Millisecond, 200*time.Millisecond))
	r := Construct(cfg, fixedViewport{1280, 720}, presenter)
	if err := r.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	t.Cleanup(func() {
		r.Shutdown()
		r.Destruct()
	})
	return r
}

func TestRuntimeCreateMeshRoundTripsThroughAFrame(t *testing.T) {
	r := newTestRuntime(t, nil)
	if err := r.LoadScript(`
		var createdId = -1;
		createMesh("cube", 1, 2, 3, 1.0, 255, 0, 0, 255, function(id) { createdId = id; });
	`); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	r.Frame() // drains the create command into the back buffer, triggers a script frame
	waitFor(t, time.Second, func() bool { return r.Stats().TotalFrames >= 1 })
	r.Frame() // publishes the completion token and lets the worker's next frame drain it

	waitFor(t, time.Second, func() bool {
		v := r.vm.Get("createdId")
		return v != nil && v.ToInteger() > 0
	})
}

func TestRuntimeScriptExceptionDoesNotStopSubsequentFrames(t *testing.T) {
	r := newTestRuntime(t, nil)
	if err := r.LoadScript(`
		var frames = 0;
		function update(dt) { frames++; throw new Error("boom"); }
	`); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	r.Frame()
	waitFor(t, time.Second, func() bool { return r.Stats().ExceptionCount >= 1 })
	r.Frame()
	waitFor(t, time.Second, func() bool { return r.Stats().TotalFrames >= 2 })
}

type recordingPresenter struct {
	calls  int
	active *camera.Camera
}

func (p *recordingPresenter) Present(entities *snapshot.EntitySnapshotStore, active *camera.Camera) {
	p.calls++
	p.active = active
}

func TestRuntimePresentsNilActiveCameraBeforeAnyIsSet(t *testing.T) {
	presenter := &recordingPresenter{}
	r := newTestRuntime(t, presenter)
	if err := r.LoadScript(``); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	r.Frame()
	if presenter.calls != 1 {
		t.Fatalf("expecting exactly one Present call, got %d", presenter.calls)
	}
	if presenter.active != nil {
		t.Fatalf("expecting a nil active camera before any SetActiveCamera, got %+v", presenter.active)
	}
}

func TestRuntimeCreateScreenCameraUsesHostViewport(t *testing.T) {
	r := newTestRuntime(t, nil)
	if err := r.LoadScript(`
		var camId = -1;
		createCamera(0, 0, 0, 1, 0, 0, "screen", function(id) { camId = id; });
	`); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	r.Frame()
	waitFor(t, time.Second, func() bool { return r.Stats().TotalFrames >= 1 })
	r.Frame()
	waitFor(t, time.Second, func() bool {
		v := r.vm.Get("camId")
		return v != nil && v.ToInteger() > 0
	})

	st, ok := r.cameras.Get(1000)
	if !ok || st.Ortho.Right != 1280 || st.Ortho.Top != 720 {
		t.Fatalf("expecting orthographic bounds from the 1280x720 host viewport, got %+v (ok=%v)", st, ok)
	}
}

func TestRuntimeShutdownDisallowsFurtherAccess(t *testing.T) {
	cfg := config.New(config.ShutdownTiming(time.Millisecond, 200*time.Millisecond))
	r := Construct(cfg, fixedViewport{800, 600}, nil)
	if err := r.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if err := r.LoadScript(``); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	r.Frame()

	r.Shutdown()
	if !r.worker.IsShutdownComplete() {
		t.Fatalf("expecting shutdown to have completed within its ceiling")
	}
	r.Destruct()
	if r.vm != nil {
		t.Fatalf("expecting Destruct to drop the runtime isolate reference")
	}
}
