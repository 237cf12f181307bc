// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package script

import (
	"testing"

	"github.com/dop251/goja"

	"github.com/gazed/scriptbridge/command"
	"github.com/gazed/scriptbridge/logx"
	"github.com/gazed/scriptbridge/queue"
	"github.com/gazed/scriptbridge/snapshot"
)

func newTestRuntime(t *testing.T) (*goja.Runtime, *queue.Ring[command.RenderCommand]) {
	t.Helper()
	vm := goja.New()
	q := queue.NewRing[command.RenderCommand](16)
	broker := NewCallbackBroker(16)
	entities := NewEntityFacade(q, snapshot.NewEntitySnapshotStore(), broker, logx.Nop())
	cameras := NewCameraFacade(q, snapshot.NewCameraSnapshotStore(), broker, logx.Nop())
	if err := Register(vm, entities, cameras); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return vm, q
}

func TestCreateMeshFromScript(t *testing.T) {
	vm, q := newTestRuntime(t)
	if _, err := vm.RunString(`createMesh("cube", 0, 0, 0, 1.0, 255, 0, 0, 255, function(id) {})`); err != nil {
		t.Fatalf("script error: %v", err)
	}
	cmd, ok := q.Pop()
	if !ok || cmd.Archetype != "cube" || cmd.Color.R != 255 {
		t.Fatalf("unexpected command: %+v (ok=%v)", cmd, ok)
	}
}

func TestUpdatePositionFromScript(t *testing.T) {
	vm, q := newTestRuntime(t)
	if _, err := vm.RunString(`updatePosition(1, 5, 6, 7)`); err != nil {
		t.Fatalf("script error: %v", err)
	}
	cmd, ok := q.Pop()
	if !ok || cmd.NewPosition == nil || cmd.NewPosition.X != 5 {
		t.Fatalf("unexpected command: %+v (ok=%v)", cmd, ok)
	}
}

func TestCreateMeshMissingCallbackThrowsTypeError(t *testing.T) {
	vm, _ := newTestRuntime(t)
	if _, err := vm.RunString(`createMesh("cube", 0, 0, 0, 1.0, 255, 0, 0, 255)`); err == nil {
		t.Fatalf("expecting a TypeError for the missing callback argument")
	}
}

func TestUpdatePositionOutOfRangeIDThrowsTypeError(t *testing.T) {
	vm, _ := newTestRuntime(t)
	if _, err := vm.RunString(`updatePosition(-1, 0, 0, 0)`); err == nil {
		t.Fatalf("expecting a TypeError for a negative id")
	}
}

func TestUnknownCameraKindThrowsTypeError(t *testing.T) {
	vm, _ := newTestRuntime(t)
	if _, err := vm.RunString(`createCamera(0,0,0, 1,0,0, "sideways", function(id) {})`); err == nil {
		t.Fatalf("expecting a TypeError for an invalid camera kind")
	}
}

func TestLookAtCameraFromScriptUnknownIDQueuesNothing(t *testing.T) {
	vm, q := newTestRuntime(t)
	if _, err := vm.RunString(`lookAtCamera(1, 10, 0, 0)`); err != nil {
		t.Fatalf("script error: %v", err)
	}
	if q.Len() != 0 {
		t.Errorf("expecting no command for an unknown camera id, got %d queued", q.Len())
	}
}
