// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package script

import (
	"math"
	"testing"

	"github.com/gazed/scriptbridge/camera"
	"github.com/gazed/scriptbridge/command"
	"github.com/gazed/scriptbridge/logx"
	"github.com/gazed/scriptbridge/math/lin"
	"github.com/gazed/scriptbridge/queue"
	"github.com/gazed/scriptbridge/snapshot"
)

func TestCreateCameraSubmitsWithKind(t *testing.T) {
	q := queue.NewRing[command.RenderCommand](8)
	front := snapshot.NewCameraSnapshotStore()
	f := NewCameraFacade(q, front, NewCallbackBroker(8), logx.Nop())

	f.CreateCamera(command.Position{}, camera.Orientation{}, camera.Orthographic, dummyCallable())

	cmd, ok := q.Pop()
	if !ok || cmd.Kind != command.CreateCamera || cmd.CameraKind != camera.Orthographic {
		t.Fatalf("unexpected command: %+v (ok=%v)", cmd, ok)
	}
}

func TestLookAtCameraPointingAlongForwardAxisYieldsZeroYaw(t *testing.T) {
	q := queue.NewRing[command.RenderCommand](8)
	front := snapshot.NewCameraSnapshotStore()
	front.Put(1, camera.NewWorldState(lin.V3{}, camera.Orientation{}))
	front.Swap()

	f := NewCameraFacade(q, front, NewCallbackBroker(8), logx.Nop())
	f.LookAtCamera(1, command.Position{X: 10})

	cmd, ok := q.Pop()
	if !ok || cmd.Kind != command.UpdateCamera {
		t.Fatalf("expecting an UpdateCamera command, got %+v (ok=%v)", cmd, ok)
	}
	if math.Abs(cmd.Orientation.Yaw) > 1e-9 {
		t.Errorf("expecting zero yaw when looking straight down +X, got %f", cmd.Orientation.Yaw)
	}
}

func TestLookAtCameraUnknownIDLogsAndDoesNothing(t *testing.T) {
	q := queue.NewRing[command.RenderCommand](8)
	front := snapshot.NewCameraSnapshotStore()
	f := NewCameraFacade(q, front, NewCallbackBroker(8), logx.Nop())

	f.LookAtCamera(999, command.Position{X: 1})
	if q.Len() != 0 {
		t.Errorf("expecting no command submitted for an unknown id")
	}
}

func TestMoveCameraByAddsDeltaToFrontPosition(t *testing.T) {
	q := queue.NewRing[command.RenderCommand](8)
	front := snapshot.NewCameraSnapshotStore()
	front.Put(1, camera.NewWorldState(lin.V3{X: 1, Y: 2, Z: 3}, camera.Orientation{Yaw: 45}))
	front.Swap()

	f := NewCameraFacade(q, front, NewCallbackBroker(8), logx.Nop())
	f.MoveCameraBy(1, command.Position{X: 1, Y: 1, Z: 1})

	cmd, ok := q.Pop()
	if !ok || cmd.Position.X != 2 || cmd.Position.Y != 3 || cmd.Position.Z != 4 {
		t.Fatalf("expecting position (2,3,4), got %+v (ok=%v)", cmd, ok)
	}
	if cmd.Orientation.Yaw != 45 {
		t.Errorf("expecting orientation to be preserved, got %+v", cmd.Orientation)
	}
}
