// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

package script

import (
	"math"

	"github.com/dop251/goja"

	"github.com/gazed/scriptbridge/camera"
	"github.com/gazed/scriptbridge/command"
	"github.com/gazed/scriptbridge/eid"
	"github.com/gazed/scriptbridge/logx"
	"github.com/gazed/scriptbridge/math/lin"
	"github.com/gazed/scriptbridge/queue"
	"github.com/gazed/scriptbridge/snapshot"
)

// CameraFacade is the only surface script camera calls reach (§4.6),
// mirroring EntityFacade's structure over the camera id domain.
type CameraFacade struct {
	ids       *eid.Generator
	callbacks *CallbackBroker
	queue     *queue.Ring[command.RenderCommand]
	snapshot  *snapshot.CameraSnapshotStore
	log       *logx.Logger
}

// NewCameraFacade builds a facade submitting into q and reading current
// camera state from front. callbacks holds this facade's pending callbacks
// (§4.6); bridge.Construct gives each facade its own broker.
func NewCameraFacade(q *queue.Ring[command.RenderCommand], front *snapshot.CameraSnapshotStore, callbacks *CallbackBroker, log *logx.Logger) *CameraFacade {
	return &CameraFacade{
		ids:       eid.NewGenerator(eid.CameraDomain),
		callbacks: callbacks,
		queue:     q,
		snapshot:  front,
		log:       log,
	}
}

// CreateCamera allocates a CameraId and a CallbackId, registers the pending
// callback, and submits a CreateCamera command. The host window's viewport
// is not part of the submission: for kind Orthographic, the dispatcher
// reads it itself at dispatch time on the render thread (§4.5), since
// script has no business knowing window pixel dimensions.
func (f *CameraFacade) CreateCamera(pos command.Position, orientation camera.Orientation, kind camera.Kind, callback goja.Callable) eid.ID {
	id := f.ids.Next()
	cb := f.callbacks.register(callback)

	cmd := command.RenderCommand{
		Kind:        command.CreateCamera,
		EntityID:    id,
		CallbackID:  cb,
		Position:    pos,
		Orientation: orientation,
		CameraKind:  kind,
	}
	if !f.queue.TryPush(cmd) {
		f.log.QueueOverflow("render", "CreateCamera", uint64(id))
		f.callbacks.fail(cb)
	}
	return cb
}

// MoveCamera submits an absolute pose update: position and orientation
// together, never a delta, so the dispatcher applies it without a
// read-modify-write (§4.5's UpdateCamera row).
func (f *CameraFacade) MoveCamera(id eid.ID, pos command.Position, orientation camera.Orientation) {
	f.submit(command.RenderCommand{
		Kind:        command.UpdateCamera,
		EntityID:    id,
		Position:    pos,
		Orientation: orientation,
	})
}

// MoveCameraBy resolves the relative move by reading the camera's current
// front-buffer pose and submitting an absolute MoveCamera (§9, option (a)).
func (f *CameraFacade) MoveCameraBy(id eid.ID, delta command.Position) {
	st, ok := f.snapshot.Get(id)
	if !ok {
		f.log.UnknownID("moveCameraBy", uint64(id))
		return
	}
	pos := command.Position{X: st.Position.X + delta.X, Y: st.Position.Y + delta.Y, Z: st.Position.Z + delta.Z}
	f.MoveCamera(id, pos, st.Orientation)
}

// LookAtCamera derives yaw/pitch from the vector between the camera's
// current position and target, holding roll at zero, and submits it as an
// absolute MoveCamera. The coordinate convention is +X forward, +Y left,
// +Z up (§6): yaw is measured about +Z from the forward axis, pitch about
// the local left axis.
func (f *CameraFacade) LookAtCamera(id eid.ID, target command.Position) {
	st, ok := f.snapshot.Get(id)
	if !ok {
		f.log.UnknownID("lookAtCamera", uint64(id))
		return
	}
	dx := target.X - st.Position.X
	dy := target.Y - st.Position.Y
	dz := target.Z - st.Position.Z
	horizontal := math.Sqrt(dx*dx + dy*dy)

	orientation := camera.Orientation{
		Yaw:   lin.Deg(lin.Atan2F(dy, dx)),
		Pitch: lin.Deg(lin.Atan2F(-dz, horizontal)),
	}
	f.MoveCamera(id, st.Position, orientation)
}

// SetActiveCamera submits a SetActiveCamera command, which is always
// permitted even against an unknown id (§4.5): the render loop then simply
// finds no camera to render with. It returns a CallbackId like a create
// operation since §6 types it as one.
func (f *CameraFacade) SetActiveCamera(id eid.ID, callback goja.Callable) eid.ID {
	cb := f.callbacks.register(callback)
	cmd := command.RenderCommand{Kind: command.SetActiveCamera, EntityID: id, CallbackID: cb}
	if !f.queue.TryPush(cmd) {
		f.log.QueueOverflow("render", "SetActiveCamera", uint64(id))
		f.callbacks.fail(cb)
	}
	return cb
}

// DestroyCamera submits a soft-delete, completed through the same
// callback pipeline as the create operations (§6).
func (f *CameraFacade) DestroyCamera(id eid.ID, callback goja.Callable) eid.ID {
	cb := f.callbacks.register(callback)
	cmd := command.RenderCommand{Kind: command.DestroyCamera, EntityID: id, CallbackID: cb}
	if !f.queue.TryPush(cmd) {
		f.log.QueueOverflow("render", "DestroyCamera", uint64(id))
		f.callbacks.fail(cb)
	}
	return cb
}

func (f *CameraFacade) submit(cmd command.RenderCommand) {
	if !f.queue.TryPush(cmd) {
		f.log.QueueOverflow("render", "UpdateCamera", uint64(cmd.EntityID))
	}
}
